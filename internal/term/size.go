package term

import "golang.org/x/sys/unix"

// Size returns the (columns, rows) of the terminal behind fd.
func Size(fd int) (int, int, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}
