package reader

import (
	"bufio"
	"fmt"
	"log/slog"
	"os/exec"

	"sift/internal/item"
	"sift/internal/logging"
)

// maxLineSize caps how long a single candidate line may grow before the
// scanner gives up on it.
const maxLineSize = 1024 * 1024

// ExecCollector spawns an external command through the shell and streams
// its stdout lines as items. It runs two counted workers per invocation:
// a scanner draining stdout and a watcher that kills the process when the
// interrupt channel fires.
type ExecCollector struct {
	shell  string
	logger *slog.Logger
}

// ExecOption configures an ExecCollector.
type ExecOption func(*ExecCollector)

// WithShell overrides the shell used to interpret the command line.
func WithShell(shell string) ExecOption {
	return func(c *ExecCollector) {
		if shell != "" {
			c.shell = shell
		}
	}
}

// WithExecLogger attaches a logger to the collector.
func WithExecLogger(logger *slog.Logger) ExecOption {
	return func(c *ExecCollector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewExecCollector constructs a collector running commands via "sh -c".
func NewExecCollector(opts ...ExecOption) *ExecCollector {
	c := &ExecCollector{
		shell:  "sh",
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Invoke implements CommandCollector. The returned interrupt channel kills
// the spawned process; a process that ignores SIGKILL semantics cannot
// happen on POSIX, but its children may linger since only the direct child
// is signalled.
func (c *ExecCollector) Invoke(cmd string, outstanding *Counter) (<-chan item.Item, chan<- struct{}, error) {
	command := exec.Command(c.shell, "-c", cmd) //nolint:gosec
	stdout, err := command.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("stdout pipe: %w", err)
	}
	if err := command.Start(); err != nil {
		return nil, nil, fmt.Errorf("start command: %w", err)
	}
	logger := c.logger.With(slog.String("component", "exec-collector"))
	logger.Debug("command started", slog.String("cmd", cmd), slog.Int("pid", command.Process.Pid))

	items := make(chan item.Item, collectChannelSize)
	interrupt := make(chan struct{}, 1)
	procDone := make(chan struct{})

	// Watcher: kills the process on interrupt so the scanner unblocks via
	// EOF on the stdout pipe. Exits on its own once the process finishes.
	outstanding.Add(1)
	go func() {
		defer outstanding.Done()
		select {
		case <-interrupt:
			logger.Debug("interrupt received, killing process", slog.Int("pid", command.Process.Pid))
			_ = command.Process.Kill()
			<-procDone
		case <-procDone:
		}
	}()

	// Scanner: drains stdout into the item channel until EOF.
	outstanding.Add(1)
	go func() {
		defer outstanding.Done()
		defer close(items)
		defer close(procDone)

		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 64*1024), maxLineSize)
		var index uint32
		for scanner.Scan() {
			line := item.NewLine(scanner.Text(), index)
			index++
			select {
			case items <- line:
			case <-interrupt:
				_ = command.Process.Kill()
				_ = command.Wait()
				logger.Debug("collector interrupted mid-stream", slog.Uint64("lines", uint64(index)))
				return
			}
		}
		if err := command.Wait(); err != nil {
			logger.Debug("command exited", slog.String("error", err.Error()))
		}
		logger.Debug("command output drained", slog.Uint64("lines", uint64(index)))
	}()

	return items, interrupt, nil
}
