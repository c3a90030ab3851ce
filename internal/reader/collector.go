package reader

import (
	"io"
	"log/slog"
	"math"

	"sift/internal/item"
)

// collectChannelSize bounds the item and interrupt channels between a
// collector and the reader.
const collectChannelSize = 1024

// CommandCollector produces candidate items for a source descriptor.
//
// Invoke returns the item stream and an interrupt channel; closing the
// interrupt channel (or sending any value on it) asks the collector to
// terminate. Implementations must increment outstanding exactly once per
// internally spawned worker at its start and decrement exactly once at its
// termination, so the reader can treat a zero count as fully stopped.
// Closing the item channel signals end of input.
type CommandCollector interface {
	Invoke(cmd string, outstanding *Counter) (items <-chan item.Item, interrupt chan<- struct{}, err error)
}

// ChannelCollector adapts an existing item channel to the CommandCollector
// interface. A single counted worker forwards items until the source
// closes or an interrupt arrives; the cmd descriptor is ignored.
type ChannelCollector struct {
	Source <-chan item.Item
	Logger *slog.Logger
}

// Invoke implements CommandCollector.
func (c *ChannelCollector) Invoke(_ string, outstanding *Counter) (<-chan item.Item, chan<- struct{}, error) {
	items := make(chan item.Item, collectChannelSize)
	interrupt := make(chan struct{}, 1)
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}

	outstanding.Add(1)
	go func() {
		defer outstanding.Done()
		defer close(items)
		for {
			select {
			case it, ok := <-c.Source:
				if !ok {
					logger.Debug("channel collector source closed")
					return
				}
				select {
				case items <- it:
				case <-interrupt:
					logger.Debug("channel collector interrupted")
					return
				}
			case <-interrupt:
				logger.Debug("channel collector interrupted")
				return
			}
		}
	}()

	return items, interrupt, nil
}
