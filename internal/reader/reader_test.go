package reader_test

import (
	"testing"
	"time"

	"sift/internal/item"
	"sift/internal/reader"
)

// fakeCollector emits a fixed set of lines and then closes its stream, or
// holds the stream open until interrupted when hold is set.
type fakeCollector struct {
	lines []string
	hold  bool
}

func (f *fakeCollector) Invoke(_ string, outstanding *reader.Counter) (<-chan item.Item, chan<- struct{}, error) {
	items := make(chan item.Item, len(f.lines)+1)
	interrupt := make(chan struct{}, 1)

	outstanding.Add(1)
	go func() {
		defer outstanding.Done()
		defer close(items)
		for i, line := range f.lines {
			select {
			case items <- item.NewLine(line, uint32(i)):
			case <-interrupt:
				return
			}
		}
		if f.hold {
			<-interrupt
		}
	}()

	return items, interrupt, nil
}

func drainUntilDone(t *testing.T, ctl *reader.Control) []item.Item {
	t.Helper()
	deadline := time.After(5 * time.Second)
	var collected []item.Item
	for {
		collected = append(collected, ctl.Take()...)
		if ctl.IsDone() {
			return collected
		}
		select {
		case <-deadline:
			t.Fatal("reader never finished")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestRunReturnsWithCounterAlreadyRaised(t *testing.T) {
	r := reader.New(&fakeCollector{hold: true})
	ctl, err := r.Run("fake")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	// No post-return race window: the collector goroutine registered
	// itself before Run returned.
	ctl.Kill()
}

func TestKillReturnsWithCounterAtZero(t *testing.T) {
	r := reader.New(&fakeCollector{lines: []string{"a", "b"}, hold: true})
	ctl, err := r.Run("fake")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	done := make(chan struct{})
	go func() {
		ctl.Kill()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Kill did not return")
	}
}

func TestKillIsIdempotent(t *testing.T) {
	r := reader.New(&fakeCollector{hold: true})
	ctl, err := r.Run("fake")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	ctl.Kill()
	ctl.Kill()
}

func TestEndToEndEmitThenClose(t *testing.T) {
	want := []string{"one", "two", "three", "four", "five"}
	r := reader.New(&fakeCollector{lines: want})
	ctl, err := r.Run("fake")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	collected := drainUntilDone(t, ctl)
	if len(collected) != len(want) {
		t.Fatalf("collected %d items, want %d", len(collected), len(want))
	}
	for i, it := range collected {
		if it.Text() != want[i] {
			t.Fatalf("item %d = %q, want %q (emission order must be preserved)", i, it.Text(), want[i])
		}
	}
	if !ctl.IsDone() {
		t.Fatal("IsDone = false after full drain")
	}
}

func TestIsDoneFalseWhileStagingNonEmpty(t *testing.T) {
	r := reader.New(&fakeCollector{lines: []string{"pending"}})
	ctl, err := r.Run("fake")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	// Wait for the producer to stop without draining the staging buffer.
	deadline := time.After(5 * time.Second)
	for ctl.IsDone() == false {
		items := ctl.Take()
		if len(items) > 0 {
			// Got the staged item; done. The property under test is that
			// IsDone stayed false until this drain happened.
			if items[0].Text() != "pending" {
				t.Fatalf("unexpected item %q", items[0].Text())
			}
			return
		}
		select {
		case <-deadline:
			t.Fatal("reader never staged the item")
		case <-time.After(time.Millisecond):
		}
	}
	t.Fatal("IsDone reported true while the staging buffer still held items")
}

func TestTakeDrainsOnce(t *testing.T) {
	r := reader.New(&fakeCollector{lines: []string{"a", "b", "c"}})
	ctl, err := r.Run("fake")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	collected := drainUntilDone(t, ctl)
	if len(collected) != 3 {
		t.Fatalf("collected %d items, want 3", len(collected))
	}
	if extra := ctl.Take(); len(extra) != 0 {
		t.Fatalf("Take after drain returned %d items", len(extra))
	}
}

func TestDirectSourceBypassesCollector(t *testing.T) {
	source := make(chan item.Item, 3)
	source <- item.NewLine("x", 0)
	source <- item.NewLine("y", 1)
	close(source)

	// The collector must not be consulted when a direct source is set.
	r := reader.New(nil, reader.WithSource(source))
	ctl, err := r.Run("")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	collected := drainUntilDone(t, ctl)
	if len(collected) != 2 || collected[0].Text() != "x" || collected[1].Text() != "y" {
		t.Fatalf("unexpected items: %v", collected)
	}
	ctl.Kill()
}

func TestChannelCollectorForwardsUntilSourceCloses(t *testing.T) {
	source := make(chan item.Item, 2)
	source <- item.NewLine("a", 0)
	source <- item.NewLine("b", 1)
	close(source)

	r := reader.New(&reader.ChannelCollector{Source: source})
	ctl, err := r.Run("ignored")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	collected := drainUntilDone(t, ctl)
	if len(collected) != 2 || collected[0].Text() != "a" || collected[1].Text() != "b" {
		t.Fatalf("unexpected items: %v", collected)
	}
	ctl.Kill()
}

func TestChannelCollectorStopsOnInterrupt(t *testing.T) {
	source := make(chan item.Item)

	r := reader.New(&reader.ChannelCollector{Source: source})
	ctl, err := r.Run("ignored")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	done := make(chan struct{})
	go func() {
		ctl.Kill()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Kill did not stop the channel collector")
	}
}

func TestCurrentRunChangesPerRun(t *testing.T) {
	r := reader.New(&fakeCollector{})
	first, err := r.Run("one")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	firstID := r.CurrentRun()
	if firstID != first.RunID() {
		t.Fatal("CurrentRun does not match the control's run ID")
	}
	first.Kill()

	second, err := r.Run("two")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if second.RunID() == firstID {
		t.Fatal("successive runs must get distinct run IDs")
	}
	second.Kill()
}
