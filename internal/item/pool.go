package item

import (
	"sync"
	"sync/atomic"
)

const poolInitialCapacity = 1024

// Pool is the concurrent store of ingested candidates. It keeps two
// append-only segments: a reserved segment holding the first reserveLines
// items, pinned to display first and never rotated out, and an unbounded
// main segment claimed incrementally through Take.
//
// Each segment has its own mutex shared by readers and writers. Producers
// may call Append concurrently; Take assumes a single consumer, as
// concurrent callers would race on the claim window.
type Pool struct {
	mu    sync.Mutex // guards items
	items []Item

	reservedMu sync.Mutex // guards reserved
	reserved   []Item

	length atomic.Int64 // main segment size, updated under mu
	taken  atomic.Int64 // claimed count, taken <= length

	reserveLines int
}

// NewPool creates a pool reserving the first reserveLines ingested items
// as header rows.
func NewPool(reserveLines int) *Pool {
	if reserveLines < 0 {
		reserveLines = 0
	}
	return &Pool{
		items:        make([]Item, 0, poolInitialCapacity),
		reserveLines: reserveLines,
	}
}

// Len returns the main segment size.
func (p *Pool) Len() int {
	return int(p.length.Load())
}

// IsEmpty reports whether the main segment holds no items.
func (p *Pool) IsEmpty() bool {
	return p.Len() == 0
}

// NumTaken returns how many main-segment items have been claimed.
func (p *Pool) NumTaken() int {
	return int(p.taken.Load())
}

// NumNotTaken returns how many main-segment items await claiming.
func (p *Pool) NumNotTaken() int {
	return int(p.length.Load() - p.taken.Load())
}

// Append stores a batch, filling remaining reserved capacity from the head
// of the batch before routing the rest to the main segment. A single call
// may straddle the boundary. Returns the new main segment size.
func (p *Pool) Append(batch []Item) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reservedMu.Lock()
	defer p.reservedMu.Unlock()

	if toReserve := p.reserveLines - len(p.reserved); toReserve > 0 {
		if toReserve > len(batch) {
			toReserve = len(batch)
		}
		p.reserved = append(p.reserved, batch[:toReserve]...)
		batch = batch[toReserve:]
	}
	p.items = append(p.items, batch...)
	p.length.Store(int64(len(p.items)))
	return len(p.items)
}

// Take claims every main-segment item appended since the last call and
// returns a copy of the claimed window. Each item surfaces from exactly
// one Take: no duplicates, no gaps. Single-consumer only.
func (p *Pool) Take() []Item {
	p.mu.Lock()
	defer p.mu.Unlock()

	start := p.taken.Swap(int64(len(p.items)))
	claimed := make([]Item, len(p.items)-int(start))
	copy(claimed, p.items[start:])
	return claimed
}

// Reserved returns a copy of the reserved segment. Idempotent; header rows
// are never removed or reordered.
func (p *Pool) Reserved() []Item {
	p.reservedMu.Lock()
	defer p.reservedMu.Unlock()

	out := make([]Item, len(p.reserved))
	copy(out, p.reserved)
	return out
}

// Reset zeroes the claim cursor without touching stored items, forcing the
// next Take to re-surface the full main segment. Taken under the main lock
// so it cannot interleave with an in-flight Append.
func (p *Pool) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.taken.Store(0)
}

// Clear empties both segments and zeroes both counters for a new
// ingestion run.
func (p *Pool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reservedMu.Lock()
	defer p.reservedMu.Unlock()

	// Fresh backing arrays so cleared items can be collected.
	p.items = make([]Item, 0, poolInitialCapacity)
	p.reserved = nil
	p.taken.Store(0)
	p.length.Store(0)
}
