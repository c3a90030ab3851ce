package reader

import "sync"

// Counter tracks how many collector workers are still running for one
// ingestion run. Workers call Add(1) when they start and Done when they
// exit; Wait blocks until the count returns to zero.
type Counter struct {
	mu   sync.Mutex
	cond *sync.Cond
	n    int
}

// NewCounter returns a counter starting at zero.
func NewCounter() *Counter {
	c := &Counter{}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Add records delta newly started workers.
func (c *Counter) Add(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n += delta
	if c.n < 0 {
		panic("reader: counter went negative")
	}
	if c.n == 0 {
		c.cond.Broadcast()
	}
}

// Done records one worker termination.
func (c *Counter) Done() {
	c.Add(-1)
}

// Count returns the current number of outstanding workers.
func (c *Counter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

// Wait blocks until every outstanding worker has called Done. It returns
// immediately when the count is already zero.
func (c *Counter) Wait() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.n != 0 {
		c.cond.Wait()
	}
}
