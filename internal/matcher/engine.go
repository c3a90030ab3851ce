package matcher

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"sift/internal/item"
	"sift/internal/logging"
)

// minChunkSize keeps chunks large enough that goroutine overhead does not
// dominate on small candidate sets.
const minChunkSize = 64

// Engine matches a query against candidate slices and orders the results.
type Engine struct {
	builder *item.RankBuilder
	workers int
	logger  *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithWorkers caps the number of scoring goroutines. Zero means NumCPU.
func WithWorkers(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithEngineLogger attaches a logger.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine builds an engine around the session's rank builder.
func NewEngine(builder *item.RankBuilder, opts ...EngineOption) *Engine {
	e := &Engine{
		builder: builder,
		workers: runtime.NumCPU(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Match scores every candidate against query and returns the matches
// ordered by rank, with equal ranks tiebroken on ingestion index. Indexes
// are assigned from indexOffset plus the slice position, so callers
// claiming the pool incrementally keep stable indexes across calls. An
// empty query matches everything with a zero score and no range.
func (e *Engine) Match(ctx context.Context, query string, candidates []item.Item, indexOffset int) ([]item.MatchedItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return e.matchAll(candidates, indexOffset), nil
	}
	queryRunes := []rune(strings.ToLower(query))

	chunkSize := (len(candidates) + e.workers - 1) / e.workers
	if chunkSize < minChunkSize {
		chunkSize = minChunkSize
	}

	var mu sync.Mutex
	var matched []item.MatchedItem

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(e.workers)
	for start := 0; start < len(candidates); start += chunkSize {
		end := start + chunkSize
		if end > len(candidates) {
			end = len(candidates)
		}
		chunk := candidates[start:end]
		base := indexOffset + start

		group.Go(func() error {
			local := make([]item.MatchedItem, 0, len(chunk)/4)
			for i, candidate := range chunk {
				if err := ctx.Err(); err != nil {
					return err
				}
				text := candidate.Text()
				m, ok := score(queryRunes, text)
				if !ok {
					continue
				}
				index := base + i
				local = append(local, item.MatchedItem{
					Item: candidate,
					Rank: e.builder.Build(m.Score, m.Begin, m.End, len(text), index),
					Range: &item.Range{
						Start: m.Begin,
						End:   m.End,
					},
					Index: uint32(index),
				})
			}
			mu.Lock()
			matched = append(matched, local...)
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	sortMatches(matched)
	e.logger.Debug("match pass finished",
		slog.String("component", "matcher"),
		slog.Int("candidates", len(candidates)),
		slog.Int("matched", len(matched)),
	)
	return matched, nil
}

func (e *Engine) matchAll(candidates []item.Item, indexOffset int) []item.MatchedItem {
	matched := make([]item.MatchedItem, len(candidates))
	for i, candidate := range candidates {
		index := indexOffset + i
		matched[i] = item.MatchedItem{
			Item:  candidate,
			Rank:  e.builder.Build(0, 0, 0, len(candidate.Text()), index),
			Index: uint32(index),
		}
	}
	sortMatches(matched)
	return matched
}

// sortMatches orders by rank, falling back to ingestion index because rank
// equality does not imply identity.
func sortMatches(matched []item.MatchedItem) {
	sort.SliceStable(matched, func(i, j int) bool {
		if c := matched[i].Compare(matched[j]); c != 0 {
			return c < 0
		}
		return matched[i].Index < matched[j].Index
	})
}
