package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"sift/internal/config"
	"sift/internal/history"
	"sift/internal/item"
	"sift/internal/matcher"
	"sift/internal/reader"
)

// harvestInterval paces the poll loop that moves staged items into the pool.
const harvestInterval = 5 * time.Millisecond

type filterOptions struct {
	command     string
	tiebreak    string
	headerLines int
	limit       int
	noHistory   bool
}

func runFilter(cmd *cobra.Command, ctx *commandContext, query string, opts filterOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger := ctx.ensureLogger()

	criteria, err := resolveCriteria(cfg, opts.tiebreak)
	if err != nil {
		return err
	}
	builder := item.NewRankBuilder(criteria)

	reserveLines := cfg.Finder.ReserveLines
	if opts.headerLines >= 0 {
		reserveLines = opts.headerLines
	}
	pool := item.NewPool(reserveLines)

	r, sourceCmd := newReader(cfg, opts, cmd.InOrStdin(), logger)
	ctl, err := r.Run(sourceCmd)
	if err != nil {
		return fmt.Errorf("start ingestion: %w", err)
	}

	for {
		pool.Append(ctl.Take())
		if ctl.IsDone() {
			break
		}
		select {
		case <-cmd.Context().Done():
			ctl.Kill()
			return cmd.Context().Err()
		case <-time.After(harvestInterval):
		}
	}
	ctl.Kill()
	logger.Debug("ingestion finished",
		slog.String("component", "filter"),
		slog.Int("lines", pool.Len()),
		slog.Int("header_lines", len(pool.Reserved())),
	)

	engine := matcher.NewEngine(builder, matcher.WithEngineLogger(logger))
	matched, err := engine.Match(cmd.Context(), query, pool.Take(), 0)
	if err != nil {
		return fmt.Errorf("match candidates: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, header := range pool.Reserved() {
		fmt.Fprintln(out, header.Text())
	}
	printed := 0
	for _, m := range matched {
		if opts.limit > 0 && printed >= opts.limit {
			break
		}
		fmt.Fprintln(out, m.Item.Text())
		printed++
	}

	if cfg.History.Enabled && !opts.noHistory {
		recordHistory(cmd.Context(), ctx, logger, query, matched)
	}

	if printed == 0 && len(pool.Reserved()) == 0 {
		// Match semantics of grep-like filters: nothing found is exit 1.
		return errNoMatch
	}
	return nil
}

var errNoMatch = fmt.Errorf("no match")

func resolveCriteria(cfg *config.Config, tiebreakFlag string) ([]item.Criterion, error) {
	if strings.TrimSpace(tiebreakFlag) == "" {
		return cfg.Criteria(), nil
	}
	tokens := strings.Split(tiebreakFlag, ",")
	for i, token := range tokens {
		tokens[i] = strings.ToLower(strings.TrimSpace(token))
	}
	criteria, err := item.ParseCriteria(tokens)
	if err != nil {
		return nil, fmt.Errorf("--tiebreak: %w", err)
	}
	return criteria, nil
}

// newReader picks the ingestion source: piped stdin when available,
// otherwise the configured source command run through the collector.
func newReader(cfg *config.Config, opts filterOptions, stdin io.Reader, logger *slog.Logger) (*reader.Reader, string) {
	if stdinIsPiped(stdin) {
		return reader.New(nil,
			reader.WithSource(stdinSource(stdin)),
			reader.WithLogger(logger),
		), ""
	}

	sourceCmd := strings.TrimSpace(opts.command)
	if sourceCmd == "" {
		sourceCmd = cfg.Finder.Command
	}
	collector := reader.NewExecCollector(
		reader.WithShell(cfg.Finder.Shell),
		reader.WithExecLogger(logger),
	)
	return reader.New(collector, reader.WithLogger(logger)), sourceCmd
}

func stdinIsPiped(stdin io.Reader) bool {
	file, ok := stdin.(*os.File)
	if !ok {
		// Non-file stdin (tests inject buffers) counts as piped input.
		return true
	}
	fd := file.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// stdinSource streams stdin lines as items; closing at EOF signals end of
// input to the reader.
func stdinSource(stdin io.Reader) <-chan item.Item {
	items := make(chan item.Item, 1024)
	go func() {
		defer close(items)
		scanner := bufio.NewScanner(stdin)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		var index uint32
		for scanner.Scan() {
			items <- item.NewLine(scanner.Text(), index)
			index++
		}
	}()
	return items
}

func recordHistory(ctx context.Context, cmdCtx *commandContext, logger *slog.Logger, query string, matched []item.MatchedItem) {
	cfg, _ := cmdCtx.ensureConfig()
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		logger.Warn("history unavailable", slog.String("error", err.Error()))
		return
	}
	defer store.Close()

	selection := ""
	if len(matched) > 0 {
		selection = matched[0].Item.Text()
	}
	if err := store.Record(ctx, query, selection); err != nil {
		logger.Warn("history record failed", slog.String("error", err.Error()))
	}
}
