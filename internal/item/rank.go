package item

import (
	"fmt"
	"log/slog"
)

// Criterion is one dimension contributing to a rank tuple.
type Criterion uint8

// Rank criteria in config/flag token order. The Neg variants invert the
// sort direction of their counterpart.
const (
	ByScore Criterion = iota
	ByNegScore
	ByBegin
	ByNegBegin
	ByEnd
	ByNegEnd
	ByLength
	ByNegLength
	ByIndex
	ByNegIndex
)

var criterionTokens = map[string]Criterion{
	"score":   ByScore,
	"-score":  ByNegScore,
	"begin":   ByBegin,
	"-begin":  ByNegBegin,
	"end":     ByEnd,
	"-end":    ByNegEnd,
	"length":  ByLength,
	"-length": ByNegLength,
	"index":   ByIndex,
	"-index":  ByNegIndex,
}

// ParseCriterion maps a tiebreak token to its criterion.
func ParseCriterion(token string) (Criterion, error) {
	if c, ok := criterionTokens[token]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("unknown tiebreak criterion %q", token)
}

// ParseCriteria maps a tiebreak token list to criteria, preserving order.
func ParseCriteria(tokens []string) ([]Criterion, error) {
	criteria := make([]Criterion, 0, len(tokens))
	for _, token := range tokens {
		c, err := ParseCriterion(token)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, c)
	}
	return criteria, nil
}

// String returns the config token for the criterion.
func (c Criterion) String() string {
	for token, criterion := range criterionTokens {
		if criterion == c {
			return token
		}
	}
	return fmt.Sprintf("criterion(%d)", uint8(c))
}

// rankSlots is the fixed width of a rank tuple. Criteria beyond this many
// are ignored at construction.
const rankSlots = 5

// Rank is the composite sort key for a matched item. Slot i holds the
// value contributed by the i-th configured criterion; unused trailing
// slots stay zero. Ranks order lexicographically, lower first.
type Rank [rankSlots]int32

// Compare returns -1, 0, or 1 ordering r against other lexicographically.
func (r Rank) Compare(other Rank) int {
	for i := range r {
		switch {
		case r[i] < other[i]:
			return -1
		case r[i] > other[i]:
			return 1
		}
	}
	return 0
}

// Less reports whether r orders strictly before other.
func (r Rank) Less(other Rank) bool {
	return r.Compare(other) < 0
}

// RankBuilder maps match measurements onto rank tuples according to a
// fixed criteria priority list.
type RankBuilder struct {
	criteria []Criterion
	logger   *slog.Logger
}

// NewRankBuilder builds a ranker from the configured criteria. Duplicates
// are dropped keeping the first occurrence, the list is capped at the rank
// width, and Score is force-inserted at priority 0 when neither Score nor
// NegScore is present so every rank is score-led by default.
func NewRankBuilder(criteria []Criterion) *RankBuilder {
	hasScore := false
	for _, c := range criteria {
		if c == ByScore || c == ByNegScore {
			hasScore = true
			break
		}
	}
	if !hasScore {
		criteria = append([]Criterion{ByScore}, criteria...)
	}

	seen := make(map[Criterion]struct{}, len(criteria))
	deduped := make([]Criterion, 0, len(criteria))
	for _, c := range criteria {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		deduped = append(deduped, c)
		if len(deduped) == rankSlots {
			break
		}
	}

	return &RankBuilder{criteria: deduped}
}

// DefaultRankBuilder ranks by score, then match begin, then match end.
func DefaultRankBuilder() *RankBuilder {
	return NewRankBuilder([]Criterion{ByScore, ByBegin, ByEnd})
}

// WithLogger enables debug tracing of built ranks.
func (b *RankBuilder) WithLogger(logger *slog.Logger) *RankBuilder {
	b.logger = logger
	return b
}

// Criteria returns a copy of the effective priority list.
func (b *RankBuilder) Criteria() []Criterion {
	out := make([]Criterion, len(b.criteria))
	copy(out, b.criteria)
	return out
}

// Build maps one match measurement onto a rank tuple. Higher scores rank
// earlier, so the Score slot carries the negated score. Pure: identical
// inputs always produce identical ranks.
func (b *RankBuilder) Build(score, begin, end, length, index int) Rank {
	var rank Rank
	for priority, criterion := range b.criteria {
		var value int
		switch criterion {
		case ByScore:
			value = -score
		case ByNegScore:
			value = score
		case ByBegin:
			value = begin
		case ByNegBegin:
			value = -begin
		case ByEnd:
			value = end
		case ByNegEnd:
			value = -end
		case ByLength:
			value = length
		case ByNegLength:
			value = -length
		case ByIndex:
			value = index
		case ByNegIndex:
			value = -index
		}
		rank[priority] = int32(value)
	}
	if b.logger != nil {
		b.logger.Debug("rank built", slog.Any("rank", rank))
	}
	return rank
}

// MatchedItem pairs an item with its rank and match metadata.
type MatchedItem struct {
	Item Item
	Rank Rank
	// Range is the matched span, nil when the query was empty.
	Range *Range
	// Index is the item's ingestion position, carried for explicit
	// tiebreaks; it does not participate in Compare.
	Index uint32
}

// Compare orders matched items by rank alone. Two items with equal ranks
// compare equal regardless of index or range; callers needing a strict
// order must tiebreak explicitly, e.g. on Index.
func (m MatchedItem) Compare(other MatchedItem) int {
	return m.Rank.Compare(other.Rank)
}

// Less reports whether m ranks strictly before other.
func (m MatchedItem) Less(other MatchedItem) bool {
	return m.Compare(other) < 0
}
