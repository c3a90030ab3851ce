package matcher

import (
	"strings"
	"unicode"
)

// Measurement captures one successful match: the score (higher is better)
// and the matched span in rune positions (End exclusive).
type Measurement struct {
	Score int
	Begin int
	End   int
}

// score matches query as a subsequence of text, greedy left-to-right.
// Returns the measurement and whether every query rune was found.
// Matching is case-insensitive.
func score(queryRunes []rune, text string) (Measurement, bool) {
	if len(queryRunes) == 0 {
		return Measurement{}, false
	}

	original := []rune(text)
	lowered := []rune(strings.ToLower(text))

	matches := make([]int, 0, len(queryRunes))
	queryIdx := 0
	for i := 0; i < len(lowered) && queryIdx < len(queryRunes); i++ {
		if lowered[i] == queryRunes[queryIdx] {
			matches = append(matches, i)
			queryIdx++
		}
	}
	if queryIdx != len(queryRunes) {
		return Measurement{}, false
	}

	s := 100

	for i := 1; i < len(matches); i++ {
		if matches[i] == matches[i-1]+1 {
			s += 20
		}
	}
	for _, idx := range matches {
		if isWordBoundary(original, idx) {
			s += 15
		}
	}
	if matches[0] == 0 {
		s += 25
	}
	if len(matches) > 1 {
		if gap := matches[len(matches)-1] - matches[0] - len(matches) + 1; gap > 0 {
			s -= gap * 2
		}
	}
	s -= matches[0]
	if s < 1 {
		s = 1
	}

	return Measurement{
		Score: s,
		Begin: matches[0],
		End:   matches[len(matches)-1] + 1,
	}, true
}

func isWordBoundary(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(runes) {
		return false
	}
	prev, curr := runes[idx-1], runes[idx]
	if unicode.IsSpace(prev) || unicode.IsPunct(prev) {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(curr)
}
