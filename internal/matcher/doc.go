// Package matcher scores candidate items against a query and orders the
// matches by rank. The scoring algorithm is a greedy left-to-right
// subsequence match with bonuses for consecutive runs, word boundaries,
// and prefix hits; the Engine fans scoring out over worker goroutines and
// sorts the results with the session's RankBuilder, tiebreaking equal
// ranks on ingestion index.
package matcher
