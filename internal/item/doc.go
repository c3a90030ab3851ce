// Package item holds the candidate data model shared by the reader,
// matcher, and CLI: the Item interface, the concurrent Pool that stores
// ingested candidates, and the rank machinery (RankBuilder, Rank,
// MatchedItem) used to order match results.
//
// The Pool is split into a bounded reserved segment, pinned to display
// first, and an unbounded main segment claimed incrementally through Take.
// Ranks are fixed five-slot tuples compared lexicographically; the slot
// layout is decided once per session by a RankBuilder built from the
// configured tiebreak criteria.
//
// Items are immutable once appended and are shared by reference across
// goroutines; treat everything handed out by the Pool as read-only.
package item
