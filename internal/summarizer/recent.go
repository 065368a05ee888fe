package summarizer

import "github.com/pep299/socialspy/internal/model"

// MaxRecent caps the recent summaries list
const MaxRecent = 5

// RecentList keeps the most recent summaries, newest first.
// It is not safe for concurrent use.
type RecentList struct {
	entries []model.RecentSummaryEntry
	limit   int
}

func NewRecentList(limit int) *RecentList {
	if limit <= 0 {
		limit = MaxRecent
	}
	return &RecentList{limit: limit}
}

// Add prepends entry and drops whatever falls beyond the cap
func (r *RecentList) Add(entry model.RecentSummaryEntry) {
	keep := len(r.entries)
	if keep > r.limit-1 {
		keep = r.limit - 1
	}

	entries := make([]model.RecentSummaryEntry, 0, keep+1)
	entries = append(entries, entry)
	entries = append(entries, r.entries[:keep]...)
	r.entries = entries
}

// Entries returns a copy of the list
func (r *RecentList) Entries() []model.RecentSummaryEntry {
	out := make([]model.RecentSummaryEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *RecentList) Len() int {
	return len(r.entries)
}
