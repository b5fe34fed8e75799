// Package report accumulates link records and renders the final crawl report.
package report

import (
	"sort"
	"sync"
	"time"

	"github.com/sahalashfaq/linkaudit/internal/models"
)

// Aggregator collects LinkRecords as checks complete. Appends are safe from
// concurrent status-check workers; records are never removed.
type Aggregator struct {
	mu      sync.Mutex
	records []models.LinkRecord
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator { return &Aggregator{} }

// Append adds one record.
func (a *Aggregator) Append(rec models.LinkRecord) {
	a.mu.Lock()
	a.records = append(a.records, rec)
	a.mu.Unlock()
}

// Len returns the number of records collected so far.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.records)
}

// Finalize produces the immutable report over everything collected.
func (a *Aggregator) Finalize(pagesVisited int, elapsed time.Duration) *Report {
	a.mu.Lock()
	records := make([]models.LinkRecord, len(a.records))
	copy(records, a.records)
	a.mu.Unlock()
	return &Report{Records: records, PagesVisited: pagesVisited, Elapsed: elapsed}
}

// Report is the final view over all records plus derived counts.
type Report struct {
	Records      []models.LinkRecord
	PagesVisited int
	Elapsed      time.Duration
}

// All returns every record ordered by outcome kind, then source page.
func (r *Report) All() []models.LinkRecord {
	out := make([]models.LinkRecord, len(r.Records))
	copy(out, r.Records)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Outcome != out[j].Outcome {
			return out[i].Outcome < out[j].Outcome
		}
		return out[i].Page < out[j].Page
	})
	return out
}

// Broken returns records whose outcome is Broken or Error, ordered by page.
func (r *Report) Broken() []models.LinkRecord {
	return r.filter(func(rec models.LinkRecord) bool {
		return rec.Outcome == models.OutcomeBroken || rec.Outcome == models.OutcomeError
	})
}

// Redirects returns records whose outcome is Redirect, ordered by page.
func (r *Report) Redirects() []models.LinkRecord {
	return r.filter(func(rec models.LinkRecord) bool {
		return rec.Outcome == models.OutcomeRedirect
	})
}

func (r *Report) filter(keep func(models.LinkRecord) bool) []models.LinkRecord {
	var out []models.LinkRecord
	for _, rec := range r.Records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Page < out[j].Page })
	return out
}

// BrokenCount counts records whose outcome is Broken or Error.
func (r *Report) BrokenCount() int { return len(r.Broken()) }

// RedirectCount counts records whose outcome is Redirect.
func (r *Report) RedirectCount() int { return len(r.Redirects()) }
