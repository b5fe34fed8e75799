package crawler

import "github.com/sahalashfaq/linkaudit/internal/models"

// Progress receives crawl events as they happen. A nil Progress is valid and
// disables reporting; the crawl's correctness never depends on a sink being
// present. LinkChecked may be called from concurrent check workers.
type Progress interface {
	// PageVisited fires after a page is dequeued and marked visited.
	PageVisited(visited, budget int, pageURL string)

	// LinkChecked fires once per recorded link, in completion order.
	LinkChecked(rec models.LinkRecord)
}
