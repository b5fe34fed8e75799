package models

// PageResult is the outcome of fetching a single page.
type PageResult struct {
	StatusCode int      // 0 when the request never completed
	Hrefs      []string // raw href attributes in document order, duplicates preserved
	Err        error    // transport failure; nil when a response was received
}

// TransportFailed reports whether the request could not complete at all.
func (p PageResult) TransportFailed() bool { return p.Err != nil }

// Loaded reports whether the page responded with a non-error status and was
// parsed for links.
func (p PageResult) Loaded() bool { return p.Err == nil && p.StatusCode < 400 }
