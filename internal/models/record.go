package models

import "strconv"

// Outcome classifies the observed health of a checked link.
type Outcome string

const (
	OutcomeOK       Outcome = "OK"
	OutcomeRedirect Outcome = "Redirect"
	OutcomeBroken   Outcome = "Broken"
	OutcomeError    Outcome = "Error"
)

// LinkType classifies a link relative to the crawl's seed host.
type LinkType string

const (
	LinkInternal LinkType = "Internal"
	LinkExternal LinkType = "External"
	// LinkSelf marks the record emitted for a page that itself failed to load.
	LinkSelf LinkType = "Self (page itself)"
)

// StatusSentinel replaces the numeric status code when no response was
// obtained at all, so transport failures stay distinguishable from any real
// HTTP status.
const StatusSentinel = "transport error"

// LinkRecord is one row of the crawl report. Immutable once created.
type LinkRecord struct {
	Page       string // source page the link was found on
	Link       string // absolute target URL
	Type       LinkType
	StatusCode int // 0 when no response was obtained
	Outcome    Outcome
}

// Status renders the observed status: the numeric code, or the transport
// sentinel when both check attempts failed.
func (r LinkRecord) Status() string {
	if r.StatusCode == 0 {
		return StatusSentinel
	}
	return strconv.Itoa(r.StatusCode)
}
