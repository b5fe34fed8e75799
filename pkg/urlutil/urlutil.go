// Package urlutil resolves raw hrefs against the page they were found on and
// classifies the result as internal or external to the crawl's seed host.
package urlutil

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sahalashfaq/linkaudit/internal/models"
)

// Scope captures the host a crawl is rooted at.
type Scope struct {
	seed *url.URL
	host string
}

// NewScope parses the seed URL. The seed must be an absolute http(s) URL
// with a host; anything else is a fatal input error.
func NewScope(seedURL string) (*Scope, error) {
	trimmed := strings.TrimSpace(seedURL)
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return nil, fmt.Errorf("seed URL must start with http:// or https://, got %q", seedURL)
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid seed URL: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("seed URL %q has no host", seedURL)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return &Scope{seed: u, host: canonicalHost(u.Host)}, nil
}

// Seed returns the parsed seed URL.
func (s *Scope) Seed() *url.URL { return s.seed }

// Classify reports whether u belongs to the seed host. The comparison is
// case-insensitive and ignores a leading "www." on either side, so
// example.com and www.example.com are the same site regardless of which
// form the seed used.
func (s *Scope) Classify(u *url.URL) models.LinkType {
	if canonicalHost(u.Host) == s.host {
		return models.LinkInternal
	}
	return models.LinkExternal
}

func canonicalHost(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}

// Resolve turns a raw href into an absolute URL relative to base. The second
// return is false for non-navigational hrefs (empty, fragment-only, mailto,
// tel, javascript), for schemes other than http(s), and for hrefs that do
// not parse. Fragments are stripped: they never matter for identity or for
// checking.
func Resolve(base *url.URL, href string) (*url.URL, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return nil, false
	}
	lower := strings.ToLower(href)
	if strings.HasPrefix(lower, "#") ||
		strings.HasPrefix(lower, "mailto:") ||
		strings.HasPrefix(lower, "tel:") ||
		strings.HasPrefix(lower, "javascript:") {
		return nil, false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return nil, false
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return nil, false
	}
	if resolved.Host == "" {
		return nil, false
	}
	resolved.Fragment = ""
	// A bare host and its "/" form are the same page for identity purposes.
	if resolved.Path == "" {
		resolved.Path = "/"
	}
	return resolved, true
}
