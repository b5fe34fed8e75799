// Package fetcher retrieves pages and collects their anchor hrefs.
package fetcher

import (
	"context"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html"

	"github.com/sahalashfaq/linkaudit/internal/models"
)

// DefaultTimeout bounds a full page fetch.
const DefaultTimeout = 12 * time.Second

// Fetcher retrieves pages over HTTP and extracts candidate hyperlinks.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// New creates a Fetcher. A non-positive timeout falls back to DefaultTimeout.
func New(timeout time.Duration, userAgent string) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	transport := &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 50,
		IdleConnTimeout:     30 * time.Second,
	}
	return &Fetcher{
		client:    &http.Client{Transport: transport, Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch retrieves pageURL. A transport failure yields Err set and nothing
// else; a response with status >= 400 yields the status and no hrefs;
// otherwise the body is parsed for anchor elements and each raw href is
// collected in document order, duplicates preserved. Filtering and
// deduplication happen downstream.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) models.PageResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return models.PageResult{Err: err}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return models.PageResult{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return models.PageResult{StatusCode: resp.StatusCode}
	}
	hrefs, err := extractHrefs(resp.Body)
	if err != nil {
		// Loaded but not parseable as HTML: nothing to report.
		return models.PageResult{StatusCode: resp.StatusCode}
	}
	return models.PageResult{StatusCode: resp.StatusCode, Hrefs: hrefs}
}

func extractHrefs(body io.Reader) ([]string, error) {
	doc, err := html.Parse(body)
	if err != nil {
		return nil, err
	}
	var hrefs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" {
					hrefs = append(hrefs, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return hrefs, nil
}
