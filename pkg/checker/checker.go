// Package checker determines link health with a lightweight HEAD probe and a
// single GET fallback, mapping the observed status to an outcome.
package checker

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/sahalashfaq/linkaudit/internal/models"
)

// DefaultTimeout bounds a single check attempt. Shorter than the page-fetch
// timeout: a probe carries no body.
const DefaultTimeout = 8 * time.Second

// Result pairs the observed status with its outcome classification.
type Result struct {
	StatusCode int // 0 when both attempts failed
	Outcome    models.Outcome
}

// Checker probes link health. Safe for concurrent use: in-flight checks of
// the same URL are coalesced and finished results are cached for the life of
// the checker, so a link shared by many pages costs one request.
type Checker struct {
	client          *http.Client
	userAgent       string
	followRedirects bool

	flight singleflight.Group

	mu    sync.Mutex
	cache map[string]Result
}

// New creates a Checker. When followRedirects is false the client stops at
// the first response so 3xx codes surface as-is.
func New(timeout time.Duration, userAgent string, followRedirects bool) *Checker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := &http.Client{Timeout: timeout}
	if !followRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return &Checker{
		client:          client,
		userAgent:       userAgent,
		followRedirects: followRedirects,
		cache:           make(map[string]Result),
	}
}

// Check probes target. Exactly two attempts are made: the HEAD probe, then a
// GET fallback when the probe fails or the server rejects the method. All
// transport failures are absorbed into OutcomeError; Check never fails.
func (c *Checker) Check(ctx context.Context, target string) Result {
	v, _, _ := c.flight.Do(target, func() (interface{}, error) {
		c.mu.Lock()
		cached, ok := c.cache[target]
		c.mu.Unlock()
		if ok {
			return cached, nil
		}
		res := c.check(ctx, target)
		c.mu.Lock()
		c.cache[target] = res
		c.mu.Unlock()
		return res, nil
	})
	return v.(Result)
}

func (c *Checker) check(ctx context.Context, target string) Result {
	code, ok := c.attempt(ctx, http.MethodHead, target)
	if !ok || probeUnsupported(code) {
		code, ok = c.attempt(ctx, http.MethodGet, target)
	}
	if !ok {
		return Result{StatusCode: 0, Outcome: models.OutcomeError}
	}
	return Result{StatusCode: code, Outcome: c.classify(code)}
}

func (c *Checker) attempt(ctx context.Context, method, target string) (int, bool) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return 0, false
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, false
	}
	// The body is never needed, only the status line.
	resp.Body.Close()
	return resp.StatusCode, true
}

func probeUnsupported(code int) bool {
	return code == http.StatusMethodNotAllowed || code == http.StatusNotImplemented
}

func (c *Checker) classify(code int) models.Outcome {
	switch {
	case code >= 400:
		return models.OutcomeBroken
	case isRedirect(code):
		if c.followRedirects {
			return models.OutcomeOK
		}
		return models.OutcomeRedirect
	default:
		return models.OutcomeOK
	}
}

func isRedirect(code int) bool {
	switch code {
	case http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect:
		return true
	}
	return false
}
