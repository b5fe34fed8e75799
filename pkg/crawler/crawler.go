// Package crawler drives the breadth-first page traversal. The crawler owns
// the frontier and visited set from a single control loop, fetches one page
// at a time, fans that page's status checks out to a bounded worker pool and
// hands every outcome to the aggregator.
package crawler

import (
	"container/list"
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/time/rate"

	"github.com/sahalashfaq/linkaudit/internal/models"
	"github.com/sahalashfaq/linkaudit/pkg/checker"
	"github.com/sahalashfaq/linkaudit/pkg/fetcher"
	"github.com/sahalashfaq/linkaudit/pkg/report"
	"github.com/sahalashfaq/linkaudit/pkg/urlutil"
)

const defaultUserAgent = "linkaudit/1.0"

// Options configures a single crawl.
type Options struct {
	SeedURL         string
	MaxPages        int  // pages dequeued at most
	Workers         int  // status checks in flight at once
	IncludeExternal bool // check external links (they are never crawled)
	FollowRedirects bool // fold 3xx into OK instead of reporting Redirect

	Delay        time.Duration // politeness delay between page visits, 0 disables
	PageTimeout  time.Duration
	CheckTimeout time.Duration
	UserAgent    string

	Progress Progress    // optional event sink
	Logger   *log.Logger // optional, defaults to stdout
}

// Crawler runs one crawl. Not reusable across runs: frontier and visited
// state belong to a single Run.
type Crawler struct {
	opts    Options
	scope   *urlutil.Scope
	fetcher *fetcher.Fetcher
	checker *checker.Checker

	frontier *list.List
	queued   mapset.Set[string]
	visited  mapset.Set[string]

	sem     chan struct{}
	limiter *rate.Limiter
	logger  *log.Logger
}

// New validates opts and prepares a crawl. An unusable seed URL or
// non-positive limit is the only fatal input error; once Run starts, every
// per-page and per-link failure degrades to a recorded row.
func New(opts Options) (*Crawler, error) {
	scope, err := urlutil.NewScope(opts.SeedURL)
	if err != nil {
		return nil, err
	}
	if opts.MaxPages <= 0 {
		return nil, fmt.Errorf("page budget must be positive, got %d", opts.MaxPages)
	}
	if opts.Workers <= 0 {
		return nil, fmt.Errorf("concurrency limit must be positive, got %d", opts.Workers)
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "", 0)
	}
	var limiter *rate.Limiter
	if opts.Delay > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.Delay), 1)
	}

	return &Crawler{
		opts:     opts,
		scope:    scope,
		fetcher:  fetcher.New(opts.PageTimeout, opts.UserAgent),
		checker:  checker.New(opts.CheckTimeout, opts.UserAgent, opts.FollowRedirects),
		frontier: list.New(),
		queued:   mapset.NewSet[string](),
		visited:  mapset.NewSet[string](),
		sem:      make(chan struct{}, opts.Workers),
		limiter:  limiter,
		logger:   logger,
	}, nil
}

// Run executes the crawl until the frontier empties, the page budget is
// reached or ctx is cancelled, then finalizes the report. A report is always
// produced, cancellation included: in-flight checks for the current page are
// allowed to finish, no further pages are dequeued.
func (c *Crawler) Run(ctx context.Context) *report.Report {
	agg := report.NewAggregator()
	start := time.Now()

	seed := c.scope.Seed().String()
	c.frontier.PushBack(seed)
	c.queued.Add(seed)

	pages := 0
	for c.frontier.Len() > 0 && pages < c.opts.MaxPages {
		if ctx.Err() != nil {
			break
		}

		front := c.frontier.Front()
		pageURL := front.Value.(string)
		c.frontier.Remove(front)
		c.queued.Remove(pageURL)

		// Defensive: the queued set should already rule this out.
		if c.visited.Contains(pageURL) {
			continue
		}
		c.visited.Add(pageURL)
		pages++

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				break
			}
		}

		if c.opts.Progress != nil {
			c.opts.Progress.PageVisited(pages, c.opts.MaxPages, pageURL)
		}
		c.visitPage(ctx, pageURL, agg)
	}

	return agg.Finalize(pages, time.Since(start))
}

// visitPage fetches one page, records a self row on failure, and otherwise
// resolves every href, dispatches its status check and enqueues qualifying
// internal links. Returns only after all of the page's checks finished, so
// the frontier is complete before the next dequeue.
func (c *Crawler) visitPage(ctx context.Context, pageURL string, agg *report.Aggregator) {
	res := c.fetcher.Fetch(ctx, pageURL)
	switch {
	case res.TransportFailed():
		c.logger.Printf("page %s unreachable: %v", pageURL, res.Err)
		c.record(agg, models.LinkRecord{
			Page: pageURL, Link: pageURL,
			Type: models.LinkSelf, Outcome: models.OutcomeError,
		})
		return
	case !res.Loaded():
		c.record(agg, models.LinkRecord{
			Page: pageURL, Link: pageURL,
			Type: models.LinkSelf, StatusCode: res.StatusCode, Outcome: models.OutcomeBroken,
		})
		return
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return
	}

	var wg sync.WaitGroup
	for _, href := range res.Hrefs {
		target, ok := urlutil.Resolve(base, href)
		if !ok {
			continue
		}
		kind := c.scope.Classify(target)
		if kind == models.LinkExternal && !c.opts.IncludeExternal {
			continue
		}
		targetStr := target.String()

		// Only internal pages ever join the frontier, and only once.
		if kind == models.LinkInternal && !c.visited.Contains(targetStr) && !c.queued.Contains(targetStr) {
			c.frontier.PushBack(targetStr)
			c.queued.Add(targetStr)
		}

		wg.Add(1)
		c.sem <- struct{}{}
		go func(target string, kind models.LinkType) {
			defer func() {
				<-c.sem
				wg.Done()
			}()
			res := c.checker.Check(ctx, target)
			c.record(agg, models.LinkRecord{
				Page: pageURL, Link: target,
				Type: kind, StatusCode: res.StatusCode, Outcome: res.Outcome,
			})
		}(targetStr, kind)
	}
	wg.Wait()
}

func (c *Crawler) record(agg *report.Aggregator, rec models.LinkRecord) {
	agg.Append(rec)
	if c.opts.Progress != nil {
		c.opts.Progress.LinkChecked(rec)
	}
}
