// Package crawl provides the traversal engine: the frontier, the staged
// constraint pipeline, and the loop that fetches pages, discovers links
// and forwards accepted pages to the search index.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/websearch"
	"github.com/fwojciec/websearch/bloom"
	"github.com/fwojciec/websearch/constraint"
)

// Run configuration defaults.
const (
	DefaultMaxIterations = 1000
	DefaultFetchTimeout  = 5 * time.Second
	DefaultOrder         = websearch.DepthFirst
)

// discoveredFalsePositiveRate is the acceptable error of the discovered-address estimate.
const discoveredFalsePositiveRate = 0.01

// Crawler drives a crawl from a set of seed addresses.
// Construct it with New; a Crawler may be Run more than once, each run
// starting from a fresh frontier and visited set.
type Crawler struct {
	seeds      []string
	fetcher    websearch.Fetcher
	links      websearch.LinkExtractor
	extractor  websearch.InfoExtractor
	index      websearch.Index
	normalizer websearch.Normalizer
	limiter    websearch.DomainLimiter
	pipeline   *Pipeline
	logger     *slog.Logger
	progress   ProgressFunc

	order           websearch.Order
	maxIterations   int
	fetchTimeout    time.Duration
	maxFrontierSize int
}

// Option configures a Crawler.
type Option func(*options)

type options struct {
	fetcher         websearch.Fetcher
	links           websearch.LinkExtractor
	extractor       websearch.InfoExtractor
	index           websearch.Index
	normalizer      websearch.Normalizer
	limiter         websearch.DomainLimiter
	constraints     *constraint.Set
	logger          *slog.Logger
	progress        ProgressFunc
	order           websearch.Order
	maxIterations   int
	fetchTimeout    time.Duration
	maxFrontierSize int
}

// WithFetcher sets the HTTP collaborator. Required.
func WithFetcher(f websearch.Fetcher) Option {
	return func(o *options) { o.fetcher = f }
}

// WithLinkExtractor sets the link extraction collaborator. Required.
func WithLinkExtractor(e websearch.LinkExtractor) Option {
	return func(o *options) { o.links = e }
}

// WithExtractor sets the information extractor.
// Defaults to BodyExtractor.
func WithExtractor(e websearch.InfoExtractor) Option {
	return func(o *options) { o.extractor = e }
}

// WithIndex sets the index accepted documents are added to.
// Defaults to a MemoryIndex.
func WithIndex(idx websearch.Index) Option {
	return func(o *options) { o.index = idx }
}

// WithNormalizer sets the address normalization policy.
// Defaults to resolving with net/url and dropping fragments.
func WithNormalizer(n websearch.Normalizer) Option {
	return func(o *options) { o.normalizer = n }
}

// WithRateLimiter sets a per-domain limiter consulted before every fetch.
func WithRateLimiter(l websearch.DomainLimiter) Option {
	return func(o *options) { o.limiter = l }
}

// WithConstraints sets the three constraint chains.
// Defaults to constraint.Defaults.
func WithConstraints(set *constraint.Set) Option {
	return func(o *options) { o.constraints = set }
}

// WithLogger sets the logger. Defaults to discarding all output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithProgress sets a callback receiving events as the crawl proceeds.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) { o.progress = fn }
}

// WithOrder sets the traversal order. Defaults to depth-first.
func WithOrder(order websearch.Order) Option {
	return func(o *options) { o.order = order }
}

// WithMaxIterations sets the iteration budget. Zero performs no fetches.
func WithMaxIterations(n int) Option {
	return func(o *options) { o.maxIterations = n }
}

// WithFetchTimeout sets the timeout applied to each fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(o *options) { o.fetchTimeout = d }
}

// WithMaxFrontierSize caps the frontier.
func WithMaxFrontierSize(n int) Option {
	return func(o *options) { o.maxFrontierSize = n }
}

// New creates a Crawler for the given seeds.
//
// A missing index or information extractor falls back to MemoryIndex or
// BodyExtractor and logs a configuration warning. A missing fetcher or link
// extractor, an invalid seed, an invalid run setting, or a constraint that
// cannot serve its stage is an EINVALID error.
func New(seeds []string, opts ...Option) (*Crawler, error) {
	o := options{
		order:           DefaultOrder,
		maxIterations:   DefaultMaxIterations,
		fetchTimeout:    DefaultFetchTimeout,
		maxFrontierSize: DefaultMaxFrontierSize,
	}
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if o.fetcher == nil {
		return nil, websearch.Errorf(websearch.EINVALID, "fetcher required")
	}
	if o.links == nil {
		return nil, websearch.Errorf(websearch.EINVALID, "link extractor required")
	}
	if o.order != websearch.BreadthFirst && o.order != websearch.DepthFirst {
		return nil, websearch.Errorf(websearch.EINVALID, "unknown traversal order %q", string(o.order))
	}
	if o.maxIterations < 0 {
		return nil, websearch.Errorf(websearch.EINVALID, "max iterations must not be negative")
	}
	if o.fetchTimeout <= 0 {
		return nil, websearch.Errorf(websearch.EINVALID, "fetch timeout must be positive")
	}
	if o.maxFrontierSize <= 0 {
		return nil, websearch.Errorf(websearch.EINVALID, "max frontier size must be positive")
	}

	if o.index == nil {
		logger.Warn("no index configured, using in-memory index")
		o.index = NewMemoryIndex()
	}
	if o.extractor == nil {
		logger.Warn("no information extractor configured, using raw body extractor")
		o.extractor = BodyExtractor{}
	}
	if o.normalizer == nil {
		o.normalizer = stdNormalizer{}
	}

	normalized := make([]string, 0, len(seeds))
	for _, seed := range seeds {
		u, err := o.normalizer.Normalize(seed)
		if err != nil {
			return nil, websearch.Errorf(websearch.EINVALID, "invalid seed %q: %v", seed, err)
		}
		normalized = append(normalized, u)
	}

	lookup, _ := o.index.(websearch.VisitLookup)
	pipeline, err := NewPipeline(o.constraints, normalized, lookup)
	if err != nil {
		return nil, err
	}

	return &Crawler{
		seeds:           normalized,
		fetcher:         o.fetcher,
		links:           o.links,
		extractor:       o.extractor,
		index:           o.index,
		normalizer:      o.normalizer,
		limiter:         o.limiter,
		pipeline:        pipeline,
		logger:          logger,
		progress:        o.progress,
		order:           o.order,
		maxIterations:   o.maxIterations,
		fetchTimeout:    o.fetchTimeout,
		maxFrontierSize: o.maxFrontierSize,
	}, nil
}

// Seeds returns the normalized seed addresses.
func (c *Crawler) Seeds() []string {
	return append([]string(nil), c.seeds...)
}

// Index returns the index documents are added to.
func (c *Crawler) Index() websearch.Index {
	return c.index
}

// run holds the state of one Run call.
type run struct {
	frontier   *Frontier
	visited    *VisitedSet
	attempted  *VisitedSet
	discovered *bloom.Filter
	result     *Result
}

// Run crawls until the frontier is empty, the iteration budget is spent, or
// ctx is canceled. Per-address failures never abort the run. The index is
// committed exactly once when the run ends; a commit failure is returned
// along with the result.
func (c *Crawler) Run(ctx context.Context) (*Result, error) {
	r := &run{
		frontier:   NewFrontier(c.order, c.maxFrontierSize),
		visited:    NewVisitedSet(),
		attempted:  NewVisitedSet(),
		discovered: bloom.NewFilter(uint(c.maxFrontierSize), discoveredFalsePositiveRate),
		result:     &Result{Rejected: make(map[websearch.Stage]int)},
	}
	for _, seed := range c.seeds {
		c.enqueue(r, seed)
	}

	c.logger.Info("crawl started",
		"seeds", len(c.seeds),
		"order", c.order.String(),
		"max_iterations", c.maxIterations,
	)
	c.emit(ProgressEvent{Type: ProgressStarted})
	begin := time.Now()

	for {
		r.frontier.Truncate(c.maxFrontierSize)
		if r.frontier.IsEmpty() || r.result.Iterations >= c.maxIterations {
			break
		}
		if ctx.Err() != nil {
			r.result.Canceled = true
			break
		}

		r.result.Iterations++
		addr, _ := r.frontier.Pop()
		c.logger.Debug("iteration", "n", r.result.Iterations, "url", addr)
		c.visit(ctx, r, addr)
	}

	r.result.Visited = r.visited.Len()
	r.result.Discovered = r.discovered.Distinct()
	r.result.Remaining = r.frontier.Len()

	var err error
	if cerr := c.index.Commit(context.WithoutCancel(ctx)); cerr != nil {
		err = fmt.Errorf("commit index: %w", cerr)
	}

	c.logger.Info("crawl finished",
		"iterations", r.result.Iterations,
		"visited", r.result.Visited,
		"indexed", r.result.Indexed,
		"failed", r.result.Failed,
		"remaining", r.result.Remaining,
		"canceled", r.result.Canceled,
		"duration", time.Since(begin),
		"err", err,
	)
	c.emit(ProgressEvent{Type: ProgressFinished, Iteration: r.result.Iterations, Error: err})

	return r.result, err
}

// visit processes one popped address through the pipeline.
func (c *Crawler) visit(ctx context.Context, r *run, addr string) {
	if r.visited.Has(addr) || r.attempted.Has(addr) {
		r.result.Skipped++
		c.logger.Debug("already visited", "url", addr)
		return
	}

	if ok, by := c.pipeline.AllowFetch(ctx, addr); !ok {
		c.reject(r, addr, websearch.StageFetch, by)
		return
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, hostOf(addr)); err != nil {
			c.fail(r, addr, fmt.Errorf("rate limit: %w", err))
			return
		}
	}

	r.attempted.Add(addr)
	fetchCtx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	res, err := c.fetcher.Fetch(fetchCtx, addr)
	cancel()
	if err != nil {
		c.fail(r, addr, err)
		return
	}
	r.result.Fetched++
	c.emit(ProgressEvent{Type: ProgressFetched, Iteration: r.result.Iterations, URL: addr})

	if ok, by := c.pipeline.AllowResponse(ctx, res); !ok {
		c.reject(r, addr, websearch.StageResponse, by)
		return
	}

	links, err := c.links.ExtractLinks(res.Text(), addr)
	if err != nil {
		c.logger.Warn("link extraction failed", "url", addr, "err", err)
	}
	for _, link := range links {
		if u, err := c.normalizer.Normalize(link); err != nil {
			c.logger.Debug("discarding link", "url", link, "err", err)
		} else {
			c.enqueue(r, u)
		}
	}
	r.visited.Add(addr)

	if ok, by := c.pipeline.AllowExtraction(ctx, addr); !ok {
		c.reject(r, addr, websearch.StageExtraction, by)
		return
	}

	doc, err := c.extractor.Extract(addr, res)
	if err != nil {
		c.fail(r, addr, fmt.Errorf("extract: %w", err))
		return
	}
	if err := c.index.Add(ctx, doc); err != nil {
		c.fail(r, addr, fmt.Errorf("index: %w", err))
		return
	}
	r.result.Indexed++
	c.emit(ProgressEvent{Type: ProgressIndexed, Iteration: r.result.Iterations, URL: addr})
}

func (c *Crawler) enqueue(r *run, addr string) {
	r.discovered.Observe(addr)
	if !r.frontier.Push(addr) {
		r.result.Dropped++
	}
}

func (c *Crawler) reject(r *run, addr string, stage websearch.Stage, by string) {
	r.result.Rejected[stage]++
	c.logger.Debug("rejected", "url", addr, "stage", string(stage), "constraint", by)
	c.emit(ProgressEvent{
		Type:       ProgressRejected,
		Iteration:  r.result.Iterations,
		URL:        addr,
		Stage:      stage,
		Constraint: by,
	})
}

func (c *Crawler) fail(r *run, addr string, err error) {
	r.result.Failed++
	c.logger.Warn("skipping address", "url", addr, "err", err)
	c.emit(ProgressEvent{Type: ProgressFailed, Iteration: r.result.Iterations, URL: addr, Error: err})
}

func (c *Crawler) emit(event ProgressEvent) {
	if c.progress != nil {
		c.progress(event)
	}
}

// hostOf returns the host of an address for rate limiting.
func hostOf(addr string) string {
	u, err := url.Parse(addr)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// stdNormalizer is the fallback normalization policy: the address must be
// absolute and its fragment is dropped.
type stdNormalizer struct{}

func (stdNormalizer) Normalize(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if !u.IsAbs() || u.Host == "" {
		return "", websearch.Errorf(websearch.EINVALID, "address %q is not absolute", raw)
	}
	u.Fragment = ""
	u.RawFragment = ""
	return u.String(), nil
}

func (n stdNormalizer) Resolve(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return n.Normalize(b.ResolveReference(r).String())
}
