package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fwojciec/websearch"
	"github.com/fwojciec/websearch/constraint"
	"github.com/fwojciec/websearch/crawl"
	"github.com/fwojciec/websearch/fs"
	"github.com/fwojciec/websearch/goquery"
	"github.com/fwojciec/websearch/htmltomarkdown"
	wshttp "github.com/fwojciec/websearch/http"
	"github.com/fwojciec/websearch/readability"
	wsslog "github.com/fwojciec/websearch/slog"
	"github.com/fwojciec/websearch/sqlite"
	"github.com/fwojciec/websearch/trafilatura"
	"github.com/fwojciec/websearch/whatwg"
	"golang.org/x/sync/errgroup"
)

// urlDisplayWidth is the width URLs are truncated to in progress output.
const urlDisplayWidth = 80

// sitemapConcurrency bounds how many seeds have their sitemaps fetched at once.
const sitemapConcurrency = 4

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	logger := deps.logger()

	order, err := websearch.ParseOrder(c.Order)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", websearch.ErrorMessage(err))
		return err
	}

	constraints, err := c.constraints()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", websearch.ErrorMessage(err))
		return err
	}

	fetcher := deps.Fetcher
	if fetcher == nil {
		opts := []wshttp.Option{wshttp.WithTimeout(c.Timeout)}
		if c.UserAgent != "" {
			opts = append(opts, wshttp.WithUserAgent(c.UserAgent))
		}
		httpFetcher := wshttp.NewFetcher(opts...)
		defer httpFetcher.Close()
		fetcher = httpFetcher
	}

	normalizer := whatwg.NewNormalizer()
	normalizer.StripQuery = c.StripQuery

	links := goquery.NewLinkExtractor()
	links.Resolver = normalizer

	var store *fs.FileStore
	var index websearch.Index
	if c.Out != "" {
		store = fs.NewFileStore(filepath.Dir(c.Out), filepath.Base(c.Out))
		index = store
	} else {
		sqliteIndex := sqlite.NewIndex(deps.DB)
		sqliteIndex.BatchSize = c.Batch
		index = sqliteIndex
	}

	seeds, err := c.seeds(deps, logger)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", websearch.ErrorMessage(err))
		return err
	}

	crawler, err := crawl.New(seeds,
		crawl.WithFetcher(wsslog.NewLoggingFetcher(fetcher, logger)),
		crawl.WithLinkExtractor(links),
		crawl.WithExtractor(c.extractor()),
		crawl.WithIndex(wsslog.NewLoggingIndex(index, logger)),
		crawl.WithNormalizer(normalizer),
		crawl.WithRateLimiter(crawl.NewDomainLimiter(c.Rate, 1)),
		crawl.WithConstraints(constraints),
		crawl.WithLogger(logger),
		crawl.WithProgress(func(event crawl.ProgressEvent) {
			if event.Type == crawl.ProgressIndexed {
				fmt.Fprintf(deps.Stdout, "  indexed %s\n", crawl.DisplayURL(event.URL, urlDisplayWidth))
			}
		}),
		crawl.WithOrder(order),
		crawl.WithMaxIterations(c.MaxIterations),
		crawl.WithFetchTimeout(c.Timeout),
		crawl.WithMaxFrontierSize(c.MaxFrontier),
	)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", websearch.ErrorMessage(err))
		return err
	}

	result, err := crawler.Run(deps.Ctx)
	if err != nil {
		if store != nil {
			_ = store.Abort()
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", websearch.ErrorMessage(err))
		return err
	}

	printResult(deps, result)
	if store != nil {
		fmt.Fprintf(deps.Stdout, "Wrote documents to %s\n", store.Dir())
	}
	return nil
}

// constraints builds the constraint chains from the command's flags.
func (c *CrawlCmd) constraints() (*constraint.Set, error) {
	set := constraint.Defaults()

	exts := c.Extensions
	if len(exts) == 0 {
		exts = constraint.DefaultExtensions()
	}
	set.Fetch = []websearch.Constraint{constraint.NewExtension(exts...)}

	if c.SameDomain {
		set.Fetch = append(set.Fetch, constraint.NewSameDomain())
	}
	if c.SameHost {
		set.Fetch = append(set.Fetch, constraint.NewSameHost())
	}
	if len(c.Include) > 0 || len(c.Exclude) > 0 {
		pattern, err := constraint.NewPattern(c.Include, c.Exclude)
		if err != nil {
			return nil, err
		}
		set.Fetch = append(set.Fetch, pattern)
	}

	set.Extraction = nil
	if c.Recency > 0 {
		set.Extraction = []websearch.Constraint{constraint.NewNotVisitedRecently(c.Recency)}
	}
	return set, nil
}

// seeds returns the seed addresses, extended with sitemap entries when
// sitemap seeding is enabled.
func (c *CrawlCmd) seeds(deps *Dependencies, logger *slog.Logger) ([]string, error) {
	if !c.Sitemap {
		return c.Seeds, nil
	}

	sitemaps := wshttp.NewSitemapService(nil)
	if c.UserAgent != "" {
		sitemaps.UserAgent = c.UserAgent
	}
	svc := wsslog.NewLoggingSitemapService(sitemaps, logger)

	// Each goroutine writes only its own slot so results merge in seed order.
	discovered := make([][]string, len(c.Seeds))
	g, gctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(sitemapConcurrency)
	for i, seed := range c.Seeds {
		g.Go(func() error {
			urls, err := svc.DiscoverURLs(gctx, seed)
			if err != nil {
				if gctx.Err() != nil {
					return err
				}
				logger.Warn("sitemap discovery failed", "url", seed, "err", err)
				return nil
			}
			discovered[i] = urls
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seeds := append([]string(nil), c.Seeds...)
	for _, urls := range discovered {
		seeds = append(seeds, urls...)
	}
	return seeds, nil
}

// extractor returns the information extractor selected by --extractor.
func (c *CrawlCmd) extractor() websearch.InfoExtractor {
	converter := htmltomarkdown.NewConverter()
	switch c.Extractor {
	case "readability":
		return &crawl.PageExtractor{Extractor: readability.NewExtractor(), Converter: converter}
	case "raw":
		return crawl.BodyExtractor{}
	default:
		return &crawl.PageExtractor{Extractor: trafilatura.NewExtractor(), Converter: converter}
	}
}

func printResult(deps *Dependencies, result *crawl.Result) {
	status := "Crawled"
	if result.Canceled {
		status = "Interrupted after crawling"
	}
	fmt.Fprintf(deps.Stdout, "%s %d addresses: %d indexed, %d rejected, %d failed\n",
		status, result.Iterations, result.Indexed, result.TotalRejected(), result.Failed)

	for _, stage := range []websearch.Stage{websearch.StageFetch, websearch.StageResponse, websearch.StageExtraction} {
		if n := result.Rejected[stage]; n > 0 {
			fmt.Fprintf(deps.Stdout, "  rejected at %s stage: %d\n", stage, n)
		}
	}
	if result.Dropped > 0 {
		fmt.Fprintf(deps.Stdout, "  dropped (frontier full): %d\n", result.Dropped)
	}
	if result.Remaining > 0 {
		fmt.Fprintf(deps.Stdout, "  still queued: %d\n", result.Remaining)
	}
}
