package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/websearch"
)

// DefaultMaxSitemaps bounds how many sitemap documents one discovery reads,
// counting nested sitemap indexes.
const DefaultMaxSitemaps = 50

// Ensure SitemapService implements websearch.SitemapService.
var _ websearch.SitemapService = (*SitemapService)(nil)

// SitemapService discovers page addresses from a site's sitemaps so they can
// be used as additional crawl seeds.
type SitemapService struct {
	client *http.Client

	// UserAgent is sent with every request when set.
	UserAgent string

	// MaxSitemaps bounds the number of sitemap documents read.
	// Defaults to DefaultMaxSitemaps.
	MaxSitemaps int
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{
		client:      client,
		UserAgent:   DefaultUserAgent,
		MaxSitemaps: DefaultMaxSitemaps,
	}
}

// DiscoverURLs returns the page addresses listed in the sitemaps of baseURL's
// site, in sitemap order without duplicates. Sitemaps are located through
// robots.txt Sitemap: directives, falling back to /sitemap.xml. Returns an
// empty slice (not nil) if the site has no sitemap.
//
// When baseURL has a non-root path (e.g., https://example.com/docs/),
// only addresses under that path are returned.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, websearch.Errorf(websearch.EINVALID, "invalid base URL %q", baseURL)
	}

	prefix := base.Path
	if prefix == "/" {
		prefix = ""
	}
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	sitemapURLs, err := s.locateSitemaps(ctx, root)
	if err != nil {
		return nil, err
	}

	w := &sitemapWalk{
		svc:      s,
		sitemaps: make(map[string]bool),
		pages:    make(map[string]bool),
		urls:     []string{},
	}
	for _, sitemapURL := range sitemapURLs {
		if err := w.visit(ctx, sitemapURL); err != nil {
			return nil, err
		}
	}

	if prefix == "" {
		return w.urls, nil
	}
	filtered := []string{}
	for _, u := range w.urls {
		if matchesPathPrefix(u, prefix) {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}

// sitemapWalk collects page addresses across nested sitemaps.
type sitemapWalk struct {
	svc      *SitemapService
	sitemaps map[string]bool
	pages    map[string]bool
	urls     []string
}

// visit reads one sitemap document, descending into sitemap indexes.
func (w *sitemapWalk) visit(ctx context.Context, sitemapURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.sitemaps[sitemapURL] {
		return nil
	}
	limit := w.svc.MaxSitemaps
	if limit <= 0 {
		limit = DefaultMaxSitemaps
	}
	if len(w.sitemaps) >= limit {
		return nil
	}
	w.sitemaps[sitemapURL] = true

	body, err := w.svc.get(ctx, sitemapURL)
	if err != nil {
		return err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return fmt.Errorf("parsing sitemap %s: %w", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("empty sitemap %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		for _, loc := range locs(root, "sitemap") {
			if err := w.visit(ctx, loc); err != nil {
				return err
			}
		}
		return nil
	}

	for _, loc := range locs(root, "url") {
		if !w.pages[loc] {
			w.pages[loc] = true
			w.urls = append(w.urls, loc)
		}
	}
	return nil
}

// locs returns the non-empty <loc> values of root's children named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// matchesPathPrefix checks if a URL's path starts with the given prefix,
// respecting path boundaries: /docs matches /docs/ and /docs/intro but not
// /documentation.
func matchesPathPrefix(rawURL, prefix string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(parsed.Path, prefix) || parsed.Path+"/" == prefix
}

// locateSitemaps returns the sitemaps declared in robots.txt, or
// /sitemap.xml if it exists.
func (s *SitemapService) locateSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"})
	if sitemaps, err := s.robotsSitemaps(ctx, robotsURL.String()); err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	exists, err := s.exists(ctx, fallback)
	if err != nil {
		// Only cancellation is fatal; anything else means no sitemap.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if exists {
		return []string{fallback}, nil
	}
	return nil, nil
}

// robotsSitemaps extracts Sitemap: directives from robots.txt.
func (s *SitemapService) robotsSitemaps(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	const directive = "sitemap:"
	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) > len(directive) && strings.EqualFold(line[:len(directive)], directive) {
			if v := strings.TrimSpace(line[len(directive):]); v != "" {
				sitemaps = append(sitemaps, v)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return sitemaps, nil
}

func (s *SitemapService) newRequest(ctx context.Context, method, target string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if s.UserAgent != "" {
		req.Header.Set("User-Agent", s.UserAgent)
	}
	return req, nil
}

// get fetches target and returns the body of a 200 response.
func (s *SitemapService) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := s.newRequest(ctx, http.MethodGet, target)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, target)
	}
	return resp.Body, nil
}

// exists reports whether a HEAD request for target returns 200 OK.
func (s *SitemapService) exists(ctx context.Context, target string) (bool, error) {
	req, err := s.newRequest(ctx, http.MethodHead, target)
	if err != nil {
		return false, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}
