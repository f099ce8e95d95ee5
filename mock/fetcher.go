package mock

import (
	"context"

	"github.com/fwojciec/websearch"
)

var _ websearch.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of websearch.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*websearch.FetchResult, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*websearch.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

var _ websearch.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of websearch.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
