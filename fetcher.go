package websearch

import (
	"context"
	"mime"
	"net/http"
	"strings"
)

// FetchResult is the complete response to a single GET request.
// A fetch either yields a FetchResult or an error, never a partial result.
type FetchResult struct {
	// URL is the address that was requested.
	URL string

	// FinalURL is the address the response was served from after redirects.
	FinalURL string

	StatusCode  int
	ContentType string
	Header      http.Header
	Body        []byte
}

// MediaType returns the content type without parameters, lowercased.
// Returns an empty string when the content type is missing or malformed.
func (r *FetchResult) MediaType() string {
	if r == nil || r.ContentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(r.ContentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.SplitN(r.ContentType, ";", 2)[0]))
	}
	return mt
}

// Text returns the response body as a string.
func (r *FetchResult) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Body)
}

// Fetcher retrieves pages over the network.
type Fetcher interface {
	// Fetch issues a GET for the URL, following redirects transparently.
	// Non-2xx responses are not errors; only transport failures are.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}
