package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"
)

// Sentinel errors for fetch operations.
var (
	// ErrFetch matches every *FetchError via errors.Is.
	ErrFetch = errors.New("fetch failed")

	// ErrUnexpectedStatus indicates the server answered with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrInvalidUTF8 indicates a text resource is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("response is not valid UTF-8")
)

// FetchError reports a failed retrieval of a single URL.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports ErrFetch as a match so callers can test the kind without a type assertion.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// Fetcher retrieves the raw bytes behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher implements Fetcher with a plain GET request.
// No custom headers, no retries, no timeout beyond the client's own.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher. A nil client means http.DefaultClient.
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{client: client}
}

// Fetch performs a GET and returns the response body.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("reading body: %w", err)}
	}
	return data, nil
}

// FetchText fetches url and decodes the body as UTF-8 text.
func FetchText(ctx context.Context, f Fetcher, url string) (string, error) {
	data, err := f.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", &FetchError{URL: url, Err: ErrInvalidUTF8}
	}
	return string(data), nil
}

// Compile-time interface check.
var _ Fetcher = (*HTTPFetcher)(nil)
