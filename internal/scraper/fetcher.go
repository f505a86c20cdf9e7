package scraper

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// UserAgent is the desktop browser identity sent with every request
const UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// Fetcher retrieves the raw markup of a page
type Fetcher interface {
	Fetch(url string) (string, error)
}

// FetchOptions controls the HTTP fetcher
type FetchOptions struct {
	UserAgent string
	// Timeout of zero leaves the transport default in place
	Timeout time.Duration
}

// HTTPFetcher issues one blocking GET per page. It never retries.
type HTTPFetcher struct {
	client *resty.Client
}

// DefaultHeaders returns the fixed header set sent with every request
func DefaultHeaders(userAgent string) map[string]string {
	if userAgent == "" {
		userAgent = UserAgent
	}
	return map[string]string{
		"User-Agent": userAgent,
	}
}

// NewHTTPFetcher creates a fetcher with the fixed header set
func NewHTTPFetcher(opts FetchOptions) *HTTPFetcher {
	client := resty.New()
	client.SetCookieJar(nil)
	client.SetHeaders(DefaultHeaders(opts.UserAgent))
	client.SetRetryCount(0)
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	return &HTTPFetcher{client: client}
}

// Fetch returns the response body of a GET against url. Transport failures and
// non-2xx statuses are returned as *FetchError.
func (f *HTTPFetcher) Fetch(url string) (string, error) {
	resp, err := f.client.R().Get(url)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}

	if !resp.IsSuccess() {
		return "", &FetchError{URL: url, StatusCode: resp.StatusCode()}
	}

	return resp.String(), nil
}
