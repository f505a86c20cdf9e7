package scraper

import "fmt"

// FetchError reports a page that could not be retrieved, either because the
// request failed (Err set) or because the server answered with a non-2xx
// status (StatusCode set).
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetching %s: unexpected status code: %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StructureError reports a table or row that does not have the expected shape
type StructureError struct {
	Page   string
	Detail string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s page: unexpected structure: %s", e.Page, e.Detail)
}

// ValueError reports a numeric cell holding neither a number nor the sentinel
type ValueError struct {
	Cell string
	Text string
	Err  error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("parsing %s %q: %v", e.Cell, e.Text, e.Err)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}
