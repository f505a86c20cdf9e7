package aggregator

import "github.com/pfrederiksen/edison-soccer/internal/team"

// Section names one sub-scrape of a run
type Section string

const (
	SectionCurrentStats  Section = "current_stats"
	SectionFixtures      Section = "fixtures"
	SectionRoster        Section = "roster"
	SectionPreviousStats Section = "previous_stats"
)

// Status is the outcome of one sub-scrape
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// Counts holds the record counts of a successful sub-scrape, keyed by kind
type Counts map[string]int

// Result is the outcome of one sub-scrape. A successful scrape that found no
// records is distinct from a failed one.
type Result struct {
	Section Section `json:"section"`
	Season  string  `json:"season"`
	Status  Status  `json:"status"`
	Counts  Counts  `json:"counts,omitempty"`
	Error   string  `json:"error,omitempty"`

	err error
}

// OK reports whether the sub-scrape succeeded
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// Err returns the failure cause, or nil on success
func (r Result) Err() error {
	return r.err
}

// Empty reports whether the sub-scrape succeeded without finding any records
func (r Result) Empty() bool {
	if !r.OK() {
		return false
	}
	for _, n := range r.Counts {
		if n > 0 {
			return false
		}
	}
	return true
}

// Report is the result of one aggregation run
type Report struct {
	Bundle   *team.Bundle `json:"bundle"`
	Sections []Result     `json:"sections"`
}

// Section returns the result recorded for a section
func (r *Report) Section(s Section) (Result, bool) {
	for _, res := range r.Sections {
		if res.Section == s {
			return res, true
		}
	}
	return Result{}, false
}

// Failed returns the results of the sub-scrapes that failed, in run order
func (r *Report) Failed() []Result {
	failed := make([]Result, 0)
	for _, res := range r.Sections {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}
