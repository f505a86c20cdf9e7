// Package aggregator assembles a team.Bundle from the four sub-scrapes of one
// run: current season stats, fixtures, roster and previous season stats.
//
// Sub-scrapes run one after another in that order. A failing sub-scrape never
// stops the others; its section of the bundle is left absent (stats) or empty
// (fixtures, roster) and the failure is reported in the run's Report.
package aggregator

import (
	"fmt"
	"time"

	"github.com/pfrederiksen/edison-soccer/internal/logger"
	"github.com/pfrederiksen/edison-soccer/internal/team"
)

// Default season labels
const (
	DefaultCurrentSeason  = "2025-2026"
	DefaultPreviousSeason = "2024-2025"
)

// Source scrapes the individual page shapes. *scraper.Scraper implements it.
type Source interface {
	ScrapeStats(season string) (*team.SeasonStats, error)
	ScrapeFixtures(season string) (*team.Fixtures, error)
	ScrapeRoster(season string) ([]team.RosterEntry, error)
	Coach() string
}

// Options configures an Aggregator
type Options struct {
	Source   Source
	Current  string
	Previous string
	Logger   *logger.Logger
	Metrics  *logger.Metrics
}

// Aggregator runs the sub-scrapes and collects their results
type Aggregator struct {
	source   Source
	current  string
	previous string
	log      *logger.Logger
	metrics  *logger.Metrics
}

// New creates an Aggregator. Empty season labels fall back to the defaults.
func New(opts Options) *Aggregator {
	a := &Aggregator{
		source:   opts.Source,
		current:  opts.Current,
		previous: opts.Previous,
		log:      opts.Logger,
		metrics:  opts.Metrics,
	}
	if a.current == "" {
		a.current = DefaultCurrentSeason
	}
	if a.previous == "" {
		a.previous = DefaultPreviousSeason
	}
	if a.log == nil {
		a.log = logger.Default()
	}
	if a.metrics == nil {
		a.metrics = logger.NewMetrics()
	}
	return a
}

// Metrics returns the metrics the aggregator records into
func (a *Aggregator) Metrics() *logger.Metrics {
	return a.metrics
}

// Run performs one full aggregation. It always returns a well-formed report.
func (a *Aggregator) Run() *Report {
	bundle := team.NewBundle(a.source.Coach())
	report := &Report{
		Bundle:   bundle,
		Sections: make([]Result, 0, 4),
	}

	report.Sections = append(report.Sections, a.scrape(SectionCurrentStats, a.current, func() (Counts, error) {
		stats, err := a.source.ScrapeStats(a.current)
		if err != nil {
			return nil, err
		}
		bundle.CurrentStats = stats
		return statsCounts(stats), nil
	}))

	report.Sections = append(report.Sections, a.scrape(SectionFixtures, a.current, func() (Counts, error) {
		fixtures, err := a.source.ScrapeFixtures(a.current)
		if err != nil {
			return nil, err
		}
		bundle.Fixtures = *fixtures
		return Counts{"games": len(fixtures.Games)}, nil
	}))

	report.Sections = append(report.Sections, a.scrape(SectionRoster, a.current, func() (Counts, error) {
		roster, err := a.source.ScrapeRoster(a.current)
		if err != nil {
			return nil, err
		}
		bundle.Roster = roster
		return Counts{"players": len(roster)}, nil
	}))

	report.Sections = append(report.Sections, a.scrape(SectionPreviousStats, a.previous, func() (Counts, error) {
		stats, err := a.source.ScrapeStats(a.previous)
		if err != nil {
			return nil, err
		}
		bundle.PreviousStats = stats
		return statsCounts(stats), nil
	}))

	a.log.Info("aggregation complete", logger.Fields{
		"current_season":  a.current,
		"previous_season": a.previous,
		"failed_sections": len(report.Failed()),
	})

	return report
}

// scrape runs one sub-scrape and turns its outcome into a Result. Errors and
// panics stop at this boundary.
func (a *Aggregator) scrape(section Section, season string, fn func() (Counts, error)) (result Result) {
	start := time.Now()
	metric := "scrape." + string(section)

	defer func() {
		if r := recover(); r != nil {
			result = a.fail(section, season, fmt.Errorf("panic: %v", r))
		}
		a.metrics.RecordTiming(metric, time.Since(start))
	}()

	counts, err := fn()
	if err != nil {
		return a.fail(section, season, err)
	}

	a.metrics.IncrCounter(metric + ".ok")
	fields := logger.Fields{"section": string(section), "season": season}
	for k, v := range counts {
		fields[k] = v
		a.metrics.SetGauge("bundle."+string(section)+"."+k, float64(v))
	}
	a.log.Info("section scraped", fields)

	return Result{
		Section: section,
		Season:  season,
		Status:  StatusOK,
		Counts:  counts,
	}
}

func (a *Aggregator) fail(section Section, season string, err error) Result {
	a.metrics.IncrCounter("scrape." + string(section) + ".failed")
	a.log.Error("section scrape failed", logger.Fields{
		"section": string(section),
		"season":  season,
	}, err)

	return Result{
		Section: section,
		Season:  season,
		Status:  StatusFailed,
		Error:   err.Error(),
		err:     err,
	}
}

func statsCounts(stats *team.SeasonStats) Counts {
	return Counts{
		"field_players": len(stats.FieldPlayers),
		"goalies":       len(stats.Goalies),
	}
}
