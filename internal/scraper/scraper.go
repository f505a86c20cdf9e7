package scraper

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/edison-soccer/internal/logger"
	"github.com/pfrederiksen/edison-soccer/internal/team"
)

// SeasonPlaceholder marks where the season label goes in a URL template
const SeasonPlaceholder = "{season}"

// Default page templates for Edison boys soccer
const (
	StatsURLTemplate    = "https://highschoolsports.nj.com/school/edison-edison/boyssoccer/season/{season}/stats"
	FixturesURLTemplate = "https://highschoolsports.nj.com/school/edison-edison/boyssoccer/season/{season}"
	RosterURLTemplate   = "https://highschoolsports.nj.com/school/edison-edison/boyssoccer/season/{season}/roster"
)

// Pages holds the URL template of each page shape
type Pages struct {
	Stats    string
	Fixtures string
	Roster   string
}

// DefaultPages returns the nj.com templates
func DefaultPages() Pages {
	return Pages{
		Stats:    StatsURLTemplate,
		Fixtures: FixturesURLTemplate,
		Roster:   RosterURLTemplate,
	}
}

// SeasonURL fills the season label into a URL template
func SeasonURL(template, season string) string {
	return strings.ReplaceAll(template, SeasonPlaceholder, season)
}

// Options configures a Scraper. Zero values fall back to the defaults.
type Options struct {
	Fetcher Fetcher
	Pages   Pages
	Coach   string
	Logger  *logger.Logger
}

// Scraper fetches and parses the three page shapes. It keeps no state between
// calls, so repeated scrapes of identical markup return identical records.
type Scraper struct {
	fetcher Fetcher
	pages   Pages
	coach   string
	log     *logger.Logger
}

// New creates a new Scraper instance
func New(opts Options) *Scraper {
	s := &Scraper{
		fetcher: opts.Fetcher,
		pages:   opts.Pages,
		coach:   opts.Coach,
		log:     opts.Logger,
	}

	if s.fetcher == nil {
		s.fetcher = NewHTTPFetcher(FetchOptions{})
	}
	defaults := DefaultPages()
	if s.pages.Stats == "" {
		s.pages.Stats = defaults.Stats
	}
	if s.pages.Fixtures == "" {
		s.pages.Fixtures = defaults.Fixtures
	}
	if s.pages.Roster == "" {
		s.pages.Roster = defaults.Roster
	}
	if s.coach == "" {
		s.coach = team.DefaultCoach
	}
	if s.log == nil {
		s.log = logger.Default()
	}

	return s
}

// Coach returns the head coach reported with fixtures
func (s *Scraper) Coach() string {
	return s.coach
}

// StatsURL returns the stats page URL for a season
func (s *Scraper) StatsURL(season string) string {
	return SeasonURL(s.pages.Stats, season)
}

// FixturesURL returns the schedule page URL for a season
func (s *Scraper) FixturesURL(season string) string {
	return SeasonURL(s.pages.Fixtures, season)
}

// RosterURL returns the roster page URL for a season
func (s *Scraper) RosterURL(season string) string {
	return SeasonURL(s.pages.Roster, season)
}

// ScrapeStats fetches and parses the stats page of a season
func (s *Scraper) ScrapeStats(season string) (*team.SeasonStats, error) {
	body, err := s.fetcher.Fetch(s.StatsURL(season))
	if err != nil {
		return nil, fmt.Errorf("fetching stats: %w", err)
	}

	stats, err := s.parseStats(strings.NewReader(body), season)
	if err != nil {
		return nil, fmt.Errorf("parsing stats: %w", err)
	}
	return stats, nil
}

// ScrapeFixtures fetches and parses the schedule page of a season
func (s *Scraper) ScrapeFixtures(season string) (*team.Fixtures, error) {
	body, err := s.fetcher.Fetch(s.FixturesURL(season))
	if err != nil {
		return nil, fmt.Errorf("fetching fixtures: %w", err)
	}

	fixtures, err := s.parseFixtures(strings.NewReader(body), season)
	if err != nil {
		return nil, fmt.Errorf("parsing fixtures: %w", err)
	}
	return fixtures, nil
}

// ScrapeRoster fetches and parses the roster page of a season
func (s *Scraper) ScrapeRoster(season string) ([]team.RosterEntry, error) {
	body, err := s.fetcher.Fetch(s.RosterURL(season))
	if err != nil {
		return nil, fmt.Errorf("fetching roster: %w", err)
	}

	roster, err := s.parseRoster(strings.NewReader(body), season)
	if err != nil {
		return nil, fmt.Errorf("parsing roster: %w", err)
	}
	return roster, nil
}

func (s *Scraper) skipRow(page, season string, row int, err error) {
	s.log.Debug("skipping row", logger.Fields{
		"page":   page,
		"season": season,
		"row":    row,
		"reason": err.Error(),
	})
}

func (s *Scraper) skipTable(page, season string, err error) {
	s.log.Debug("skipping table", logger.Fields{
		"page":   page,
		"season": season,
		"reason": err.Error(),
	})
}
