package aggregator

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pfrederiksen/edison-soccer/internal/logger"
	"github.com/pfrederiksen/edison-soccer/internal/scraper"
	"github.com/pfrederiksen/edison-soccer/internal/team"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("../../testdata/fixtures/" + name)
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return string(data)
}

// newSiteServer serves the fixture pages for both seasons. Paths listed in
// failing answer with the given status instead.
func newSiteServer(t *testing.T, failing map[string]int) *httptest.Server {
	t.Helper()
	pages := map[string]string{
		"/season/2025-2026/stats":  loadFixture(t, "stats.html"),
		"/season/2025-2026":        loadFixture(t, "schedule.html"),
		"/season/2025-2026/roster": loadFixture(t, "roster.html"),
		"/season/2024-2025/stats":  loadFixture(t, "stats.html"),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status, ok := failing[r.URL.Path]; ok {
			w.WriteHeader(status)
			return
		}
		body, ok := pages[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestAggregator(server *httptest.Server, log *logger.Logger) *Aggregator {
	src := scraper.New(scraper.Options{
		Fetcher: scraper.NewHTTPFetcher(scraper.FetchOptions{}),
		Pages: scraper.Pages{
			Stats:    server.URL + "/season/{season}/stats",
			Fixtures: server.URL + "/season/{season}",
			Roster:   server.URL + "/season/{season}/roster",
		},
		Logger: log,
	})
	return New(Options{
		Source:   src,
		Current:  "2025-2026",
		Previous: "2024-2025",
		Logger:   log,
	})
}

func TestRun_AllSectionsSucceed(t *testing.T) {
	agg := newTestAggregator(newSiteServer(t, nil), logger.Discard())
	report := agg.Run()

	if failed := report.Failed(); len(failed) != 0 {
		t.Fatalf("Failed() = %+v, want none", failed)
	}

	wantOrder := []Section{SectionCurrentStats, SectionFixtures, SectionRoster, SectionPreviousStats}
	gotOrder := make([]Section, 0, len(report.Sections))
	for _, r := range report.Sections {
		gotOrder = append(gotOrder, r.Section)
	}
	if diff := cmp.Diff(wantOrder, gotOrder); diff != "" {
		t.Errorf("section order mismatch (-want +got):\n%s", diff)
	}

	b := report.Bundle
	if b.CurrentStats == nil || b.CurrentStats.Season != "2025-2026" {
		t.Errorf("CurrentStats = %+v, want 2025-2026 stats", b.CurrentStats)
	}
	if b.PreviousStats == nil || b.PreviousStats.Season != "2024-2025" {
		t.Errorf("PreviousStats = %+v, want 2024-2025 stats", b.PreviousStats)
	}
	if len(b.Fixtures.Games) != 6 {
		t.Errorf("games = %d, want 6", len(b.Fixtures.Games))
	}
	if b.Fixtures.Coach != team.DefaultCoach {
		t.Errorf("coach = %q, want %q", b.Fixtures.Coach, team.DefaultCoach)
	}
	if len(b.Roster) != 4 {
		t.Errorf("roster = %d, want 4", len(b.Roster))
	}

	res, ok := report.Section(SectionCurrentStats)
	if !ok {
		t.Fatal("Section(current_stats) not found")
	}
	if diff := cmp.Diff(Counts{"field_players": 4, "goalies": 2}, res.Counts); diff != "" {
		t.Errorf("current stats counts mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_SectionFailureIsIsolated(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		section Section
		check   func(t *testing.T, b *team.Bundle)
	}{
		{
			name:    "current stats",
			path:    "/season/2025-2026/stats",
			section: SectionCurrentStats,
			check: func(t *testing.T, b *team.Bundle) {
				if b.CurrentStats != nil {
					t.Errorf("CurrentStats = %+v, want nil", b.CurrentStats)
				}
				if b.PreviousStats == nil || len(b.PreviousStats.FieldPlayers) != 4 {
					t.Errorf("PreviousStats = %+v, want populated", b.PreviousStats)
				}
				if len(b.Fixtures.Games) != 6 || len(b.Roster) != 4 {
					t.Errorf("games = %d, roster = %d, want 6 and 4", len(b.Fixtures.Games), len(b.Roster))
				}
			},
		},
		{
			name:    "fixtures",
			path:    "/season/2025-2026",
			section: SectionFixtures,
			check: func(t *testing.T, b *team.Bundle) {
				want := team.Fixtures{Coach: team.DefaultCoach, Games: []team.Fixture{}}
				if diff := cmp.Diff(want, b.Fixtures); diff != "" {
					t.Errorf("fixtures mismatch (-want +got):\n%s", diff)
				}
				if b.CurrentStats == nil || b.PreviousStats == nil || len(b.Roster) != 4 {
					t.Errorf("other sections not populated: %+v", b)
				}
			},
		},
		{
			name:    "roster",
			path:    "/season/2025-2026/roster",
			section: SectionRoster,
			check: func(t *testing.T, b *team.Bundle) {
				if b.Roster == nil || len(b.Roster) != 0 {
					t.Errorf("Roster = %#v, want empty non-nil slice", b.Roster)
				}
				if b.CurrentStats == nil || b.PreviousStats == nil || len(b.Fixtures.Games) != 6 {
					t.Errorf("other sections not populated: %+v", b)
				}
			},
		},
		{
			name:    "previous stats",
			path:    "/season/2024-2025/stats",
			section: SectionPreviousStats,
			check: func(t *testing.T, b *team.Bundle) {
				if b.PreviousStats != nil {
					t.Errorf("PreviousStats = %+v, want nil", b.PreviousStats)
				}
				if b.CurrentStats == nil || len(b.CurrentStats.Goalies) != 2 {
					t.Errorf("CurrentStats = %+v, want populated", b.CurrentStats)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newSiteServer(t, map[string]int{tt.path: http.StatusServiceUnavailable})
			report := newTestAggregator(server, logger.Discard()).Run()

			failed := report.Failed()
			if len(failed) != 1 || failed[0].Section != tt.section {
				t.Fatalf("Failed() = %+v, want only %s", failed, tt.section)
			}

			var fetchErr *scraper.FetchError
			if !errors.As(failed[0].Err(), &fetchErr) {
				t.Fatalf("failure cause = %v, want *scraper.FetchError", failed[0].Err())
			}
			if fetchErr.StatusCode != http.StatusServiceUnavailable {
				t.Errorf("StatusCode = %d, want 503", fetchErr.StatusCode)
			}
			if failed[0].Error == "" {
				t.Error("failed result carries no error message")
			}

			tt.check(t, report.Bundle)
		})
	}
}

func TestRun_IsIdempotent(t *testing.T) {
	server := newSiteServer(t, map[string]int{"/season/2025-2026/roster": http.StatusNotFound})
	agg := newTestAggregator(server, logger.Discard())

	first := agg.Run()
	second := agg.Run()

	if diff := cmp.Diff(first, second, cmpopts.IgnoreUnexported(Result{})); diff != "" {
		t.Errorf("repeated run differs (-first +second):\n%s", diff)
	}

	firstJSON, err := json.Marshal(first.Bundle)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	secondJSON, err := json.Marshal(second.Bundle)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(firstJSON, secondJSON) {
		t.Error("repeated runs serialize differently")
	}
}

func TestRun_LogsAndMetrics(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.LevelInfo, &buf)
	server := newSiteServer(t, map[string]int{"/season/2025-2026": http.StatusInternalServerError})
	agg := newTestAggregator(server, log)

	agg.Run()

	output := buf.String()
	if !strings.Contains(output, `"message":"section scrape failed"`) {
		t.Errorf("log output missing failure line: %s", output)
	}
	if !strings.Contains(output, `"players":4,"season":"2025-2026","section":"roster"`) {
		t.Errorf("log output missing roster counts: %s", output)
	}

	m := agg.Metrics()
	tests := []struct {
		name string
		want int64
	}{
		{"scrape.current_stats.ok", 1},
		{"scrape.fixtures.ok", 0},
		{"scrape.fixtures.failed", 1},
		{"scrape.roster.ok", 1},
		{"scrape.previous_stats.ok", 1},
	}
	for _, tt := range tests {
		if got := m.Counter(tt.name); got != tt.want {
			t.Errorf("Counter(%s) = %d, want %d", tt.name, got, tt.want)
		}
	}

	if timing := m.GetSnapshot().Timings["scrape.fixtures"]; timing.Count != 1 {
		t.Errorf("scrape.fixtures timing count = %d, want 1", timing.Count)
	}
	if got := m.GetSnapshot().Gauges["bundle.roster.players"]; got != 4 {
		t.Errorf("bundle.roster.players gauge = %v, want 4", got)
	}
}

// stubSource returns canned sections and can be told to panic
type stubSource struct {
	panicOn Section
}

func (s stubSource) ScrapeStats(season string) (*team.SeasonStats, error) {
	return &team.SeasonStats{Season: season, FieldPlayers: []team.PlayerStat{}, Goalies: []team.GoalieStat{}}, nil
}

func (s stubSource) ScrapeFixtures(season string) (*team.Fixtures, error) {
	return &team.Fixtures{Coach: s.Coach(), Games: []team.Fixture{}}, nil
}

func (s stubSource) ScrapeRoster(season string) ([]team.RosterEntry, error) {
	if s.panicOn == SectionRoster {
		panic("index out of range")
	}
	return []team.RosterEntry{}, nil
}

func (s stubSource) Coach() string {
	return "Coach Test"
}

func TestRun_PanicBecomesFailure(t *testing.T) {
	report := New(Options{Source: stubSource{panicOn: SectionRoster}, Logger: logger.Discard()}).Run()

	res, ok := report.Section(SectionRoster)
	if !ok {
		t.Fatal("Section(roster) not found")
	}
	if res.OK() || !strings.Contains(res.Error, "index out of range") {
		t.Errorf("roster result = %+v, want failure carrying the panic", res)
	}
	if len(report.Sections) != 4 {
		t.Errorf("sections = %d, want 4", len(report.Sections))
	}
	if report.Bundle.Roster == nil {
		t.Error("Roster is nil, want empty slice")
	}
}

func TestResult_EmptyVersusFailed(t *testing.T) {
	report := New(Options{Source: stubSource{}, Logger: logger.Discard()}).Run()

	for _, res := range report.Sections {
		if !res.OK() {
			t.Errorf("%s failed: %s", res.Section, res.Error)
		}
		if !res.Empty() {
			t.Errorf("%s Empty() = false, want true", res.Section)
		}
	}
	if report.Bundle.Fixtures.Coach != "Coach Test" {
		t.Errorf("coach = %q, want Coach Test", report.Bundle.Fixtures.Coach)
	}
	if report.Bundle.CurrentStats == nil || report.Bundle.CurrentStats.Season != DefaultCurrentSeason {
		t.Errorf("CurrentStats = %+v, want default season", report.Bundle.CurrentStats)
	}

	failed := Result{Section: SectionRoster, Status: StatusFailed}
	if failed.Empty() {
		t.Error("failed result reports Empty() = true")
	}
}
