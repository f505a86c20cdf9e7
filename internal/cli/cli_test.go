package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pfrederiksen/edison-soccer/internal/aggregator"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("../../testdata/fixtures/" + name)
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return string(data)
}

// writeSiteConfig starts a server with the fixture pages and writes a config
// file pointing at it
func writeSiteConfig(t *testing.T) string {
	t.Helper()
	pages := map[string]string{
		"/season/2025-2026/stats":  loadFixture(t, "stats.html"),
		"/season/2025-2026":        loadFixture(t, "schedule.html"),
		"/season/2025-2026/roster": loadFixture(t, "roster.html"),
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	cfg := fmt.Sprintf(`urls:
  stats: %[1]s/season/{season}/stats
  fixtures: %[1]s/season/{season}
  roster: %[1]s/season/{season}/roster
timeout: 5s
`, server.URL)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestScrapeCommand_JSON(t *testing.T) {
	path := writeSiteConfig(t)

	stdout, stderr, err := execute(t, "scrape", "--config", path, "--format", "json")
	if err != nil {
		t.Fatalf("scrape error: %v", err)
	}

	var report aggregator.Report
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("stdout is not a JSON report: %v\n%s", err, stdout)
	}

	b := report.Bundle
	if b.CurrentStats == nil || len(b.CurrentStats.FieldPlayers) != 4 {
		t.Errorf("CurrentStats = %+v", b.CurrentStats)
	}
	if len(b.Fixtures.Games) != 6 || len(b.Roster) != 4 {
		t.Errorf("games = %d, roster = %d, want 6 and 4", len(b.Fixtures.Games), len(b.Roster))
	}

	// The previous season page is not served
	if b.PreviousStats != nil {
		t.Errorf("PreviousStats = %+v, want nil", b.PreviousStats)
	}
	if len(report.Sections) != 4 || report.Sections[3].Status != aggregator.StatusFailed {
		t.Errorf("sections = %+v", report.Sections)
	}
	if !strings.Contains(stderr, `"message":"section scrape failed"`) {
		t.Errorf("stderr missing failure log: %s", stderr)
	}
}

func TestScrapeCommand_Text(t *testing.T) {
	path := writeSiteConfig(t)

	stdout, _, err := execute(t, "scrape", "--config", path, "--sort", "goals", "--previous", "2023-2024")
	if err != nil {
		t.Fatalf("scrape error: %v", err)
	}

	for _, want := range []string{"Edison Boys Soccer 2025-2026", "2023-2024", "J.P. Stevens", "Year over year\n  " + NoData} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}

	players := stdout[strings.Index(stdout, "Field players 2025-2026"):]
	if strings.Index(players, "Ben Okafor") > strings.Index(players, "Alex Ruiz") {
		t.Error("--sort goals did not rank Ben Okafor first")
	}
}

func TestScrapeCommand_PaddedSeasonFlags(t *testing.T) {
	path := writeSiteConfig(t)

	stdout, _, err := execute(t, "scrape", "--config", path, "--format", "json", "--current", " 2025-2026 ", "--previous", "2024-2025\n")
	if err != nil {
		t.Fatalf("scrape error: %v", err)
	}

	var report aggregator.Report
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("stdout is not a JSON report: %v", err)
	}
	if got := report.Sections[0].Season; got != "2025-2026" {
		t.Errorf("current season = %q, want trimmed 2025-2026", got)
	}
	if got := report.Sections[3].Season; got != "2024-2025" {
		t.Errorf("previous season = %q, want trimmed 2024-2025", got)
	}
}

func TestScrapeCommand_Errors(t *testing.T) {
	path := writeSiteConfig(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad format", []string{"scrape", "--config", path, "--format", "xml"}, "invalid format"},
		{"bad sort", []string{"scrape", "--config", path, "--sort", "saves"}, "invalid sort"},
		{"bad season", []string{"scrape", "--config", path, "--current", "2025"}, "current_season"},
		{"missing config", []string{"scrape", "--config", filepath.Join(t.TempDir(), "nope.yaml")}, "loading config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	for _, name := range []string{"scrape", "serve", "mcp"} {
		found, _, err := cmd.Find([]string{name})
		if err != nil || found.Name() != name {
			t.Errorf("subcommand %s not registered", name)
		}
	}
}
