package scraper

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pfrederiksen/edison-soccer/internal/team"
)

func TestParseRoster_Fixture(t *testing.T) {
	s := newTestScraper(pageFetcher{})
	roster, err := s.parseRoster(strings.NewReader(loadFixture(t, "roster.html")), "2025-2026")
	if err != nil {
		t.Fatalf("parseRoster() error: %v", err)
	}

	want := []team.RosterEntry{
		{Number: "1", Name: "Sam Cole", Position: "GK", Year: "Sr."},
		{Number: "7", Name: "Ben Okafor", Position: "F, M", Year: "Sr."},
		{Number: "--", Name: "Alex Ruiz", Position: "M", Year: "Jr."},
		{Number: "7", Name: "Ben Okafor", Position: "F, M", Year: "Sr."},
	}

	if diff := cmp.Diff(want, roster); diff != "" {
		t.Errorf("parseRoster() mismatch (-want +got):\n%s", diff)
	}
}

func TestRosterEntryFromRow(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		want    team.RosterEntry
		wantErr bool
	}{
		{
			name:    "three cells dropped",
			html:    `<tr><td>12</td><td>Dan Patel</td><td>D</td></tr>`,
			wantErr: true,
		},
		{
			name: "four cells kept",
			html: `<tr><td>12</td><td>Dan Patel</td><td>D</td><td>So.</td></tr>`,
			want: team.RosterEntry{Number: "12", Name: "Dan Patel", Position: "D", Year: "So."},
		},
		{
			name: "extra cells ignored",
			html: `<tr><td> 4 </td><td>
				Eli Ward
			</td><td>GK,D</td><td>Fr.</td><td>6'1"</td></tr>`,
			want: team.RosterEntry{Number: "4", Name: "Eli Ward", Position: "GK,D", Year: "Fr."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rosterEntryFromRow(firstRow(t, tt.html))
			if (err != nil) != tt.wantErr {
				t.Fatalf("rosterEntryFromRow() error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("rosterEntryFromRow() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseRoster_Empty(t *testing.T) {
	s := newTestScraper(pageFetcher{})
	roster, err := s.parseRoster(strings.NewReader(`<html><body>No roster</body></html>`), "2025-2026")
	if err != nil {
		t.Fatalf("parseRoster() error: %v", err)
	}
	if roster == nil || len(roster) != 0 {
		t.Errorf("parseRoster() = %#v, want empty non-nil slice", roster)
	}
}
