package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pfrederiksen/edison-soccer/internal/team"
)

func TestSortPlayers(t *testing.T) {
	players := []team.PlayerStat{
		{Player: "Dan Patel", Goals: 1, Assists: 0, Points: 2},
		{Player: "Ben Okafor", Goals: 7, Assists: 3, Points: 17},
		{Player: "alex Ruiz", Goals: 4, Assists: 5, Points: 13},
		{Player: "Cal Moss", Goals: 4, Assists: 0, Points: 8},
	}

	tests := []struct {
		order SortOrder
		want  []string
	}{
		{SortBySource, []string{"Dan Patel", "Ben Okafor", "alex Ruiz", "Cal Moss"}},
		{SortByGoals, []string{"Ben Okafor", "alex Ruiz", "Cal Moss", "Dan Patel"}},
		{SortByAssists, []string{"alex Ruiz", "Ben Okafor", "Dan Patel", "Cal Moss"}},
		{SortByPoints, []string{"Ben Okafor", "alex Ruiz", "Cal Moss", "Dan Patel"}},
		{SortByName, []string{"alex Ruiz", "Ben Okafor", "Cal Moss", "Dan Patel"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			sorted := sortPlayers(players, tt.order)
			got := make([]string, 0, len(sorted))
			for _, p := range sorted {
				got = append(got, p.Player)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("sortPlayers(%s) mismatch (-want +got):\n%s", tt.order, diff)
			}
		})
	}

	if players[0].Player != "Dan Patel" || players[3].Player != "Cal Moss" {
		t.Errorf("sortPlayers reordered its input: %+v", players)
	}
}

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    SortOrder
		wantErr bool
	}{
		{"", SortBySource, false},
		{"Goals", SortByGoals, false},
		{"name", SortByName, false},
		{"saves", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortOrder(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSortOrder(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSortOrder(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
