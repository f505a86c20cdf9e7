package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/edison-soccer/internal/team"
)

// SortOrder represents the available sorting options for the field player table
type SortOrder string

const (
	SortBySource  SortOrder = "source"
	SortByGoals   SortOrder = "goals"
	SortByAssists SortOrder = "assists"
	SortByPoints  SortOrder = "points"
	SortByName    SortOrder = "name"
)

// ParseSortOrder validates a sort order name. Empty means source order.
func ParseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(strings.TrimSpace(s))); order {
	case "":
		return SortBySource, nil
	case SortBySource, SortByGoals, SortByAssists, SortByPoints, SortByName:
		return order, nil
	default:
		return "", fmt.Errorf("invalid sort: %s (must be source, goals, assists, points or name)", s)
	}
}

// sortPlayers returns a sorted copy of the players for display. The bundle
// itself always keeps source order.
func sortPlayers(players []team.PlayerStat, order SortOrder) []team.PlayerStat {
	switch order {
	case SortByGoals:
		return team.TopScorers(players, 0, team.ByGoals)
	case SortByAssists:
		return team.TopScorers(players, 0, team.ByAssists)
	case SortByPoints:
		return team.TopScorers(players, 0, team.ByPoints)
	}

	sorted := make([]team.PlayerStat, len(players))
	copy(sorted, players)
	if order == SortByName {
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Player) < strings.ToLower(sorted[j].Player)
		})
	}
	return sorted
}
