package team

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// StatKey selects the column used to rank field players
type StatKey string

const (
	ByGoals   StatKey = "goals"
	ByAssists StatKey = "assists"
	ByPoints  StatKey = "points"
)

// ParseStatKey validates a ranking column name
func ParseStatKey(s string) (StatKey, error) {
	switch key := StatKey(strings.ToLower(strings.TrimSpace(s))); key {
	case "":
		return ByGoals, nil
	case ByGoals, ByAssists, ByPoints:
		return key, nil
	default:
		return "", fmt.Errorf("invalid stat: %s (must be goals, assists or points)", s)
	}
}

func (k StatKey) value(p PlayerStat) int {
	switch k {
	case ByAssists:
		return p.Assists
	case ByPoints:
		return p.Points
	default:
		return p.Goals
	}
}

// TotalGoals sums goals over all field players
func TotalGoals(players []PlayerStat) int {
	total := 0
	for _, p := range players {
		total += p.Goals
	}
	return total
}

// TotalAssists sums assists over all field players
func TotalAssists(players []PlayerStat) int {
	total := 0
	for _, p := range players {
		total += p.Assists
	}
	return total
}

// TotalPoints sums the reported points over all field players
func TotalPoints(players []PlayerStat) int {
	total := 0
	for _, p := range players {
		total += p.Points
	}
	return total
}

// TotalSaves sums saves over all goalkeepers
func TotalSaves(goalies []GoalieStat) int {
	total := 0
	for _, g := range goalies {
		total += g.Saves
	}
	return total
}

// SavesPerGame returns saves divided by games played, rounded to two decimal
// places. A goalkeeper with no games played has 0.
func SavesPerGame(g GoalieStat) float64 {
	if g.GamesPlayed == 0 {
		return 0
	}
	return math.Round(float64(g.Saves)/float64(g.GamesPlayed)*100) / 100
}

// Record tallies fixture outcomes
func Record(games []Fixture) (wins, losses, ties int) {
	for _, g := range games {
		switch g.Outcome {
		case Win:
			wins++
		case Loss:
			losses++
		case Tie:
			ties++
		}
	}
	return wins, losses, ties
}

// RecordString formats the win-loss tally as "W-L"
func RecordString(games []Fixture) string {
	wins, losses, _ := Record(games)
	return fmt.Sprintf("%d-%d", wins, losses)
}

// DefaultTopScorers is how many players a top scorers listing shows unless
// asked otherwise
const DefaultTopScorers = 5

// MaxTopScorers bounds the n callers may ask TopScorers for
const MaxTopScorers = 100

// TopScorers returns up to n field players ranked by the given column,
// highest first. Ties keep source order. The input slice is not modified.
// n <= 0 returns every player.
func TopScorers(players []PlayerStat, n int, by StatKey) []PlayerStat {
	ranked := make([]PlayerStat, len(players))
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool {
		return by.value(ranked[i]) > by.value(ranked[j])
	})
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// TopScorer returns the first player with the most goals
func TopScorer(players []PlayerStat) (PlayerStat, bool) {
	if len(players) == 0 {
		return PlayerStat{}, false
	}
	best := players[0]
	for _, p := range players[1:] {
		if p.Goals > best.Goals {
			best = p
		}
	}
	return best, true
}

// BestGoalkeeper returns the first goalkeeper with the most saves
func BestGoalkeeper(goalies []GoalieStat) (GoalieStat, bool) {
	if len(goalies) == 0 {
		return GoalieStat{}, false
	}
	best := goalies[0]
	for _, g := range goalies[1:] {
		if g.Saves > best.Saves {
			best = g
		}
	}
	return best, true
}

// ScoringPlayers counts field players with at least one goal
func ScoringPlayers(players []PlayerStat) int {
	count := 0
	for _, p := range players {
		if p.Goals > 0 {
			count++
		}
	}
	return count
}

// PositionCount is the number of roster entries listing a position code
type PositionCount struct {
	Position string `json:"position"`
	Count    int    `json:"count"`
}

// PositionBreakdown counts position codes across the roster. Entries listing
// several comma-separated codes count once for each code. A blank position
// counts under the empty code.
func PositionBreakdown(roster []RosterEntry) []PositionCount {
	counts := make(map[string]int)
	for _, entry := range roster {
		for _, pos := range strings.Split(entry.Position, ",") {
			counts[strings.TrimSpace(pos)]++
		}
	}

	breakdown := make([]PositionCount, 0, len(counts))
	for pos, n := range counts {
		breakdown = append(breakdown, PositionCount{Position: pos, Count: n})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Count != breakdown[j].Count {
			return breakdown[i].Count > breakdown[j].Count
		}
		return breakdown[i].Position < breakdown[j].Position
	})
	return breakdown
}

// NormalizeName lowercases and trims a player name for comparison
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ReturningPlayers returns the current-season field players whose normalized
// name also appears among the previous season's field players. Only exact
// normalized matches count.
func ReturningPlayers(current, previous []PlayerStat) []PlayerStat {
	seen := make(map[string]bool, len(previous))
	for _, p := range previous {
		seen[NormalizeName(p.Player)] = true
	}

	returning := make([]PlayerStat, 0)
	for _, p := range current {
		if seen[NormalizeName(p.Player)] {
			returning = append(returning, p)
		}
	}
	return returning
}

// Comparison holds year-over-year team totals
type Comparison struct {
	CurrentSeason   string `json:"current_season"`
	PreviousSeason  string `json:"previous_season"`
	CurrentGoals    int    `json:"current_goals"`
	PreviousGoals   int    `json:"previous_goals"`
	CurrentAssists  int    `json:"current_assists"`
	PreviousAssists int    `json:"previous_assists"`
	Returning       int    `json:"returning_players"`
}

// GoalsDelta is the change in team goals since the previous season
func (c Comparison) GoalsDelta() int {
	return c.CurrentGoals - c.PreviousGoals
}

// AssistsDelta is the change in team assists since the previous season
func (c Comparison) AssistsDelta() int {
	return c.CurrentAssists - c.PreviousAssists
}

// Compare builds the year-over-year comparison. A missing previous season
// compares against zero totals.
func Compare(current, previous *SeasonStats) Comparison {
	var c Comparison
	var cur, prev []PlayerStat
	if current != nil {
		c.CurrentSeason = current.Season
		cur = current.FieldPlayers
	}
	if previous != nil {
		c.PreviousSeason = previous.Season
		prev = previous.FieldPlayers
	}
	c.CurrentGoals = TotalGoals(cur)
	c.PreviousGoals = TotalGoals(prev)
	c.CurrentAssists = TotalAssists(cur)
	c.PreviousAssists = TotalAssists(prev)
	c.Returning = len(ReturningPlayers(cur, prev))
	return c
}

// PlayerLookup is the result of searching a season for one player
type PlayerLookup struct {
	Field  *PlayerStat `json:"field,omitempty"`
	Goalie *GoalieStat `json:"goalie,omitempty"`
}

// Found reports whether the player appeared in either table
func (l PlayerLookup) Found() bool {
	return l.Field != nil || l.Goalie != nil
}

// FindPlayer looks a player up by normalized name in both stats tables
func FindPlayer(stats *SeasonStats, name string) PlayerLookup {
	var lookup PlayerLookup
	if stats == nil {
		return lookup
	}
	want := NormalizeName(name)
	for i := range stats.FieldPlayers {
		if NormalizeName(stats.FieldPlayers[i].Player) == want {
			p := stats.FieldPlayers[i]
			lookup.Field = &p
			break
		}
	}
	for i := range stats.Goalies {
		if NormalizeName(stats.Goalies[i].Player) == want {
			g := stats.Goalies[i]
			lookup.Goalie = &g
			break
		}
	}
	return lookup
}

// OpponentGames returns the fixtures against opponents whose name contains
// the query, case-insensitively, in schedule order.
func OpponentGames(games []Fixture, opponent string) []Fixture {
	want := NormalizeName(opponent)
	matches := make([]Fixture, 0)
	if want == "" {
		return matches
	}
	for _, g := range games {
		if strings.Contains(strings.ToLower(g.Opponent), want) {
			matches = append(matches, g)
		}
	}
	return matches
}

// Summary collects the headline numbers shown above the detail tables
type Summary struct {
	Coach          string          `json:"coach"`
	Season         string          `json:"season"`
	FieldPlayers   int             `json:"field_players"`
	Goalies        int             `json:"goalies"`
	Games          int             `json:"games"`
	RosterSize     int             `json:"roster_size"`
	TotalGoals     int             `json:"total_goals"`
	TotalAssists   int             `json:"total_assists"`
	TotalSaves     int             `json:"total_saves"`
	Wins           int             `json:"wins"`
	Losses         int             `json:"losses"`
	Ties           int             `json:"ties"`
	ScoringPlayers int             `json:"scoring_players"`
	TopScorer      *PlayerStat     `json:"top_scorer,omitempty"`
	BestGoalkeeper *GoalieStat     `json:"best_goalkeeper,omitempty"`
	Positions      []PositionCount `json:"positions"`
	Comparison     Comparison      `json:"comparison"`
}

// Summarize computes the headline numbers for a bundle
func Summarize(b *Bundle) Summary {
	s := Summary{
		Coach:      b.Fixtures.Coach,
		Games:      len(b.Fixtures.Games),
		RosterSize: len(b.Roster),
		Positions:  PositionBreakdown(b.Roster),
		Comparison: Compare(b.CurrentStats, b.PreviousStats),
	}
	s.Wins, s.Losses, s.Ties = Record(b.Fixtures.Games)

	if cur := b.CurrentStats; cur != nil {
		s.Season = cur.Season
		s.FieldPlayers = len(cur.FieldPlayers)
		s.Goalies = len(cur.Goalies)
		s.TotalGoals = TotalGoals(cur.FieldPlayers)
		s.TotalAssists = TotalAssists(cur.FieldPlayers)
		s.TotalSaves = TotalSaves(cur.Goalies)
		s.ScoringPlayers = ScoringPlayers(cur.FieldPlayers)
		if p, ok := TopScorer(cur.FieldPlayers); ok {
			s.TopScorer = &p
		}
		if g, ok := BestGoalkeeper(cur.Goalies); ok {
			s.BestGoalkeeper = &g
		}
	}
	return s
}
