package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pfrederiksen/edison-soccer/internal/aggregator"
	"github.com/pfrederiksen/edison-soccer/internal/team"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// NoData is printed in place of a section that has nothing to show
const NoData = "No data available"

// ParseOutputFormat validates an output format name
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch format := OutputFormat(strings.ToLower(strings.TrimSpace(s))); format {
	case FormatText, FormatJSON:
		return format, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", s)
	}
}

// WriteOutput writes the report in the specified format. The sort order only
// affects how field players are listed in text output.
func WriteOutput(w io.Writer, report *aggregator.Report, format OutputFormat, order SortOrder) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatText:
		return writeText(w, report, order)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the bundle and section results as JSON
func writeJSON(w io.Writer, report *aggregator.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// writeText outputs the report as human-readable tables
func writeText(w io.Writer, report *aggregator.Report, order SortOrder) error {
	b := report.Bundle
	summary := team.Summarize(b)

	season := summary.Season
	if season == "" {
		if res, ok := report.Section(aggregator.SectionCurrentStats); ok {
			season = res.Season
		}
	}
	fmt.Fprintf(w, "Edison Boys Soccer %s\n", season)
	fmt.Fprintf(w, "Head coach: %s\n\n", summary.Coach)

	writeStatus(w, report.Sections)
	writeSummary(w, summary)
	writeFieldPlayers(w, "Field players", b.CurrentStats, order)
	writeGoalies(w, b.CurrentStats)
	writeSchedule(w, b.Fixtures.Games)
	writeRoster(w, b.Roster)
	writeComparison(w, b, summary.Comparison)

	return nil
}

// newTable prints the section title and returns a table rendering below it
func newTable(w io.Writer, title string) table.Writer {
	fmt.Fprintln(w, title)
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

func writeNoData(w io.Writer, title string) {
	fmt.Fprintf(w, "%s\n  %s\n\n", title, NoData)
}

func writeStatus(w io.Writer, sections []aggregator.Result) {
	t := newTable(w, "Sections")
	t.AppendHeader(table.Row{"Section", "Season", "Status", "Detail"})
	for _, res := range sections {
		detail := res.Error
		if res.OK() {
			detail = formatCounts(res.Counts)
		}
		t.AppendRow(table.Row{res.Section, res.Season, res.Status, detail})
	}
	t.Render()
	fmt.Fprintln(w)
}

func formatCounts(counts aggregator.Counts) string {
	keys := []string{"field_players", "goalies", "games", "players"}
	parts := make([]string, 0, len(counts))
	for _, k := range keys {
		if n, ok := counts[k]; ok {
			parts = append(parts, fmt.Sprintf("%s=%d", k, n))
		}
	}
	return strings.Join(parts, " ")
}

func writeSummary(w io.Writer, s team.Summary) {
	t := newTable(w, "Summary")
	t.AppendRow(table.Row{"Record (W-L-T)", fmt.Sprintf("%d-%d-%d", s.Wins, s.Losses, s.Ties)})
	t.AppendRow(table.Row{"Total goals", s.TotalGoals})
	t.AppendRow(table.Row{"Total assists", s.TotalAssists})
	t.AppendRow(table.Row{"Total saves", s.TotalSaves})
	t.AppendRow(table.Row{"Scoring players", fmt.Sprintf("%d of %d", s.ScoringPlayers, s.FieldPlayers)})
	if s.TopScorer != nil {
		t.AppendRow(table.Row{"Top scorer", fmt.Sprintf("%s (%d)", s.TopScorer.Player, s.TopScorer.Goals)})
	}
	if s.BestGoalkeeper != nil {
		t.AppendRow(table.Row{"Best goalkeeper", fmt.Sprintf("%s (%d saves)", s.BestGoalkeeper.Player, s.BestGoalkeeper.Saves)})
	}
	if len(s.Positions) > 0 {
		positions := make([]string, 0, len(s.Positions))
		for _, p := range s.Positions {
			positions = append(positions, fmt.Sprintf("%s %d", p.Position, p.Count))
		}
		t.AppendRow(table.Row{"Positions", strings.Join(positions, ", ")})
	}
	t.Render()
	fmt.Fprintln(w)
}

func writeFieldPlayers(w io.Writer, title string, stats *team.SeasonStats, order SortOrder) {
	if stats == nil || len(stats.FieldPlayers) == 0 {
		writeNoData(w, title)
		return
	}

	t := newTable(w, fmt.Sprintf("%s %s", title, stats.Season))
	t.AppendHeader(table.Row{"Player", "Year / Pos", "G", "A", "PTS"})
	for _, p := range sortPlayers(stats.FieldPlayers, order) {
		t.AppendRow(table.Row{p.Player, p.YearPosition, p.Goals, p.Assists, p.Points})
	}
	t.AppendFooter(table.Row{"Total", "", team.TotalGoals(stats.FieldPlayers), team.TotalAssists(stats.FieldPlayers), team.TotalPoints(stats.FieldPlayers)})
	t.Render()
	fmt.Fprintln(w)
}

func writeGoalies(w io.Writer, stats *team.SeasonStats) {
	const title = "Goalkeepers"
	if stats == nil || len(stats.Goalies) == 0 {
		writeNoData(w, title)
		return
	}

	t := newTable(w, title)
	t.AppendHeader(table.Row{"Player", "Year / Pos", "Saves", "GP", "Saves / GP"})
	for _, g := range stats.Goalies {
		t.AppendRow(table.Row{g.Player, g.YearPosition, g.Saves, g.GamesPlayed, fmt.Sprintf("%.2f", team.SavesPerGame(g))})
	}
	t.Render()
	fmt.Fprintln(w)
}

func writeSchedule(w io.Writer, games []team.Fixture) {
	const title = "Schedule"
	if len(games) == 0 {
		writeNoData(w, title)
		return
	}

	t := newTable(w, title)
	t.AppendHeader(table.Row{"Date", "Opponent", "Where", "Result", "Record"})
	for _, g := range games {
		t.AppendRow(table.Row{g.Date, g.Opponent, g.Location, g.Result, g.Record})
	}
	t.Render()
	fmt.Fprintln(w)
}

func writeRoster(w io.Writer, roster []team.RosterEntry) {
	const title = "Roster"
	if len(roster) == 0 {
		writeNoData(w, title)
		return
	}

	t := newTable(w, title)
	t.AppendHeader(table.Row{"#", "Name", "Pos", "Year"})
	for _, r := range roster {
		t.AppendRow(table.Row{r.Number, r.Name, r.Position, r.Year})
	}
	t.Render()
	fmt.Fprintln(w)
}

func writeComparison(w io.Writer, b *team.Bundle, c team.Comparison) {
	const title = "Year over year"
	if b.CurrentStats == nil || b.PreviousStats == nil {
		writeNoData(w, title)
		return
	}

	t := newTable(w, title)
	t.AppendHeader(table.Row{"", b.CurrentStats.Season, b.PreviousStats.Season, "Change"})
	t.AppendRow(table.Row{"Goals", c.CurrentGoals, c.PreviousGoals, fmt.Sprintf("%+d", c.GoalsDelta())})
	t.AppendRow(table.Row{"Assists", c.CurrentAssists, c.PreviousAssists, fmt.Sprintf("%+d", c.AssistsDelta())})
	t.AppendRow(table.Row{"Returning players", c.Returning, "", ""})
	t.Render()
	fmt.Fprintln(w)
}
