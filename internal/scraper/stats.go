package scraper

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/edison-soccer/internal/team"
)

const statsPage = "stats"

// parseStats extracts the field player and goalkeeper tables of a stats page.
// A missing table yields an empty slice rather than an error.
func (s *Scraper) parseStats(r io.Reader, season string) (*team.SeasonStats, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	stats := &team.SeasonStats{
		Season:       season,
		FieldPlayers: make([]team.PlayerStat, 0),
		Goalies:      make([]team.GoalieStat, 0),
	}

	if rows, ok := s.statsRows(doc, fieldPlayerTable, season); ok {
		rows.Each(func(i int, row *goquery.Selection) {
			player, err := fieldPlayerFromRow(row)
			if err != nil {
				s.skipRow(statsPage, season, i, err)
				return
			}
			if player != nil {
				stats.FieldPlayers = append(stats.FieldPlayers, *player)
			}
		})
	}

	if rows, ok := s.statsRows(doc, goalieTable, season); ok {
		rows.Each(func(i int, row *goquery.Selection) {
			goalie, err := goalieFromRow(row)
			if err != nil {
				s.skipRow(statsPage, season, i, err)
				return
			}
			if goalie != nil {
				stats.Goalies = append(stats.Goalies, *goalie)
			}
		})
	}

	return stats, nil
}

// statsRows locates the body rows of one stats table
func (s *Scraper) statsRows(doc *goquery.Document, index int, season string) (*goquery.Selection, bool) {
	table := statsTable(doc, index)
	if table.Length() == 0 {
		s.skipTable(statsPage, season, &StructureError{
			Page:   statsPage,
			Detail: fmt.Sprintf("no stats table at position %d", index),
		})
		return nil, false
	}

	rows, ok := bodyRows(table)
	if !ok {
		s.skipTable(statsPage, season, &StructureError{
			Page:   statsPage,
			Detail: fmt.Sprintf("stats table %d has no body", index),
		})
		return nil, false
	}
	return rows, true
}

// fieldPlayerFromRow reads one field player row. Aggregate rows return a nil
// record and no error.
func fieldPlayerFromRow(row *goquery.Selection) (*team.PlayerStat, error) {
	if isAggregateRow(row) {
		return nil, nil
	}

	cols := cells(row)
	if cols.Length() < fieldPlayerCells {
		return nil, &StructureError{
			Page:   statsPage,
			Detail: fmt.Sprintf("field player row has %d cells, want %d", cols.Length(), fieldPlayerCells),
		}
	}

	name, yearPosition := playerIdentity(cols.Eq(0))

	goals, err := ParseCount("goals", cols.Eq(1).Text())
	if err != nil {
		return nil, err
	}
	assists, err := ParseCount("assists", cols.Eq(2).Text())
	if err != nil {
		return nil, err
	}
	points, err := ParseCount("points", cols.Eq(3).Text())
	if err != nil {
		return nil, err
	}

	return &team.PlayerStat{
		Player:       name,
		YearPosition: yearPosition,
		Goals:        goals,
		Assists:      assists,
		Points:       points,
	}, nil
}

// goalieFromRow reads one goalkeeper row. Aggregate rows return a nil record
// and no error.
func goalieFromRow(row *goquery.Selection) (*team.GoalieStat, error) {
	if isAggregateRow(row) {
		return nil, nil
	}

	cols := cells(row)
	if cols.Length() < goalieCells {
		return nil, &StructureError{
			Page:   statsPage,
			Detail: fmt.Sprintf("goalkeeper row has %d cells, want %d", cols.Length(), goalieCells),
		}
	}

	name, yearPosition := playerIdentity(cols.Eq(0))

	saves, err := ParseCount("saves", cols.Eq(1).Text())
	if err != nil {
		return nil, err
	}
	games, err := ParseCount("games played", cols.Eq(2).Text())
	if err != nil {
		return nil, err
	}

	return &team.GoalieStat{
		Player:       name,
		YearPosition: yearPosition,
		Saves:        saves,
		GamesPlayed:  games,
	}, nil
}
