package scraper

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/edison-soccer/internal/team"
)

const schedulePage = "schedule"

// parseFixtures extracts the games from a schedule page. A page without a
// schedule table yields no games.
func (s *Scraper) parseFixtures(r io.Reader, season string) (*team.Fixtures, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	fixtures := &team.Fixtures{
		Coach: s.coach,
		Games: make([]team.Fixture, 0),
	}

	table := scheduleTable(doc)
	if table.Length() == 0 {
		s.skipTable(schedulePage, season, &StructureError{Page: schedulePage, Detail: "no schedule table"})
		return fixtures, nil
	}

	scheduleRows(table).Each(func(i int, row *goquery.Selection) {
		game, err := fixtureFromRow(row)
		if err != nil {
			s.skipRow(schedulePage, season, i, err)
			return
		}
		fixtures.Games = append(fixtures.Games, game)
	})

	return fixtures, nil
}

// fixtureFromRow reads date, opponent, result and the optional running
// record from a schedule row.
func fixtureFromRow(row *goquery.Selection) (team.Fixture, error) {
	cols := cells(row)
	if cols.Length() < fixtureCells {
		return team.Fixture{}, &StructureError{
			Page:   schedulePage,
			Detail: fmt.Sprintf("schedule row has %d cells, want %d", cols.Length(), fixtureCells),
		}
	}

	opponent := CleanText(cols.Eq(1).Text())
	result := CleanText(cols.Eq(2).Text())
	record := team.Sentinel
	if cols.Length() > fixtureCells {
		record = CleanText(cols.Eq(3).Text())
	}

	return team.Fixture{
		Date:     CleanText(cols.Eq(0).Text()),
		Opponent: CleanOpponent(opponent),
		Location: ClassifyLocation(opponent),
		Result:   result,
		Outcome:  ClassifyOutcome(result),
		Record:   record,
	}, nil
}

// ClassifyLocation reads home or away from the raw opponent text. Any
// occurrence of "vs" means a home game, including one inside a team name.
func ClassifyLocation(opponent string) team.Location {
	if strings.Contains(opponent, "vs") {
		return team.Home
	}
	return team.Away
}

// CleanOpponent removes the "vs " and "@ " direction markers from the
// opponent text.
func CleanOpponent(opponent string) string {
	opponent = strings.ReplaceAll(opponent, "vs ", "")
	opponent = strings.ReplaceAll(opponent, "@ ", "")
	return strings.TrimSpace(opponent)
}

// ClassifyOutcome reads the outcome from the first character of the result
// text. The match is case-sensitive and only looks at that one character.
func ClassifyOutcome(result string) team.Outcome {
	if result == "" || result == team.Sentinel {
		return team.Unknown
	}

	switch result[0] {
	case 'W':
		return team.Win
	case 'L':
		return team.Loss
	case 'T':
		return team.Tie
	default:
		return team.Unknown
	}
}
