package scraper

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/edison-soccer/internal/team"
)

const rosterPage = "roster"

// parseRoster extracts every roster row on the page. Duplicate players are
// kept as separate entries.
func (s *Scraper) parseRoster(r io.Reader, season string) ([]team.RosterEntry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	roster := make([]team.RosterEntry, 0)
	rosterRows(doc).Each(func(i int, row *goquery.Selection) {
		entry, err := rosterEntryFromRow(row)
		if err != nil {
			s.skipRow(rosterPage, season, i, err)
			return
		}
		roster = append(roster, entry)
	})

	return roster, nil
}

// rosterEntryFromRow reads number, name, position and year from the first
// four cells. Extra cells are ignored.
func rosterEntryFromRow(row *goquery.Selection) (team.RosterEntry, error) {
	cols := cells(row)
	if cols.Length() < rosterCells {
		return team.RosterEntry{}, &StructureError{
			Page:   rosterPage,
			Detail: fmt.Sprintf("roster row has %d cells, want %d", cols.Length(), rosterCells),
		}
	}

	return team.RosterEntry{
		Number:   CleanText(cols.Eq(0).Text()),
		Name:     CleanText(cols.Eq(1).Text()),
		Position: CleanText(cols.Eq(2).Text()),
		Year:     CleanText(cols.Eq(3).Text()),
	}, nil
}
