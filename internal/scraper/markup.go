package scraper

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/edison-soccer/internal/team"
)

// Markup markers used by highschoolsports.nj.com
const (
	statsTableSelector    = "table.table-stats"
	scheduleTableSelector = "table.table"
	aggregateRowClass     = "table-secondary"
	playerLinkSelector    = "a"
	playerInfoSelector    = "small.text-muted"
)

// Stats table positions on the stats page
const (
	fieldPlayerTable = 0
	goalieTable      = 1
)

// Minimum cell counts per row shape
const (
	fieldPlayerCells = 4
	goalieCells      = 3
	fixtureCells     = 3
	rosterCells      = 4
)

// statsTable returns the stats table at the given position, or an empty
// selection when the page has fewer tables.
func statsTable(doc *goquery.Document, index int) *goquery.Selection {
	return doc.Find(statsTableSelector).Eq(index)
}

// scheduleTable returns the first generic table on the schedule page. Any
// other table carrying the same class that comes first would be taken instead.
func scheduleTable(doc *goquery.Document) *goquery.Selection {
	return doc.Find(scheduleTableSelector).First()
}

// bodyRows returns the rows inside the table body
func bodyRows(table *goquery.Selection) (*goquery.Selection, bool) {
	tbody := table.Find("tbody").First()
	if tbody.Length() == 0 {
		return tbody, false
	}
	return tbody.Find("tr"), true
}

// scheduleRows returns body rows, or every row when the table has no body
func scheduleRows(table *goquery.Selection) *goquery.Selection {
	if rows, ok := bodyRows(table); ok {
		return rows
	}
	return table.Find("tr")
}

// rosterRows returns every row on the roster page
func rosterRows(doc *goquery.Document) *goquery.Selection {
	return doc.Find("tr")
}

// isAggregateRow reports whether a stats row is a team-total row
func isAggregateRow(row *goquery.Selection) bool {
	return row.HasClass(aggregateRowClass)
}

// cells returns the data cells of a row
func cells(row *goquery.Selection) *goquery.Selection {
	return row.Find("td")
}

// playerIdentity reads the display name and the year/position descriptor from
// the first cell of a stats row.
func playerIdentity(cell *goquery.Selection) (name, yearPosition string) {
	name = team.UnknownPlayer
	if link := cell.Find(playerLinkSelector).First(); link.Length() > 0 {
		name = CleanText(link.Text())
	}
	if info := cell.Find(playerInfoSelector).First(); info.Length() > 0 {
		yearPosition = CleanText(info.Text())
	}
	return name, yearPosition
}
