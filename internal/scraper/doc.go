// Package scraper provides HTTP fetching and HTML parsing for the Edison boys soccer
// pages on highschoolsports.nj.com.
//
// Three fixed page shapes are supported: the season stats page (a field player table
// and a goalkeeper table), the season schedule page and the season roster page. Each
// page is fetched with a single GET, parsed with goquery and walked row by row. Rows
// that do not fit the expected shape are skipped without failing the page; the
// em-dash the site uses for "no data" is read as zero in numeric cells.
//
// Everything that depends on the site's markup (CSS classes, table positions, cell
// positions) lives in markup.go so that a site redesign touches one file.
package scraper
