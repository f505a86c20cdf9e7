package scraper

import (
	"errors"
	"strconv"
	"strings"

	"github.com/pfrederiksen/edison-soccer/internal/team"
)

var errNegative = errors.New("negative count")

// CleanText trims surrounding whitespace and newlines from cell text
func CleanText(s string) string {
	return strings.TrimSpace(s)
}

// ParseCount reads a numeric stats cell. The sentinel means no data and reads
// as 0; anything else must be a non-negative integer.
func ParseCount(cell, text string) (int, error) {
	text = CleanText(text)
	if text == team.Sentinel {
		return 0, nil
	}

	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, &ValueError{Cell: cell, Text: text, Err: err}
	}
	if n < 0 {
		return 0, &ValueError{Cell: cell, Text: text, Err: errNegative}
	}
	return n, nil
}
