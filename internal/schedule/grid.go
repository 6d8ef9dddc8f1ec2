// Package schedule turns a wide schedule grid (one row per date, one column
// per away team) into a long table of matchups.
package schedule

import "errors"

// ErrEmptyGrid is returned when the input has no header row.
var ErrEmptyGrid = errors.New("schedule grid has no header row")

// Bye marks a column whose away team has no game on that date.
const Bye = "bye"

// firstTeamColumn is the index of the first team column; columns before it
// hold the date and the day of week.
const firstTeamColumn = 2

// Grid is a schedule in wide format. Header[i] names the away team for
// column i of every row in Rows.
type Grid struct {
	Header []string
	Rows   [][]string
}

// NewGrid splits raw rows into the away-team header and the data rows.
func NewGrid(rows [][]string) (Grid, error) {
	if len(rows) == 0 {
		return Grid{}, ErrEmptyGrid
	}
	return Grid{Header: rows[0], Rows: rows[1:]}, nil
}

// AwayTeams returns the away teams named by the header, in column order.
func (g Grid) AwayTeams() []string {
	if len(g.Header) <= firstTeamColumn {
		return nil
	}
	return g.Header[firstTeamColumn:]
}
