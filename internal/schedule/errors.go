package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAwayTeam means a data row has a team cell past the end of the header.
	ErrMissingAwayTeam = errors.New("no away team in header for column")
	// ErrMalformedRow means a data row lacks the date and day fields.
	ErrMalformedRow = errors.New("row has no date and day")
	// ErrShortRow means a data row has fewer columns than the header while strict rows are enforced.
	ErrShortRow = errors.New("row is shorter than header")
)

// RowError locates a failure in the input grid. Row is the 1-based line of
// the input (the header is line 1); Column is the 0-based field index, or -1
// when the failure concerns the whole row.
type RowError struct {
	Row    int
	Column int
	Cell   string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("row %d column %d (%q): %v", e.Row, e.Column, e.Cell, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
