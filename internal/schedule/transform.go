package schedule

import (
	"fmt"
	"strings"

	"interleague_schedule/internal/league"

	"github.com/rs/zerolog/log"
)

// InvalidAction decides what happens when a row or cell cannot be transformed.
type InvalidAction int

const (
	// Abort stops the transformation at the first invalid row or cell.
	Abort InvalidAction = iota
	// Skip logs the invalid row or cell and continues with the next one.
	Skip
)

// ParseInvalidAction parses "abort" or "skip". The empty string means Abort.
func ParseInvalidAction(s string) (InvalidAction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "abort":
		return Abort, nil
	case "skip":
		return Skip, nil
	default:
		return Abort, fmt.Errorf("unknown invalid-row action %q", s)
	}
}

func (a InvalidAction) String() string {
	if a == Skip {
		return "skip"
	}
	return "abort"
}

// Policy controls how a Transformer treats irregular input.
type Policy struct {
	// StrictRows rejects data rows with fewer columns than the header.
	// Otherwise the missing trailing columns are treated as having no game.
	StrictRows bool
	OnInvalid  InvalidAction
}

// Transformer converts a Grid into MatchupRecords.
type Transformer struct {
	policy Policy
}

func NewTransformer(policy Policy) *Transformer {
	return &Transformer{policy: policy}
}

// Transform walks the grid row by row and, within a row, column by column,
// calling emit for every cell holding a home team. Records are emitted as
// soon as they are built, so records emitted before a failure stay emitted.
// An error from emit always stops the transformation.
func (t *Transformer) Transform(grid Grid, emit func(MatchupRecord) error) (Summary, error) {
	log.Debug().
		Int("rows", len(grid.Rows)).
		Int("away_teams", len(grid.AwayTeams())).
		Bool("strict_rows", t.policy.StrictRows).
		Str("on_invalid", t.policy.OnInvalid.String()).
		Msg("Transforming schedule grid")

	summary := newSummary()
	for i, row := range grid.Rows {
		summary.Rows++
		if err := t.transformRow(grid.Header, row, i+2, emit, &summary); err != nil {
			return summary, err
		}
	}

	log.Debug().
		Int("rows", summary.Rows).
		Int("matchups", summary.Matchups).
		Msg("Finished transforming schedule grid")
	return summary, nil
}

func (t *Transformer) transformRow(header, row []string, rowNum int, emit func(MatchupRecord) error, summary *Summary) error {
	if len(row) < firstTeamColumn {
		return t.invalidRow(&RowError{Row: rowNum, Column: -1, Err: ErrMalformedRow}, summary)
	}
	if t.policy.StrictRows && len(row) < len(header) {
		err := fmt.Errorf("%w: %d of %d columns", ErrShortRow, len(row), len(header))
		return t.invalidRow(&RowError{Row: rowNum, Column: -1, Err: err}, summary)
	}

	date, day := row[0], row[1]
	for col := firstTeamColumn; col < len(row); col++ {
		home := row[col]
		switch home {
		case "":
			summary.EmptyCells++
			continue
		case Bye:
			summary.Byes++
			continue
		}

		if col >= len(header) {
			if err := t.invalidCell(&RowError{Row: rowNum, Column: col, Cell: home, Err: ErrMissingAwayTeam}, summary); err != nil {
				return err
			}
			continue
		}
		away := header[col]

		hostLeague, err := league.HostLeague(home)
		if err != nil {
			if err := t.invalidCell(&RowError{Row: rowNum, Column: col, Cell: home, Err: err}, summary); err != nil {
				return err
			}
			continue
		}

		record := MatchupRecord{
			Date:       date,
			Day:        day,
			Home:       home,
			Away:       away,
			HostLeague: hostLeague,
			Type:       league.Classify(home, away),
		}
		if err := emit(record); err != nil {
			return fmt.Errorf("failed to write matchup from row %d column %d: %w", rowNum, col, err)
		}
		summary.add(record)
	}

	log.Debug().
		Int("row", rowNum).
		Str("date", date).
		Int("matchups_so_far", summary.Matchups).
		Msg("Transformed row")
	return nil
}

func (t *Transformer) invalidRow(err *RowError, summary *Summary) error {
	if t.policy.OnInvalid != Skip {
		return err
	}
	summary.SkippedRows++
	log.Warn().Err(err.Err).Int("row", err.Row).Msg("Skipping invalid row")
	return nil
}

func (t *Transformer) invalidCell(err *RowError, summary *Summary) error {
	if t.policy.OnInvalid != Skip {
		return err
	}
	summary.SkippedCells++
	log.Warn().
		Err(err.Err).
		Int("row", err.Row).
		Int("column", err.Column).
		Str("cell", err.Cell).
		Msg("Skipping invalid cell")
	return nil
}

// Records transforms the whole grid into a slice using the default policy.
func Records(grid Grid) ([]MatchupRecord, error) {
	var records []MatchupRecord
	_, err := NewTransformer(Policy{}).Transform(grid, func(r MatchupRecord) error {
		records = append(records, r)
		return nil
	})
	return records, err
}
