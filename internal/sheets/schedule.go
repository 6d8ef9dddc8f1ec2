package sheets

import (
	"context"
	"fmt"
	"strings"

	"interleague_schedule/internal/config"
	"interleague_schedule/internal/retry"
	"interleague_schedule/internal/schedule"

	"github.com/rs/zerolog/log"
)

// ValuesAPI is the subset of Client used to move schedule tables.
type ValuesAPI interface {
	ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error)
	ClearRange(ctx context.Context, spreadsheetID, range_ string) error
	UpdateRange(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error
}

// GridSource reads a schedule grid from a spreadsheet range.
type GridSource struct {
	API           ValuesAPI
	SpreadsheetID string
	Range         string
}

func (s GridSource) ReadGrid(ctx context.Context) (schedule.Grid, error) {
	log.Debug().
		Str("spreadsheet_id", s.SpreadsheetID).
		Str("range", s.Range).
		Msg("Reading schedule sheet")

	values, err := retry.WithRetry(ctx, config.DefaultResilienceConfig.SheetRead, func(ctx context.Context) ([][]interface{}, error) {
		return s.API.ReadSheet(ctx, s.SpreadsheetID, s.Range)
	})
	if err != nil {
		return schedule.Grid{}, fmt.Errorf("failed to read schedule sheet: %w", err)
	}

	rows := ToRows(values)
	log.Debug().Int("rows", len(rows)).Msg("Retrieved schedule sheet")
	return schedule.NewGrid(rows)
}

// ToRows converts sheet values to text rows. Missing cells become empty text.
func ToRows(values [][]interface{}) [][]string {
	rows := make([][]string, 0, len(values))
	for _, value := range values {
		row := make([]string, len(value))
		for i, cell := range value {
			row[i] = extractString(cell)
		}
		rows = append(rows, row)
	}
	return rows
}

// extractString formats a cell value, treating nil as empty.
func extractString(cell interface{}) string {
	if cell == nil {
		return ""
	}
	return fmt.Sprintf("%v", cell)
}

// MatchupSink buffers matchup records and replaces the contents of a
// spreadsheet range with the table on Close.
type MatchupSink struct {
	API           ValuesAPI
	SpreadsheetID string
	Range         string

	ctx  context.Context
	rows [][]interface{}
}

func NewMatchupSink(ctx context.Context, api ValuesAPI, spreadsheetID, range_ string) *MatchupSink {
	header := make([]interface{}, len(schedule.Header))
	for i, h := range schedule.Header {
		header[i] = h
	}
	return &MatchupSink{
		API:           api,
		SpreadsheetID: spreadsheetID,
		Range:         range_,
		ctx:           ctx,
		rows:          [][]interface{}{header},
	}
}

func (s *MatchupSink) Write(record schedule.MatchupRecord) error {
	fields := record.Fields()
	row := make([]interface{}, len(fields))
	for i, f := range fields {
		row[i] = f
	}
	s.rows = append(s.rows, row)
	return nil
}

// Close publishes whatever was written, so a partially transformed schedule
// is still visible in the sheet.
func (s *MatchupSink) Close() error {
	sheetName := strings.Split(s.Range, "!")[0]

	log.Debug().
		Str("spreadsheet_id", s.SpreadsheetID).
		Str("sheet", sheetName).
		Int("rows", len(s.rows)-1).
		Msg("Publishing matchups to sheet")

	_, err := retry.WithRetry(s.ctx, config.DefaultResilienceConfig.SheetWrite, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.API.ClearRange(ctx, s.SpreadsheetID, sheetName)
	})
	if err != nil {
		return fmt.Errorf("failed to clear matchup sheet: %w", err)
	}

	_, err = retry.WithRetry(s.ctx, config.DefaultResilienceConfig.SheetWrite, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.API.UpdateRange(ctx, s.SpreadsheetID, s.Range, s.rows)
	})
	if err != nil {
		return fmt.Errorf("failed to write matchup sheet: %w", err)
	}

	log.Info().
		Str("sheet", sheetName).
		Int("matchups", len(s.rows)-1).
		Msg("Matchup sheet update complete")
	return nil
}
