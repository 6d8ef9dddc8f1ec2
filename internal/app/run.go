package app

import (
	"context"
	"errors"
	"fmt"

	"interleague_schedule/internal/league"
	"interleague_schedule/internal/notifications"
	"interleague_schedule/internal/schedule"
	"interleague_schedule/internal/sheets"

	"github.com/rs/zerolog/log"
)

// App converts one schedule grid into a matchup table.
type App struct {
	cfg      Config
	sheets   sheets.ValuesAPI
	notifier *notifications.Client
}

// New wires the clients the configuration asks for.
func New(ctx context.Context, cfg Config) (*App, error) {
	a := &App{
		cfg:      cfg,
		notifier: InitializeNotificationClient(cfg),
	}

	client, err := InitializeSheetsClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if client != nil {
		a.sheets = client
	}
	return a, nil
}

// Run reads the whole grid, then streams matchup records to every sink. The
// sinks are closed on every path, so records written before a failure are kept.
func (a *App) Run(ctx context.Context) error {
	grid, err := a.source().ReadGrid(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schedule: %w", err)
	}
	log.Info().
		Int("rows", len(grid.Rows)).
		Strs("away_teams", grid.AwayTeams()).
		Msg("Loaded schedule grid")

	sink, err := a.sink(ctx)
	if err != nil {
		return err
	}

	summary, err := schedule.NewTransformer(a.cfg.Policy).Transform(grid, sink.Write)
	closeErr := sink.Close()
	if err != nil {
		if closeErr != nil {
			log.Error().Err(closeErr).Msg("Failed to close output after transform error")
		}
		log.Warn().
			Int("written", summary.Matchups).
			Msg("Schedule transform aborted; output is incomplete")
		return fmt.Errorf("failed to transform schedule: %w", err)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to write matchups: %w", closeErr)
	}

	logSummary(summary, a.cfg.OutputPath)
	a.notifier.NotifySummary(ctx, summary, a.cfg.OutputPath)
	return nil
}

func (a *App) source() schedule.Source {
	if a.cfg.InputSpreadsheetID != "" && a.sheets != nil {
		return sheets.GridSource{
			API:           a.sheets,
			SpreadsheetID: a.cfg.InputSpreadsheetID,
			Range:         a.cfg.InputRange,
		}
	}
	return schedule.CSVSource{Path: a.cfg.InputPath}
}

func (a *App) sink(ctx context.Context) (schedule.Sink, error) {
	csvSink, err := schedule.CreateCSVSink(a.cfg.OutputPath)
	if err != nil {
		return nil, err
	}
	if a.cfg.OutputSpreadsheetID == "" || a.sheets == nil {
		return csvSink, nil
	}
	return schedule.MultiSink{
		csvSink,
		sheets.NewMatchupSink(ctx, a.sheets, a.cfg.OutputSpreadsheetID, a.cfg.OutputRange),
	}, nil
}

func logSummary(summary schedule.Summary, output string) {
	event := log.Info().
		Str("output", output).
		Int("rows", summary.Rows).
		Int("matchups", summary.Matchups).
		Int("divisional", summary.ByType[league.Divisional]).
		Int("interleague", summary.ByType[league.Interleague]).
		Int("byes", summary.Byes).
		Int("empty_cells", summary.EmptyCells)
	if skipped := summary.SkippedRows + summary.SkippedCells; skipped > 0 {
		event = event.Int("skipped", skipped)
	}
	event.Msg("Schedule transform complete")

	for name, count := range summary.ByLeague {
		log.Debug().Str("league", name).Int("hosted", count).Msg("Host league total")
	}
}

// IsDataError reports whether err comes from the schedule contents rather
// than from I/O.
func IsDataError(err error) bool {
	return errors.Is(err, league.ErrUnrecognizedLeagueCode) ||
		errors.Is(err, schedule.ErrMissingAwayTeam) ||
		errors.Is(err, schedule.ErrMalformedRow) ||
		errors.Is(err, schedule.ErrShortRow) ||
		errors.Is(err, schedule.ErrEmptyGrid)
}
