package schedule

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
)

// Source provides a whole schedule grid.
type Source interface {
	ReadGrid(ctx context.Context) (Grid, error)
}

// Sink receives matchup records in order. Close must be called exactly once,
// including after a failed run.
type Sink interface {
	Write(record MatchupRecord) error
	Close() error
}

// ReadCSV reads every row of r. Rows may have differing field counts; blank
// lines are ignored.
func ReadCSV(r io.Reader) (Grid, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return Grid{}, fmt.Errorf("failed to parse csv: %w", err)
	}
	return NewGrid(rows)
}

// CSVSource reads a grid from a CSV file.
type CSVSource struct {
	Path string
}

func (s CSVSource) ReadGrid(ctx context.Context) (Grid, error) {
	log.Debug().Str("path", s.Path).Msg("Reading schedule csv")

	f, err := os.Open(s.Path)
	if err != nil {
		return Grid{}, fmt.Errorf("failed to open schedule: %w", err)
	}
	defer f.Close()

	grid, err := ReadCSV(f)
	if err != nil {
		return Grid{}, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}

	log.Debug().
		Str("path", s.Path).
		Int("rows", len(grid.Rows)).
		Msg("Read schedule csv")
	return grid, nil
}

// CSVSink writes the matchup table as CSV with CRLF line endings.
type CSVSink struct {
	writer *csv.Writer
	closer io.Closer
}

// NewCSVSink writes the table header to w and returns a sink streaming rows to it.
func NewCSVSink(w io.Writer) (*CSVSink, error) {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	if err := writer.Write(Header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	return &CSVSink{writer: writer}, nil
}

// CreateCSVSink creates (or truncates) path and returns a sink writing to it.
func CreateCSVSink(path string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output: %w", err)
	}
	sink, err := NewCSVSink(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	sink.closer = f
	return sink, nil
}

func (s *CSVSink) Write(record MatchupRecord) error {
	return s.writer.Write(record.Fields())
}

// Close flushes buffered rows and closes the underlying file, if any.
func (s *CSVSink) Close() error {
	s.writer.Flush()
	err := s.writer.Error()
	if s.closer != nil {
		err = errors.Join(err, s.closer.Close())
	}
	return err
}

// MultiSink writes each record to every sink in order.
type MultiSink []Sink

func (m MultiSink) Write(record MatchupRecord) error {
	for _, s := range m {
		if err := s.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink, even when an earlier one fails.
func (m MultiSink) Close() error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}
