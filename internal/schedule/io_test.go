package schedule

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"interleague_schedule/internal/league"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	input := ",,ma1,ba1\n2024-01-02,Tue,ba2,ma2\n\n2024-01-03,Wed,bye\n"

	grid, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"", "", "ma1", "ba1"}, grid.Header)
	assert.Equal(t, []string{"ma1", "ba1"}, grid.AwayTeams())
	assert.Equal(t, [][]string{
		{"2024-01-02", "Tue", "ba2", "ma2"},
		{"2024-01-03", "Wed", "bye"},
	}, grid.Rows)
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyGrid)
}

func TestCSVSourceMissingFile(t *testing.T) {
	_, err := CSVSource{Path: filepath.Join(t.TempDir(), "missing.csv")}.ReadGrid(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCSVSinkWritesHeaderAndRecords(t *testing.T) {
	var buf bytes.Buffer
	sink, err := NewCSVSink(&buf)
	require.NoError(t, err)

	require.NoError(t, sink.Write(MatchupRecord{
		Date: "2024-01-02", Day: "Tue", Home: "nc1", Away: "ba1",
		HostLeague: "North Central", Type: league.Interleague,
	}))
	require.NoError(t, sink.Write(MatchupRecord{
		Date: "Jan 3, 2024", Day: "Wed", Home: "qa1", Away: "qa2",
		HostLeague: "Queen Anne", Type: league.Divisional,
	}))
	require.NoError(t, sink.Close())

	assert.Equal(t,
		"Date,Day,Home,Away,Host League,Type\r\n"+
			"2024-01-02,Tue,nc1,ba1,North Central,Interleague\r\n"+
			"\"Jan 3, 2024\",Wed,qa1,qa2,Queen Anne,Divisional\r\n",
		buf.String())
}

func TestCSVFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.csv")
	out := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(in, []byte(",,ma1,ba1\n2024-01-02,Tue,ba2,ma2\n"), 0o644))

	grid, err := CSVSource{Path: in}.ReadGrid(context.Background())
	require.NoError(t, err)

	sink, err := CreateCSVSink(out)
	require.NoError(t, err)
	_, err = NewTransformer(Policy{}).Transform(grid, sink.Write)
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t,
		"Date,Day,Home,Away,Host League,Type\r\n"+
			"2024-01-02,Tue,ba2,ma1,Ballard,Interleague\r\n"+
			"2024-01-02,Tue,ma2,ba1,Magnolia,Interleague\r\n",
		string(data))
}

type recordingSink struct {
	records  []MatchupRecord
	closed   bool
	writeErr error
	closeErr error
}

func (s *recordingSink) Write(r MatchupRecord) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.records = append(s.records, r)
	return nil
}

func (s *recordingSink) Close() error {
	s.closed = true
	return s.closeErr
}

func TestMultiSink(t *testing.T) {
	first := &recordingSink{closeErr: errors.New("first close")}
	second := &recordingSink{}
	sink := MultiSink{first, second}

	record := MatchupRecord{Home: "ba1"}
	require.NoError(t, sink.Write(record))
	assert.Equal(t, []MatchupRecord{record}, first.records)
	assert.Equal(t, []MatchupRecord{record}, second.records)

	err := sink.Close()
	assert.ErrorContains(t, err, "first close")
	assert.True(t, first.closed)
	assert.True(t, second.closed)
}

func TestMultiSinkStopsOnWriteError(t *testing.T) {
	failing := &recordingSink{writeErr: errors.New("boom")}
	after := &recordingSink{}

	err := MultiSink{failing, after}.Write(MatchupRecord{})
	assert.EqualError(t, err, "boom")
	assert.Empty(t, after.records)
}
