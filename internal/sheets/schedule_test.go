package sheets

import (
	"context"
	"testing"

	"interleague_schedule/internal/league"
	"interleague_schedule/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeValues struct {
	values  [][]interface{}
	cleared []string
	updated map[string][][]interface{}
}

func (f *fakeValues) ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error) {
	return f.values, nil
}

func (f *fakeValues) ClearRange(ctx context.Context, spreadsheetID, range_ string) error {
	f.cleared = append(f.cleared, range_)
	return nil
}

func (f *fakeValues) UpdateRange(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error {
	if f.updated == nil {
		f.updated = make(map[string][][]interface{})
	}
	f.updated[range_] = values
	return nil
}

func TestGridSourceReadsSheet(t *testing.T) {
	api := &fakeValues{values: [][]interface{}{
		{"", "", "ma1", "ba1"},
		{"2024-01-02", "Tue", "ba2", nil, "bye"},
	}}

	grid, err := GridSource{API: api, SpreadsheetID: "id", Range: "Schedule!A1:Z1000"}.ReadGrid(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"", "", "ma1", "ba1"}, grid.Header)
	assert.Equal(t, [][]string{{"2024-01-02", "Tue", "ba2", "", "bye"}}, grid.Rows)
}

func TestGridSourceEmptySheet(t *testing.T) {
	_, err := GridSource{API: &fakeValues{}, SpreadsheetID: "id", Range: "Schedule!A1"}.ReadGrid(context.Background())
	assert.ErrorIs(t, err, schedule.ErrEmptyGrid)
}

func TestToRowsFormatsNumbers(t *testing.T) {
	rows := ToRows([][]interface{}{{float64(3), "Mon", nil}})
	assert.Equal(t, [][]string{{"3", "Mon", ""}}, rows)
}

func TestMatchupSinkReplacesSheet(t *testing.T) {
	api := &fakeValues{}
	sink := NewMatchupSink(context.Background(), api, "id", "Matchups!A1")

	require.NoError(t, sink.Write(schedule.MatchupRecord{
		Date: "2024-01-02", Day: "Tue", Home: "ba2", Away: "ma1",
		HostLeague: "Ballard", Type: league.Interleague,
	}))
	require.NoError(t, sink.Close())

	assert.Equal(t, []string{"Matchups"}, api.cleared)
	assert.Equal(t, [][]interface{}{
		{"Date", "Day", "Home", "Away", "Host League", "Type"},
		{"2024-01-02", "Tue", "ba2", "ma1", "Ballard", "Interleague"},
	}, api.updated["Matchups!A1"])
}
