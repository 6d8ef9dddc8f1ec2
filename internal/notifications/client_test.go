package notifications

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"interleague_schedule/internal/league"
	"interleague_schedule/internal/retry"
	"interleague_schedule/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastRetry = retry.Config{
	Name:       "notification",
	MaxRetries: 2,
	BaseDelay:  time.Millisecond,
	MaxDelay:   5 * time.Millisecond,
	Timeout:    time.Second,
}

func TestSendNotification(t *testing.T) {
	var body, path, priority string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body, path, priority = string(b), r.URL.Path, r.Header.Get("Priority")
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "schedule", true, "high")
	require.NoError(t, client.SendNotification(context.Background(), "hello"))
	assert.Equal(t, "hello", body)
	assert.Equal(t, "/schedule", path)
	assert.Equal(t, "high", priority)
}

func TestSendNotificationDisabled(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := NewClient(server.URL, "schedule", false, "")
	require.NoError(t, client.SendNotification(context.Background(), "hello"))
	assert.Zero(t, calls.Load())
}

func TestSendNotificationRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "schedule", true, "")
	client.retryConfig = fastRetry
	require.NoError(t, client.SendNotification(context.Background(), "hello"))
	assert.Equal(t, int32(3), calls.Load())
}

func TestSendNotificationDoesNotRetryAuthErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, "schedule", true, "")
	client.retryConfig = fastRetry
	err := client.SendNotification(context.Background(), "hello")

	var notifErr *NotificationError
	require.ErrorAs(t, err, &notifErr)
	assert.Equal(t, "auth", notifErr.Type)
	assert.Equal(t, http.StatusForbidden, notifErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFormatSummary(t *testing.T) {
	summary := schedule.Summary{
		Rows:         4,
		Matchups:     3,
		SkippedCells: 1,
		ByLeague:     map[string]int{"Magnolia": 1, "Ballard": 2},
		ByType:       map[league.MatchupType]int{league.Divisional: 1, league.Interleague: 2},
	}

	assert.Equal(t,
		"3 matchups from 4 schedule rows written to out.csv\n"+
			"Divisional: 1, Interleague: 2\n"+
			"• Ballard hosts 2\n"+
			"• Magnolia hosts 1\n"+
			"⚠ 1 invalid rows or cells skipped",
		FormatSummary(summary, "out.csv"))
}

func TestCategorizeHTTPError(t *testing.T) {
	assert.Equal(t, "auth", categorizeHTTPError(401))
	assert.Equal(t, "rate_limit", categorizeHTTPError(429))
	assert.Equal(t, "client", categorizeHTTPError(404))
	assert.Equal(t, "server", categorizeHTTPError(503))
}
