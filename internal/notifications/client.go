package notifications

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"interleague_schedule/internal/config"
	"interleague_schedule/internal/league"
	"interleague_schedule/internal/retry"
	"interleague_schedule/internal/schedule"

	"github.com/rs/zerolog/log"
)

// Client posts plain-text messages to an ntfy topic.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	topic       string
	enabled     bool
	priority    string
	retryConfig retry.Config
}

type NotificationError struct {
	Type       string
	StatusCode int
	Underlying error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification failed [%s]: %v", e.Type, e.Underlying)
}

func (e *NotificationError) Unwrap() error {
	return e.Underlying
}

func (e *NotificationError) IsRetryable() bool {
	switch e.Type {
	case "network", "server", "rate_limit":
		return true
	case "auth", "client":
		return false
	default:
		return e.StatusCode >= 500
	}
}

func NewClient(baseURL, topic string, enabled bool, priority string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		topic:       topic,
		enabled:     enabled,
		priority:    priority,
		retryConfig: config.DefaultResilienceConfig.Notify,
	}
}

// SendNotification posts message, retrying network and server failures.
func (c *Client) SendNotification(ctx context.Context, message string) error {
	if !c.enabled {
		log.Debug().Msg("Notifications disabled, skipping")
		return nil
	}

	_, err := retry.WithRetry(ctx, c.retryConfig, func(ctx context.Context) (struct{}, error) {
		err := c.sendSingleNotification(ctx, message)
		var notifErr *NotificationError
		if errors.As(err, &notifErr) && !notifErr.IsRetryable() {
			return struct{}{}, retry.Permanent(err)
		}
		return struct{}{}, err
	})
	return err
}

func (c *Client) sendSingleNotification(ctx context.Context, message string) error {
	url := fmt.Sprintf("%s/%s", c.baseURL, c.topic)

	log.Debug().
		Str("url", url).
		Str("message", message).
		Msg("Sending notification")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBufferString(message))
	if err != nil {
		return &NotificationError{Type: "client", Underlying: err}
	}

	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Title", "Interleague schedule")
	if c.priority != "" {
		req.Header.Set("Priority", c.priority)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NotificationError{Type: "network", Underlying: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &NotificationError{
			Type:       categorizeHTTPError(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Underlying: fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status),
		}
	}

	log.Debug().
		Int("status_code", resp.StatusCode).
		Msg("Notification sent successfully")
	return nil
}

// NotifySummary reports a finished transformation. Failures are logged, not
// returned: the matchup table is already written.
func (c *Client) NotifySummary(ctx context.Context, summary schedule.Summary, output string) {
	if !c.enabled {
		return
	}

	if err := c.SendNotification(ctx, FormatSummary(summary, output)); err != nil {
		log.Warn().Err(err).Msg("Failed to send summary notification")
		return
	}
	log.Info().Str("topic", c.topic).Msg("Sent summary notification")
}

// FormatSummary renders a run summary as a short plain-text message.
func FormatSummary(summary schedule.Summary, output string) string {
	var sb strings.Builder

	if summary.Matchups == 1 {
		sb.WriteString(fmt.Sprintf("1 matchup from %d schedule rows written to %s\n", summary.Rows, output))
	} else {
		sb.WriteString(fmt.Sprintf("%d matchups from %d schedule rows written to %s\n", summary.Matchups, summary.Rows, output))
	}

	sb.WriteString(fmt.Sprintf("%s: %d, %s: %d\n",
		league.Divisional, summary.ByType[league.Divisional],
		league.Interleague, summary.ByType[league.Interleague]))

	names := make([]string, 0, len(summary.ByLeague))
	for name := range summary.ByLeague {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("• %s hosts %d\n", name, summary.ByLeague[name]))
	}

	if skipped := summary.SkippedRows + summary.SkippedCells; skipped > 0 {
		sb.WriteString(fmt.Sprintf("⚠ %d invalid rows or cells skipped\n", skipped))
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func categorizeHTTPError(statusCode int) string {
	switch {
	case statusCode == 401 || statusCode == 403:
		return "auth"
	case statusCode == 429:
		return "rate_limit"
	case statusCode >= 400 && statusCode < 500:
		return "client"
	case statusCode >= 500:
		return "server"
	default:
		return "unknown"
	}
}
