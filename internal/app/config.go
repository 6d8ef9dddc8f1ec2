package app

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"interleague_schedule/internal/notifications"
	"interleague_schedule/internal/schedule"
	"interleague_schedule/internal/sheets"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds everything a run needs. The zero-configuration defaults read
// a.csv and write out.csv in the working directory.
type Config struct {
	InputPath  string
	OutputPath string
	Policy     schedule.Policy

	CredentialsFile     string
	InputSpreadsheetID  string
	InputRange          string
	OutputSpreadsheetID string
	OutputRange         string

	NotifyEnabled  bool
	NotifyURL      string
	NotifyTopic    string
	NotifyPriority string
}

// SetupEnvironment loads .env file and configures zerolog output and log level.
func SetupEnvironment() {
	// Load .env file if it exists
	err := godotenv.Load()

	if os.Getenv("ENV") == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	levelStr := strings.ToLower(os.Getenv("LOGLEVEL"))
	switch levelStr {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case "":
		if os.Getenv("ENV") == "production" {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", levelStr)
	}

	// wait until now to report on the .env file so we have the chance to set up logging first
	if err == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found or error loading .env file; proceeding with existing environment variables.")
	}
}

// GetEnvWithDefault fetches an environment variable with a default fallback.
func GetEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// LoadConfig reads the run configuration from the environment.
func LoadConfig() (Config, error) {
	strict, err := strconv.ParseBool(GetEnvWithDefault("SCHEDULE_STRICT_ROWS", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid SCHEDULE_STRICT_ROWS: %w", err)
	}
	onInvalid, err := schedule.ParseInvalidAction(os.Getenv("SCHEDULE_ON_INVALID"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid SCHEDULE_ON_INVALID: %w", err)
	}

	cfg := Config{
		InputPath:  GetEnvWithDefault("SCHEDULE_INPUT", "a.csv"),
		OutputPath: GetEnvWithDefault("SCHEDULE_OUTPUT", "out.csv"),
		Policy: schedule.Policy{
			StrictRows: strict,
			OnInvalid:  onInvalid,
		},
		CredentialsFile:     GetEnvWithDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		InputSpreadsheetID:  os.Getenv("INPUT_SPREADSHEET_ID"),
		InputRange:          GetEnvWithDefault("INPUT_SPREADSHEET_RANGE", "Schedule!A1:Z1000"),
		OutputSpreadsheetID: os.Getenv("OUTPUT_SPREADSHEET_ID"),
		OutputRange:         GetEnvWithDefault("OUTPUT_SPREADSHEET_RANGE", "Matchups!A1"),
		NotifyEnabled:       GetEnvWithDefault("NTFY_ENABLED", "false") == "true",
		NotifyURL:           GetEnvWithDefault("NTFY_URL", "https://ntfy.sh"),
		NotifyTopic:         GetEnvWithDefault("NTFY_TOPIC", "interleague-schedule"),
		NotifyPriority:      os.Getenv("NTFY_PRIORITY"),
	}

	log.Debug().
		Str("input", cfg.InputPath).
		Str("output", cfg.OutputPath).
		Bool("strict_rows", cfg.Policy.StrictRows).
		Str("on_invalid", cfg.Policy.OnInvalid.String()).
		Bool("sheet_input", cfg.InputSpreadsheetID != "").
		Bool("sheet_output", cfg.OutputSpreadsheetID != "").
		Msg("Loaded configuration")
	return cfg, nil
}

// usesSheets reports whether either side of the run is a spreadsheet.
func (c Config) usesSheets() bool {
	return c.InputSpreadsheetID != "" || c.OutputSpreadsheetID != ""
}

// InitializeSheetsClient creates the Google Sheets client when the
// configuration reads from or writes to a spreadsheet; otherwise it returns nil.
func InitializeSheetsClient(ctx context.Context, cfg Config) (*sheets.Client, error) {
	if !cfg.usesSheets() {
		return nil, nil
	}

	log.Debug().Str("credentials", cfg.CredentialsFile).Msg("Initializing sheets client")
	client, err := sheets.NewClient(ctx, cfg.CredentialsFile)
	if err != nil {
		return nil, err
	}
	log.Debug().Msg("Sheets client initialized successfully")
	return client, nil
}

// InitializeNotificationClient creates and returns the notification client
func InitializeNotificationClient(cfg Config) *notifications.Client {
	log.Debug().
		Bool("enabled", cfg.NotifyEnabled).
		Str("base_url", cfg.NotifyURL).
		Str("topic", cfg.NotifyTopic).
		Msg("Initializing notification client")

	client := notifications.NewClient(cfg.NotifyURL, cfg.NotifyTopic, cfg.NotifyEnabled, cfg.NotifyPriority)

	if cfg.NotifyEnabled {
		log.Info().Str("topic", cfg.NotifyTopic).Msg("Notifications enabled")
	} else {
		log.Debug().Msg("Notifications disabled")
	}

	return client
}
