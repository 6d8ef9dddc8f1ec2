package config

import (
	"time"

	"interleague_schedule/internal/retry"
)

type ResilienceConfig struct {
	SheetRead  retry.Config
	SheetWrite retry.Config
	Notify     retry.Config
}

var DefaultResilienceConfig = ResilienceConfig{
	SheetRead: retry.Config{
		Name:       "sheet read",
		MaxRetries: 3,
		BaseDelay:  2 * time.Second,
		MaxDelay:   30 * time.Second,
		Timeout:    15 * time.Second,
	},
	SheetWrite: retry.Config{
		Name:       "sheet write",
		MaxRetries: 3,
		BaseDelay:  2 * time.Second,
		MaxDelay:   30 * time.Second,
		Timeout:    30 * time.Second,
	},
	Notify: retry.Config{
		Name:       "notification",
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   10 * time.Second,
		Timeout:    10 * time.Second,
	},
}
