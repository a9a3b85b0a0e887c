package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Feed.validate(); err != nil {
		return fmt.Errorf("feed: %w", err)
	}
	if err := c.Extraction.validate(); err != nil {
		return fmt.Errorf("extraction: %w", err)
	}
	if strings.TrimSpace(c.Library.Dir) == "" {
		return fmt.Errorf("library.dir is required")
	}
	if c.RateLimit.ExtractPerMinute <= 0 {
		return fmt.Errorf("rate_limit.extract_per_minute must be > 0 (got %d)", c.RateLimit.ExtractPerMinute)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (f FeedConfig) validate() error {
	if f.DailyQuota <= 0 {
		return fmt.Errorf("daily_quota must be > 0 (got %d)", f.DailyQuota)
	}
	if f.RepeatCooldown < 0 {
		return fmt.Errorf("repeat_cooldown must be >= 0 (got %v)", f.RepeatCooldown)
	}
	if f.DismissCooldown < 0 {
		return fmt.Errorf("dismiss_cooldown must be >= 0 (got %v)", f.DismissCooldown)
	}
	return nil
}

func (e ExtractionConfig) validate() error {
	if e.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be > 0 (got %v)", e.PollInterval)
	}
	if e.Timeout < e.PollInterval {
		return fmt.Errorf("timeout (%v) must not be shorter than poll_interval (%v)", e.Timeout, e.PollInterval)
	}
	if e.MinQuotes <= 0 || e.MaxQuotes < e.MinQuotes {
		return fmt.Errorf("quote range %d..%d is invalid", e.MinQuotes, e.MaxQuotes)
	}
	if e.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", e.MaxTokens)
	}
	if e.Breaker.FailureThreshold <= 0 || e.Breaker.FailureThreshold > 1 {
		return fmt.Errorf("breaker.failure_threshold must be in (0, 1] (got %v)", e.Breaker.FailureThreshold)
	}
	return nil
}

// HasAnalyzer reports whether an API key is configured. Without one the
// server still serves the feed but extraction requests fail upstream.
func (e ExtractionConfig) HasAnalyzer() bool {
	return strings.TrimSpace(e.APIKey) != ""
}
