package engine

import (
	"fmt"
	"time"
)

// Mode selects which action phases a run performs.
type Mode string

const (
	ModeBoth       = Mode("both")
	ModeFollowBack = Mode("follow_back")
	ModeCleanup    = Mode("cleanup")
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeBoth, ModeFollowBack, ModeCleanup:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown automation action: %q", s)
	}
}

// Config holds one run's settings. Constructed once at startup and passed
// down; components read it, never the environment.
type Config struct {
	// Username is the account being reconciled.
	Username string
	// Mode selects follow-back, cleanup, or both.
	Mode Mode
	// MaxFollows caps candidates considered per run in the follow-back
	// phase; MaxUnfollows likewise for cleanup. Hard ceilings, counted per
	// candidate processed (not per successful mutation).
	MaxFollows   int
	MaxUnfollows int
	// ActionDelay is the courtesy pause after each successful mutation.
	ActionDelay time.Duration
	// PageFetchInterval paces consecutive listing page fetches.
	PageFetchInterval time.Duration
	// Cooldown is the pause between the follow-back and cleanup phases.
	Cooldown time.Duration
	// PageSize is the per_page value for listing requests.
	PageSize int
	// MaxPages bounds a single collection, as a guard against a listing
	// that never returns an empty page.
	MaxPages int
	// PopularityThreshold is the follower count above which an account is
	// never acted on.
	PopularityThreshold int64
}

// DefaultConfig returns the documented defaults for the given account.
func DefaultConfig(username string) Config {
	return Config{
		Username:            username,
		Mode:                ModeBoth,
		MaxFollows:          15,
		MaxUnfollows:        20,
		ActionDelay:         5 * time.Second,
		PageFetchInterval:   1 * time.Second,
		Cooldown:            10 * time.Second,
		PageSize:            100,
		MaxPages:            1000,
		PopularityThreshold: 10000,
	}
}

func (c *Config) Validate() error {
	if c.Username == "" {
		return fmt.Errorf("username is required")
	}
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if c.MaxFollows < 0 || c.MaxUnfollows < 0 {
		return fmt.Errorf("action caps must not be negative")
	}
	if c.PageSize < 1 {
		return fmt.Errorf("page size must be positive")
	}
	if c.MaxPages < 1 {
		return fmt.Errorf("page ceiling must be positive")
	}
	return nil
}
