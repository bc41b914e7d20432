package model

import (
	"time"
)

// DeploymentRecord is appended after each successful asset deploy.
type DeploymentRecord struct {
	Timestamp   time.Time
	WalletIndex int
	Kind        AssetKind
	Asset       string // mint address
}

// InteractionRecord is appended after each interaction that did not fail.
type InteractionRecord struct {
	Timestamp   time.Time
	WalletIndex int
	Kind        AssetKind
	Action      string
	Result      string
}

// Settings controls the interaction phase of an orchestration run.
// Mutated from the settings menu, read by the orchestrator; not persisted.
type Settings struct {
	InteractionCount int // per deployed asset, must be >= 1
	IntervalMinutes  int // delay between interactions, must be >= 0
}

// DefaultSettings returns the startup settings.
func DefaultSettings() *Settings {
	return &Settings{
		InteractionCount: 3,
		IntervalMinutes:  1,
	}
}

// Interval returns the inter-interaction delay as a duration.
func (s *Settings) Interval() time.Duration {
	return time.Duration(s.IntervalMinutes) * time.Minute
}
