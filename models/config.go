// Package models defines data structures shared across the migration commands.
package models

import "time"

// MigrateConfig holds runtime configuration for a migration run.
// All values come from CLI flags; the defaults reproduce the original
// zero-argument behavior of the export fixup.
type MigrateConfig struct {
	RootDir    string
	RemoteHost string
	Timeout    time.Duration
	Ledger     bool
	LedgerPath string
}
