// Package config defines the stopwatch runtime settings and provides helpers
// to load, validate and save them in YAML format.
//
// The Config type holds the tick cadence, the lap threshold table, the alarm
// sound command and the ledger state file path.
package config
