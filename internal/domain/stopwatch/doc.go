// Package stopwatch contains the core timer state machine: the main clock
// state, the lap ledger with per-lap alarm configuration, the alarm
// evaluation rule and the elapsed-time formatter.
//
// The package is pure and single-threaded: every operation takes the current
// time as an argument and performs synchronous in-memory mutation only.
// Callers own locking and side effects (audio, persistence, display).
package stopwatch
