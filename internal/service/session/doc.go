// Package session orchestrates one stopwatch session: the clock state, the
// lap ledger, the periodic tick loop and the alarm/persistence/display side
// effects.
//
// User actions and ticks are serialized behind a single mutex; within one
// critical section a single wall-clock reading is used, and the elapsed
// refresh always precedes alarm evaluation so the alarm never fires on stale
// lap times.
package session
