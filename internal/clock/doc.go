// Package clock provides the wall-clock abstraction used by the stopwatch
// core.
//
// Production code uses System; tests use Manual to control time explicitly.
package clock
