// Package watch implements the interactive lap-timer command: configuration
// loading, the stdin command loop mapped onto session operations, and the
// console display surface.
package watch
