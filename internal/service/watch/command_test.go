package watch

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/lap-timer/internal/clock"
	"github.com/oshokin/lap-timer/internal/service/audio"
	"github.com/oshokin/lap-timer/internal/service/session"
)

// newDispatchFixture builds a session on a manual clock plus capture buffers
// for dispatch tests.
func newDispatchFixture(t *testing.T) (*session.Service, *clock.Manual, *ConsoleDisplay, *bytes.Buffer) {
	t.Helper()

	manual := clock.NewManual(time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC))

	svc := session.NewService(context.Background(), session.Deps{
		Clock:        manual,
		Player:       audio.Nop{},
		TickInterval: time.Hour,
	})
	t.Cleanup(svc.Close)

	var out bytes.Buffer

	return svc, manual, NewConsoleDisplay(&out), &out
}

// TestDispatch_LifecycleCommands verifies start/lap/pause/reset map onto the
// session operations.
func TestDispatch_LifecycleCommands(t *testing.T) {
	t.Parallel()

	svc, manual, display, out := newDispatchFixture(t)
	ctx := context.Background()

	require.False(t, dispatch(ctx, svc, display, out, "start"))
	require.True(t, svc.Snapshot().Running)

	manual.Advance(2 * time.Second)
	require.False(t, dispatch(ctx, svc, display, out, "lap"))
	require.Len(t, svc.Snapshot().Laps, 2)

	require.False(t, dispatch(ctx, svc, display, out, "pause"))
	require.False(t, svc.Snapshot().Running)

	require.False(t, dispatch(ctx, svc, display, out, "reset"))
	require.Empty(t, svc.Snapshot().Laps)

	require.True(t, dispatch(ctx, svc, display, out, "quit"))
}

// TestDispatch_AlarmCommands verifies arm and threshold commands, including
// argument validation.
func TestDispatch_AlarmCommands(t *testing.T) {
	t.Parallel()

	svc, _, display, out := newDispatchFixture(t)
	ctx := context.Background()

	dispatch(ctx, svc, display, out, "start")

	require.False(t, dispatch(ctx, svc, display, out, "threshold 1 90s"))
	require.Equal(t, 90*time.Second, svc.Snapshot().Laps[0].Threshold)

	require.False(t, dispatch(ctx, svc, display, out, "arm 1"))
	require.False(t, svc.Snapshot().Laps[0].Armed)

	out.Reset()
	dispatch(ctx, svc, display, out, "arm")
	require.Contains(t, out.String(), "usage: arm <lap>")

	out.Reset()
	dispatch(ctx, svc, display, out, "threshold 1 nonsense")
	require.Contains(t, out.String(), "invalid duration")

	out.Reset()
	dispatch(ctx, svc, display, out, "threshold zero 5m")
	require.Contains(t, out.String(), "usage: threshold <lap> <duration>")
}

// TestDispatch_StatusAndUnknown verifies the status table and the unknown
// command hint.
func TestDispatch_StatusAndUnknown(t *testing.T) {
	t.Parallel()

	svc, _, display, out := newDispatchFixture(t)
	ctx := context.Background()

	dispatch(ctx, svc, display, out, "start")

	out.Reset()
	dispatch(ctx, svc, display, out, "status")
	require.Contains(t, out.String(), "total 00:00:00 (running)")
	require.Contains(t, out.String(), "* lap 1")

	out.Reset()
	dispatch(ctx, svc, display, out, "bogus")
	require.Contains(t, out.String(), `unknown command "bogus"`)

	// Blank lines are ignored.
	require.False(t, dispatch(ctx, svc, display, out, "   "))
}
