package audio

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
)

// Player is the audio device the alarm drives. Play restarts playback from
// the beginning; Stop silences a currently sounding alarm. Both are one-shot
// and best-effort: failures are reported, never retried.
type Player interface {
	Play(ctx context.Context) error
	Stop(ctx context.Context) error
}

// errNoCommand indicates a CommandPlayer was built without a program to run.
var errNoCommand = errors.New("no sound command configured")

// CommandPlayer sounds the alarm by running an external program, e.g.
// `paplay alarm.wav` or `afplay alarm.aiff`. Play kills any still-running
// instance first so playback always restarts from the beginning.
type CommandPlayer struct {
	// command is the program and its arguments.
	command []string
	// mu protects current.
	mu sync.Mutex
	// current is the in-flight playback process, nil when silent.
	current *exec.Cmd
}

// NewCommandPlayer creates a player that shells out to the provided command.
func NewCommandPlayer(command []string) *CommandPlayer {
	return &CommandPlayer{
		command: command,
	}
}

// Play restarts playback.
func (p *CommandPlayer) Play(ctx context.Context) error {
	if len(p.command) == 0 {
		return errNoCommand
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.killLocked()

	cmd := exec.CommandContext(ctx, p.command[0], p.command[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start sound command: %w", err)
	}

	p.current = cmd

	// Reap the process so it does not linger as a zombie.
	go func() {
		_ = cmd.Wait()
	}()

	return nil
}

// Stop silences the alarm if it is currently sounding.
func (p *CommandPlayer) Stop(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.killLocked()

	return nil
}

// killLocked terminates the current playback process, if any.
func (p *CommandPlayer) killLocked() {
	if p.current == nil {
		return
	}

	if p.current.Process != nil {
		_ = p.current.Process.Kill()
	}

	p.current = nil
}

// Nop is a Player that does nothing. Used when no sound command is
// configured; the alarm transition is still logged by the caller.
type Nop struct{}

// Play implements Player.
func (Nop) Play(context.Context) error { return nil }

// Stop implements Player.
func (Nop) Stop(context.Context) error { return nil }

// FromCommand returns a CommandPlayer for the provided command, or Nop when
// the command is empty.
func FromCommand(command []string) Player {
	if len(command) == 0 {
		return Nop{}
	}

	return NewCommandPlayer(command)
}
