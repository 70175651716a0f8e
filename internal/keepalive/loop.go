// Package keepalive plays a quiet tone at a fixed interval so powered studio
// monitors never see enough silence to drop into standby.
package keepalive

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/Mavwarf/standby/internal/audio"
	"github.com/Mavwarf/standby/internal/eventlog"
)

// Player plays one tone, blocking until it has finished.
type Player interface {
	PlayTone(t audio.Tone) error
}

// SleepFunc blocks for d or until ctx is done, returning ctx.Err() in the
// latter case.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Gate is consulted before each scheduled pulse. Returning skip=true drops
// that pulse; the loop still waits a full interval afterwards.
type Gate func() (skip bool, reason string)

// Loop emits Tone every Interval until its context is cancelled.
type Loop struct {
	Player   Player
	Tone     audio.Tone
	Interval time.Duration

	Sleep   SleepFunc              // nil = Sleep
	Gate    Gate                   // nil = always pulse
	Store   eventlog.Store         // nil = no event log
	Publish func(audio.Tone) error // nil = no heartbeat
	Out     io.Writer              // progress lines; nil = os.Stdout
	Errs    io.Writer              // best-effort diagnostics; nil = os.Stderr

	mu sync.Mutex // one tone at a time
}

// New returns a Loop with the given player, tone, and interval and all
// optional hooks unset.
func New(p Player, tone audio.Tone, interval time.Duration) *Loop {
	return &Loop{Player: p, Tone: tone, Interval: interval}
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Run pulses, waits Interval, and repeats. It returns nil once ctx is
// cancelled and the first playback error otherwise; there is no retry.
func (l *Loop) Run(ctx context.Context) error {
	sleep := l.Sleep
	if sleep == nil {
		sleep = Sleep
	}
	for {
		if ctx.Err() != nil {
			return nil
		}
		if err := l.pulse(false); err != nil {
			return err
		}
		fmt.Fprintf(l.out(), "Waiting for %s before the next signal...\n", describeInterval(l.Interval))
		if err := sleep(ctx, l.Interval); err != nil {
			return nil
		}
	}
}

// Pulse runs a single scheduled cycle: consult the gate, then play.
func (l *Loop) Pulse() error {
	return l.pulse(false)
}

// PulseNow plays the tone immediately, ignoring the gate.
func (l *Loop) PulseNow() error {
	return l.pulse(true)
}

func (l *Loop) pulse(force bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !force && l.Gate != nil {
		if skip, reason := l.Gate(); skip {
			fmt.Fprintf(l.out(), "Skipping signal: %s\n", reason)
			if l.Store != nil {
				if err := l.Store.LogSkip(reason); err != nil {
					fmt.Fprintf(l.errs(), "eventlog: %v\n", err)
				}
			}
			return nil
		}
	}

	fmt.Fprintln(l.out(), "Generating and playing sound to prevent standby...")
	if err := l.Player.PlayTone(l.Tone); err != nil {
		return err
	}

	if l.Store != nil {
		if err := l.Store.LogPulse(l.Tone); err != nil {
			fmt.Fprintf(l.errs(), "eventlog: %v\n", err)
		}
	}
	if l.Publish != nil {
		if err := l.Publish(l.Tone); err != nil {
			fmt.Fprintf(l.errs(), "heartbeat: %v\n", err)
		}
	}
	return nil
}

func (l *Loop) out() io.Writer {
	if l.Out == nil {
		return os.Stdout
	}
	return l.Out
}

func (l *Loop) errs() io.Writer {
	if l.Errs == nil {
		return os.Stderr
	}
	return l.Errs
}

// describeInterval renders whole minutes as "10 minutes" and anything else
// with Duration.String.
func describeInterval(d time.Duration) string {
	if d > 0 && d%time.Minute == 0 {
		m := int(d / time.Minute)
		if m == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", m)
	}
	return d.String()
}
