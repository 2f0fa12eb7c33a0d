// SPDX-License-Identifier: EPL-2.0

// Package supervisor plays a set of tracks side by side until the caller's
// context ends or the process is interrupted.
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/audloop/audio"
	"github.com/ik5/audloop/device"
	"github.com/ik5/audloop/track"
)

// ErrInterrupted is the stop cause when a signal ended playback.
var ErrInterrupted = errors.New("interrupted")

// VolumeSetter sets the system output level in percent.
type VolumeSetter interface {
	SetVolume(ctx context.Context, percent int) error
}

// Terminal puts the controlling terminal back into its saved mode.
type Terminal interface {
	Restore() error
}

// Supervisor fans out one track.Runner per configuration. Mixer, Terminal
// and Stdout are optional.
type Supervisor struct {
	Output   device.Output
	Registry *audio.Registry
	Logger   *slog.Logger

	// Volume is applied through Mixer before playback; negative skips it.
	Volume int
	Mixer  VolumeSetter

	Terminal Terminal
	// Stdout receives the exit notice printed on interrupt.
	Stdout io.Writer
	// Signals stop playback. Empty means no signal handling.
	Signals []os.Signal

	PollInterval time.Duration
	FrameSize    int
}

// New returns a Supervisor that stops on SIGINT and SIGTERM and sets no
// volume.
func New(out device.Output, reg *audio.Registry, logger *slog.Logger) *Supervisor {
	return &Supervisor{
		Output:   out,
		Registry: reg,
		Logger:   logger,
		Volume:   -1,
		Stdout:   os.Stdout,
		Signals:  []os.Signal{os.Interrupt, syscall.SIGTERM},
	}
}

// TrackResult is how one track ended.
type TrackResult struct {
	Index  int
	Config track.Config
	State  track.State
	// Err is nil for a track that played until stopped.
	Err error
}

// Report summarises a Run.
type Report struct {
	Tracks      []TrackResult
	Interrupted bool
}

// Failed counts the tracks that ended with an error.
func (r Report) Failed() int {
	n := 0
	for _, t := range r.Tracks {
		if t.Err != nil {
			n++
		}
	}

	return n
}

// Run plays every configuration and returns once all tracks have
// terminated. Track failures are isolated and reported, never returned.
func (s *Supervisor) Run(ctx context.Context, cfgs []track.Config) Report {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	report := Report{Tracks: make([]TrackResult, len(cfgs))}
	if len(cfgs) == 0 {
		logger.Warn("no tracks configured")
		return report
	}

	s.setVolume(ctx, logger)

	stopCtx, stop := context.WithCancelCause(ctx)
	defer stop(nil)

	var watcher sync.WaitGroup
	if len(s.Signals) > 0 {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, s.Signals...)
		defer signal.Stop(sigs)

		watcher.Go(func() {
			select {
			case sig := <-sigs:
				s.notify("\r\nExiting...\n")
				logger.Info("stopping", "signal", sig)
				stop(fmt.Errorf("%w by %v", ErrInterrupted, sig))
			case <-stopCtx.Done():
			}
		})
	}

	runners := make([]*track.Runner, len(cfgs))
	var g errgroup.Group
	for i, cfg := range cfgs {
		runners[i] = track.NewRunner(i+1, cfg, s.Output, s.Registry, track.Options{
			Logger:       logger,
			PollInterval: s.PollInterval,
			FrameSize:    s.FrameSize,
		})

		g.Go(func() error {
			report.Tracks[i].Err = runners[i].Run(stopCtx)
			return nil
		})
	}

	// Runners never return an error through the group, so one failed track
	// leaves the others playing.
	_ = g.Wait()
	stop(nil)
	watcher.Wait()

	for i, r := range runners {
		report.Tracks[i].Index = r.Index()
		report.Tracks[i].Config = r.Config()
		report.Tracks[i].State = r.State()
	}

	if errors.Is(context.Cause(stopCtx), ErrInterrupted) {
		report.Interrupted = true
		if s.Terminal != nil {
			if err := s.Terminal.Restore(); err != nil {
				logger.Warn("restoring terminal", "err", err)
			}
		}
	}

	logger.Info("playback finished", "tracks", len(cfgs), "failed", report.Failed())

	return report
}

func (s *Supervisor) setVolume(ctx context.Context, logger *slog.Logger) {
	if s.Mixer == nil || s.Volume < 0 {
		return
	}

	if err := s.Mixer.SetVolume(ctx, s.Volume); err != nil {
		logger.Warn("setting output volume", "volume", s.Volume, "err", err)
		return
	}
	logger.Debug("output volume set", "volume", s.Volume)
}

func (s *Supervisor) notify(msg string) {
	if s.Stdout != nil {
		_, _ = io.WriteString(s.Stdout, msg)
	}
}
