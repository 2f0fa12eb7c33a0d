// SPDX-License-Identifier: EPL-2.0

package track

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ik5/audloop/audio"
	"github.com/ik5/audloop/device"
	"github.com/ik5/audloop/loop"
)

const (
	DefaultPollInterval = time.Second
	DefaultFrameSize    = 1024

	diagnosticsCapacity = 64
)

// Options tune a Runner. Zero values select the defaults.
type Options struct {
	Logger       *slog.Logger
	PollInterval time.Duration
	FrameSize    int
}

// Runner plays one track from its configuration until stopped.
type Runner struct {
	index    int
	cfg      Config
	out      device.Output
	reg      *audio.Registry
	logger   *slog.Logger
	interval time.Duration
	frames   int

	state atomic.Int32
}

// NewRunner prepares a runner for the index'th track (1-based, used in
// logs) playing through out.
func NewRunner(index int, cfg Config, out device.Output, reg *audio.Registry, opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &Runner{
		index:    index,
		cfg:      cfg,
		out:      out,
		reg:      reg,
		logger:   logger.With("track", index, "file", cfg.Path, "line", cfg.Line),
		interval: opts.PollInterval,
		frames:   opts.FrameSize,
	}
	if r.interval <= 0 {
		r.interval = DefaultPollInterval
	}
	if r.frames <= 0 {
		r.frames = DefaultFrameSize
	}

	return r
}

func (r *Runner) Index() int     { return r.index }
func (r *Runner) Config() Config { return r.cfg }

// State may be called from any goroutine.
func (r *Runner) State() State { return State(r.state.Load()) }

func (r *Runner) setState(s State) {
	r.state.Store(int32(s))
	r.logger.Debug("state changed", "state", s)
}

// Run plays the track until ctx is done. It returns nil when stopped, or
// the error that ended the track; errors are logged here as well. A stop
// before the device is opened ends the track quietly.
func (r *Runner) Run(ctx context.Context) error {
	defer r.setState(Terminated)

	if !r.delay(ctx) {
		r.logger.Debug("stopped before start")
		return nil
	}

	r.setState(Loading)
	buf, err := load(r.reg, r.cfg, r.out.SampleRate())
	if err != nil {
		r.logger.Error("track dropped", "state", Loading, "err", err)
		return err
	}

	r.setState(Transforming)
	buf, err = transform(buf, r.cfg, r.logger)
	if err == nil && buf.Channels != r.out.Channels() {
		err = fmt.Errorf("%w: %w: %d channels, device has %d",
			device.ErrDevice, device.ErrFormatMismatch, buf.Channels, r.out.Channels())
	}
	if err != nil {
		r.logger.Error("track dropped", "state", Transforming, "err", err)
		return err
	}

	if ctx.Err() != nil {
		return nil
	}

	engine, err := loop.NewEngine(buf)
	if err != nil {
		r.logger.Error("track dropped", "state", Transforming, "err", err)
		return err
	}
	diag := loop.NewDiagnostics(diagnosticsCapacity)

	stream, err := r.out.Open(loop.NewReader(engine, r.frames, diag), r.frames)
	if err != nil {
		if !errors.Is(err, device.ErrDevice) {
			err = fmt.Errorf("%w: %w", device.ErrDevice, err)
		}
		r.logger.Error("track dropped", "state", Streaming, "err", err)
		return err
	}

	r.setState(Streaming)
	r.logger.Info("playing", "frames", buf.Frames(), "loop", buf.Duration(), "cfg", r.cfg)

	err = r.stream(ctx, stream, diag)

	r.setState(Closed)
	if cerr := stream.Close(); cerr != nil {
		r.logger.Warn("closing stream", "err", cerr)
	}

	return err
}

// delay waits out the start offset. It reports false when ctx ended first.
func (r *Runner) delay(ctx context.Context) bool {
	if r.cfg.OffsetStartMs == 0 {
		return ctx.Err() == nil
	}

	r.setState(DelayedStart)

	t := time.NewTimer(time.Duration(r.cfg.OffsetStartMs) * time.Millisecond)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (r *Runner) stream(ctx context.Context, s device.Stream, diag *loop.Diagnostics) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.drain(diag)
			return nil

		case <-ticker.C:
			r.drain(diag)

			if err := s.Err(); err != nil {
				if !errors.Is(err, device.ErrDevice) {
					err = fmt.Errorf("%w: %w", device.ErrDevice, err)
				}
				r.logger.Error("stream failed", "err", err)
				return err
			}
		}
	}
}

func (r *Runner) drain(diag *loop.Diagnostics) {
	dropped := diag.Drain(func(e loop.Event) {
		switch e.Kind {
		case loop.Clipped:
			r.logger.Warn("samples clipped", "count", e.Count)
		default:
			r.logger.Debug("fill event", "kind", e.Kind, "count", e.Count)
		}
	})

	if dropped > 0 {
		r.logger.Warn("diagnostics dropped", "count", dropped)
	}
}
