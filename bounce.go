// SPDX-License-Identifier: EPL-2.0

package audloop

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ik5/audloop/audio"
	"github.com/ik5/audloop/formats/wav"
	"github.com/ik5/audloop/loop"
	"github.com/ik5/audloop/track"
)

const DefaultSampleRate = 44100

var ErrBounceDuration = errors.New("bounce duration must be positive")

// BounceOptions control an offline render. Zero SampleRate and FrameSize
// select defaults.
type BounceOptions struct {
	SampleRate int
	Duration   time.Duration
	FrameSize  int
	Logger     *slog.Logger
}

// Bounce renders Duration of cfg playing in a loop to w as 16-bit stereo
// WAV, exactly as a device would receive it. The start offset is rendered
// as leading silence and counts towards Duration.
func Bounce(w io.WriteSeeker, reg *audio.Registry, cfg track.Config, opts BounceOptions) error {
	if opts.Duration <= 0 {
		return fmt.Errorf("%w: %v", ErrBounceDuration, opts.Duration)
	}

	rate := opts.SampleRate
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	frameSize := opts.FrameSize
	if frameSize <= 0 {
		frameSize = track.DefaultFrameSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	buf, err := track.Prepare(reg, cfg, rate, logger.With("file", cfg.Path))
	if err != nil {
		return err
	}

	engine, err := loop.NewEngine(buf)
	if err != nil {
		return err
	}

	total := int(opts.Duration * time.Duration(rate) / time.Second)
	silence := min(int(uint64(cfg.OffsetStartMs)*uint64(rate)/1000), total)

	enc := wav.NewEncoder(w, rate, buf.Channels)
	scratch := make([]float32, frameSize*buf.Channels)

	for done := 0; done < total; {
		n := min(frameSize, total-done)
		chunk := scratch[:n*buf.Channels]

		if head := min(n, silence-done); head > 0 {
			clear(chunk[:head*buf.Channels])
			engine.Fill(chunk[head*buf.Channels:])
		} else {
			engine.Fill(chunk)
		}

		if err := enc.Write(chunk); err != nil {
			return fmt.Errorf("writing %s: %w", cfg.Path, err)
		}
		done += n
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Path, err)
	}

	logger.Info("bounced", "file", cfg.Path, "duration", opts.Duration,
		"rate", rate, "loop", buf.Duration())

	return nil
}
