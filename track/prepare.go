// SPDX-License-Identifier: EPL-2.0

package track

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ik5/audloop/audio"
)

// Prepare builds the render buffer for cfg at rate: decode, trim, gain and
// pan. The result is always stereo.
func Prepare(reg *audio.Registry, cfg Config, rate int, logger *slog.Logger) (*audio.Buffer, error) {
	buf, err := load(reg, cfg, rate)
	if err != nil {
		return nil, err
	}

	return transform(buf, cfg, logger)
}

func load(reg *audio.Registry, cfg Config, rate int) (*audio.Buffer, error) {
	buf, err := audio.LoadFile(reg, cfg.Path, rate)
	if err != nil {
		return nil, err
	}

	if err := buf.Trim(cfg.TrimStartMs, cfg.TrimEndMs); err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Path, err)
	}

	return buf, nil
}

func transform(buf *audio.Buffer, cfg Config, logger *slog.Logger) (*audio.Buffer, error) {
	audio.ApplyGain(buf, cfg.GainDB)

	out, err := audio.Pan(buf, cfg.Panning)
	if errors.Is(err, audio.ErrPanningRange) {
		logger.Warn("panning out of range, playing unpanned", "panning", cfg.Panning)
		out, err = audio.ToStereo(buf)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Path, err)
	}

	return out, nil
}
