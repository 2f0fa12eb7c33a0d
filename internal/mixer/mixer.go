// SPDX-License-Identifier: EPL-2.0

// Package mixer sets the system output level through ALSA's amixer.
package mixer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

const DefaultControl = "Master"

var (
	ErrMixer       = errors.New("mixer command failed")
	ErrVolumeRange = errors.New("volume must be between 0 and 100")
)

// CommandFunc runs name with args and returns its combined output.
type CommandFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Mixer drives one amixer simple control.
type Mixer struct {
	control string
	run     CommandFunc
}

// New returns a Mixer for control, "Master" when empty. A nil run executes
// the real amixer binary.
func New(control string, run CommandFunc) *Mixer {
	if control == "" {
		control = DefaultControl
	}
	if run == nil {
		run = execCommand
	}

	return &Mixer{control: control, run: run}
}

// SetVolume sets the control to percent of its range.
func (m *Mixer) SetVolume(ctx context.Context, percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: %d", ErrVolumeRange, percent)
	}

	out, err := m.run(ctx, "amixer", "-q", "sset", m.control, strconv.Itoa(percent)+"%")
	if err != nil {
		if msg := bytes.TrimSpace(out); len(msg) > 0 {
			return fmt.Errorf("%w: %w: %s", ErrMixer, err, msg)
		}
		return fmt.Errorf("%w: %w", ErrMixer, err)
	}

	return nil
}

func execCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}
