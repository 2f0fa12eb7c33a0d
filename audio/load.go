// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"os"
)

// LoadFile decodes path into a Buffer using the decoder registered for its
// extension. Sources with more than two channels are folded to stereo, and
// when rate is positive the audio is resampled to it. Every failure wraps
// ErrDecode.
func LoadFile(reg *Registry, path string, rate int) (*Buffer, error) {
	dec, err := reg.Lookup(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	defer src.Close()

	if src.Channels() <= 0 || src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %s: %d channels at %d Hz", ErrDecode, path, src.Channels(), src.SampleRate())
	}

	if src.Channels() > 2 {
		src = NewStereoMixer(src)
	}
	if rate > 0 && src.SampleRate() != rate {
		src = NewResampler(src, rate)
	}

	buf, err := ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	if buf.Frames() == 0 {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, ErrEmptyBuffer)
	}

	return buf, nil
}
