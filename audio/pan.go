// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
)

// Pan positions b in the stereo field, p = -1 being hard left and +1 hard
// right. Mono input is expanded to stereo with left=(1-p)/2 and
// right=(1+p)/2. Stereo input has its channels scaled by the same factors,
// except p == 0 which leaves it untouched; this attenuates rather than
// re-balances an existing image.
//
// An out of range p returns b unmodified together with ErrPanningRange.
func Pan(b *Buffer, p float64) (*Buffer, error) {
	if math.IsNaN(p) || p < -1 || p > 1 {
		return b, fmt.Errorf("%w: %v", ErrPanningRange, p)
	}

	left := float32((1 - p) / 2)
	right := float32((1 + p) / 2)

	switch b.Channels {
	case 1:
		frames := b.Frames()
		out := &Buffer{
			Samples:    make([]float32, frames*2),
			Channels:   2,
			SampleRate: b.SampleRate,
		}

		switch p {
		case -1:
			for i, s := range b.Samples[:frames] {
				out.Samples[2*i] = s
			}
		case 1:
			for i, s := range b.Samples[:frames] {
				out.Samples[2*i+1] = s
			}
		default:
			for i, s := range b.Samples[:frames] {
				out.Samples[2*i] = s * left
				out.Samples[2*i+1] = s * right
			}
		}

		return out, nil

	case 2:
		if p == 0 {
			return b, nil
		}

		for i := 0; i+1 < len(b.Samples); i += 2 {
			b.Samples[i] *= left
			b.Samples[i+1] *= right
		}

		return b, nil
	}

	return b, fmt.Errorf("%w: %d channels", ErrChannelLayout, b.Channels)
}

// ToStereo duplicates a mono buffer into both channels at unity gain.
// Stereo buffers are returned as is.
func ToStereo(b *Buffer) (*Buffer, error) {
	switch b.Channels {
	case 2:
		return b, nil
	case 1:
		frames := b.Frames()
		out := &Buffer{
			Samples:    make([]float32, frames*2),
			Channels:   2,
			SampleRate: b.SampleRate,
		}
		for i, s := range b.Samples[:frames] {
			out.Samples[2*i] = s
			out.Samples[2*i+1] = s
		}

		return out, nil
	}

	return nil, fmt.Errorf("%w: %d channels", ErrChannelLayout, b.Channels)
}
