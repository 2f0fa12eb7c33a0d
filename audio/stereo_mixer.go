// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// StereoMixer folds a source with more than two channels down to stereo.
// Even-indexed channels are averaged into the left output and odd-indexed
// channels into the right. Mono and stereo sources pass through unchanged.
type StereoMixer struct {
	src  Source
	tmp  []float32
	held int // samples of a partial frame kept at the front of tmp
}

func NewStereoMixer(src Source) *StereoMixer {
	return &StereoMixer{
		src: src,
		tmp: make([]float32, 4096),
	}
}

func (m *StereoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *StereoMixer) BufSize() int    { return m.src.BufSize() }

func (m *StereoMixer) Channels() int {
	if m.src.Channels() <= 2 {
		return m.src.Channels()
	}

	return 2
}

func (m *StereoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *StereoMixer) ReadSamples(dst []float32) (int, error) {
	channels := m.src.Channels()
	if channels <= 2 {
		return m.src.ReadSamples(dst)
	}
	if len(dst)%2 != 0 {
		return 0, ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	needed := len(dst) / 2 * channels
	if cap(m.tmp) < needed {
		grown := make([]float32, needed)
		copy(grown, m.tmp[:m.held])
		m.tmp = grown
	}
	m.tmp = m.tmp[:needed]

	n, err := m.src.ReadSamples(m.tmp[m.held:])
	total := m.held + n
	frames := total / channels

	left := float32(1) / float32((channels+1)/2)
	right := float32(1) / float32(channels/2)

	for f := range frames {
		in := m.tmp[f*channels : (f+1)*channels]
		var l, r float32
		for c, v := range in {
			if c%2 == 0 {
				l += v
			} else {
				r += v
			}
		}
		dst[2*f] = l * left
		dst[2*f+1] = r * right
	}

	m.held = copy(m.tmp, m.tmp[frames*channels:total])

	return frames * 2, err
}
