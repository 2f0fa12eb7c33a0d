// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides sources, devices and fixtures for tests.
package audiotest

import (
	"io"
	"math"
)

// MockSource generates audio from a waveform function.
// It implements the audio.Source interface (without importing it).
type MockSource struct {
	sampleRate int
	channels   int
	frames     int // total frames to generate
	generated  int
	waveform   func(frame int, channel int) float32
	closed     bool
}

// NewMockSource creates a source of frames frames whose sample values come
// from waveform.
func NewMockSource(sampleRate, channels, frames int, waveform func(frame int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

// NewSilentSource creates a source that generates silence.
func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

// NewSineSource creates a source that generates a sine wave on every channel.
func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame int, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a source with a constant value.
func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 {
		return value
	})
}

// NewRampSource creates a source whose sample value encodes its frame and
// channel (frame + channel/10), handy for checking positions.
func NewRampSource(sampleRate, channels, frames int) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame int, channel int) float32 {
		return float32(frame) + float32(channel)/10
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset rewinds the source to its first frame.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, m.frames-m.generated)
	for f := range n {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}

	m.generated += n
	if m.generated >= m.frames {
		return n * m.channels, io.EOF
	}

	return n * m.channels, nil
}

// ChunkedSource serves fixed interleaved samples at most chunk values per
// read, regardless of frame boundaries, like decoders that count bytes.
type ChunkedSource struct {
	sampleRate int
	channels   int
	chunk      int
	samples    []float32
	off        int
}

// NewChunkedSource renders frames frames of waveform up front and serves
// them chunk samples at a time.
func NewChunkedSource(sampleRate, channels, frames, chunk int, waveform func(frame int, channel int) float32) *ChunkedSource {
	samples := make([]float32, 0, frames*channels)
	for f := range frames {
		for ch := range channels {
			samples = append(samples, waveform(f, ch))
		}
	}

	return &ChunkedSource{
		sampleRate: sampleRate,
		channels:   channels,
		chunk:      chunk,
		samples:    samples,
	}
}

func (s *ChunkedSource) SampleRate() int { return s.sampleRate }
func (s *ChunkedSource) Channels() int   { return s.channels }
func (s *ChunkedSource) BufSize() int    { return s.chunk }
func (s *ChunkedSource) Close() error    { return nil }

func (s *ChunkedSource) ReadSamples(dst []float32) (int, error) {
	if s.off >= len(s.samples) {
		return 0, io.EOF
	}

	n := copy(dst[:min(len(dst), s.chunk)], s.samples[s.off:])
	s.off += n
	if s.off >= len(s.samples) {
		return n, io.EOF
	}

	return n, nil
}
