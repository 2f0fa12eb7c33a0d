// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// mockOggVorbisReader simulates oggvorbis.Reader, which returns a count of
// values, always whole frames.
type mockOggVorbisReader struct {
	sampleRate int
	channels   int
	samples    []float32
	err        error
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if len(m.samples) == 0 {
		return 0, io.EOF
	}

	n := len(buf) - len(buf)%m.channels
	n = copy(buf[:n], m.samples)
	m.samples = m.samples[n:]

	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("This is not Ogg Vorbis data"))); err == nil {
		t.Error("Decode() error = nil, want error for invalid data")
	}
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader(nil)); err == nil {
		t.Error("Decode() error = nil, want error for empty input")
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	mock := &mockOggVorbisReader{
		sampleRate: 48000,
		channels:   2,
		samples:    []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3},
	}
	src := &source{dec: mock, sampleRate: 48000, channels: 2}

	if src.SampleRate() != 48000 || src.Channels() != 2 {
		t.Fatalf("metadata = %d Hz / %d ch, want 48000 / 2", src.SampleRate(), src.Channels())
	}

	// 5 slots: only 2 whole frames may be written
	dst := make([]float32, 5)
	n, err := src.ReadSamples(dst)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 4 {
		t.Fatalf("ReadSamples() n = %d, want 4", n)
	}
	for i, want := range []float32{0.1, -0.1, 0.2, -0.2} {
		if dst[i] != want {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want)
		}
	}

	n, err = src.ReadSamples(dst)
	if n != 2 || err != nil {
		t.Fatalf("second ReadSamples() = %d, %v; want 2, nil", n, err)
	}

	n, err = src.ReadSamples(dst)
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("third ReadSamples() = %d, %v; want 0, EOF", n, err)
	}
}

func TestSource_ReadSamples_TooSmall(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockOggVorbisReader{channels: 2, samples: []float32{1, 1}}, channels: 2}

	n, err := src.ReadSamples(make([]float32, 1))
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(1 slot) = %d, %v; want 0, nil", n, err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("bad packet")
	src := &source{dec: &mockOggVorbisReader{channels: 1, err: boom}, channels: 1}

	if _, err := src.ReadSamples(make([]float32, 8)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}
