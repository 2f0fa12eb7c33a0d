// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/audloop/internal/audiotest"
)

// drain reads src to EOF in chunks of size samples.
func drain(t testing.TB, src Source, size int) []float32 {
	t.Helper()

	buf := make([]float32, size)
	var out []float32
	for range 1_000_000 {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	t.Fatal("ReadSamples() never reached EOF")
	return nil
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 1000), 8000)

	if r.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", r.SampleRate())
	}
	if r.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", r.Channels())
	}
	if r.BufSize()%2 != 0 {
		t.Errorf("BufSize() = %d, want a whole number of frames", r.BufSize())
	}
}

func TestResampler_SameRatePassesThrough(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampSource(8000, 2, 300)
	got := drain(t, NewResampler(src, 8000), 64)

	if len(got) != 600 {
		t.Fatalf("got %d samples, want 600", len(got))
	}
	for f := range 300 {
		for c := range 2 {
			want := float32(f) + float32(c)/10
			if got[f*2+c] != want {
				t.Fatalf("frame %d channel %d = %v, want %v", f, c, got[f*2+c], want)
			}
		}
	}
}

func TestResampler_FrameCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		from, to  int
		frames    int
		want, tol int
	}{
		{name: "44.1k to 8k", from: 44100, to: 8000, frames: 44100, want: 8000, tol: 2},
		{name: "8k to 44.1k", from: 8000, to: 44100, frames: 8000, want: 44100, tol: 10},
		{name: "48k to 8k", from: 48000, to: 8000, frames: 48000, want: 8000, tol: 2},
		{name: "8k to 48k", from: 8000, to: 48000, frames: 8000, want: 48000, tol: 10},
		{name: "22.05k to 44.1k", from: 22050, to: 44100, frames: 2205, want: 4410, tol: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.from, 1, tt.frames, 440)
			got := drain(t, NewResampler(src, tt.to), 1024)

			if d := len(got) - tt.want; d < -tt.tol || d > tt.tol {
				t.Errorf("resampled %d frames, want %d (±%d)", len(got), tt.want, tt.tol)
			}
			for i, s := range got {
				if s < -1.2 || s > 1.2 {
					t.Fatalf("sample %d = %v, outside [-1.2, 1.2]", i, s)
				}
			}
		})
	}
}

func TestResampler_UpsampleInterpolatesRamp(t *testing.T) {
	t.Parallel()

	// A linear ramp is reproduced exactly by Catmull-Rom away from the ends.
	src := audiotest.NewMockSource(1000, 1, 100, func(frame, _ int) float32 {
		return float32(frame) / 100
	})
	got := drain(t, NewResampler(src, 2000), 50)

	for i := 4; i < 190; i++ {
		want := float64(i) / 200
		if math.Abs(float64(got[i])-want) > 1e-5 {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestResampler_StereoChannelsStaySeparate(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(44100, 2, 4410, func(_, channel int) float32 {
		if channel == 0 {
			return 0.3
		}
		return -0.7
	})
	got := drain(t, NewResampler(src, 16000), 256)

	for f := 0; f+1 < len(got); f += 2 {
		if math.Abs(float64(got[f]-0.3)) > 1e-5 || math.Abs(float64(got[f+1]+0.7)) > 1e-5 {
			t.Fatalf("frame %d = (%v, %v), want (0.3, -0.7)", f/2, got[f], got[f+1])
		}
	}
}

func TestResampler_PartialFrameReads(t *testing.T) {
	t.Parallel()

	// 3 samples per read splits every other stereo frame across reads.
	src := audiotest.NewChunkedSource(48000, 2, 4800, 3, func(_, channel int) float32 {
		if channel == 0 {
			return 0.5
		}
		return -0.5
	})
	got := drain(t, NewResampler(src, 44100), 512)

	frames := len(got) / 2
	if frames < 4400 || frames > 4420 {
		t.Errorf("got %d frames, want about 4410", frames)
	}
	for f := 0; f+1 < len(got); f += 2 {
		if math.Abs(float64(got[f]-0.5)) > 1e-5 || math.Abs(float64(got[f+1]+0.5)) > 1e-5 {
			t.Fatalf("frame %d = (%v, %v), want (0.5, -0.5)", f/2, got[f], got[f+1])
		}
	}
}

func TestResampler_EOFIsSticky(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 1, 100), 8000)
	drain(t, r, 1024)

	n, err := r.ReadSamples(make([]float32, 16))
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() after EOF = %d, %v; want 0, EOF", n, err)
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 0), 8000)

	n, err := r.ReadSamples(make([]float32, 16))
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() = %d, %v; want 0, EOF", n, err)
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 1000), 8000)

	if _, err := r.ReadSamples(make([]float32, 7)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_SourceError(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk gone")
	r := NewResampler(&failingSource{err: boom}, 8000)

	if _, err := r.ReadSamples(make([]float32, 16)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}

func TestResampler_StalledSource(t *testing.T) {
	t.Parallel()

	r := NewResampler(&failingSource{}, 8000)

	if _, err := r.ReadSamples(make([]float32, 16)); !errors.Is(err, io.ErrNoProgress) {
		t.Errorf("ReadSamples() error = %v, want io.ErrNoProgress", err)
	}
}

func TestResampler_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(44100, 2, 1000)
	if err := NewResampler(src, 8000).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.Closed() {
		t.Error("Close() did not close the wrapped source")
	}
}

func TestResampler_MinimalAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	src := audiotest.NewSineSource(44100, 2, 10_000_000, 440)
	r := NewResampler(src, 8000)
	buf := make([]float32, 4096)
	_, _ = r.ReadSamples(buf)

	allocs := testing.AllocsPerRun(100, func() {
		_, _ = r.ReadSamples(buf)
	})
	if allocs > 0 {
		t.Errorf("ReadSamples() allocated %v times per run, want 0", allocs)
	}
}

func BenchmarkResampler_Downsample(b *testing.B) {
	src := audiotest.NewSineSource(44100, 2, 100000, 440)
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		src.Reset()
		r := NewResampler(src, 8000)
		for {
			if _, err := r.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}

func BenchmarkResampler_Upsample(b *testing.B) {
	src := audiotest.NewSineSource(8000, 2, 20000, 440)
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		src.Reset()
		r := NewResampler(src, 44100)
		for {
			if _, err := r.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}

// failingSource returns err from every read, or stalls with (0, nil) when
// err is nil.
type failingSource struct {
	err error
}

func (*failingSource) SampleRate() int { return 44100 }
func (*failingSource) Channels() int   { return 2 }
func (*failingSource) BufSize() int    { return 64 }
func (*failingSource) Close() error    { return nil }

func (s *failingSource) ReadSamples([]float32) (int, error) {
	return 0, s.err
}
