// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"
	"testing"
)

func TestDBToLinear(t *testing.T) {
	t.Parallel()

	tests := []struct {
		db   float64
		want float64
	}{
		{db: 0, want: 1},
		{db: 20, want: 10},
		{db: -20, want: 0.1},
		{db: 6, want: 1.9953},
		{db: -6, want: 0.5012},
		{db: -40, want: 0.01},
	}

	for _, tt := range tests {
		if got := DBToLinear(tt.db); math.Abs(got-tt.want) > 1e-4 {
			t.Errorf("DBToLinear(%v) = %v, want %v", tt.db, got, tt.want)
		}
	}
}

func TestApplyGain_RoundTrip(t *testing.T) {
	t.Parallel()

	orig := []float32{0, 0.25, -0.5, 0.75, -1, 0.001}

	for _, g := range []float64{-30, -6, -0.5, 0.5, 3, 12} {
		b := &Buffer{Samples: append([]float32(nil), orig...), Channels: 2, SampleRate: 8000}

		ApplyGain(b, g)
		ApplyGain(b, -g)

		for i, want := range orig {
			if d := math.Abs(float64(b.Samples[i] - want)); d > 1e-6 {
				t.Errorf("gain %v: sample %d = %v, want %v", g, i, b.Samples[i], want)
			}
		}
	}
}

func TestApplyGain_DoesNotClip(t *testing.T) {
	t.Parallel()

	b := &Buffer{Samples: []float32{0.8, -0.8}, Channels: 1, SampleRate: 8000}
	ApplyGain(b, 6)

	if b.Samples[0] <= 1 || b.Samples[1] >= -1 {
		t.Errorf("ApplyGain() = %v, want samples beyond [-1, 1]", b.Samples)
	}
}

func TestApplyGain_Zero(t *testing.T) {
	t.Parallel()

	b := &Buffer{Samples: []float32{0.1, -0.2, 0.3}, Channels: 1, SampleRate: 8000}
	ApplyGain(b, 0)

	if b.Samples[0] != 0.1 || b.Samples[1] != -0.2 || b.Samples[2] != 0.3 {
		t.Errorf("ApplyGain(0) changed samples to %v", b.Samples)
	}
}

func BenchmarkApplyGain(b *testing.B) {
	buf := &Buffer{Samples: make([]float32, 44100*2), Channels: 2, SampleRate: 44100}

	for b.Loop() {
		ApplyGain(buf, -3)
	}
}
