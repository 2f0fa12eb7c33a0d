// SPDX-License-Identifier: EPL-2.0

package loop

import (
	"encoding/binary"
	"math"

	"github.com/ik5/audloop/utils"
)

const bytesPerSample = 4

// Reader exposes an Engine as an io.Reader of little-endian float32 frames,
// the layout pulled by the output device. It never returns an error and
// never allocates after construction.
type Reader struct {
	engine  *Engine
	diag    *Diagnostics
	scratch []float32

	// An encoded frame split across two Read calls.
	partial    []byte
	partialOff int
}

// NewReader wraps e. frameSize is the number of frames rendered per step;
// diag may be nil.
func NewReader(e *Engine, frameSize int, diag *Diagnostics) *Reader {
	frameSize = max(frameSize, 1)

	return &Reader{
		engine:     e,
		diag:       diag,
		scratch:    make([]float32, frameSize*e.Channels()),
		partial:    make([]byte, e.Channels()*bytesPerSample),
		partialOff: e.Channels() * bytesPerSample,
	}
}

func (r *Reader) Read(p []byte) (int, error) {
	frameBytes := len(r.partial)
	written := 0
	clipped := 0

	if len(p)%frameBytes != 0 {
		r.diag.Report(Event{Kind: Unaligned, Count: len(p) % frameBytes})
	}

	for written < len(p) {
		if r.partialOff < frameBytes {
			n := copy(p[written:], r.partial[r.partialOff:])
			r.partialOff += n
			written += n
			continue
		}

		frames := (len(p) - written) / frameBytes
		if frames == 0 {
			clipped += r.render(r.scratch[:r.engine.Channels()], r.partial)
			r.partialOff = 0
			continue
		}

		frames = min(frames, len(r.scratch)/r.engine.Channels())
		samples := r.scratch[:frames*r.engine.Channels()]
		clipped += r.render(samples, p[written:])
		written += len(samples) * bytesPerSample
	}

	if clipped > 0 {
		r.diag.Report(Event{Kind: Clipped, Count: clipped})
	}

	return written, nil
}

// render fills samples from the engine and encodes them into out, returning
// the number of clamped samples.
func (r *Reader) render(samples []float32, out []byte) int {
	r.engine.Fill(samples)

	clipped := 0
	for i, s := range samples {
		c := utils.Clamp(s)
		if c != s {
			clipped++
		}
		binary.LittleEndian.PutUint32(out[i*bytesPerSample:], math.Float32bits(c))
	}

	return clipped
}
