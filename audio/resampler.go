// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audloop/utils"
)

// maxEmptyReads bounds how many (0, nil) reads a source may return in a row.
const maxEmptyReads = 100

// Resampler streams src at a different sample rate using cubic
// interpolation. Works on interleaved samples; preserves channel count.
// When downsampling a one-pole low-pass smooths the input first.
type Resampler struct {
	src      Source
	channels int
	dstRate  int
	step     float64 // source frames per output frame

	// Sliding window of four frames; output is interpolated between
	// win[1] and win[2] at fractional position pos.
	win  [4][]float32
	real [4]bool
	pos  float64

	in     []float32
	inOff  int
	inLen  int
	eof    bool
	primed bool

	smooth  bool
	alpha   float32
	lp      []float32
	lpReady bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	chunk := max(src.BufSize(), 1024)
	chunk -= chunk % channels

	r := &Resampler{
		src:      src,
		channels: channels,
		dstRate:  dstRate,
		step:     step,
		in:       make([]float32, chunk),
		smooth:   step > 1,
		alpha:    0.5,
		lp:       make([]float32, channels),
	}

	for i := range r.win {
		r.win[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return len(r.in) }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// pull copies the next source frame into frame. It reports false once the
// source is exhausted.
func (r *Resampler) pull(frame []float32) (bool, error) {
	empty := 0
	for r.inLen-r.inOff < r.channels {
		if r.eof {
			return false, nil
		}

		// Sources count samples, not frames: keep a partial frame for
		// the next read.
		rem := copy(r.in, r.in[r.inOff:r.inLen])
		n, err := r.src.ReadSamples(r.in[rem:])
		r.inOff, r.inLen = 0, rem+n

		switch {
		case errors.Is(err, io.EOF):
			r.eof = true
		case err != nil:
			return false, fmt.Errorf("%w", err)
		case n == 0:
			empty++
			if empty >= maxEmptyReads {
				return false, io.ErrNoProgress
			}
		}
	}

	copy(frame, r.in[r.inOff:r.inOff+r.channels])
	r.inOff += r.channels

	if r.smooth {
		if !r.lpReady {
			copy(r.lp, frame)
			r.lpReady = true
		}
		for c := range frame {
			r.lp[c] = r.alpha*frame[c] + (1-r.alpha)*r.lp[c]
			frame[c] = r.lp[c]
		}
	}

	return true, nil
}

// fill loads win[i] from the source, repeating win[i-1] past the end.
func (r *Resampler) fill(i int) error {
	ok, err := r.pull(r.win[i])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.win[i], r.win[i-1])
	}
	r.real[i] = ok

	return nil
}

func (r *Resampler) prime() error {
	ok, err := r.pull(r.win[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}

	copy(r.win[0], r.win[1])
	r.real[1] = true
	r.primed = true

	if err := r.fill(2); err != nil {
		return err
	}

	return r.fill(3)
}

func (r *Resampler) advance() error {
	oldest := r.win[0]
	r.win[0], r.win[1], r.win[2] = r.win[1], r.win[2], r.win[3]
	r.win[3] = oldest
	r.real[0], r.real[1], r.real[2] = r.real[1], r.real[2], r.real[3]

	return r.fill(3)
}

// ReadSamples produces dst samples at the destination rate.
// dst length must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.pos >= 1 {
			r.pos--
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.real[1] {
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.win[0][c], r.win[1][c], r.win[2][c], r.win[3][c], x)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
