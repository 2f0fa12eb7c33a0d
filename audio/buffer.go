// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// Buffer is a fully decoded block of interleaved float32 samples.
type Buffer struct {
	Samples    []float32
	Channels   int
	SampleRate int
}

// Frames is the number of complete frames held by the buffer.
func (b *Buffer) Frames() int {
	if b.Channels <= 0 {
		return 0
	}

	return len(b.Samples) / b.Channels
}

// Duration is the playing time of the buffer at its sample rate.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}

	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// msToFrames converts a millisecond count to whole frames, rounding down.
func (b *Buffer) msToFrames(ms uint) int {
	return int(uint64(ms) * uint64(b.SampleRate) / 1000)
}

// Trim drops startMs from the head and endMs from the tail of the buffer.
// It fails with ErrInvalidTrim, leaving b untouched, when nothing would
// remain.
func (b *Buffer) Trim(startMs, endMs uint) error {
	total := b.Frames()
	head := b.msToFrames(startMs)
	tail := b.msToFrames(endMs)

	if head+tail >= total {
		return fmt.Errorf("%w: start %dms + end %dms >= %s", ErrInvalidTrim, startMs, endMs, b.Duration())
	}

	b.Samples = b.Samples[head*b.Channels : (total-tail)*b.Channels]

	return nil
}

// ReadAll drains src into a Buffer. A trailing partial frame is dropped.
func ReadAll(src Source) (*Buffer, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrChannelLayout, channels)
	}

	chunk := max(src.BufSize(), 4096)
	chunk -= chunk % channels
	tmp := make([]float32, chunk)

	buf := &Buffer{
		Samples:    make([]float32, 0, chunk*4),
		Channels:   channels,
		SampleRate: src.SampleRate(),
	}

	empty := 0
	for {
		n, err := src.ReadSamples(tmp)
		if n > 0 {
			buf.Samples = append(buf.Samples, tmp[:n]...)
			empty = 0
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return nil, io.ErrNoProgress
			}
		}
	}

	buf.Samples = buf.Samples[:buf.Frames()*channels]

	return buf, nil
}
