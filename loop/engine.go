// SPDX-License-Identifier: EPL-2.0

package loop

import (
	"fmt"

	"github.com/ik5/audloop/audio"
)

// Engine plays a Buffer as an endless loop. Each Fill continues where the
// previous one stopped and wraps from the last frame straight to the first,
// as many times as the request needs.
//
// An Engine is not safe for concurrent use; after streaming starts only the
// device goroutine may call Fill.
type Engine struct {
	samples  []float32
	channels int
	cursor   Cursor
}

// NewEngine binds an engine to buf, which must not be modified afterwards.
func NewEngine(buf *audio.Buffer) (*Engine, error) {
	frames := buf.Frames()
	if frames == 0 {
		return nil, fmt.Errorf("%w", audio.ErrEmptyBuffer)
	}

	return &Engine{
		samples:  buf.Samples[:frames*buf.Channels],
		channels: buf.Channels,
		cursor:   NewCursor(frames),
	}, nil
}

func (e *Engine) Channels() int  { return e.channels }
func (e *Engine) Cursor() Cursor { return e.cursor }

// Fill writes len(dst)/Channels() frames into dst and returns that frame
// count. Samples past the last whole frame are zeroed.
func (e *Engine) Fill(dst []float32) int {
	frames := len(dst) / e.channels
	out := dst[:frames*e.channels]

	for remaining := frames; remaining > 0; {
		n := e.cursor.span(remaining)
		from := e.cursor.position * e.channels
		copied := copy(out, e.samples[from:from+n*e.channels])
		out = out[copied:]
		e.cursor.advance(n)
		remaining -= n
	}

	clear(dst[frames*e.channels:])

	return frames
}
