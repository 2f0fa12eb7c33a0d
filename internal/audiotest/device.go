// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/ik5/audloop/device"
)

// ErrStreamClosed is returned by FakeStream.Pull after Close.
var ErrStreamClosed = errors.New("fake stream closed")

// FakeOutput is a device.Output that never plays anything. Tests pull audio
// from the streams it hands out.
type FakeOutput struct {
	rate     int
	channels int
	opened   chan *FakeStream

	mtx     sync.Mutex
	openErr error
	streams []*FakeStream
}

func NewFakeOutput(rate, channels int) *FakeOutput {
	return &FakeOutput{
		rate:     rate,
		channels: channels,
		opened:   make(chan *FakeStream, 64),
	}
}

func (o *FakeOutput) SampleRate() int { return o.rate }
func (o *FakeOutput) Channels() int   { return o.channels }

// FailOpen makes every following Open fail with err.
func (o *FakeOutput) FailOpen(err error) {
	o.mtx.Lock()
	defer o.mtx.Unlock()

	o.openErr = err
}

func (o *FakeOutput) Open(r io.Reader, frameSize int) (device.Stream, error) {
	o.mtx.Lock()
	defer o.mtx.Unlock()

	if o.openErr != nil {
		return nil, fmt.Errorf("%w: %w", device.ErrDevice, o.openErr)
	}

	s := &FakeStream{
		r:         r,
		channels:  o.channels,
		FrameSize: frameSize,
	}
	o.streams = append(o.streams, s)

	select {
	case o.opened <- s:
	default:
	}

	return s, nil
}

// Opened delivers each stream as it is opened.
func (o *FakeOutput) Opened() <-chan *FakeStream { return o.opened }

// Streams returns every stream opened so far.
func (o *FakeOutput) Streams() []*FakeStream {
	o.mtx.Lock()
	defer o.mtx.Unlock()

	return append([]*FakeStream(nil), o.streams...)
}

// FakeStream is a device.Stream driven by the test.
type FakeStream struct {
	FrameSize int

	r        io.Reader
	channels int

	mtx    sync.Mutex
	closed bool
	err    error
	buf    []byte
}

// Pull reads frames frames from the stream's reader, as a device would.
func (s *FakeStream) Pull(frames int) ([]float32, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return nil, ErrStreamClosed
	}

	size := frames * s.channels * 4
	if cap(s.buf) < size {
		s.buf = make([]byte, size)
	}
	s.buf = s.buf[:size]

	if _, err := io.ReadFull(s.r, s.buf); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	out := make([]float32, frames*s.channels)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(s.buf[i*4:]))
	}

	return out, nil
}

// Fail makes Err report err, as a device that died would.
func (s *FakeStream) Fail(err error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.err = err
}

func (s *FakeStream) Err() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.err != nil {
		return fmt.Errorf("%w: %w", device.ErrDevice, s.err)
	}

	return nil
}

func (s *FakeStream) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *FakeStream) Closed() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.closed
}
