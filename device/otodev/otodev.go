// SPDX-License-Identifier: EPL-2.0

// Package otodev plays device streams through github.com/ebitengine/oto/v3.
//
// oto allows a single context per process, so one Output is created at start
// up and every track opens its own player on it; oto mixes the players.
package otodev

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/audloop/device"
)

const (
	channels       = 2
	bytesPerSample = 4 // FormatFloat32LE
)

// Output is a device.Output backed by an oto context.
type Output struct {
	ctx  *oto.Context
	rate int
}

// New creates the process wide oto context and waits until the driver is
// ready. bufferSize is the driver side latency; zero picks oto's default.
func New(sampleRate int, bufferSize time.Duration) (*Output, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", device.ErrDevice, err)
	}
	<-ready

	return &Output{
		ctx:  ctx,
		rate: sampleRate,
	}, nil
}

func (o *Output) SampleRate() int { return o.rate }
func (o *Output) Channels() int   { return channels }

// Open creates a player pulling from r and starts it.
func (o *Output) Open(r io.Reader, frameSize int) (device.Stream, error) {
	if err := o.ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", device.ErrDevice, err)
	}

	p := o.ctx.NewPlayer(r)
	if frameSize > 0 {
		p.SetBufferSize(frameSize * channels * bytesPerSample)
	}
	p.Play()

	return &stream{player: p}, nil
}

type stream struct {
	player *oto.Player
	once   sync.Once
	err    error
}

func (s *stream) Err() error {
	if err := s.player.Err(); err != nil {
		return fmt.Errorf("%w: %w", device.ErrDevice, err)
	}

	return nil
}

func (s *stream) Close() error {
	s.once.Do(func() {
		s.player.Pause()
		if err := s.player.Close(); err != nil {
			s.err = fmt.Errorf("%w: %w", device.ErrDevice, err)
		}
	})

	return s.err
}
