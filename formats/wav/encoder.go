// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/audloop/audio"
	"github.com/ik5/audloop/utils"
)

// encodeChunk is the number of samples converted per write.
const encodeChunk = 8192

// Encoder streams float32 frames into a 16-bit PCM WAV file. The header is
// finalised by Close, which is why the destination must seek.
type Encoder struct {
	enc      *wav.Encoder
	channels int
	ints     *goaudio.IntBuffer
}

func NewEncoder(w io.WriteSeeker, sampleRate, channels int) *Encoder {
	return &Encoder{
		enc:      wav.NewEncoder(w, sampleRate, 16, channels, formatPCM),
		channels: channels,
		ints: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			Data:           make([]int, 0, encodeChunk),
			SourceBitDepth: 16,
		},
	}
}

// Write appends interleaved samples, clamping them to [-1, 1].
func (e *Encoder) Write(samples []float32) error {
	for len(samples) > 0 {
		n := min(len(samples), encodeChunk)
		e.ints.Data = e.ints.Data[:n]
		for i, s := range samples[:n] {
			e.ints.Data[i] = int(utils.Float32ToInt16(s))
		}

		if err := e.enc.Write(e.ints); err != nil {
			return fmt.Errorf("%w", err)
		}
		samples = samples[n:]
	}

	return nil
}

func (e *Encoder) Close() error {
	if err := e.enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// Encode writes a whole buffer as a 16-bit PCM WAV file.
func Encode(w io.WriteSeeker, buf *audio.Buffer) error {
	e := NewEncoder(w, buf.SampleRate, buf.Channels)
	if err := e.Write(buf.Samples[:buf.Frames()*buf.Channels]); err != nil {
		return err
	}

	return e.Close()
}
