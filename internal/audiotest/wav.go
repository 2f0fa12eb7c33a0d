// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"fmt"
	"os"
	"path/filepath"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV16 writes interleaved 16-bit samples as a PCM WAV file named name
// inside dir and returns its path.
func WriteWAV16(dir, name string, sampleRate, channels int, samples []int) (string, error) {
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		return "", fmt.Errorf("%w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("%w", err)
	}

	return path, nil
}

// Ramp16 returns frames 16-bit samples of a rising sawtooth. Values do not
// repeat within 65536 samples, so a loop of it has an unambiguous period.
func Ramp16(frames int) []int {
	out := make([]int, frames)
	for i := range out {
		out[i] = i%65536 - 32768
	}

	return out
}
