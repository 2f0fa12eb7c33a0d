// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files through github.com/go-audio/wav.
//
// The Decoder accepts integer PCM (plain or WAVE_FORMAT_EXTENSIBLE) at 16,
// 24 or 32 bits and any channel count, and yields an audio.Source of
// float32 samples normalised by 2^(bitDepth-1).
//
//	f, _ := os.Open("loop.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not a RIFF/WAVE stream
//	}
//
// Encoder and Encode write 16-bit PCM, used to bounce a rendered loop to
// disk:
//
//	out, _ := os.Create("bounce.wav")
//	err := wav.Encode(out, buf)
package wav
