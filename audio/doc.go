// SPDX-License-Identifier: EPL-2.0

// Package audio turns decoded audio into render buffers.
//
// It holds the Source and Decoder contracts the format packages implement,
// the extension Registry, the streaming stages that normalise a source for
// playback, and the in-memory transforms applied to a whole track.
//
// # Loading
//
// LoadFile resolves a decoder by file extension, decodes the file, folds
// sources with more than two channels down to stereo (StereoMixer), resamples
// to the requested rate (Resampler, cubic interpolation) and collects the
// result with ReadAll:
//
//	reg := audio.NewRegistry()
//	reg.Register(".wav", wav.Decoder{})
//	buf, err := audio.LoadFile(reg, "drums.wav", 44100)
//	if errors.Is(err, audio.ErrDecode) {
//	    // missing, unreadable or unsupported file
//	}
//
// # Transforms
//
// A loaded Buffer is trimmed, gain adjusted and panned, in that order:
//
//	if err := buf.Trim(100, 250); err != nil {
//	    // audio.ErrInvalidTrim
//	}
//	audio.ApplyGain(buf, -6)
//	buf, err = audio.Pan(buf, -0.5)
//
// Pan always yields two channels for valid input. An out of range value
// returns the buffer unmodified with ErrPanningRange so the caller can log it
// and carry on; ToStereo then brings a mono buffer to two channels.
//
// # Sample Format
//
// Samples are float32 interleaved by frame. Integer PCM is normalised by
// 2^(bitDepth-1), so 16-bit audio is divided by 32768. Gain does not clip;
// clamping to [-1, 1] happens when samples are encoded for the output device.
package audio
