// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III files through
// github.com/hajimehoshi/go-mp3.
//
// The decoder always yields stereo; mono files are duplicated by go-mp3.
// The sample rate is whatever the file declares, typically 44.1 or 48 kHz.
//
//	f, _ := os.Open("bass.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
package mp3
