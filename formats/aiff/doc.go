// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through github.com/go-audio/aiff.
//
// Integer PCM at 16, 24 or 32 bits is supported, with any channel count and
// sample rate. Input that cannot seek is buffered in memory first, since
// the underlying decoder jumps between chunks.
//
//	f, _ := os.Open("pad.aiff")
//	src, err := aiff.Decoder{}.Decode(f)
package aiff
