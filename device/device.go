// SPDX-License-Identifier: EPL-2.0

// Package device describes the output side of playback: an Output opens a
// Stream that pulls interleaved little-endian float32 frames from a reader
// until it is closed.
package device

import "io"

// Output is a sound device shared by every track.
type Output interface {
	// SampleRate every stream is played at.
	SampleRate() int
	// Channels every stream must provide.
	Channels() int
	// Open starts pulling from r. frameSize is the preferred number of
	// frames per pull.
	Open(r io.Reader, frameSize int) (Stream, error)
}

// Stream is one track's connection to the Output.
type Stream interface {
	// Err reports a failure that stopped the stream, or nil.
	Err() error
	// Close stops pulling and releases the stream.
	Close() error
}
