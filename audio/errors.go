// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrDecode wraps every failure to turn a file into a Buffer: missing,
	// unreadable, unsupported or empty.
	ErrDecode = errors.New("decode failed")

	// ErrUnsupportedFormat is returned when no decoder is registered for a
	// file extension.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrEmptyBuffer indicates a source that produced no complete frame.
	ErrEmptyBuffer = errors.New("no audio frames")

	// ErrInvalidTrim is returned when the trims consume the whole buffer.
	ErrInvalidTrim = errors.New("trim exceeds audio duration")

	// ErrPanningRange is returned for a panning value outside [-1, 1].
	ErrPanningRange = errors.New("panning out of range")

	// ErrChannelLayout indicates a channel count the transform cannot handle.
	ErrChannelLayout = errors.New("unsupported channel layout")
)
