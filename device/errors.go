// SPDX-License-Identifier: EPL-2.0

package device

import "errors"

var (
	// ErrDevice wraps output device failures, both on open and while
	// streaming.
	ErrDevice = errors.New("output device error")

	// ErrFormatMismatch indicates a stream whose layout differs from the
	// Output's.
	ErrFormatMismatch = errors.New("stream format does not match output")
)
