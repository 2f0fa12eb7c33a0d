// SPDX-License-Identifier: EPL-2.0

package track

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is returned when the configuration file cannot be read.
	ErrConfig = errors.New("configuration error")

	ErrFieldCount       = errors.New("expected 5 or 6 fields")
	ErrNotFinite        = errors.New("value must be a finite number")
	ErrNegativeDuration = errors.New("millisecond value must not be negative")
	ErrGainRange        = errors.New("gain too large to represent")
	ErrLineTooLong      = errors.New("line too long")
)

// LineParseError describes a configuration line that was skipped.
type LineParseError struct {
	Line int
	Text string
	Err  error
}

func (e *LineParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineParseError) Unwrap() error { return e.Err }
