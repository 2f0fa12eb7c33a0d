// SPDX-License-Identifier: EPL-2.0

package track

// State is a step in a Runner's lifecycle. States only move forward.
type State int32

const (
	Created State = iota
	DelayedStart
	Loading
	Transforming
	Streaming
	Closed
	Terminated
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case DelayedStart:
		return "delayed-start"
	case Loading:
		return "loading"
	case Transforming:
		return "transforming"
	case Streaming:
		return "streaming"
	case Closed:
		return "closed"
	case Terminated:
		return "terminated"
	}

	return "unknown"
}
