// SPDX-License-Identifier: EPL-2.0

// Package loop renders a buffer as a seamless, endless loop.
//
// An Engine owns a Cursor over the buffer and serves fill requests of any
// size, wrapping from the end back to the start mid-request. A Reader puts
// the Engine behind io.Reader for the output device, and Diagnostics moves
// events off the real-time path without blocking it.
package loop
