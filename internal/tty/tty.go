// SPDX-License-Identifier: EPL-2.0

// Package tty saves a terminal's mode so it can be put back after an
// interrupt.
package tty

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Terminal remembers the mode of one file descriptor.
type Terminal struct {
	fd    int
	state *term.State
}

// Save records the current mode of fd. When fd is not a terminal the
// returned Terminal does nothing.
func Save(fd int) (*Terminal, error) {
	t := &Terminal{fd: fd}
	if !term.IsTerminal(fd) {
		return t, nil
	}

	state, err := term.GetState(fd)
	if err != nil {
		return t, fmt.Errorf("saving terminal state: %w", err)
	}
	t.state = state

	return t, nil
}

// Stdin saves the mode of the process's standard input.
func Stdin() (*Terminal, error) {
	return Save(int(os.Stdin.Fd()))
}

// IsTerminal reports whether a mode was saved.
func (t *Terminal) IsTerminal() bool {
	return t != nil && t.state != nil
}

// Restore puts the saved mode back.
func (t *Terminal) Restore() error {
	if !t.IsTerminal() {
		return nil
	}

	if err := term.Restore(t.fd, t.state); err != nil {
		return fmt.Errorf("restoring terminal state: %w", err)
	}

	return nil
}
