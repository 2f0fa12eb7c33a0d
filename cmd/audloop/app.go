// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/audloop/device"
	"github.com/ik5/audloop/device/otodev"
	"github.com/ik5/audloop/internal/mixer"
	"github.com/ik5/audloop/internal/tty"
	"github.com/ik5/audloop/supervisor"
)

const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

// fatalError ends the process with exitFatal instead of printing usage.
type fatalError struct {
	err error
}

func (e *fatalError) Error() string { return e.err.Error() }
func (e *fatalError) Unwrap() error { return e.err }

func fatal(err error) error { return &fatalError{err: err} }

// app holds what the commands need from the outside world, so tests can
// replace the sound card and the mixer.
type app struct {
	stdout io.Writer
	stderr io.Writer

	newOutput func(rate int, buffer time.Duration) (device.Output, error)
	newMixer  func(control string) supervisor.VolumeSetter
	terminal  func() supervisor.Terminal
	signals   []os.Signal

	logLevel string
	logFile  string
	logClose func() error
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		newOutput: func(rate int, buffer time.Duration) (device.Output, error) {
			return otodev.New(rate, buffer)
		},
		newMixer: func(control string) supervisor.VolumeSetter {
			return mixer.New(control, nil)
		},
		terminal: func() supervisor.Terminal {
			t, err := tty.Stdin()
			if err != nil {
				slog.Debug("terminal state not saved", "err", err)
			}
			return t
		},
		signals: []os.Signal{os.Interrupt, syscall.SIGTERM},
	}
}

// run executes the command line and returns the process exit code.
func (a *app) run(ctx context.Context, args []string) int {
	root := a.rootCmd()
	root.AddCommand(a.bounceCmd())
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.ExecuteContext(ctx)
	defer a.closeLog()

	var fe *fatalError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &fe):
		fmt.Fprintf(a.stderr, "Error: %v\n", fe.err)
		return exitFatal
	default:
		fmt.Fprintf(a.stderr, "\nError: %v\n", err)
		if c, _, ferr := root.Find(args); ferr == nil && c != nil {
			fmt.Fprintln(a.stderr, c.UsageString())
		} else {
			fmt.Fprintln(a.stderr, root.UsageString())
		}
		return exitUsage
	}
}

// setupLogging installs the default slog logger from the persistent flags.
func (a *app) setupLogging() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", a.logLevel, err)
	}

	w := a.stderr
	if a.logFile != "" {
		f, err := os.OpenFile(a.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fatal(fmt.Errorf("opening log file: %w", err))
		}
		w = f
		a.logClose = f.Close
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))

	return nil
}

func (a *app) closeLog() {
	if a.logClose != nil {
		_ = a.logClose()
		a.logClose = nil
	}
}

func (a *app) addLogFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Append logs to this file instead of stderr")
}
