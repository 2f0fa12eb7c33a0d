// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/audloop"
	"github.com/ik5/audloop/track"
)

func (a *app) bounceCmd() *cobra.Command {
	var (
		config   string
		output   string
		index    int
		rate     int
		duration time.Duration
	)

	cmd := &cobra.Command{
		Use:   "bounce",
		Short: "Render one looping track to a WAV file",
		Long: `Render a track from the configuration file to a 16-bit stereo WAV file,
looped for the requested duration, exactly as it would be sent to the sound card.`,
		Args: cobra.NoArgs,

		PreRunE: func(*cobra.Command, []string) error {
			switch {
			case index < 1:
				return fmt.Errorf("--track must be 1 or more, got %d", index)
			case rate <= 0:
				return fmt.Errorf("--rate must be positive, got %d", rate)
			case duration <= 0:
				return fmt.Errorf("--duration must be positive, got %v", duration)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgs, bad, err := track.Load(config)
			if err != nil {
				return fatal(err)
			}
			for _, e := range bad {
				slog.Warn("skipping configuration line", "line", e.Line, "text", e.Text, "err", e.Err)
			}
			if index > len(cfgs) {
				return fmt.Errorf("--track %d: configuration has %d tracks", index, len(cfgs))
			}

			f, err := os.Create(output)
			if err != nil {
				return fatal(err)
			}
			defer f.Close()

			err = audloop.Bounce(f, audloop.NewRegistry(), cfgs[index-1], audloop.BounceOptions{
				SampleRate: rate,
				Duration:   duration,
				Logger:     slog.Default(),
			})
			if err != nil {
				return fatal(err)
			}

			if err := f.Close(); err != nil {
				return fatal(err)
			}

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&config, "config", "c", "", "Path to the track configuration file (required)")
	f.StringVarP(&output, "output", "o", "", "WAV file to write (required)")
	f.IntVar(&index, "track", 1, "1-based index of the track among the valid configuration lines")
	f.IntVar(&rate, "rate", audloop.DefaultSampleRate, "Sample rate of the rendered file in Hz")
	f.DurationVar(&duration, "duration", 10*time.Second, "Length of the rendered file")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
