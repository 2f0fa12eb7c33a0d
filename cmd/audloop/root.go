// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/audloop"
	"github.com/ik5/audloop/internal/mixer"
	"github.com/ik5/audloop/supervisor"
	"github.com/ik5/audloop/track"
)

type playArgs struct {
	config       string
	volume       int
	control      string
	rate         int
	frameSize    int
	buffer       time.Duration
	pollInterval time.Duration
}

func (a *app) rootCmd() *cobra.Command {
	var args playArgs

	cmd := &cobra.Command{
		Use:   "audloop",
		Short: "Play audio files in seamless endless loops",
		Long: `Play every track listed in a configuration file at the same time, each one
looping forever, until interrupted with Ctrl+C.

Each non-comment line of the configuration file describes one track:

  <file> <gain_db> <trim_start_ms> <trim_end_ms> <offset_start_ms> [<panning>]`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setupLogging()
		},
		PreRunE: func(*cobra.Command, []string) error {
			return args.validate()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.play(cmd, args)
		},
	}

	a.addLogFlags(cmd)

	f := cmd.Flags()
	f.StringVarP(&args.config, "config", "c", "", "Path to the track configuration file (required)")
	f.IntVar(&args.volume, "volume", 80, "System output level in percent set before playing, -1 leaves it alone")
	f.StringVar(&args.control, "mixer-control", mixer.DefaultControl, "ALSA simple control the volume is applied to")
	f.IntVar(&args.rate, "rate", audloop.DefaultSampleRate, "Output sample rate in Hz")
	f.IntVar(&args.frameSize, "frame-size", track.DefaultFrameSize, "Frames rendered per device pull")
	f.DurationVar(&args.buffer, "buffer", 0, "Device buffer length, 0 picks the driver default")
	f.DurationVar(&args.pollInterval, "poll-interval", track.DefaultPollInterval, "How often playing tracks check their stream")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func (p playArgs) validate() error {
	switch {
	case p.volume < -1 || p.volume > 100:
		return fmt.Errorf("--volume must be -1 or between 0 and 100, got %d", p.volume)
	case p.rate <= 0:
		return fmt.Errorf("--rate must be positive, got %d", p.rate)
	case p.frameSize <= 0:
		return fmt.Errorf("--frame-size must be positive, got %d", p.frameSize)
	case p.buffer < 0:
		return fmt.Errorf("--buffer must not be negative, got %v", p.buffer)
	case p.pollInterval <= 0:
		return fmt.Errorf("--poll-interval must be positive, got %v", p.pollInterval)
	}

	return nil
}

func (a *app) play(cmd *cobra.Command, args playArgs) error {
	logger := slog.Default()

	cfgs, bad, err := track.Load(args.config)
	if err != nil {
		return fatal(err)
	}
	for _, e := range bad {
		logger.Warn("skipping configuration line", "line", e.Line, "text", e.Text, "err", e.Err)
	}

	out, err := a.newOutput(args.rate, args.buffer)
	if err != nil {
		return fatal(err)
	}

	sup := supervisor.New(out, audloop.NewRegistry(), logger)
	sup.Stdout = a.stdout
	sup.Signals = a.signals
	sup.Terminal = a.terminal()
	sup.PollInterval = args.pollInterval
	sup.FrameSize = args.frameSize
	if args.volume >= 0 {
		sup.Volume = args.volume
		sup.Mixer = a.newMixer(args.control)
	}

	report := sup.Run(cmd.Context(), cfgs)
	for _, t := range report.Tracks {
		if t.Err != nil {
			logger.Debug("track ended with error", "track", t.Index, "file", t.Config.Path, "err", t.Err)
		}
	}

	return nil
}
