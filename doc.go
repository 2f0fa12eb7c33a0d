// SPDX-License-Identifier: EPL-2.0

// Package audloop plays several audio files at once, each in a seamless
// endless loop, until it is interrupted.
//
// Every track is described by one line of a plain text configuration file:
//
//	# file              gain_db  trim_start_ms  trim_end_ms  offset_ms  panning
//	sounds/drums.wav    -3       0              120          0          0
//	sounds/pad.ogg      -9       250            250          4000       -0.6
//
// A track is decoded once, resampled to the device rate, trimmed, scaled by
// its gain and panned into stereo. The resulting render buffer is then
// streamed through the output device forever; when the device asks for more
// frames than remain before the end of the buffer, the request continues
// from the first frame without a gap.
//
// # Packages
//
//   - audio: sources, the decoder registry, loading, trimming, gain and pan
//   - formats/wav, formats/mp3, formats/vorbis, formats/aiff: decoders
//   - loop: the wrap-around render engine and its io.Reader for devices
//   - device, device/otodev: the output device and its oto implementation
//   - track: configuration parsing and the per-track runner
//   - supervisor: runs every track and stops them on interrupt
//
// # Quick Start
//
//	reg := audloop.NewRegistry()
//	cfgs, _, err := track.Load("tracks.conf")
//	if err != nil {
//		return err
//	}
//
//	out, err := otodev.New(44100, 0)
//	if err != nil {
//		return err
//	}
//
//	report := supervisor.New(out, reg, slog.Default()).Run(ctx, cfgs)
//
// # Offline rendering
//
// Bounce renders a looping track to a WAV file instead of a device, which
// is handy for checking loop points without listening:
//
//	f, _ := os.Create("drums.wav")
//	defer f.Close()
//	err := audloop.Bounce(f, reg, cfgs[0], audloop.BounceOptions{Duration: 30 * time.Second})
package audloop
