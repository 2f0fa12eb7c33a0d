// SPDX-License-Identifier: EPL-2.0

package track

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ik5/audloop/audio"
)

// Config is one line of the configuration file.
type Config struct {
	Path          string
	GainDB        float64
	TrimStartMs   uint
	TrimEndMs     uint
	OffsetStartMs uint
	// Panning is -1 (left) to +1 (right). Out of range values are not a
	// parse error; the pan stage is skipped with a warning instead.
	Panning float64
	// Line is the 1-based line number the entry came from.
	Line int
}

func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("file", c.Path),
		slog.Float64("gain_db", c.GainDB),
		slog.Uint64("trim_start_ms", uint64(c.TrimStartMs)),
		slog.Uint64("trim_end_ms", uint64(c.TrimEndMs)),
		slog.Uint64("offset_ms", uint64(c.OffsetStartMs)),
		slog.Float64("panning", c.Panning),
	)
}

// Load reads the configuration file at path. Failing to open or read it
// wraps ErrConfig; malformed lines are returned separately and do not stop
// parsing.
func Load(path string) ([]Config, []*LineParseError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	defer f.Close()

	return Parse(f)
}

// MaxLineLength is the longest configuration line accepted; longer lines
// are reported as bad lines.
const MaxLineLength = 64 * 1024

// Parse reads whitespace separated track lines from r:
//
//	<file> <gain_db> <trim_start_ms> <trim_end_ms> <offset_ms> [<panning>]
//
// Blank lines and lines starting with '#' are ignored. A line with five
// fields has panning 0. Only a read failure of r is returned as an error.
func Parse(r io.Reader) ([]Config, []*LineParseError, error) {
	var (
		cfgs []Config
		bad  []*LineParseError
	)

	br := bufio.NewReader(r)
	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return cfgs, bad, fmt.Errorf("%w: %w", ErrConfig, err)
		}
		if line == "" && err == io.EOF {
			break
		}

		text := strings.TrimSpace(line)
		switch {
		case len(text) > MaxLineLength:
			bad = append(bad, &LineParseError{
				Line: lineNo,
				Text: text[:64] + "...",
				Err:  fmt.Errorf("%w: %d bytes", ErrLineTooLong, len(text)),
			})

		case text == "" || strings.HasPrefix(text, "#"):

		default:
			cfg, perr := parseLine(strings.Fields(text))
			if perr != nil {
				bad = append(bad, &LineParseError{Line: lineNo, Text: text, Err: perr})
				break
			}
			cfg.Line = lineNo
			cfgs = append(cfgs, cfg)
		}

		if err == io.EOF {
			break
		}
	}

	return cfgs, bad, nil
}

func parseLine(fields []string) (Config, error) {
	if len(fields) != 5 && len(fields) != 6 {
		return Config{}, fmt.Errorf("%w: got %d", ErrFieldCount, len(fields))
	}

	var (
		cfg = Config{Path: fields[0]}
		err error
	)

	if cfg.GainDB, err = parseFloat("gain", fields[1]); err != nil {
		return Config{}, err
	}
	if f := float32(audio.DBToLinear(cfg.GainDB)); math.IsInf(float64(f), 0) {
		return Config{}, fmt.Errorf("gain: %w", ErrGainRange)
	}
	if cfg.TrimStartMs, err = parseMs("trim start", fields[2]); err != nil {
		return Config{}, err
	}
	if cfg.TrimEndMs, err = parseMs("trim end", fields[3]); err != nil {
		return Config{}, err
	}
	if cfg.OffsetStartMs, err = parseMs("offset", fields[4]); err != nil {
		return Config{}, err
	}
	if len(fields) == 6 {
		if cfg.Panning, err = parseFloat("panning", fields[5]); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

func parseFloat(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s: %w", name, ErrNotFinite)
	}

	return v, nil
}

func parseMs(name, s string) (uint, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s: %w", name, ErrNegativeDuration)
	}

	return uint(v), nil
}
