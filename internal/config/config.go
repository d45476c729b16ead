// Package config resolves command line arguments into the immutable
// configuration shared by both plotter binaries.
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Args carries the raw flag values before resolution. The particle plotter
// sets Samples; the node plotter leaves it at zero.
type Args struct {
	Port       string
	BaudRate   int
	Size       string
	Samples    int
	Listen     string
	RecordPath string
	Dev        bool
}

// Config is the resolved configuration. It is produced once at startup and
// never mutated afterwards; components receive it by value.
type Config struct {
	// Port is the serial device path, e.g. /dev/ttyUSB0.
	Port string
	// BaudRate for the serial connection.
	BaudRate int
	// Width and Height are the plot area limits in meters.
	Width  float64
	Height float64
	// Samples is the particle buffer capacity (particle plotter only).
	Samples int
	// Listen is the address the live plot page is served on.
	Listen string
	// RecordPath, when set, names a SQLite file to record telemetry to.
	RecordPath string
	// Dev replays built-in fixture lines instead of opening a serial port.
	Dev bool
}

// ParseSize parses a plot area size given as "<W>x<H>", two positive floats
// separated by a literal x.
func ParseSize(s string) (width, height float64, err error) {
	parts := strings.Split(s, "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q: expected format NUMxNUM", s)
	}

	width, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size width %q: %w", parts[0], err)
	}
	height, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size height %q: %w", parts[1], err)
	}

	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q: dimensions must be positive", s)
	}

	return width, height, nil
}

// Resolve validates the raw arguments and produces the final configuration.
// needSamples is set by the particle plotter, which requires -a.
func Resolve(args Args, needSamples bool) (Config, error) {
	if args.Port == "" && !args.Dev {
		return Config{}, fmt.Errorf("serial port is required (-p)")
	}
	if args.BaudRate <= 0 {
		return Config{}, fmt.Errorf("invalid baud rate %d: must be positive", args.BaudRate)
	}

	width, height, err := ParseSize(args.Size)
	if err != nil {
		return Config{}, err
	}

	if needSamples && args.Samples <= 0 {
		return Config{}, fmt.Errorf("invalid particle amount %d: must be positive (-a)", args.Samples)
	}

	return Config{
		Port:       args.Port,
		BaudRate:   args.BaudRate,
		Width:      width,
		Height:     height,
		Samples:    args.Samples,
		Listen:     args.Listen,
		RecordPath: args.RecordPath,
		Dev:        args.Dev,
	}, nil
}
