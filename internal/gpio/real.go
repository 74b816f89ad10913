//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealDriver drives an actual output line using Linux GPIO character device.
type RealDriver struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewRealDriver requests the given pin as an output, initially low.
func NewRealDriver(pin int) (*RealDriver, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request output pin %d: %w", pin, err)
	}

	return &RealDriver{
		chip: chip,
		line: line,
	}, nil
}

// Apply drives the line high when the lamp is lit, low otherwise.
func (d *RealDriver) Apply(on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := d.line.SetValue(v); err != nil {
		return fmt.Errorf("set pin value: %w", err)
	}
	return nil
}

// Close drives the line low and releases GPIO resources.
func (d *RealDriver) Close() error {
	// Best effort: leave the lamp off on shutdown.
	d.line.SetValue(0)
	d.line.Close()
	return d.chip.Close()
}
