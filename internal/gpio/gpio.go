// Package gpio drives an output line that mirrors the lamp's on/off
// state, with hardware abstraction.
// The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Driver sets the physical output state.
type Driver interface {
	// Apply drives the output line: true = lamp lit (level > 0).
	Apply(on bool) error

	// Close releases GPIO resources, driving the line low first.
	Close() error
}

// DefaultPin is the default output pin (BCM numbering).
const DefaultPin = 18
