// Package lamp contains the pure device model: a named lamp with a
// brightness level bounded by a fixed capacity.
// This package has NO external dependencies (no MQTT, GPIO, or OS).
// The fields are exported on purpose: power events (internal/power)
// rewrite them directly, bypassing the transition methods.
package lamp

import "fmt"

// DefaultStep is the level change applied when a caller passes a zero
// amount to Increase or Decrease.
const DefaultStep = 1

// Lamp holds bounded brightness state.
// Invariant after every method: 0 <= CurrentLevel <= MaxLevel.
// External power events may break the upper bound deliberately.
type Lamp struct {
	// Name is the device tag from the power profile, used in
	// notifications (e.g. "Lamp").
	Name string

	// CurrentLevel is the brightness, 0 = off.
	CurrentLevel int

	// MaxLevel is the capacity, fixed at construction. A power outage
	// zeroes it.
	MaxLevel int
}

// New creates a Lamp that is off. A negative maxLevel is rejected.
func New(name string, maxLevel int) (*Lamp, error) {
	if maxLevel < 0 {
		return nil, fmt.Errorf("lamp %q: negative max level %d", name, maxLevel)
	}
	return &Lamp{
		Name:     name,
		MaxLevel: maxLevel,
	}, nil
}

// Increase raises the level by amount, clamped to MaxLevel.
// A zero amount means "use the default step of 1"; an explicit zero is
// NOT a no-op. Negative amounts lower the level, clamped to 0.
func (l *Lamp) Increase(amount int) {
	l.CurrentLevel = clamp(l.CurrentLevel+step(amount), l.MaxLevel)
}

// Decrease lowers the level by amount, clamped to 0. There is no upper
// cap on the way down: a lamp left above MaxLevel by a surge keeps its
// excess headroom and steps down from there.
// Zero-amount and negative-amount handling mirrors Increase.
func (l *Lamp) Decrease(amount int) {
	amt := step(amount)
	v := l.CurrentLevel - amt
	if v < 0 {
		v = 0
	}
	// A negative amount raises the level, so the capacity applies.
	if amt < 0 && v > l.MaxLevel {
		v = l.MaxLevel
	}
	l.CurrentLevel = v
}

// SetOff turns the lamp off regardless of prior state.
func (l *Lamp) SetOff() {
	l.CurrentLevel = 0
}

// SetFull sets the level to the capacity regardless of prior state.
// After an outage the capacity is 0, so the lamp stays off.
func (l *Lamp) SetFull() {
	l.CurrentLevel = l.MaxLevel
}

// IsOn reports whether the lamp is emitting light.
func (l *Lamp) IsOn() bool {
	return l.CurrentLevel > 0
}

// step resolves the caller-supplied amount: zero means DefaultStep.
func step(amount int) int {
	if amount == 0 {
		return DefaultStep
	}
	return amount
}

// clamp constrains v to [0, max].
func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
