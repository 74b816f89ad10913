// Package power models external power events that force a lamp's state
// directly instead of going through its own transition methods.
// Surge knowingly leaves the lamp with CurrentLevel > MaxLevel; callers
// must not "repair" that — it is the modelled fault condition.
package power

import (
	"fmt"
	"time"

	"github.com/sweeney/lamp-controller/internal/lamp"
)

// EventType identifies a power event.
type EventType string

const (
	EventOutage EventType = "OUTAGE"
	EventSurge  EventType = "SURGE"
)

// SurgeFactor multiplies the capacity to produce the overcurrent level.
const SurgeFactor = 10

// Event describes one power event for the notification sink.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Device    string
	Level     int // lamp level after the event
	MaxLevel  int // lamp capacity after the event
	Message   string
}

// Notifier receives one human-readable notification per power event.
// Production wiring publishes to MQTT; tests use a recording double.
type Notifier interface {
	Notify(event Event) error
}

// Outage cuts power to the lamp: both the level and the capacity drop
// to zero, so SetFull stays at 0 until the capacity is restored
// externally. The mutation is applied before notification and is kept
// even if the notifier fails.
func Outage(l *lamp.Lamp, now time.Time, n Notifier) error {
	l.CurrentLevel = 0
	l.MaxLevel = 0

	return n.Notify(Event{
		Timestamp: now,
		Type:      EventOutage,
		Device:    l.Name,
		Level:     l.CurrentLevel,
		MaxLevel:  l.MaxLevel,
		Message:   fmt.Sprintf("%s lost power, check its current level", l.Name),
	})
}

// Surge models an overcurrent: a lit lamp is driven to SurgeFactor
// times its capacity, past its own upper bound. An off lamp cannot
// surge; the call is then a no-op and nothing is notified.
// Returns whether the surge fired.
func Surge(l *lamp.Lamp, now time.Time, n Notifier) (bool, error) {
	if l.CurrentLevel == 0 {
		return false, nil
	}

	l.CurrentLevel = l.MaxLevel * SurgeFactor

	err := n.Notify(Event{
		Timestamp: now,
		Type:      EventSurge,
		Device:    l.Name,
		Level:     l.CurrentLevel,
		MaxLevel:  l.MaxLevel,
		Message:   fmt.Sprintf("%s surged to level %d", l.Name, l.CurrentLevel),
	})
	return true, err
}
