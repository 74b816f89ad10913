// Package status provides a thread-safe status tracker for the
// lamp-controller daemon. It is read by HTTP handlers and serialized
// into MQTT system events.
package status

import (
	"sync"
	"time"
)

// EventCounts tracks how many times each command was applied since startup.
type EventCounts struct {
	Increase int
	Decrease int
	Off      int
	Full     int
	Outage   int
	Surge    int
}

// Config contains daemon configuration for display.
type Config struct {
	Broker      string
	HTTPPort    string
	HeartbeatMs int64
	Pin         int    // GPIO output pin, -1 = disabled
	ProfilePath string // empty = built-in profile
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Name          string
	Level         int
	MaxLevel      int
	Counts        EventCounts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Overdriven reports whether a surge has pushed the level past the
// capacity.
func (s Snapshot) Overdriven() bool {
	return s.Level > s.MaxLevel
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the lamp state and event counts.
// Called from the daemon loop after every applied command.
func (t *Tracker) Update(name string, level, maxLevel int, counts EventCounts) {
	t.mu.Lock()
	t.snap.Name = name
	t.snap.Level = level
	t.snap.MaxLevel = maxLevel
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
