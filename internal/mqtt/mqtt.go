// Package mqtt provides MQTT publishing and command intake with
// abstraction for testing.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sweeney/lamp-controller/internal/power"
)

// TopicEvents carries one state event per applied lamp command.
const TopicEvents = "home/lamp/events"

// TopicPower carries power-event notifications (outage, surge).
const TopicPower = "home/lamp/power"

// TopicSystem carries system lifecycle events.
const TopicSystem = "home/lamp/system"

// TopicCommands is the inbound command topic.
const TopicCommands = "home/lamp/command"

// Publisher publishes lamp events to MQTT.
type Publisher interface {
	// PublishState sends a state event to the broker.
	// Returns error if publishing fails (should not crash the process).
	PublishState(event StateEvent) error

	// PublishPower sends a power-event notification to the broker.
	PublishPower(event power.Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// StateEvent describes the lamp state after an applied command.
type StateEvent struct {
	Timestamp time.Time
	Command   string // command that produced this state, e.g. "INCREASE"
	Device    string
	Level     int
	MaxLevel  int
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload is the MQTT message envelope for state events.
type Payload struct {
	Lamp LampPayload `json:"lamp"`
}

// LampPayload contains the state event details.
type LampPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Device    string `json:"device"`
	Level     int    `json:"level"`
	MaxLevel  int    `json:"max_level"`
}

// FormatStatePayload creates the JSON payload for a state event.
func FormatStatePayload(event StateEvent) ([]byte, error) {
	payload := Payload{
		Lamp: LampPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Command,
			Device:    event.Device,
			Level:     event.Level,
			MaxLevel:  event.MaxLevel,
		},
	}
	return json.Marshal(payload)
}

// PowerPayload is the MQTT message envelope for power notifications.
type PowerPayload struct {
	Power PowerPayloadInner `json:"power"`
}

// PowerPayloadInner contains the power notification details.
type PowerPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Device    string `json:"device"`
	Level     int    `json:"level"`
	MaxLevel  int    `json:"max_level"`
	Message   string `json:"message"`
}

// FormatPowerPayload creates the JSON payload for a power notification.
func FormatPowerPayload(event power.Event) ([]byte, error) {
	payload := PowerPayload{
		Power: PowerPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     string(event.Type),
			Device:    event.Device,
			Level:     event.Level,
			MaxLevel:  event.MaxLevel,
			Message:   event.Message,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload is the MQTT message envelope for system events.
// Used for simple events that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}

// Action selects a lamp operation.
type Action string

const (
	ActionIncrease Action = "increase"
	ActionDecrease Action = "decrease"
	ActionOff      Action = "off"
	ActionFull     Action = "full"
	ActionOutage   Action = "outage"
	ActionSurge    Action = "surge"
)

// Command is an inbound command from the command topic.
type Command struct {
	Action Action `json:"command"`

	// Amount applies to increase/decrease. Zero means "use the
	// default step"; the lamp resolves that, not the transport.
	Amount int `json:"amount,omitempty"`
}

// ParseCommand decodes and validates a command payload.
func ParseCommand(payload []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return Command{}, fmt.Errorf("decode command: %w", err)
	}

	switch cmd.Action {
	case ActionIncrease, ActionDecrease, ActionOff, ActionFull, ActionOutage, ActionSurge:
		return cmd, nil
	case "":
		return Command{}, fmt.Errorf("missing command")
	default:
		return Command{}, fmt.Errorf("unknown command %q", cmd.Action)
	}
}
