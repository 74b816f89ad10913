package mqtt

import (
	"github.com/sweeney/lamp-controller/internal/power"
)

// FakePublisher records published events for test assertions.
type FakePublisher struct {
	// StateEvents contains all state events that were published.
	StateEvents []StateEvent

	// StatePayloads contains the JSON payloads for state events.
	StatePayloads [][]byte

	// PowerEvents contains all power notifications that were published.
	PowerEvents []power.Event

	// PowerPayloads contains the JSON payloads for power notifications.
	PowerPayloads [][]byte

	// SystemEvents contains all system events that were published.
	SystemEvents []SystemEvent

	// SystemPayloads contains the JSON payloads for system events.
	SystemPayloads [][]byte

	// PublishError, if set, will be returned by all publish methods.
	PublishError error

	// Closed tracks if Close was called.
	Closed bool

	// Connected controls the return value of IsConnected.
	Connected bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// PublishState records the state event.
func (f *FakePublisher) PublishState(event StateEvent) error {
	if f.PublishError != nil {
		return f.PublishError
	}

	f.StateEvents = append(f.StateEvents, event)

	payload, err := FormatStatePayload(event)
	if err != nil {
		return err
	}
	f.StatePayloads = append(f.StatePayloads, payload)

	return nil
}

// PublishPower records the power notification.
func (f *FakePublisher) PublishPower(event power.Event) error {
	if f.PublishError != nil {
		return f.PublishError
	}

	f.PowerEvents = append(f.PowerEvents, event)

	payload, err := FormatPowerPayload(event)
	if err != nil {
		return err
	}
	f.PowerPayloads = append(f.PowerPayloads, payload)

	return nil
}

// PublishSystem records the system event.
func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.PublishError != nil {
		return f.PublishError
	}

	f.SystemEvents = append(f.SystemEvents, event)

	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemPayloads = append(f.SystemPayloads, payload)

	return nil
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// IsConnected reports whether the fake publisher is "connected".
func (f *FakePublisher) IsConnected() bool {
	return f.Connected
}

// Reset clears recorded events.
func (f *FakePublisher) Reset() {
	f.StateEvents = nil
	f.StatePayloads = nil
	f.PowerEvents = nil
	f.PowerPayloads = nil
	f.SystemEvents = nil
	f.SystemPayloads = nil
	f.Closed = false
	f.PublishError = nil
	f.Connected = false
}
