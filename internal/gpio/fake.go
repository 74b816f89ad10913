package gpio

// FakeDriver is a test double that records applied output states.
type FakeDriver struct {
	// States contains every value passed to Apply, in order.
	States []bool

	// Closed tracks if Close was called.
	Closed bool

	// ApplyError, if set, will be returned by Apply.
	ApplyError error
}

// NewFakeDriver creates a FakeDriver for testing.
func NewFakeDriver() *FakeDriver {
	return &FakeDriver{}
}

// Apply records the output state.
func (f *FakeDriver) Apply(on bool) error {
	if f.ApplyError != nil {
		return f.ApplyError
	}
	f.States = append(f.States, on)
	return nil
}

// Last returns the most recently applied state, or false if none.
func (f *FakeDriver) Last() bool {
	if len(f.States) == 0 {
		return false
	}
	return f.States[len(f.States)-1]
}

// Close marks the driver as closed.
func (f *FakeDriver) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded states.
func (f *FakeDriver) Reset() {
	f.States = nil
	f.Closed = false
	f.ApplyError = nil
}
