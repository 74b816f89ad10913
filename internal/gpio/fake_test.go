package gpio

import (
	"errors"
	"testing"
)

func TestFakeDriverRecordsStates(t *testing.T) {
	f := NewFakeDriver()

	for _, on := range []bool{true, true, false, true} {
		if err := f.Apply(on); err != nil {
			t.Fatalf("Apply: %v", err)
		}
	}

	want := []bool{true, true, false, true}
	if len(f.States) != len(want) {
		t.Fatalf("expected %d states, got %d", len(want), len(f.States))
	}
	for i, s := range want {
		if f.States[i] != s {
			t.Errorf("state %d: got %v, want %v", i, f.States[i], s)
		}
	}
	if !f.Last() {
		t.Error("Last() = false, want true")
	}
}

func TestFakeDriverLastEmpty(t *testing.T) {
	f := NewFakeDriver()
	if f.Last() {
		t.Error("Last() on empty driver should be false")
	}
}

func TestFakeDriverApplyError(t *testing.T) {
	f := NewFakeDriver()
	f.ApplyError = errors.New("line busy")

	if err := f.Apply(true); err == nil {
		t.Fatal("expected error")
	}
	if len(f.States) != 0 {
		t.Errorf("state recorded despite error")
	}
}

func TestFakeDriverClose(t *testing.T) {
	f := NewFakeDriver()
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !f.Closed {
		t.Error("Closed not set")
	}
}
