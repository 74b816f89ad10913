package lamp

import "testing"

func TestNewStartsOff(t *testing.T) {
	for _, max := range []int{0, 1, 10, 20, 100} {
		l, err := New("Lamp", max)
		if err != nil {
			t.Fatalf("New(max=%d): %v", max, err)
		}
		if l.CurrentLevel != 0 {
			t.Errorf("New(max=%d): CurrentLevel = %d, want 0", max, l.CurrentLevel)
		}
		if l.MaxLevel != max {
			t.Errorf("New(max=%d): MaxLevel = %d, want %d", max, l.MaxLevel, max)
		}
	}
}

func TestNewRejectsNegativeMax(t *testing.T) {
	l, err := New("Lamp", -1)
	if err == nil {
		t.Fatalf("New(max=-1): expected error, got lamp %+v", l)
	}
}

func TestIncreaseClampsAtMax(t *testing.T) {
	l, _ := New("Lamp", 10)
	l.Increase(15)
	if l.CurrentLevel != 10 {
		t.Errorf("Increase(15) on max 10: CurrentLevel = %d, want 10", l.CurrentLevel)
	}
}

func TestDecreaseClampsAtZero(t *testing.T) {
	l, _ := New("Lamp", 10)
	l.CurrentLevel = 3
	l.Decrease(5)
	if l.CurrentLevel != 0 {
		t.Errorf("Decrease(5) from 3: CurrentLevel = %d, want 0", l.CurrentLevel)
	}
}

func TestZeroAmountMeansDefaultStep(t *testing.T) {
	l, _ := New("Lamp", 10)

	// An explicit zero is "no amount given", not "change by zero".
	l.Increase(0)
	if l.CurrentLevel != 1 {
		t.Errorf("Increase(0): CurrentLevel = %d, want 1", l.CurrentLevel)
	}
	l.Increase(0)
	if l.CurrentLevel != 2 {
		t.Errorf("second Increase(0): CurrentLevel = %d, want 2", l.CurrentLevel)
	}
	l.Decrease(0)
	if l.CurrentLevel != 1 {
		t.Errorf("Decrease(0): CurrentLevel = %d, want 1", l.CurrentLevel)
	}
}

func TestSetOffAndSetFull(t *testing.T) {
	l, _ := New("Lamp", 10)

	l.SetFull()
	if l.CurrentLevel != 10 {
		t.Errorf("SetFull: CurrentLevel = %d, want 10", l.CurrentLevel)
	}

	l.SetOff()
	if l.CurrentLevel != 0 {
		t.Errorf("SetOff: CurrentLevel = %d, want 0", l.CurrentLevel)
	}

	// SetFull from an arbitrary mid level.
	l.CurrentLevel = 4
	l.SetFull()
	if l.CurrentLevel != 10 {
		t.Errorf("SetFull from 4: CurrentLevel = %d, want 10", l.CurrentLevel)
	}
}

func TestNegativeAmountsStayInRange(t *testing.T) {
	l, _ := New("Lamp", 10)
	l.CurrentLevel = 5

	l.Increase(-20)
	if l.CurrentLevel != 0 {
		t.Errorf("Increase(-20) from 5: CurrentLevel = %d, want 0", l.CurrentLevel)
	}

	l.Decrease(-20)
	if l.CurrentLevel != 10 {
		t.Errorf("Decrease(-20) from 0: CurrentLevel = %d, want 10", l.CurrentLevel)
	}
}

// TestInvariantUnderArbitrarySequence runs a mixed call sequence and
// checks 0 <= CurrentLevel <= MaxLevel after every step.
func TestInvariantUnderArbitrarySequence(t *testing.T) {
	l, _ := New("Lamp", 7)

	steps := []func(){
		func() { l.Increase(3) },
		func() { l.Increase(100) },
		func() { l.Decrease(0) },
		func() { l.Decrease(50) },
		func() { l.SetFull() },
		func() { l.Increase(-2) },
		func() { l.Decrease(-9) },
		func() { l.SetOff() },
		func() { l.Increase(0) },
	}

	for i, step := range steps {
		step()
		if l.CurrentLevel < 0 || l.CurrentLevel > l.MaxLevel {
			t.Fatalf("step %d: CurrentLevel = %d outside [0, %d]", i, l.CurrentLevel, l.MaxLevel)
		}
	}
}

// TestDecreaseFromOverdrivenLamp steps down from a level a surge left
// above the capacity. Decrease must not snap the level back to
// MaxLevel — the violated bound is preserved state, not an error.
func TestDecreaseFromOverdrivenLamp(t *testing.T) {
	l, _ := New("Lamp", 10)
	l.CurrentLevel = 100

	l.Decrease(5)
	if l.CurrentLevel != 95 {
		t.Errorf("Decrease(5) from 100: CurrentLevel = %d, want 95", l.CurrentLevel)
	}

	l.Decrease(0)
	if l.CurrentLevel != 94 {
		t.Errorf("Decrease(0) from 95: CurrentLevel = %d, want 94", l.CurrentLevel)
	}

	// The lower clamp still applies from way up there.
	l.Decrease(1000)
	if l.CurrentLevel != 0 {
		t.Errorf("Decrease(1000) from 94: CurrentLevel = %d, want 0", l.CurrentLevel)
	}
}

func TestIsOn(t *testing.T) {
	l, _ := New("Lamp", 10)
	if l.IsOn() {
		t.Error("fresh lamp should be off")
	}
	l.Increase(0)
	if !l.IsOn() {
		t.Error("lamp at level 1 should be on")
	}
	l.SetOff()
	if l.IsOn() {
		t.Error("lamp after SetOff should be off")
	}
}
