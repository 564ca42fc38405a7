package power

import "testing"

// press holds the button from t=1000 for held ms and returns every event.
func press(held uint32) []ButtonEvent {
	var b Button
	var evs []ButtonEvent
	for now := uint32(0); now <= 1000+held+10; now++ {
		down := now >= 1000 && now < 1000+held
		if ev := b.Update(down, now); ev != EventNone {
			evs = append(evs, ev)
		}
	}
	return evs
}

func TestButtonTimings(t *testing.T) {
	cases := []struct {
		held uint32
		want []ButtonEvent
	}{
		{1, nil},
		{39, nil},
		{40, []ButtonEvent{EventShortPress}},
		{1500, []ButtonEvent{EventShortPress}},
		{2999, []ButtonEvent{EventShortPress}},
		{3001, []ButtonEvent{EventMaintained, EventLongPress}},
		{10000, []ButtonEvent{EventMaintained, EventLongPress}},
	}
	for _, c := range cases {
		got := press(c.held)
		if len(got) != len(c.want) {
			t.Fatalf("held %d ms: events %v, want %v", c.held, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("held %d ms: events %v, want %v", c.held, got, c.want)
			}
		}
	}
}

func TestButtonMaintainedAtThreshold(t *testing.T) {
	var b Button
	b.Update(true, 0)
	if ev := b.Update(true, 2999); ev != EventNone || b.State() != ButtonPressed {
		t.Fatalf("2999 ms: %v state %d", ev, b.State())
	}
	if ev := b.Update(true, 3000); ev != EventMaintained || b.State() != ButtonMaintained {
		t.Fatalf("3000 ms: %v state %d", ev, b.State())
	}
	if ev := b.Update(true, 5000); ev != EventNone {
		t.Fatalf("maintained emitted %v twice", ev)
	}
	if ev := b.Update(false, 5001); ev != EventLongPress || b.State() != ButtonIdle {
		t.Fatalf("release: %v state %d", ev, b.State())
	}
}

func TestButtonAcrossTickWrap(t *testing.T) {
	var b Button
	start := ^uint32(0) - 20
	b.Update(true, start)
	if ev := b.Update(false, start+50); ev != EventShortPress {
		t.Fatalf("short press across wrap: %v", ev)
	}
}
