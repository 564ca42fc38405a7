package calendar

import "testing"

func TestBCD(t *testing.T) {
	for v := uint8(0); v < 100; v++ {
		if got := FromBCD(ToBCD(v)); got != v {
			t.Fatalf("bcd round trip %d -> %d", v, got)
		}
	}
	if ToBCD(59) != 0x59 || FromBCD(0x23) != 23 {
		t.Fatal("bcd encoding mismatch")
	}
}

func TestKnownInstants(t *testing.T) {
	cases := []struct {
		d    Date
		tm   Time
		secs uint32
	}{
		{PackDate(6, 1, 1, 0), PackTime(0, 0, 0), 946684800},        // Sat 2000-01-01
		{PackDate(2, 29, 2, 0), PackTime(12, 0, 0), 951825600},      // Tue 2000-02-29
		{PackDate(1, 1, 3, 21), PackTime(8, 30, 15), 1614587415},    // Mon 2021-03-01
		{PackDate(4, 31, 12, 99), PackTime(23, 59, 59), 4102444799}, // Thu 2099-12-31
	}
	for _, c := range cases {
		if got := ToSeconds(c.d, c.tm); got != c.secs {
			t.Errorf("ToSeconds(%06x,%06x)=%d want %d", uint32(c.d), uint32(c.tm), got, c.secs)
		}
		d, tm := FromSeconds(c.secs)
		if d != c.d || tm != c.tm {
			t.Errorf("FromSeconds(%d)=%06x,%06x want %06x,%06x", c.secs, uint32(d), uint32(tm), uint32(c.d), uint32(c.tm))
		}
	}
}

// Walks every day of the century at a few times of day.
func TestRoundTripCentury(t *testing.T) {
	for s := uint32(MinSeconds); s < MaxSeconds; s += secondsPerDay {
		for _, off := range []uint32{0, 1, 3599, 43210, secondsPerDay - 1} {
			in := s + off
			d, tm := FromSeconds(in)
			if !d.Valid() || !tm.Valid() {
				t.Fatalf("FromSeconds(%d) invalid: %06x %06x", in, uint32(d), uint32(tm))
			}
			if out := ToSeconds(d, tm); out != in {
				t.Fatalf("round trip %d -> %06x %06x -> %d", in, uint32(d), uint32(tm), out)
			}
		}
	}
}

func TestFromSecondsClamps(t *testing.T) {
	d, tm := FromSeconds(0)
	if d.Year() != 2000 || d.Month() != 1 || d.Day() != 1 || tm != 0 {
		t.Fatalf("low clamp: %06x %06x", uint32(d), uint32(tm))
	}
	d, _ = FromSeconds(^uint32(0))
	if d.Year() != 2099 || d.Month() != 12 || d.Day() != 31 {
		t.Fatalf("high clamp: %06x", uint32(d))
	}
}

func TestValid(t *testing.T) {
	bad := []Date{
		PackDate(2, 30, 2, 24), // no Feb 30
		PackDate(1, 29, 2, 23), // 2023 not leap
		PackDate(1, 1, 13, 24), // month 13
		PackDate(3, 1, 1, 24),  // 2024-01-01 was a Monday
		Date(0x00_20_1A),       // non-decimal day digit
	}
	for _, d := range bad {
		if d.Valid() {
			t.Errorf("date %06x reported valid", uint32(d))
		}
	}
	if !PackDate(1, 1, 1, 24).Valid() {
		t.Error("2024-01-01 Monday should be valid")
	}
	if PackTime(24, 0, 0).Valid() || PackTime(0, 60, 0).Valid() || Time(0x0000_0A).Valid() {
		t.Error("invalid time accepted")
	}
}

func TestAlarm(t *testing.T) {
	d := PackDate(5, 15, 6, 29)
	tm := PackTime(7, 45, 30)
	a := ToAlarm(d, tm)
	if a.Day() != 15 || a.Time() != tm {
		t.Fatalf("alarm %08x", uint32(a))
	}
	if uint32(a)&0x80808080 != 0 {
		t.Fatalf("mask bits set in %08x", uint32(a))
	}

	// One minute before midnight at month end rolls into the next month.
	a = After(PackDate(4, 31, 1, 30), PackTime(23, 59, 30), 60)
	if a.Day() != 1 || a.Time() != PackTime(0, 0, 30) {
		t.Fatalf("After rollover: %08x", uint32(a))
	}
}
