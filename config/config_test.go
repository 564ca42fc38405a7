package config

import "testing"

func TestSelectedPlanPinsAreDistinct(t *testing.T) {
	seen := map[uint8]bool{}
	for _, p := range SelectedPlan.Pins() {
		if p > 29 {
			t.Fatalf("%s: GPIO%d does not exist", SelectedPlan.Name, p)
		}
		if seen[p] {
			t.Fatalf("%s: GPIO%d claimed twice", SelectedPlan.Name, p)
		}
		seen[p] = true
	}
	for _, a := range []uint8{SelectedPlan.VBatADC, SelectedPlan.VRefADC} {
		if a < 26 || a > 29 {
			t.Fatalf("GPIO%d is not an ADC input", a)
		}
	}
}

func TestFlashMap(t *testing.T) {
	if AppStart < FlashBase || AppEnd >= FlashBase+FlashSize {
		t.Fatal("application region outside flash")
	}
	if (AppStart-FlashBase)%PageSize != 0 || (AppEnd+1-FlashBase)%PageSize != 0 {
		t.Fatal("application region not page aligned")
	}
}
