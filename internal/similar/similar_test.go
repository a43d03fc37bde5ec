package similar

import (
	"reflect"
	"testing"
)

func TestClosest(t *testing.T) {
	candidates := []string{"MWh", "kWh", "GWh", "MW", "t"}
	got := Closest("Mwh", candidates, 3)
	if len(got) == 0 || got[0] != "MWh" {
		t.Fatalf("case-only match should rank first, got %v", got)
	}
	if got := Closest("zzzzz", candidates, 3); len(got) != 0 {
		t.Errorf("expected no suggestions for zzzzz, got %v", got)
	}
	if got := Closest("MW", []string{"MW"}, 3); !reflect.DeepEqual(got, []string{"MW"}) {
		t.Errorf("exact symbol should still match, got %v", got)
	}
}

func TestClosestLimit(t *testing.T) {
	candidates := []string{"aa", "ab", "ac", "ad"}
	if got := Closest("a", candidates, 2); len(got) != 2 {
		t.Errorf("limit not applied: %v", got)
	}
}
