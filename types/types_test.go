package types

import "testing"

func TestCapabilityAddressSegments(t *testing.T) {
	cases := []struct {
		addr CapabilityAddress
		want []string
	}{
		{CapabilityAddress{"input", KindPointer, "trackball"}, []string{"input", "cap", "pointer", "trackball"}},
		{CapabilityAddress{"input", KindButton, "left"}, []string{"input", "cap", "button", "left"}},
		{CapabilityAddress{"output", KindLED, "caps"}, []string{"output", "cap", "led", "caps"}},
	}
	for _, tc := range cases {
		got := tc.addr.Segments()
		if len(got) != len(tc.want) {
			t.Fatalf("Segments(%+v) = %v, want %v", tc.addr, got, tc.want)
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Errorf("Segments(%+v)[%d] = %q, want %q", tc.addr, i, got[i], tc.want[i])
			}
		}
	}
}

func TestSegmentsReturnsFreshSlice(t *testing.T) {
	a := CapabilityAddress{"input", KindPointer, "trackball"}
	s := a.Segments()
	s = append(s, "event") // a caller extending one path ...
	if got := a.Segments(); got[len(got)-1] != "trackball" {
		t.Errorf("Segments mutated by caller append: %v", got)
	}
}
