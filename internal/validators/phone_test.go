package validators

import "testing"

func TestIsPhoneValid_Brazil(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"(11) 98888-7777", true},
		{"11988887777", true},
		{"+55 11 99999-0000", true},
		{"(21) 3333-4444", true},
		{"+1 650-253-0000", true},

		{"", false},
		{"123", false},
		{"00000000", false},
		{"++++1234-5678", false},
		{"((((12345678", false},
		{"999999999999999", false},
		{"(11) 1234-5678", false},
	}

	for _, tc := range cases {
		if got := IsPhoneValid(tc.phone, "BR"); got != tc.want {
			t.Fatalf("IsPhoneValid(%q) = %v, want %v", tc.phone, got, tc.want)
		}
	}
}

func TestPhoneChecker_DefaultsToBrazil(t *testing.T) {
	if !(PhoneChecker{}).Valid("(11) 98888-7777") {
		t.Fatalf("expected national number to be read as brazilian")
	}

	us := PhoneChecker{Region: "us"}
	if !us.Valid("(650) 253-0000") {
		t.Fatalf("expected national number to be read in the configured region")
	}
	if us.Valid("(11) 98888-7777") {
		t.Fatalf("brazilian national number is not valid in the US")
	}
}

func TestIsPhoneRegionValid(t *testing.T) {
	for _, ok := range []string{"BR", "br", "", "US"} {
		if !IsPhoneRegionValid(ok) {
			t.Fatalf("expected region %q to be accepted", ok)
		}
	}
	if IsPhoneRegionValid("XX") {
		t.Fatalf("expected unknown region to be rejected")
	}
}
