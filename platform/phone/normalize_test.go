package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		region string
		want   string
	}{
		{"us national", "(650) 253-0000", "US", "+16502530000"},
		{"international prefix", "+31 6 12345678", "US", "+31612345678"},
		{"empty region falls back", "650-253-0000", "", "+16502530000"},
		{"unparseable kept", "  call me  ", "US", "call me"},
		{"blank", "   ", "US", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeE164(tc.input, tc.region); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("+16502530000", "NL") {
		t.Fatal("expected explicit country code to be valid in any region")
	}
	if IsValid("12", "US") {
		t.Fatal("expected short number to be invalid")
	}
	if IsValid("", "US") {
		t.Fatal("expected empty input to be invalid")
	}
}
