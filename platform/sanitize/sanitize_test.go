package sanitize

import "testing"

func TestText(t *testing.T) {
	cases := map[string]string{
		"<b>Acme</b>   Rentals ":             "Acme Rentals",
		"&lt;script&gt;alert(1)&lt;/script&gt;": "alert(1)",
		"plain":                              "plain",
	}
	for input, want := range cases {
		if got := Text(input); got != want {
			t.Fatalf("Text(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestTextPtrBlankBecomesNil(t *testing.T) {
	blank := "  <br/> "
	if TextPtr(&blank) != nil {
		t.Fatal("expected blank input to become nil")
	}
	if TextPtr(nil) != nil {
		t.Fatal("expected nil to stay nil")
	}
}

func TestEmail(t *testing.T) {
	in := "  Sales@Framtt.COM "
	if got := Email(in); got != "sales@framtt.com" {
		t.Fatalf("unexpected email %q", got)
	}
	if EmailPtr(new(string)) != nil {
		t.Fatal("expected empty email pointer to become nil")
	}
}
