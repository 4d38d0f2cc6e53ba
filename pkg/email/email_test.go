package email

import "testing"

func TestDomain(t *testing.T) {
	cases := []struct {
		address string
		want    string
		ok      bool
	}{
		{"a@b.edu", "b.edu", true},
		{"doctor@nhs.uk", "nhs.uk", true},
		{"first.last@mayo.org", "mayo.org", true},
		{"no-at-sign", "", false},
		{"dot.before@nodot", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := Domain(tc.address)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("Domain(%q) = %q, %v; want %q, %v", tc.address, got, ok, tc.want, tc.ok)
		}
	}
}

func TestIsValid(t *testing.T) {
	valid := []string{"a@b.edu", "first.last@hospital.nhs.uk"}
	invalid := []string{"", "plain", "@b.edu", "a@b", "a@@b.edu", "a@.edu", "a@edu."}

	for _, address := range valid {
		if !IsValid(address) {
			t.Fatalf("expected %q to be valid", address)
		}
	}
	for _, address := range invalid {
		if IsValid(address) {
			t.Fatalf("expected %q to be invalid", address)
		}
	}
}
