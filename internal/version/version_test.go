package version

import "testing"

func TestString(t *testing.T) {
	defer func(v, r, d string) { BuildVersion, BuildRef, BuildDate = v, r, d }(BuildVersion, BuildRef, BuildDate)

	BuildVersion, BuildRef, BuildDate = "1.2.0", "", ""
	if got := String(); got != "1.2.0" {
		t.Fatalf("got %q", got)
	}

	BuildRef, BuildDate = "abc123", "2025-03-01"
	if got := String(); got != "1.2.0 (abc123) on 2025-03-01" {
		t.Fatalf("got %q", got)
	}
}
