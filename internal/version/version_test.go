// ABOUTME: Tests for version constants and the banner string
// ABOUTME: Remote hello messages and the TUI header depend on these
package version

import (
	"regexp"
	"testing"
)

func TestProductName(t *testing.T) {
	if Product != "wavecast" {
		t.Errorf("expected product wavecast, got %q", Product)
	}
}

func TestVersionIsSemver(t *testing.T) {
	if !regexp.MustCompile(`^\d+\.\d+\.\d+$`).MatchString(Version) {
		t.Errorf("version %q is not major.minor.patch", Version)
	}
}

func TestString(t *testing.T) {
	want := Product + " " + Version
	if got := String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
