package internal

import (
	"testing"

	"github.com/kcmvp/archunit"
)

func TestArchitecture(t *testing.T) {
	// archunit path segments allow only letters and dots, so the hyphenated
	// module path cannot appear literally; "." matches any byte in the
	// compiled pattern, and this form selects exactly the module root.
	library := archunit.Packages("library", []string{"github.com/.../ariston.go"})
	bridge := archunit.Packages("bridge", []string{".../internal/bridge"})
	commands := archunit.Packages("commands", []string{".../cmd/..."})

	// Rule 1: the library must not depend on the bridge
	if err := library.ShouldNotReferLayers(bridge); err != nil {
		t.Errorf("Architecture violation: library depends on the bridge: %v", err)
	}

	// Rule 2: the library must not depend on the commands
	if err := library.ShouldNotReferLayers(commands); err != nil {
		t.Errorf("Architecture violation: library depends on commands: %v", err)
	}

	// Rule 3: the bridge must not depend on the commands
	if err := bridge.ShouldNotReferLayers(commands); err != nil {
		t.Errorf("Architecture violation: bridge depends on commands: %v", err)
	}
}
