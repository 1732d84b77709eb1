package manifest

import "fmt"

// Mode selects the transformation the rewriter applies to eligible
// dependencies. It is drawn from an outer configuration variant that also
// has a Disabled case; constructing a decorator with ModeDisabled is a
// static error (callers are expected to bypass the decorator entirely).
type Mode int

const (
	// ModeDisabled means no decorator should be installed at all.
	ModeDisabled Mode = iota
	// ModeIdentity rewrites only the identity field of matched dependencies.
	ModeIdentity
	// ModeSwizzle replaces matched dependencies with registry dependencies
	// where the requirement allows it.
	ModeSwizzle
)

// String returns the lowercase configuration-file spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeDisabled:
		return "disabled"
	case ModeIdentity:
		return "identity"
	case ModeSwizzle:
		return "swizzle"
	default:
		return "unknown"
	}
}

// ParseMode parses the configuration-file spelling of a mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "disabled", "":
		return ModeDisabled, nil
	case "identity":
		return ModeIdentity, nil
	case "swizzle":
		return ModeSwizzle, nil
	default:
		return ModeDisabled, fmt.Errorf("unknown transformation mode %q", s)
	}
}
