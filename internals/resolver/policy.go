package resolver

import "fmt"

// Policy decides which version of a mod is used
type Policy uint8

const (
	// Pinned uses exactly the version from the manifest
	Pinned Policy = iota
	// BleedingEdge uses the newest version that is compatible with the loader and game version
	BleedingEdge
)

func (p Policy) String() string {
	switch p {
	case Pinned:
		return "pinned"
	case BleedingEdge:
		return "bleeding-edge"
	default:
		return "unknown"
	}
}

// ParsePolicy parses "pinned" or "bleeding-edge". An empty string is `Pinned`
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "pinned":
		return Pinned, nil
	case "bleeding-edge":
		return BleedingEdge, nil
	default:
		return Pinned, fmt.Errorf("invalid policy %q (valid: pinned, bleeding-edge)", s)
	}
}
