package webstorage

import "fmt"

// Kind selects one of the two backing stores.
type Kind int

const (
	// Durable survives across sessions.
	Durable Kind = iota
	// Session lives for the current session only.
	Session
)

func (k Kind) String() string {
	switch k {
	case Durable:
		return "durable"
	case Session:
		return "session"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// RuntimeMode decides what SetItem does with a malformed expiry.
type RuntimeMode int

const (
	// Production drops writes with a malformed expiry silently.
	Production RuntimeMode = iota
	// Development returns the expiry error to the caller.
	Development
)

func (m RuntimeMode) String() string {
	if m == Development {
		return "development"
	}
	return "production"
}

// ParseRuntimeMode maps "development" (or "dev") to Development and
// "production", "prod" or "" to Production.
func ParseRuntimeMode(s string) (RuntimeMode, error) {
	switch s {
	case "development", "dev":
		return Development, nil
	case "production", "prod", "":
		return Production, nil
	default:
		return Production, fmt.Errorf("unknown runtime mode %q", s)
	}
}
