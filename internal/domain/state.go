package domain

import "fmt"

// State represents the lifecycle state of an issue.
// There are exactly two states; reopening a closed issue transitions it
// back to open.
type State string

const (
	StateOpen   State = "Open"
	StateClosed State = "Closed"

	// Legacy state written by an old version that modeled reopening as a
	// third state. Mapped to open on load.
	stateReopenedLegacy State = "Reopened"
)

// ParseState parses a persisted state value.
// The legacy "Reopened" value is accepted and mapped to open.
func ParseState(s string) (State, error) {
	switch State(s) {
	case StateOpen:
		return StateOpen, nil
	case StateClosed:
		return StateClosed, nil
	case stateReopenedLegacy:
		return StateOpen, nil
	default:
		return "", fmt.Errorf("invalid issue state: %q", s)
	}
}

// Display returns a human-readable representation of the state.
func (s State) Display() string {
	return string(s)
}
