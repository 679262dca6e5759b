package states

import "fmt"

// GamePhase represents the current phase of a game
type GamePhase int

const (
	// PhaseInitializing - Engine created, board not yet set up
	PhaseInitializing GamePhase = iota

	// PhaseRunning - Active gameplay
	PhaseRunning

	// PhaseEnded - A winner has been declared
	PhaseEnded

	// PhaseReset - Throw the current game away before setting up a new one
	PhaseReset
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhaseRunning:
		return "Running"
	case PhaseEnded:
		return "Ended"
	case PhaseReset:
		return "Reset"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a terminal state
func (p GamePhase) IsTerminal() bool {
	return p == PhaseEnded
}

// CanReceiveActions returns true if moves in this phase still decide the game.
// Input in PhaseEnded is accepted but can no longer change the winner.
func (p GamePhase) CanReceiveActions() bool {
	return p == PhaseRunning
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseInitializing:
		return []GamePhase{PhaseRunning}
	case PhaseRunning:
		return []GamePhase{PhaseEnded, PhaseReset}
	case PhaseEnded:
		return []GamePhase{PhaseReset}
	case PhaseReset:
		return []GamePhase{PhaseInitializing}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a GamePhase
func ParsePhase(s string) GamePhase {
	switch s {
	case "Initializing":
		return PhaseInitializing
	case "Running":
		return PhaseRunning
	case "Ended":
		return PhaseEnded
	case "Reset":
		return PhaseReset
	default:
		return PhaseInitializing // Default to initializing for unknown phases
	}
}
