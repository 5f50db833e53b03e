package gate

import (
	"time"

	"github.com/AdamBeresnev/poule-board/internal/tournament"
)

// State is the visibility of the two generate actions that depend on
// earlier phases. A closed gate is both hidden and disabled.
type State struct {
	TournamentID int
	KnockoutOpen bool
	FinalOpen    bool

	// Status is the last applied server response, nil when the poll failed.
	Status    *tournament.PhaseStatus
	Seq       uint64
	UpdatedAt time.Time
	Err       error
}

// Derive maps a phase status onto the gates. The final gate stays closed
// while the knockout gate is closed, whatever the server reports.
func Derive(status tournament.PhaseStatus) State {
	knockout := status.GroupPhaseComplete
	return State{
		KnockoutOpen: knockout,
		FinalOpen:    knockout && status.KnockoutPhaseComplete,
		Status:       &status,
	}
}

// Closed is the state after a failed poll.
func Closed(err error) State {
	return State{Err: err}
}

func (s State) Open(phase tournament.PhaseType) bool {
	switch phase {
	case tournament.PhaseGroup:
		return true
	case tournament.PhaseKnockout:
		return s.KnockoutOpen
	case tournament.PhaseFinal:
		return s.FinalOpen
	}
	return false
}
