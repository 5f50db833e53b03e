package tournament

// CurrentPhase returns the type of the first round that still has an
// incomplete match. When every round is complete it returns the type of the
// last round, and the group phase for an empty schedule.
//
// Rounds must already be ordered by round number; they are never re-sorted.
func CurrentPhase(rounds []Round) PhaseType {
	if len(rounds) == 0 {
		return PhaseGroup
	}
	for i := range rounds {
		for j := range rounds[i].Matches {
			if !rounds[i].Matches[j].IsComplete() {
				return rounds[i].Type
			}
		}
	}
	return rounds[len(rounds)-1].Type
}

// PhaseSelection is a score entry filter value: "current", "all" or a phase.
type PhaseSelection string

const (
	SelectCurrent PhaseSelection = "current"
	SelectAll     PhaseSelection = "all"
)

func ParsePhaseSelection(s string) PhaseSelection {
	switch sel := PhaseSelection(s); {
	case sel == SelectAll, sel == SelectCurrent:
		return sel
	case PhaseType(s).Valid():
		return sel
	default:
		return SelectCurrent
	}
}

type FilterResult struct {
	Rounds  []Round
	Current PhaseType
	// Applied is SelectAll or the concrete phase that was filtered on.
	Applied PhaseSelection
}

// FilterRounds keeps the rounds matching the selection. SelectCurrent is
// resolved through CurrentPhase.
func FilterRounds(rounds []Round, sel PhaseSelection) FilterResult {
	current := CurrentPhase(rounds)
	res := FilterResult{Current: current, Applied: sel}
	if sel == SelectCurrent {
		res.Applied = PhaseSelection(current)
	}

	if res.Applied == SelectAll {
		res.Rounds = rounds
		return res
	}

	want := PhaseType(res.Applied)
	for _, r := range rounds {
		if r.Type == want {
			res.Rounds = append(res.Rounds, r)
		}
	}
	return res
}

func (s PhaseSelection) Label() string {
	if s == SelectAll {
		return "all phases"
	}
	return PhaseType(s).Label()
}
