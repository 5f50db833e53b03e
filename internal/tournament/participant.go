package tournament

import "strconv"

type SlotState int

const (
	SlotUnresolved SlotState = iota
	SlotPlaceholder
	SlotBound
)

// Participant is one side of a match: a bound team, a rank-within-poule
// placeholder, or neither.
type Participant struct {
	Team         *TeamRef
	RankPosition *int
	RankPoule    *PouleRef
}

// State classifies the slot. A rank without a poule is unresolved: it cannot
// be written as a placeholder in the schedule, though the score entry form,
// which never shows the poule, still prints the bare rank for it.
func (p Participant) State() SlotState {
	switch {
	case p.Team != nil:
		return SlotBound
	case p.hasRank() && p.RankPoule != nil:
		return SlotPlaceholder
	default:
		return SlotUnresolved
	}
}

func (p Participant) hasRank() bool {
	return p.RankPosition != nil && *p.RankPosition != 0
}

type Side int

const (
	SideHome Side = iota
	SideAway
)

// LabelContext selects how unbound participants are written.
type LabelContext int

const (
	ContextSchedule LabelContext = iota
	ContextScoreEntry
)

type labelStyle struct {
	// rank writes a ranked side, or returns "" when the context cannot.
	rank     func(position int, poule *PouleRef) string
	defaults [2]string
}

var labelStyles = map[LabelContext]labelStyle{
	ContextSchedule: {
		rank: func(position int, poule *PouleRef) string {
			if poule == nil {
				return ""
			}
			return "#" + strconv.Itoa(position) + " poule " + poule.Name
		},
		defaults: [2]string{"Finalist 1", "Finalist 2"},
	},
	ContextScoreEntry: {
		// The score entry form only needs the rank, the poule is shown elsewhere.
		rank: func(position int, _ *PouleRef) string {
			return "#" + strconv.Itoa(position)
		},
		defaults: [2]string{"—", "—"},
	},
}

// ResolveParticipant returns the display label for a match side.
func ResolveParticipant(p Participant, ctx LabelContext, side Side) string {
	style, ok := labelStyles[ctx]
	if !ok {
		style = labelStyles[ContextSchedule]
	}

	if p.Team != nil {
		return p.Team.Name
	}
	if p.hasRank() {
		if label := style.rank(*p.RankPosition, p.RankPoule); label != "" {
			return label
		}
	}
	return style.defaults[side]
}

// RefereeLabel returns the referee team name or the fixed unassigned text.
func RefereeLabel(m *Match) string {
	if m.RefereeTeam != nil {
		return m.RefereeTeam.Name
	}
	return NoRefereeLabel
}

const NoRefereeLabel = "No referee assigned"
