package viewmodel

import (
	"fmt"

	"github.com/AdamBeresnev/poule-board/internal/tournament"
	"github.com/AdamBeresnev/poule-board/internal/utils"
)

const NoScheduleMessage = "No schedule available."

type Schedule struct {
	Layout       Layout
	EmptyMessage string
	Rounds       []RoundView
}

func (s Schedule) IsEmpty() bool { return s.EmptyMessage != "" }

type RoundView struct {
	Number    int
	Type      tournament.PhaseType
	StartTime string
	Heading   string
	Rows      []ScheduleRow
}

type ScheduleRow struct {
	MatchID int
	Field   int
	Home    string
	Away    string
	Set1    SetView
	Set2    SetView
	Referee string
}

// SetView is one set's score pair. Each side is flagged as winner on its own
// when it scored strictly more than the other.
type SetView struct {
	Home       *int
	Away       *int
	HomeWinner bool
	AwayWinner bool
}

func newSetView(home, away *int) SetView {
	sv := SetView{Home: home, Away: away}
	if home == nil || away == nil {
		return sv
	}
	sv.HomeWinner = *home > *away
	sv.AwayWinner = *away > *home
	return sv
}

func (s SetView) Entered() bool {
	return s.Home != nil && s.Away != nil
}

func (s SetView) Text() string {
	if !s.Entered() {
		return "-"
	}
	return utils.FormatInt(s.Home, "") + "-" + utils.FormatInt(s.Away, "")
}

func BuildSchedule(rounds []tournament.Round, opts Options) Schedule {
	view := Schedule{Layout: SelectLayout(opts.Width)}
	if len(rounds) == 0 {
		view.EmptyMessage = NoScheduleMessage
		return view
	}

	view.Rounds = make([]RoundView, 0, len(rounds))
	for _, rnd := range rounds {
		rv := RoundView{
			Number:    rnd.RoundNumber,
			Type:      rnd.Type,
			StartTime: rnd.StartTime,
			Heading:   fmt.Sprintf("Round %d (%s), start %s", rnd.RoundNumber, rnd.Type, rnd.StartTime),
			Rows:      make([]ScheduleRow, 0, len(rnd.Matches)),
		}
		for i := range rnd.Matches {
			m := &rnd.Matches[i]
			rv.Rows = append(rv.Rows, ScheduleRow{
				MatchID: m.ID,
				Field:   m.FieldNumber,
				Home:    tournament.ResolveParticipant(m.Home(), tournament.ContextSchedule, tournament.SideHome),
				Away:    tournament.ResolveParticipant(m.Away(), tournament.ContextSchedule, tournament.SideAway),
				Set1:    newSetView(m.HomeSet1Score, m.AwaySet1Score),
				Set2:    newSetView(m.HomeSet2Score, m.AwaySet2Score),
				Referee: tournament.RefereeLabel(m),
			})
		}
		view.Rounds = append(view.Rounds, rv)
	}
	return view
}
