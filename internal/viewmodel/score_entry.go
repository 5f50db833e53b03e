package viewmodel

import (
	"fmt"

	"github.com/AdamBeresnev/poule-board/internal/score"
	"github.com/AdamBeresnev/poule-board/internal/tournament"
)

const NoMatchesMessage = "No matches found."

type ScoreEntry struct {
	Layout       Layout
	EmptyMessage string
	Current      tournament.PhaseType
	Selection    tournament.PhaseSelection
	Rounds       []ScoreRoundView
}

func (s ScoreEntry) IsEmpty() bool { return s.EmptyMessage != "" }

type ScoreRoundView struct {
	Number  int
	Type    tournament.PhaseType
	Heading string
	Rows    []ScoreEntryRow
}

// ScoreEntryRow carries the prefilled form values; an unentered score is "".
type ScoreEntryRow struct {
	MatchID  int
	Field    int
	Home     string
	Away     string
	HomeSet1 string
	AwaySet1 string
	HomeSet2 string
	AwaySet2 string
	Complete bool
}

// BuildScoreEntry filters rounds by the selection and builds the form rows.
func BuildScoreEntry(rounds []tournament.Round, sel tournament.PhaseSelection, opts Options) ScoreEntry {
	view := ScoreEntry{Layout: SelectLayout(opts.Width), Selection: sel}
	if len(rounds) == 0 {
		view.Current = tournament.CurrentPhase(rounds)
		view.EmptyMessage = NoMatchesMessage
		return view
	}

	filtered := tournament.FilterRounds(rounds, sel)
	view.Current = filtered.Current
	if len(filtered.Rounds) == 0 {
		view.EmptyMessage = fmt.Sprintf("No matches found for %s.", filtered.Applied.Label())
		return view
	}

	view.Rounds = make([]ScoreRoundView, 0, len(filtered.Rounds))
	for _, rnd := range filtered.Rounds {
		rv := ScoreRoundView{
			Number:  rnd.RoundNumber,
			Type:    rnd.Type,
			Heading: fmt.Sprintf("Round %d (%s)", rnd.RoundNumber, rnd.Type),
			Rows:    make([]ScoreEntryRow, 0, len(rnd.Matches)),
		}
		for i := range rnd.Matches {
			m := &rnd.Matches[i]
			rv.Rows = append(rv.Rows, ScoreEntryRow{
				MatchID:  m.ID,
				Field:    m.FieldNumber,
				Home:     tournament.ResolveParticipant(m.Home(), tournament.ContextScoreEntry, tournament.SideHome),
				Away:     tournament.ResolveParticipant(m.Away(), tournament.ContextScoreEntry, tournament.SideAway),
				HomeSet1: score.FormValue(m.HomeSet1Score),
				AwaySet1: score.FormValue(m.AwaySet1Score),
				HomeSet2: score.FormValue(m.HomeSet2Score),
				AwaySet2: score.FormValue(m.AwaySet2Score),
				Complete: m.IsComplete(),
			})
		}
		view.Rounds = append(view.Rounds, rv)
	}
	return view
}
