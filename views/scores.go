package views

import (
	"context"

	"github.com/AdamBeresnev/poule-board/internal/score"
	"github.com/AdamBeresnev/poule-board/internal/tournament"
	"github.com/AdamBeresnev/poule-board/internal/viewmodel"
	"github.com/a-h/templ"
)

var phaseOptions = []tournament.PhaseSelection{
	tournament.SelectCurrent,
	tournament.SelectAll,
	tournament.PhaseSelection(tournament.PhaseGroup),
	tournament.PhaseSelection(tournament.PhaseKnockout),
	tournament.PhaseSelection(tournament.PhaseFinal),
}

func phaseOptionLabel(sel tournament.PhaseSelection, current tournament.PhaseType) string {
	switch sel {
	case tournament.SelectCurrent:
		return "Current (" + current.Label() + ")"
	case tournament.SelectAll:
		return "All phases"
	}
	return tournament.PhaseType(sel).Label()
}

const phaseSelectID = "phase-select"

func ScoreEntryPage(t *tournament.Tournament, view viewmodel.ScoreEntry) templ.Component {
	return Layout("Scores · "+t.Name, component(func(ctx context.Context, h *html) {
		h.rawf(`<h1>Scores · %s</h1>`, t.Name)
		h.rawf(`<p><a href="/tournaments/%d">Back to schedule</a></p>`, t.ID)

		h.rawf(`<label>Phase <select id="%s" name="phase" hx-get="/tournaments/%d/scores/list" hx-target="#scores" hx-vals="js:{width: window.innerWidth}">`, phaseSelectID, t.ID)
		for _, opt := range phaseOptions {
			selected := ""
			if opt == view.Selection {
				selected = " selected"
			}
			h.rawf(`<option value="%s"%s>%s</option>`, string(opt), trusted(selected), phaseOptionLabel(opt, view.Current))
		}
		h.raw(`</select></label>`)

		// The phase comes from the select, so a resize keeps whatever is chosen.
		h.rawf(`<div id="scores" hx-get="/tournaments/%d/scores/list" hx-include="#%s" hx-trigger="%s" hx-vals="js:{width: window.innerWidth}">`,
			t.ID, phaseSelectID, resizeTrigger)
		h.render(ctx, ScoreEntryFragment(t.ID, view, nil))
		h.raw(`</div>`)
	}))
}

// ScoreEntryFragment lists the filtered matches, each with its own form. A
// submit swaps the whole list for the reloaded one.
func ScoreEntryFragment(tournamentID int, view viewmodel.ScoreEntry, flash templ.Component) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.render(ctx, flash)
		if view.IsEmpty() {
			emptyMessage(h, view.EmptyMessage)
			return
		}
		for _, r := range view.Rounds {
			h.rawf(`<h2>%s</h2>`, r.Heading)
			for _, row := range r.Rows {
				scoreForm(h, tournamentID, view, row)
			}
		}
	})
}

func scoreForm(h *html, tournamentID int, view viewmodel.ScoreEntry, row viewmodel.ScoreEntryRow) {
	class := "card"
	if row.Complete {
		class += " complete"
	}
	h.rawf(`<form class="%s" hx-post="/matches/%d/score" hx-target="#scores" hx-vals="js:{width: window.innerWidth}">`, class, row.MatchID)
	h.rawf(`<input type="hidden" name="tournament" value="%d"><input type="hidden" name="phase" value="%s">`, tournamentID, string(view.Selection))
	h.rawf(`<div>Field %d: %s vs %s</div>`, row.Field, row.Home, row.Away)

	sets := []struct {
		label      string
		home, away string
		hv, av     string
	}{
		{"Set 1", score.FieldHomeSet1, score.FieldAwaySet1, row.HomeSet1, row.AwaySet1},
		{"Set 2", score.FieldHomeSet2, score.FieldAwaySet2, row.HomeSet2, row.AwaySet2},
	}
	for _, s := range sets {
		h.rawf(`<label>%s <input class="score" type="number" min="0" name="%s" value="%s">`, s.label, s.home, s.hv)
		h.rawf(` - <input class="score" type="number" min="0" name="%s" value="%s"></label> `, s.away, s.av)
	}
	h.raw(`<button type="submit">Save</button></form>`)
}
