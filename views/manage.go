package views

import (
	"context"

	"github.com/AdamBeresnev/poule-board/internal/gate"
	"github.com/AdamBeresnev/poule-board/internal/service"
	"github.com/AdamBeresnev/poule-board/internal/tournament"
	"github.com/a-h/templ"
)

// gatesScript swaps the gates fragment with whatever the server pushes.
const gatesScript = `<script>
(function () {
  var el = document.getElementById("gates");
  if (!el || !window.WebSocket) return;
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + el.dataset.ws);
  ws.onmessage = function (ev) { el.innerHTML = ev.data; htmx.process(el); };
})();
</script>`

func ManagePage(data *service.ManageData, flash templ.Component) templ.Component {
	t := data.Tournament
	return Layout("Manage · "+t.Name, component(func(ctx context.Context, h *html) {
		h.rawf(`<h1>Manage · %s</h1>`, t.Name)
		h.render(ctx, flash)
		h.rawf(`<p>%d rounds scheduled, current phase: %s. <a href="/tournaments/%d/scores">Enter scores</a></p>`,
			data.Rounds, data.CurrentPhase.Label(), t.ID)

		h.raw(`<h2>Phases</h2><div id="generate-result"></div>`)
		h.rawf(`<div id="gates" data-ws="/tournaments/%d/gates/ws" hx-get="/tournaments/%d/gates" hx-trigger="every 30s">`, t.ID, t.ID)
		h.render(ctx, GatesFragment(data.Gates))
		h.raw(`</div>`)
		h.raw(gatesScript)

		h.raw(`<h2>Teams</h2>`)
		for _, p := range data.Poules {
			h.rawf(`<h3>Poule %s</h3>`, p.Name)
			h.rawf(`<form method="post" action="/tournaments/%d/poules/%d/rename" class="inline">`, t.ID, p.ID)
			h.rawf(`<input name="name" required value="%s" aria-label="Poule name"> <button type="submit">Rename</button></form> `, p.Name)
			h.rawf(`<form method="post" action="/tournaments/%d/poules/%d/delete" class="inline" onsubmit="return confirm('Delete this poule?')">`, t.ID, p.ID)
			h.raw(`<button type="submit">Delete poule</button></form>`)
			teamList(h, t.ID, data.TeamsInPoule(&p.ID), data.Poules)
		}
		if unassigned := data.TeamsInPoule(nil); len(unassigned) > 0 {
			h.raw(`<h3>Without poule</h3>`)
			teamList(h, t.ID, unassigned, data.Poules)
		}

		h.rawf(`<form method="post" action="/tournaments/%d/poules">`, t.ID)
		h.raw(`<label>New poule <input name="name" required></label> <button type="submit">Add poule</button></form>`)

		h.rawf(`<form method="post" action="/tournaments/%d/teams">`, t.ID)
		h.raw(`<label>Add teams, one per line<br><textarea name="names" rows="4" cols="40"></textarea></label><br>`)
		h.raw(`<label>Poule `)
		pouleSelect(h, data.Poules, nil, true)
		h.raw(`</label> <button type="submit">Add</button></form>`)

		h.raw(`<h2>Settings</h2>`)
		h.rawf(`<form method="post" action="/tournaments/%d/settings">`, t.ID)
		tournamentFields(h, t)
		h.raw(`<button type="submit">Save</button></form>`)
		h.rawf(`<form method="post" action="/tournaments/%d/delete" onsubmit="return confirm('Delete this tournament and all its matches?')">`, t.ID)
		h.raw(`<button type="submit">Delete tournament</button></form>`)
	}))
}

func teamList(h *html, tournamentID int, teams []tournament.Team, poules []tournament.Poule) {
	if len(teams) == 0 {
		emptyMessage(h, "No teams.")
		return
	}
	h.raw(`<ul>`)
	for _, team := range teams {
		h.rawf(`<li><form method="post" action="/tournaments/%d/teams/%d/edit" class="inline">`, tournamentID, team.ID)
		h.rawf(`<input name="name" required value="%s" aria-label="Team name"> `, team.Name)
		// The server cannot take a team out of its poule, so "None" is only
		// offered to teams that have none yet.
		pouleSelect(h, poules, team.PouleID, team.PouleID == nil)
		h.raw(` <button type="submit">Save</button></form> `)
		h.rawf(`<form method="post" action="/tournaments/%d/teams/%d/delete" class="inline" onsubmit="return confirm('Delete this team?')">`, tournamentID, team.ID)
		h.raw(`<button type="submit">Delete</button></form></li>`)
	}
	h.raw(`</ul>`)
}

func pouleSelect(h *html, poules []tournament.Poule, selected *int, allowNone bool) {
	h.raw(`<select name="poule" aria-label="Poule">`)
	if allowNone {
		h.raw(`<option value="">None</option>`)
	}
	for _, p := range poules {
		if selected != nil && *selected == p.ID {
			h.rawf(`<option value="%d" selected>%s</option>`, p.ID, p.Name)
			continue
		}
		h.rawf(`<option value="%d">%s</option>`, p.ID, p.Name)
	}
	h.raw(`</select>`)
}

var generateLabels = []struct {
	phase tournament.PhaseType
	label string
}{
	{tournament.PhaseGroup, "Generate group phase"},
	{tournament.PhaseKnockout, "Generate knockout phase"},
	{tournament.PhaseFinal, "Generate final"},
}

// GatesFragment renders only the generate buttons whose gate is open. A
// closed gate is absent from the page, never shown disabled.
func GatesFragment(state gate.State) templ.Component {
	return component(func(ctx context.Context, h *html) {
		for _, g := range generateLabels {
			if !state.Open(g.phase) {
				continue
			}
			h.rawf(`<button hx-post="/tournaments/%d/generate/%s" hx-target="#generate-result" hx-confirm="%s?">%s</button> `,
				state.TournamentID, string(g.phase), g.label, g.label)
		}
		if state.Status != nil {
			s := state.Status
			h.rawf(`<p class="empty">Group matches %d/%d complete, knockout matches %d/%d complete.</p>`,
				s.GroupMatchesCompleted, s.GroupMatchesTotal, s.KnockoutMatchesCompleted, s.KnockoutMatchesTotal)
		}
	})
}
