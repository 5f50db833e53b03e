package views

import (
	"context"

	"github.com/AdamBeresnev/poule-board/internal/service"
	"github.com/AdamBeresnev/poule-board/internal/tournament"
	"github.com/a-h/templ"
)

func Index(tournaments []tournament.Tournament, flash templ.Component) templ.Component {
	return Layout("Tournaments", component(func(ctx context.Context, h *html) {
		h.raw(`<h1>Tournaments</h1>`)
		h.render(ctx, flash)
		organizer := isOrganizer(ctx)
		if len(tournaments) == 0 {
			emptyMessage(h, "No tournaments yet.")
		} else {
			h.raw(`<ul class="tournaments">`)
			for _, t := range tournaments {
				h.rawf(`<li><a href="/tournaments/%d">%s</a> <span class="empty">%s, %d fields</span>`, t.ID, t.Name, t.StartTime, t.NumFields)
				if organizer {
					h.rawf(` · <a href="/tournaments/%d/scores">Scores</a> · <a href="/tournaments/%d/manage">Manage</a>`, t.ID, t.ID)
				}
				h.raw(`</li>`)
			}
			h.raw(`</ul>`)
		}

		if organizer {
			h.raw(`<h2>New tournament</h2><form method="post" action="/tournaments">`)
			tournamentFields(h, nil)
			h.raw(`<button type="submit">Create</button></form>`)
		}
	}))
}

// tournamentFields renders the inputs shared by the create and settings
// forms, prefilled from t when it is set.
func tournamentFields(h *html, t *tournament.Tournament) {
	in := tournament.Tournament{NumFields: 1, MatchDurationMinutes: 10}
	if t != nil {
		in = *t
	}
	start := in.StartTime
	if len(start) > len("2006-01-02T15:04") {
		start = start[:len("2006-01-02T15:04")]
	}
	h.rawf(`<label>Name <input name="%s" required value="%s"></label> `, service.FieldName, in.Name)
	h.rawf(`<label>Start <input name="%s" type="datetime-local" required value="%s"></label> `, service.FieldStartTime, start)
	h.rawf(`<label>Fields <input name="%s" type="number" min="1" required value="%d"></label> `, service.FieldNumFields, in.NumFields)
	h.rawf(`<label>Match minutes <input name="%s" type="number" min="1" required value="%d"></label> `, service.FieldMatchDuration, in.MatchDurationMinutes)
	h.rawf(`<label>Break minutes <input name="%s" type="number" min="0" required value="%d"></label> `, service.FieldBreakDuration, in.BreakDurationMinutes)
}

func LoginPage(username, errMsg string) templ.Component {
	return Layout("Log in", component(func(ctx context.Context, h *html) {
		h.raw(`<h1>Organizer login</h1>`)
		if errMsg != "" {
			h.rawf(`<p class="error" role="alert">%s</p>`, errMsg)
		}
		h.raw(`<form method="post" action="/login">`)
		h.rawf(`<label>Username <input name="username" autocomplete="username" required value="%s"></label> `, username)
		h.raw(`<label>Password <input name="password" type="password" autocomplete="current-password" required></label> `)
		h.raw(`<button type="submit">Log in</button></form>`)
	}))
}
