package views

import (
	"context"
	"strconv"

	"github.com/AdamBeresnev/poule-board/internal/tournament"
	"github.com/AdamBeresnev/poule-board/internal/viewmodel"
	"github.com/a-h/templ"
)

// resizeTrigger refetches the active view with the real window width once on
// load and after every burst of resize events settles for 250ms.
const resizeTrigger = `load, resize from:window delay:250ms`

func TournamentPage(t *tournament.Tournament, tab Tab, content templ.Component) templ.Component {
	return Layout(t.Name, component(func(ctx context.Context, h *html) {
		h.rawf(`<h1>%s</h1>`, t.Name)
		h.raw(`<nav class="tabs">`)
		for _, item := range tabs {
			class := ""
			if item.tab == tab {
				class = ` class="active"`
			}
			h.rawf(`<a href="/tournaments/%d?tab=%s"%s>%s</a>`, t.ID, string(item.tab), trusted(class), item.label)
		}
		if isOrganizer(ctx) {
			h.rawf(`<a href="/tournaments/%d/scores">Scores</a><a href="/tournaments/%d/manage">Manage</a>`, t.ID, t.ID)
		}
		h.raw(`</nav>`)

		h.rawf(`<div id="view" hx-get="/tournaments/%d/%s" hx-trigger="%s" hx-vals="js:{width: window.innerWidth}">`,
			t.ID, string(tab), resizeTrigger)
		h.render(ctx, content)
		h.raw(`</div>`)

		if tab == TabOverall {
			h.rawf(`<p><a href="/tournaments/%d/overall.xlsx">Download as spreadsheet</a></p>`, t.ID)
		}
	}))
}

func ScheduleFragment(view viewmodel.Schedule) templ.Component {
	return component(func(ctx context.Context, h *html) {
		if view.IsEmpty() {
			emptyMessage(h, view.EmptyMessage)
			return
		}
		for _, section := range GroupByPhase(view.Rounds) {
			h.rawf(`<section class="phase phase-%s"><h2>%s</h2>`, string(section.Phase), section.Title)
			for _, r := range section.Rounds {
				h.rawf(`<h3>%s</h3>`, r.Heading)
				if view.Layout == viewmodel.LayoutCards {
					scheduleCards(h, r.Rows)
				} else {
					scheduleTable(h, r.Rows)
				}
			}
			h.raw(`</section>`)
		}
	})
}

func scheduleTable(h *html, rows []viewmodel.ScheduleRow) {
	h.raw(`<table><thead><tr><th>Field</th><th>Home</th><th>Away</th><th>Set 1</th><th>Set 2</th><th>Referee</th></tr></thead><tbody>`)
	for _, row := range rows {
		h.rawf(`<tr><td>%d</td><td>%s</td><td>%s</td>`, row.Field, row.Home, row.Away)
		h.raw(`<td>`)
		setScore(h, row.Set1)
		h.raw(`</td><td>`)
		setScore(h, row.Set2)
		h.rawf(`</td><td>%s</td></tr>`, row.Referee)
	}
	h.raw(`</tbody></table>`)
}

func scheduleCards(h *html, rows []viewmodel.ScheduleRow) {
	for _, row := range rows {
		h.rawf(`<div class="card"><div>Field %d</div><div>%s vs %s</div>`, row.Field, row.Home, row.Away)
		h.raw(`<div>Set 1: `)
		setScore(h, row.Set1)
		h.raw(` · Set 2: `)
		setScore(h, row.Set2)
		h.rawf(`</div><div>Referee: %s</div></div>`, row.Referee)
	}
}

func setScore(h *html, s viewmodel.SetView) {
	if !s.Entered() {
		h.text(s.Text())
		return
	}
	scorePart(h, *s.Home, s.HomeWinner)
	h.raw("-")
	scorePart(h, *s.Away, s.AwayWinner)
}

func scorePart(h *html, v int, winner bool) {
	if winner {
		h.rawf(`<span class="winner">%d</span>`, v)
		return
	}
	h.raw(strconv.Itoa(v))
}

func StandingsFragment(view viewmodel.Standings) templ.Component {
	return component(func(ctx context.Context, h *html) {
		if view.IsEmpty() {
			emptyMessage(h, view.EmptyMessage)
			return
		}
		for _, p := range view.Poules {
			h.rawf(`<h2>%s</h2>`, p.Heading)
			if view.Layout == viewmodel.LayoutCards {
				for _, row := range p.Rows {
					h.rawf(`<div class="card"><strong>%d. %s</strong><div>%d pts · %d played · %s</div></div>`,
						row.Rank, row.Team, row.Points, row.Played, row.BalanceText)
				}
				continue
			}
			h.raw(`<table><thead><tr><th>#</th><th>Team</th><th>Points</th><th>Played</th><th>Balance</th></tr></thead><tbody>`)
			for _, row := range p.Rows {
				h.rawf(`<tr><td>%d</td><td>%s</td><td>%d</td><td>%d</td><td>%s</td></tr>`,
					row.Rank, row.Team, row.Points, row.Played, row.BalanceText)
			}
			h.raw(`</tbody></table>`)
		}
	})
}

func OverallFragment(view viewmodel.Overall) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.rawf(`<h2>%s</h2>`, view.Heading)
		if view.IsEmpty() {
			emptyMessage(h, view.EmptyMessage)
			return
		}
		if view.Layout == viewmodel.LayoutCards {
			for _, row := range view.Rows {
				h.rawf(`<div class="card"><strong>%d. %s</strong>`, row.Rank, row.Team)
				if row.Badge != "" {
					h.rawf(` <span class="badge">%s</span>`, row.Badge)
				}
				h.raw(`<div>`)
				if view.ShowPoints && row.Points != nil {
					h.rawf(`%d pts · `, *row.Points)
				}
				h.rawf(`%d played · %s</div></div>`, row.Played, row.BalanceText)
			}
			return
		}

		h.raw(`<table><thead><tr><th>#</th><th>Team</th>`)
		if view.ShowPoints {
			h.raw(`<th>Progression</th><th>Points</th>`)
		}
		h.raw(`<th>Played</th><th>Balance</th></tr></thead><tbody>`)
		for _, row := range view.Rows {
			h.rawf(`<tr><td>%d</td><td>%s</td>`, row.Rank, row.Team)
			if view.ShowPoints {
				points := ""
				if row.Points != nil {
					points = strconv.Itoa(*row.Points)
				}
				h.rawf(`<td>%s</td><td>%s</td>`, row.Badge, points)
			}
			h.rawf(`<td>%d</td><td>%s</td></tr>`, row.Played, row.BalanceText)
		}
		h.raw(`</tbody></table>`)
	})
}
