package viewmodel

import (
	"github.com/AdamBeresnev/poule-board/internal/tournament"
	"github.com/AdamBeresnev/poule-board/internal/utils"
)

const (
	NoStandingsMessage = "No standings available."
	NoOverallMessage   = "No overall ranking available."
	OverallHeading     = "Overall ranking"
)

type Standings struct {
	Layout       Layout
	EmptyMessage string
	Poules       []PouleView
}

func (s Standings) IsEmpty() bool { return s.EmptyMessage != "" }

type PouleView struct {
	Name    string
	Heading string
	Rows    []StandingRow
}

type StandingRow struct {
	Rank        int
	Team        string
	Points      int
	Played      int
	Balance     int
	BalanceText string
}

// BuildStandings ranks teams by the order the server sent them in.
func BuildStandings(poules []tournament.PouleStanding, opts Options) Standings {
	view := Standings{Layout: SelectLayout(opts.Width)}
	if len(poules) == 0 {
		view.EmptyMessage = NoStandingsMessage
		return view
	}

	view.Poules = make([]PouleView, 0, len(poules))
	for _, p := range poules {
		pv := PouleView{
			Name:    p.Name,
			Heading: "Poule " + p.Name,
			Rows:    make([]StandingRow, 0, len(p.Teams)),
		}
		for i, team := range p.Teams {
			balance := utils.OrZero(team.Balance)
			pv.Rows = append(pv.Rows, StandingRow{
				Rank:        i + 1,
				Team:        team.Name,
				Points:      team.Points,
				Played:      team.Played,
				Balance:     balance,
				BalanceText: FormatBalance(balance),
			})
		}
		view.Poules = append(view.Poules, pv)
	}
	return view
}

type Overall struct {
	Layout       Layout
	EmptyMessage string
	Heading      string
	// ShowPoints and progression badges are organizer only.
	ShowPoints bool
	Rows       []OverallRow
}

func (o Overall) IsEmpty() bool { return o.EmptyMessage != "" }

type OverallRow struct {
	Rank        int
	Team        string
	Badge       string
	Points      *int
	Played      int
	Balance     int
	BalanceText string
}

func BuildOverall(rows []tournament.OverallStandingRow, opts Options) Overall {
	view := Overall{
		Layout:     SelectLayout(opts.Width),
		Heading:    OverallHeading,
		ShowPoints: opts.Authenticated,
	}
	if len(rows) == 0 {
		view.EmptyMessage = NoOverallMessage
		return view
	}

	view.Rows = make([]OverallRow, 0, len(rows))
	for _, r := range rows {
		balance := utils.OrZero(r.Balance)
		row := OverallRow{
			Rank:        r.Rank,
			Team:        r.Name,
			Played:      r.Played,
			Balance:     balance,
			BalanceText: FormatBalance(balance),
		}
		if opts.Authenticated {
			row.Badge = ProgressionBadge(r.ProgressionLevel, r.FinalPosition)
			row.Points = utils.Ptr(r.Points)
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}

const (
	BadgeWinner   = "🏆"
	BadgeRunnerUp = "🥈"
)

var tierLabels = map[int]string{
	1: "Positions 1-4",
	2: "Positions 5-8",
	3: "Positions 9-12",
	4: "Positions 13-16",
}

// ProgressionBadge maps the bracket tier a team reached to its badge. Teams
// that never left the group phase get none.
func ProgressionBadge(level int, finalPosition *float64) string {
	if level == 1 && finalPosition != nil {
		switch *finalPosition {
		case 1:
			return BadgeWinner
		case 2:
			return BadgeRunnerUp
		}
	}
	return tierLabels[level]
}
