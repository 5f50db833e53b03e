package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/AdamBeresnev/poule-board/internal/gate"
	"github.com/AdamBeresnev/poule-board/internal/tournament"
	"github.com/AdamBeresnev/poule-board/internal/utils"
	"github.com/AdamBeresnev/poule-board/internal/viewmodel"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func renderTournaments(w io.Writer, list []tournament.Tournament) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No tournaments yet.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tSTART\tFIELDS")
	for _, t := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", t.ID, t.Name, t.StartTime, t.NumFields)
	}
	return tw.Flush()
}

// winner marks a set score the side won.
func winner(score *int, won bool) string {
	s := utils.FormatInt(score, "-")
	if won {
		return s + "*"
	}
	return s
}

func setText(s viewmodel.SetView) string {
	if !s.Entered() {
		return "-"
	}
	return winner(s.Home, s.HomeWinner) + "-" + winner(s.Away, s.AwayWinner)
}

func renderSchedule(w io.Writer, view viewmodel.Schedule) error {
	if view.IsEmpty() {
		_, err := fmt.Fprintln(w, view.EmptyMessage)
		return err
	}
	for _, rnd := range view.Rounds {
		fmt.Fprintf(w, "\n%s\n", rnd.Heading)
		if view.Layout == viewmodel.LayoutCards {
			for _, row := range rnd.Rows {
				fmt.Fprintf(w, "  Field %d\n", row.Field)
				fmt.Fprintf(w, "    %s vs %s\n", row.Home, row.Away)
				fmt.Fprintf(w, "    Set 1: %s  Set 2: %s\n", setText(row.Set1), setText(row.Set2))
				fmt.Fprintf(w, "    Referee: %s\n", row.Referee)
			}
			continue
		}
		tw := newTable(w)
		fmt.Fprintln(tw, "FIELD\tHOME\tAWAY\tSET 1\tSET 2\tREFEREE")
		for _, row := range rnd.Rows {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
				row.Field, row.Home, row.Away, setText(row.Set1), setText(row.Set2), row.Referee)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func renderStandings(w io.Writer, view viewmodel.Standings) error {
	if view.IsEmpty() {
		_, err := fmt.Fprintln(w, view.EmptyMessage)
		return err
	}
	for _, p := range view.Poules {
		fmt.Fprintf(w, "\n%s\n", p.Heading)
		if view.Layout == viewmodel.LayoutCards {
			for _, row := range p.Rows {
				fmt.Fprintf(w, "  %d. %s  %d pts, %d played, %s\n",
					row.Rank, row.Team, row.Points, row.Played, row.BalanceText)
			}
			continue
		}
		tw := newTable(w)
		fmt.Fprintln(tw, "#\tTEAM\tPTS\tPLAYED\tBALANCE")
		for _, row := range p.Rows {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\n", row.Rank, row.Team, row.Points, row.Played, row.BalanceText)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func renderOverall(w io.Writer, view viewmodel.Overall) error {
	if view.IsEmpty() {
		_, err := fmt.Fprintln(w, view.EmptyMessage)
		return err
	}
	fmt.Fprintln(w, view.Heading)
	if view.Layout == viewmodel.LayoutCards {
		for _, row := range view.Rows {
			line := fmt.Sprintf("  %d. %s", row.Rank, row.Team)
			if row.Badge != "" {
				line += " " + row.Badge
			}
			if view.ShowPoints {
				line += fmt.Sprintf("  %s pts,", utils.FormatInt(row.Points, "0"))
			}
			fmt.Fprintf(w, "%s  %d played, %s\n", line, row.Played, row.BalanceText)
		}
		return nil
	}

	tw := newTable(w)
	if view.ShowPoints {
		fmt.Fprintln(tw, "#\tTEAM\tPROGRESSION\tPTS\tPLAYED\tBALANCE")
	} else {
		fmt.Fprintln(tw, "#\tTEAM\tPLAYED\tBALANCE")
	}
	for _, row := range view.Rows {
		if view.ShowPoints {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n",
				row.Rank, row.Team, row.Badge, utils.FormatInt(row.Points, "0"), row.Played, row.BalanceText)
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", row.Rank, row.Team, row.Played, row.BalanceText)
	}
	return tw.Flush()
}

func blank(s string) string {
	if s == "" {
		return "_"
	}
	return s
}

func renderScoreEntry(w io.Writer, view viewmodel.ScoreEntry) error {
	shown := view.Selection.Label()
	if view.Selection == tournament.SelectCurrent {
		shown = view.Current.Label()
	}
	fmt.Fprintf(w, "Showing %s\n", shown)
	if view.IsEmpty() {
		_, err := fmt.Fprintln(w, view.EmptyMessage)
		return err
	}
	for _, rnd := range view.Rounds {
		fmt.Fprintf(w, "\n%s\n", rnd.Heading)
		tw := newTable(w)
		fmt.Fprintln(tw, "MATCH\tFIELD\tHOME\tAWAY\tSET 1\tSET 2\tDONE")
		for _, row := range rnd.Rows {
			done := ""
			if row.Complete {
				done = "yes"
			}
			fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s-%s\t%s-%s\t%s\n",
				row.MatchID, row.Field, row.Home, row.Away,
				blank(row.HomeSet1), blank(row.AwaySet1), blank(row.HomeSet2), blank(row.AwaySet2), done)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func gateText(open bool) string {
	if open {
		return "open"
	}
	return "closed"
}

func progress(done, total int) string {
	if total == 0 {
		return ""
	}
	return " (" + strconv.Itoa(done) + "/" + strconv.Itoa(total) + " matches)"
}

func renderGates(w io.Writer, state gate.State, current tournament.PhaseType) error {
	tw := newTable(w)
	if current != "" {
		fmt.Fprintf(tw, "current phase\t%s\n", current.Label())
	}
	if state.Err != nil {
		fmt.Fprintf(tw, "status\tunavailable: %v\n", state.Err)
	}
	var groupProgress, knockoutProgress string
	if st := state.Status; st != nil {
		groupProgress = progress(st.GroupMatchesCompleted, st.GroupMatchesTotal)
		knockoutProgress = progress(st.KnockoutMatchesCompleted, st.KnockoutMatchesTotal)
	}
	fmt.Fprintf(tw, "generate knockout\t%s%s\n", gateText(state.KnockoutOpen), groupProgress)
	fmt.Fprintf(tw, "generate final\t%s%s\n", gateText(state.FinalOpen), knockoutProgress)
	fmt.Fprintln(tw, "---")
	return tw.Flush()
}
