package views

import (
	"strings"

	"github.com/AdamBeresnev/poule-board/internal/tournament"
	"github.com/AdamBeresnev/poule-board/internal/viewmodel"
)

// Tab is one of the public views of a tournament page.
type Tab string

const (
	TabSchedule  Tab = "schedule"
	TabStandings Tab = "standings"
	TabOverall   Tab = "overall"
)

var tabs = []struct {
	tab   Tab
	label string
}{
	{TabSchedule, "Schedule"},
	{TabStandings, "Standings"},
	{TabOverall, "Overall"},
}

func ParseTab(s string) (Tab, bool) {
	for _, t := range tabs {
		if string(t.tab) == s {
			return t.tab, true
		}
	}
	return TabSchedule, false
}

// PhaseSection is a run of consecutive schedule rounds of the same phase.
type PhaseSection struct {
	Phase  tournament.PhaseType
	Title  string
	Rounds []viewmodel.RoundView
}

// GroupByPhase splits rounds into sections at every phase change, keeping the
// server's order.
func GroupByPhase(rounds []viewmodel.RoundView) []PhaseSection {
	var sections []PhaseSection
	for _, r := range rounds {
		if n := len(sections); n > 0 && sections[n-1].Phase == r.Type {
			sections[n-1].Rounds = append(sections[n-1].Rounds, r)
			continue
		}
		sections = append(sections, PhaseSection{
			Phase:  r.Type,
			Title:  sectionTitle(r.Type),
			Rounds: []viewmodel.RoundView{r},
		})
	}
	return sections
}

func sectionTitle(p tournament.PhaseType) string {
	label := p.Label()
	if label == "" {
		return ""
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
