package tournament

import (
	"testing"

	"github.com/AdamBeresnev/poule-board/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestResolveParticipant(t *testing.T) {
	pouleA := &PouleRef{Name: "A"}
	tests := []struct {
		name     string
		slot     Participant
		ctx      LabelContext
		side     Side
		expected string
	}{
		{
			name:     "bound team wins over rank fields",
			slot:     Participant{Team: &TeamRef{Name: "Smashers"}, RankPosition: utils.Ptr(2), RankPoule: pouleA},
			ctx:      ContextSchedule,
			expected: "Smashers",
		},
		{
			name:     "bound team in score entry",
			slot:     Participant{Team: &TeamRef{Name: "Smashers"}},
			ctx:      ContextScoreEntry,
			expected: "Smashers",
		},
		{
			name:     "placeholder in schedule shows poule",
			slot:     Participant{RankPosition: utils.Ptr(1), RankPoule: pouleA},
			ctx:      ContextSchedule,
			expected: "#1 poule A",
		},
		{
			name:     "placeholder in score entry omits poule",
			slot:     Participant{RankPosition: utils.Ptr(1), RankPoule: pouleA},
			ctx:      ContextScoreEntry,
			expected: "#1",
		},
		{
			name:     "unresolved home in schedule",
			slot:     Participant{},
			ctx:      ContextSchedule,
			side:     SideHome,
			expected: "Finalist 1",
		},
		{
			name:     "unresolved away in schedule",
			slot:     Participant{},
			ctx:      ContextSchedule,
			side:     SideAway,
			expected: "Finalist 2",
		},
		{
			name:     "unresolved in score entry",
			slot:     Participant{},
			ctx:      ContextScoreEntry,
			side:     SideAway,
			expected: "—",
		},
		{
			name:     "rank without poule in schedule falls back",
			slot:     Participant{RankPosition: utils.Ptr(3)},
			ctx:      ContextSchedule,
			side:     SideAway,
			expected: "Finalist 2",
		},
		{
			name:     "rank without poule in score entry keeps the rank",
			slot:     Participant{RankPosition: utils.Ptr(3)},
			ctx:      ContextScoreEntry,
			side:     SideAway,
			expected: "#3",
		},
		{
			name:     "rank zero in score entry falls back",
			slot:     Participant{RankPosition: utils.Ptr(0)},
			ctx:      ContextScoreEntry,
			expected: "—",
		},
		{
			name:     "rank zero is not a placeholder",
			slot:     Participant{RankPosition: utils.Ptr(0), RankPoule: pouleA},
			ctx:      ContextSchedule,
			expected: "Finalist 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveParticipant(tt.slot, tt.ctx, tt.side))
		})
	}
}

func TestParticipantState(t *testing.T) {
	assert.Equal(t, SlotBound, Participant{Team: &TeamRef{Name: "X"}}.State())
	assert.Equal(t, SlotPlaceholder, Participant{RankPosition: utils.Ptr(2), RankPoule: &PouleRef{Name: "B"}}.State())
	assert.Equal(t, SlotUnresolved, Participant{}.State())
	assert.Equal(t, SlotUnresolved, Participant{RankPosition: utils.Ptr(3)}.State())
}

func TestRefereeLabel(t *testing.T) {
	assert.Equal(t, "Refs", RefereeLabel(&Match{RefereeTeam: &TeamRef{Name: "Refs"}}))
	assert.Equal(t, NoRefereeLabel, RefereeLabel(&Match{}))
}
