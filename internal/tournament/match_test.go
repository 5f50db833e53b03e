package tournament

import (
	"encoding/json"
	"testing"

	"github.com/AdamBeresnev/poule-board/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scored(h1, a1, h2, a2 int) Match {
	return Match{
		HomeSet1Score: utils.Ptr(h1),
		AwaySet1Score: utils.Ptr(a1),
		HomeSet2Score: utils.Ptr(h2),
		AwaySet2Score: utils.Ptr(a2),
	}
}

func TestMatchIsComplete(t *testing.T) {
	tests := []struct {
		name  string
		match Match
		want  bool
	}{
		{name: "fully scored", match: scored(11, 5, 11, 7), want: true},
		{name: "nothing entered", match: Match{}, want: false},
		{name: "all zero sentinel", match: scored(0, 0, 0, 0), want: false},
		{name: "first set zero only", match: scored(0, 0, 11, 9), want: true},
		{name: "second set zero only", match: scored(11, 9, 0, 0), want: true},
		{name: "one side zero", match: scored(0, 11, 0, 11), want: true},
		{
			name: "away set 2 missing",
			match: Match{
				HomeSet1Score: utils.Ptr(11),
				AwaySet1Score: utils.Ptr(4),
				HomeSet2Score: utils.Ptr(11),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.match.IsComplete())
		})
	}
}

func TestMatchDecodesUpstreamShape(t *testing.T) {
	raw := `{
		"id": 7,
		"field_number": 2,
		"home_team": null,
		"away_team": {"name": "Smashers"},
		"referee_team": null,
		"home_rank_position": 1,
		"away_rank_position": null,
		"home_rank_poule": {"name": "A"},
		"away_rank_poule": null,
		"home_set1_score": 0,
		"away_set1_score": null,
		"home_set2_score": null,
		"away_set2_score": null
	}`

	var m Match
	require.NoError(t, json.Unmarshal([]byte(raw), &m))

	assert.Equal(t, 7, m.ID)
	assert.Equal(t, SlotPlaceholder, m.Home().State())
	assert.Equal(t, SlotBound, m.Away().State())
	require.NotNil(t, m.HomeSet1Score)
	assert.Equal(t, 0, *m.HomeSet1Score)
	assert.Nil(t, m.AwaySet1Score)
}

func TestScoreUpdateKeepsNullAndZeroApart(t *testing.T) {
	body, err := json.Marshal(ScoreUpdate{HomeSet1Score: utils.Ptr(0)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"home_set1_score":0,"away_set1_score":null,"home_set2_score":null,"away_set2_score":null}`, string(body))
}
