package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/AdamBeresnev/poule-board/internal/apiclient"
	"github.com/AdamBeresnev/poule-board/internal/score"
	"github.com/AdamBeresnev/poule-board/internal/tournament"
	"github.com/AdamBeresnev/poule-board/internal/viewmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitScoreReloadsMatchList(t *testing.T) {
	client, up := setupTestAPI(t)
	gates := &refreshRecorder{}
	matchService := NewMatchService(client, gates)
	ctx := apiclient.WithToken(context.Background(), "admin-token")

	view, err := matchService.SubmitScore(ctx, 1, 1001,
		score.Input{HomeSet1: "0", AwaySet1: "21", HomeSet2: "", AwaySet2: "abc"},
		tournament.SelectAll, viewmodel.Options{Width: 1024, Authenticated: true})
	require.NoError(t, err)

	sent, ok := up.scoreFor(1001)
	require.True(t, ok)
	require.NotNil(t, sent.HomeSet1Score)
	assert.Equal(t, 0, *sent.HomeSet1Score)
	assert.Equal(t, 21, *sent.AwaySet1Score)
	assert.Nil(t, sent.HomeSet2Score)
	assert.Nil(t, sent.AwaySet2Score)

	// The rebuilt view reflects what the server stored.
	require.Len(t, view.Rounds, 3)
	row := view.Rounds[1].Rows[0]
	assert.Equal(t, 1001, row.MatchID)
	assert.Equal(t, "0", row.HomeSet1)
	assert.Equal(t, "21", row.AwaySet1)
	assert.Equal(t, "", row.HomeSet2)
	assert.False(t, row.Complete)

	assert.Equal(t, []int{1}, gates.calls())
}

func TestSubmitScoreCompletesGroupPhase(t *testing.T) {
	client, _ := setupTestAPI(t)
	matchService := NewMatchService(client, nil)

	view, err := matchService.SubmitScore(context.Background(), 1, 1001,
		score.Input{HomeSet1: "21", AwaySet1: "18", HomeSet2: "19", AwaySet2: "21"},
		tournament.SelectCurrent, viewmodel.Options{Width: 400})
	require.NoError(t, err)

	// Every group match is now complete, so "current" moves to the knockout.
	assert.Equal(t, tournament.PhaseKnockout, view.Current)
	assert.Equal(t, viewmodel.LayoutCards, view.Layout)
	require.Len(t, view.Rounds, 1)
	assert.Equal(t, tournament.PhaseKnockout, view.Rounds[0].Type)
}

func TestSubmitScoreSurfacesServerMessage(t *testing.T) {
	client, up := setupTestAPI(t)
	gates := &refreshRecorder{}
	matchService := NewMatchService(client, gates)

	_, err := matchService.SubmitScore(context.Background(), 1, 9999, score.Input{}, tournament.SelectAll, viewmodel.Options{})
	require.Error(t, err)
	assert.Equal(t, "Match not found", apiclient.Message(err))
	_, ok := up.scoreFor(9999)
	assert.False(t, ok)
	assert.Empty(t, gates.calls())

	up.failNext(http.MethodPost, "/matches/1001/score", http.StatusUnauthorized)
	_, err = matchService.SubmitScore(context.Background(), 1, 1001, score.Input{}, tournament.SelectAll, viewmodel.Options{})
	assert.True(t, apiclient.IsUnauthorized(err))
}
