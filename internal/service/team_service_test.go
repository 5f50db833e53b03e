package service

import (
	"context"
	"testing"

	"github.com/AdamBeresnev/poule-board/internal/apiclient"
	"github.com/AdamBeresnev/poule-board/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTeamNames(t *testing.T) {
	names := ParseTeamNames("Smashers\n\n  Blockers  \nsmashers\r\nDiggers\n")
	assert.Equal(t, []string{"Smashers", "Blockers", "Diggers"}, names)
	assert.Empty(t, ParseTeamNames("  \n\n"))
}

func TestImportTeams(t *testing.T) {
	client, up := setupTestAPI(t)
	teamService := NewTeamService(client)

	created, err := teamService.ImportTeams(context.Background(), 1, "Diggers\nSetters", utils.Ptr(10))
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "Diggers", created[0].Name)
	assert.Equal(t, 10, *created[1].PouleID)
	assert.Equal(t, 5, up.teamCount())
}

func TestImportTeamsStopsAtFirstRejection(t *testing.T) {
	client, _ := setupTestAPI(t)

	created, err := NewTeamService(client).ImportTeams(context.Background(), 1, "Diggers\nDuplicate\nSetters", nil)
	require.Error(t, err)
	assert.Equal(t, "Team name already exists", apiclient.Message(err))
	require.Len(t, created, 1)
	assert.Nil(t, created[0].PouleID)
}

func TestPouleLifecycle(t *testing.T) {
	client, up := setupTestAPI(t)
	teamService := NewTeamService(client)
	ctx := context.Background()

	created, err := teamService.CreatePoule(ctx, 1, "  B  ")
	require.NoError(t, err)
	assert.Equal(t, "B", created.Name)

	_, err = teamService.RenamePoule(ctx, created.ID, "Beach B")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "Beach B"}, up.pouleNames())

	require.NoError(t, teamService.DeletePoule(ctx, 10))
	assert.Equal(t, []string{"Beach B"}, up.pouleNames())
	smashers, ok := up.teamByID(100)
	require.True(t, ok)
	assert.Nil(t, smashers.PouleID)
}

func TestPouleNameRequired(t *testing.T) {
	client, up := setupTestAPI(t)
	teamService := NewTeamService(client)

	_, err := teamService.CreatePoule(context.Background(), 1, "   ")
	assert.ErrorIs(t, err, ErrNameRequired)
	_, err = teamService.RenamePoule(context.Background(), 10, "")
	assert.ErrorIs(t, err, ErrNameRequired)
	assert.Equal(t, []string{"A"}, up.pouleNames())
}

func TestEditTeam(t *testing.T) {
	tests := []struct {
		name        string
		teamID      int
		newName     string
		pouleID     *int
		wantPoule   *int
		wantAssigns int
	}{
		{name: "rename keeps poule", teamID: 100, newName: "Smash Bros", wantPoule: utils.Ptr(10)},
		{name: "same poule is not reassigned", teamID: 100, newName: "Smashers", pouleID: utils.Ptr(10), wantPoule: utils.Ptr(10)},
		{name: "moves into a poule", teamID: 102, newName: "Latecomers", pouleID: utils.Ptr(10), wantPoule: utils.Ptr(10), wantAssigns: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, up := setupTestAPI(t)

			team, err := NewTeamService(client).EditTeam(context.Background(), tt.teamID, tt.newName, tt.pouleID)
			require.NoError(t, err)
			assert.Equal(t, tt.newName, team.Name)
			assert.Equal(t, tt.wantPoule, team.PouleID)
			assert.Equal(t, tt.wantAssigns, up.assignCalls())
		})
	}
}

func TestEditTeamRejectedName(t *testing.T) {
	client, up := setupTestAPI(t)

	_, err := NewTeamService(client).EditTeam(context.Background(), 102, "Smashers", utils.Ptr(10))
	require.Error(t, err)
	assert.Equal(t, "Team name already exists", apiclient.Message(err))
	assert.Zero(t, up.assignCalls())

	_, err = NewTeamService(client).EditTeam(context.Background(), 102, " ", nil)
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestDeleteTeam(t *testing.T) {
	client, up := setupTestAPI(t)

	require.NoError(t, NewTeamService(client).DeleteTeam(context.Background(), 101))
	_, ok := up.teamByID(101)
	assert.False(t, ok)
	assert.Equal(t, 2, up.teamCount())
}
