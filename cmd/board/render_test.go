package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/AdamBeresnev/poule-board/internal/gate"
	"github.com/AdamBeresnev/poule-board/internal/tournament"
	"github.com/AdamBeresnev/poule-board/internal/utils"
	"github.com/AdamBeresnev/poule-board/internal/viewmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduleRounds() []tournament.Round {
	return []tournament.Round{{
		RoundNumber: 1,
		Type:        tournament.PhaseGroup,
		StartTime:   "09:00",
		Matches: []tournament.Match{{
			ID:            3,
			FieldNumber:   2,
			HomeTeam:      &tournament.TeamRef{Name: "Smashers"},
			AwayTeam:      &tournament.TeamRef{Name: "Blockers"},
			HomeSet1Score: utils.Ptr(21),
			AwaySet1Score: utils.Ptr(15),
		}},
	}}
}

func TestRenderScheduleTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderSchedule(&buf, viewmodel.BuildSchedule(scheduleRounds(), viewmodel.Options{Width: 1024})))

	out := buf.String()
	assert.Contains(t, out, "Round 1 (group), start 09:00")
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "21*-15")
	assert.Contains(t, out, "No referee assigned")
}

func TestRenderScheduleCards(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderSchedule(&buf, viewmodel.BuildSchedule(scheduleRounds(), viewmodel.Options{Width: 375})))

	out := buf.String()
	assert.NotContains(t, out, "FIELD")
	assert.Contains(t, out, "Field 2")
	assert.Contains(t, out, "Smashers vs Blockers")
	assert.Contains(t, out, "Set 1: 21*-15  Set 2: -")
}

func TestRenderEmptyViews(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderSchedule(&buf, viewmodel.BuildSchedule(nil, viewmodel.Options{})))
	require.NoError(t, renderStandings(&buf, viewmodel.BuildStandings(nil, viewmodel.Options{})))
	require.NoError(t, renderOverall(&buf, viewmodel.BuildOverall(nil, viewmodel.Options{})))
	require.NoError(t, renderTournaments(&buf, nil))

	out := buf.String()
	assert.Contains(t, out, viewmodel.NoScheduleMessage)
	assert.Contains(t, out, viewmodel.NoStandingsMessage)
	assert.Contains(t, out, viewmodel.NoOverallMessage)
	assert.Contains(t, out, "No tournaments yet.")
}

func TestRenderOverallHidesPointsFromSpectators(t *testing.T) {
	rows := []tournament.OverallStandingRow{{Rank: 1, Name: "Smashers", Points: 9, ProgressionLevel: 2}}

	var public bytes.Buffer
	require.NoError(t, renderOverall(&public, viewmodel.BuildOverall(rows, viewmodel.Options{Width: 1024})))
	assert.NotContains(t, public.String(), "PTS")
	assert.NotContains(t, public.String(), "Positions 5-8")

	var organizer bytes.Buffer
	require.NoError(t, renderOverall(&organizer, viewmodel.BuildOverall(rows, viewmodel.Options{Width: 1024, Authenticated: true})))
	assert.Contains(t, organizer.String(), "PTS")
	assert.Contains(t, organizer.String(), "Positions 5-8")
}

func TestRenderScoreEntryShowsBlanks(t *testing.T) {
	view := viewmodel.BuildScoreEntry(scheduleRounds(), tournament.SelectCurrent, viewmodel.Options{Width: 1024})

	var buf bytes.Buffer
	require.NoError(t, renderScoreEntry(&buf, view))
	out := buf.String()
	assert.Contains(t, out, "Showing group phase")
	assert.Contains(t, out, "21-15")
	assert.Contains(t, out, "_-_")
}

func TestRenderGates(t *testing.T) {
	var buf bytes.Buffer
	state := gate.Derive(tournament.PhaseStatus{GroupPhaseComplete: true, KnockoutMatchesTotal: 4, KnockoutMatchesCompleted: 1})
	require.NoError(t, renderGates(&buf, state, tournament.PhaseKnockout))

	out := buf.String()
	assert.Contains(t, out, "knockout phase")
	assert.Regexp(t, `generate knockout\s+open`, out)
	assert.Regexp(t, `generate final\s+closed \(1/4 matches\)`, out)

	buf.Reset()
	require.NoError(t, renderGates(&buf, gate.Closed(errors.New("boom")), ""))
	assert.Contains(t, buf.String(), "unavailable: boom")
	assert.Regexp(t, `generate knockout\s+closed`, buf.String())
}
