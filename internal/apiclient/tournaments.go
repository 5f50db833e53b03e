package apiclient

import (
	"context"
	"fmt"

	"github.com/AdamBeresnev/poule-board/internal/tournament"
)

func (c *Client) ListTournaments(ctx context.Context) ([]tournament.Tournament, error) {
	var out []tournament.Tournament
	if err := c.get(ctx, "/tournaments/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTournament(ctx context.Context, in tournament.TournamentInput) (*tournament.Tournament, error) {
	var out tournament.Tournament
	if err := c.post(ctx, "/tournaments/", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTournament(ctx context.Context, id int, in tournament.TournamentInput) (*tournament.Tournament, error) {
	var out tournament.Tournament
	if err := c.put(ctx, fmt.Sprintf("/tournaments/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTournament(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/tournaments/%d", id))
}

// Rounds returns the schedule ordered by round number, as the server sends it.
func (c *Client) Rounds(ctx context.Context, tournamentID int) ([]tournament.Round, error) {
	var out []tournament.Round
	if err := c.get(ctx, fmt.Sprintf("/tournaments/%d/rounds", tournamentID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Standings(ctx context.Context, tournamentID int) ([]tournament.PouleStanding, error) {
	var out []tournament.PouleStanding
	if err := c.get(ctx, fmt.Sprintf("/tournaments/%d/standings", tournamentID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) OverallStandings(ctx context.Context, tournamentID int) ([]tournament.OverallStandingRow, error) {
	var out []tournament.OverallStandingRow
	if err := c.get(ctx, fmt.Sprintf("/tournaments/%d/overall-standings", tournamentID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PhaseStatus(ctx context.Context, tournamentID int) (tournament.PhaseStatus, error) {
	var out tournament.PhaseStatus
	if err := c.get(ctx, fmt.Sprintf("/tournaments/%d/phase-status", tournamentID), &out); err != nil {
		return tournament.PhaseStatus{}, err
	}
	return out, nil
}

var generatePaths = map[tournament.PhaseType]string{
	tournament.PhaseGroup:    "generate-group-phase",
	tournament.PhaseKnockout: "generate-knockout-phase",
	tournament.PhaseFinal:    "generate-final",
}

type messageResponse struct {
	Message string `json:"message"`
}

// Generate asks the server to produce the rounds of a phase and returns its
// confirmation message.
func (c *Client) Generate(ctx context.Context, tournamentID int, phase tournament.PhaseType) (string, error) {
	endpoint, ok := generatePaths[phase]
	if !ok {
		return "", fmt.Errorf("unknown phase %q", phase)
	}
	var out messageResponse
	if err := c.post(ctx, fmt.Sprintf("/tournaments/%d/%s", tournamentID, endpoint), struct{}{}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) SubmitScore(ctx context.Context, matchID int, update tournament.ScoreUpdate) error {
	return c.post(ctx, fmt.Sprintf("/matches/%d/score", matchID), update, nil)
}
