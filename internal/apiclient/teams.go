package apiclient

import (
	"context"
	"fmt"

	"github.com/AdamBeresnev/poule-board/internal/tournament"
)

type pouleInput struct {
	Name string `json:"name"`
}

func (c *Client) ListPoules(ctx context.Context, tournamentID int) ([]tournament.Poule, error) {
	var out []tournament.Poule
	if err := c.get(ctx, fmt.Sprintf("/tournaments/%d/poules/", tournamentID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreatePoule(ctx context.Context, tournamentID int, name string) (*tournament.Poule, error) {
	var out tournament.Poule
	if err := c.post(ctx, fmt.Sprintf("/tournaments/%d/poules/", tournamentID), pouleInput{Name: name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePoule(ctx context.Context, pouleID int, name string) (*tournament.Poule, error) {
	var out tournament.Poule
	if err := c.put(ctx, fmt.Sprintf("/poules/%d", pouleID), pouleInput{Name: name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePoule(ctx context.Context, pouleID int) error {
	return c.delete(ctx, fmt.Sprintf("/poules/%d", pouleID))
}

func (c *Client) ListTeams(ctx context.Context, tournamentID int) ([]tournament.Team, error) {
	var out []tournament.Team
	if err := c.get(ctx, fmt.Sprintf("/tournaments/%d/teams/", tournamentID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTeam(ctx context.Context, tournamentID int, in tournament.TeamInput) (*tournament.Team, error) {
	var out tournament.Team
	if err := c.post(ctx, fmt.Sprintf("/tournaments/%d/teams/", tournamentID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTeam(ctx context.Context, teamID int, in tournament.TeamInput) (*tournament.Team, error) {
	var out tournament.Team
	if err := c.put(ctx, fmt.Sprintf("/teams/%d", teamID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AssignTeamToPoule(ctx context.Context, teamID, pouleID int) (*tournament.Team, error) {
	var out tournament.Team
	if err := c.put(ctx, fmt.Sprintf("/teams/%d/assign-poule/%d", teamID, pouleID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTeam(ctx context.Context, teamID int) error {
	return c.delete(ctx, fmt.Sprintf("/teams/%d", teamID))
}
