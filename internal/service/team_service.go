package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AdamBeresnev/poule-board/internal/tournament"
)

var ErrNameRequired = errors.New("a name is required")

// TeamService manages the teams and poules of a tournament.
type TeamService struct {
	api API
}

func NewTeamService(api API) *TeamService {
	return &TeamService{api: api}
}

// ParseTeamNames splits pasted text into team names, one per line, skipping
// blanks and case-insensitive repeats.
func ParseTeamNames(text string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, line := range strings.Split(text, "\n") {
		name := strings.TrimSpace(line)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		names = append(names, name)
	}
	return names
}

// ImportTeams creates one team per line of text, optionally inside a poule.
// It stops at the first rejected team and returns those created before it.
func (s *TeamService) ImportTeams(ctx context.Context, tournamentID int, text string, pouleID *int) ([]tournament.Team, error) {
	names := ParseTeamNames(text)
	created := make([]tournament.Team, 0, len(names))
	for _, name := range names {
		team, err := s.api.CreateTeam(ctx, tournamentID, tournament.TeamInput{Name: name, PouleID: pouleID})
		if err != nil {
			return created, fmt.Errorf("failed to create team %q: %w", name, err)
		}
		created = append(created, *team)
	}
	return created, nil
}

func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	return name, nil
}

func (s *TeamService) CreatePoule(ctx context.Context, tournamentID int, name string) (*tournament.Poule, error) {
	name, err := requireName(name)
	if err != nil {
		return nil, err
	}
	return s.api.CreatePoule(ctx, tournamentID, name)
}

func (s *TeamService) RenamePoule(ctx context.Context, pouleID int, name string) (*tournament.Poule, error) {
	name, err := requireName(name)
	if err != nil {
		return nil, err
	}
	return s.api.UpdatePoule(ctx, pouleID, name)
}

// DeletePoule removes a poule. Its teams stay in the tournament without one.
func (s *TeamService) DeletePoule(ctx context.Context, pouleID int) error {
	if err := s.api.DeletePoule(ctx, pouleID); err != nil {
		return err
	}
	slog.Info("poule deleted", "poule_id", pouleID)
	return nil
}

// EditTeam renames a team and, when pouleID is set, moves it into that poule.
// The API cannot take a team out of its poule, so nil leaves it where it is.
func (s *TeamService) EditTeam(ctx context.Context, teamID int, name string, pouleID *int) (*tournament.Team, error) {
	name, err := requireName(name)
	if err != nil {
		return nil, err
	}
	team, err := s.api.UpdateTeam(ctx, teamID, tournament.TeamInput{Name: name})
	if err != nil {
		return nil, err
	}
	if pouleID == nil || (team.PouleID != nil && *team.PouleID == *pouleID) {
		return team, nil
	}
	return s.api.AssignTeamToPoule(ctx, teamID, *pouleID)
}

func (s *TeamService) DeleteTeam(ctx context.Context, teamID int) error {
	if err := s.api.DeleteTeam(ctx, teamID); err != nil {
		return err
	}
	slog.Info("team deleted", "team_id", teamID)
	return nil
}
