package service

import (
	"context"

	"github.com/AdamBeresnev/poule-board/internal/tournament"
	users "github.com/AdamBeresnev/poule-board/internal/user"
)

// API is the part of the upstream REST client the services depend on.
type API interface {
	ListTournaments(ctx context.Context) ([]tournament.Tournament, error)
	CreateTournament(ctx context.Context, in tournament.TournamentInput) (*tournament.Tournament, error)
	UpdateTournament(ctx context.Context, id int, in tournament.TournamentInput) (*tournament.Tournament, error)
	DeleteTournament(ctx context.Context, id int) error
	Rounds(ctx context.Context, tournamentID int) ([]tournament.Round, error)
	Standings(ctx context.Context, tournamentID int) ([]tournament.PouleStanding, error)
	OverallStandings(ctx context.Context, tournamentID int) ([]tournament.OverallStandingRow, error)
	PhaseStatus(ctx context.Context, tournamentID int) (tournament.PhaseStatus, error)
	Generate(ctx context.Context, tournamentID int, phase tournament.PhaseType) (string, error)
	SubmitScore(ctx context.Context, matchID int, update tournament.ScoreUpdate) error

	ListPoules(ctx context.Context, tournamentID int) ([]tournament.Poule, error)
	CreatePoule(ctx context.Context, tournamentID int, name string) (*tournament.Poule, error)
	UpdatePoule(ctx context.Context, pouleID int, name string) (*tournament.Poule, error)
	DeletePoule(ctx context.Context, pouleID int) error

	ListTeams(ctx context.Context, tournamentID int) ([]tournament.Team, error)
	CreateTeam(ctx context.Context, tournamentID int, in tournament.TeamInput) (*tournament.Team, error)
	UpdateTeam(ctx context.Context, teamID int, in tournament.TeamInput) (*tournament.Team, error)
	AssignTeamToPoule(ctx context.Context, teamID, pouleID int) (*tournament.Team, error)
	DeleteTeam(ctx context.Context, teamID int) error

	Login(ctx context.Context, username, password string) (string, error)
	Me(ctx context.Context) (*users.Organizer, error)
}

// GateRefresher polls a tournament's phase status out of band.
type GateRefresher interface {
	Refresh(tournamentID int)
}
