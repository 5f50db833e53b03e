package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/AdamBeresnev/poule-board/internal/gate"
	"github.com/AdamBeresnev/poule-board/internal/tournament"
	"github.com/AdamBeresnev/poule-board/internal/viewmodel"
	"golang.org/x/sync/errgroup"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrInvalidTournament  = errors.New("invalid tournament")
)

type TournamentService struct {
	api API
}

func NewTournamentService(api API) *TournamentService {
	return &TournamentService{api: api}
}

func (s *TournamentService) List(ctx context.Context) ([]tournament.Tournament, error) {
	return s.api.ListTournaments(ctx)
}

// Get finds a tournament in the list; the API has no single tournament read.
func (s *TournamentService) Get(ctx context.Context, id int) (*tournament.Tournament, error) {
	list, err := s.api.ListTournaments(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrTournamentNotFound, id)
}

// Tournament settings form fields.
const (
	FieldName          = "name"
	FieldStartTime     = "start_time"
	FieldNumFields     = "num_fields"
	FieldMatchDuration = "match_duration_minutes"
	FieldBreakDuration = "break_duration_minutes"
)

// ParseTournamentForm reads the tournament settings form. A datetime-local
// start time without seconds gets ":00" appended.
func ParseTournamentForm(form url.Values) (tournament.TournamentInput, error) {
	in := tournament.TournamentInput{
		Name:      strings.TrimSpace(form.Get(FieldName)),
		StartTime: strings.TrimSpace(form.Get(FieldStartTime)),
	}
	if in.Name == "" {
		return in, fmt.Errorf("%w: a name is required", ErrInvalidTournament)
	}
	if in.StartTime == "" {
		return in, fmt.Errorf("%w: a start time is required", ErrInvalidTournament)
	}
	if len(in.StartTime) == len("2006-01-02T15:04") {
		in.StartTime += ":00"
	}

	numbers := []struct {
		field string
		label string
		min   int
		dst   *int
	}{
		{FieldNumFields, "number of fields", 1, &in.NumFields},
		{FieldMatchDuration, "match duration", 1, &in.MatchDurationMinutes},
		{FieldBreakDuration, "break duration", 0, &in.BreakDurationMinutes},
	}
	for _, n := range numbers {
		v, err := strconv.Atoi(strings.TrimSpace(form.Get(n.field)))
		if err != nil || v < n.min {
			return in, fmt.Errorf("%w: %s must be a whole number of at least %d", ErrInvalidTournament, n.label, n.min)
		}
		*n.dst = v
	}
	return in, nil
}

func (s *TournamentService) Create(ctx context.Context, in tournament.TournamentInput) (*tournament.Tournament, error) {
	t, err := s.api.CreateTournament(ctx, in)
	if err != nil {
		return nil, err
	}
	slog.Info("tournament created", "tournament_id", t.ID, "name", t.Name)
	return t, nil
}

func (s *TournamentService) Update(ctx context.Context, id int, in tournament.TournamentInput) (*tournament.Tournament, error) {
	t, err := s.api.UpdateTournament(ctx, id, in)
	if err != nil {
		return nil, err
	}
	slog.Info("tournament updated", "tournament_id", id)
	return t, nil
}

func (s *TournamentService) Delete(ctx context.Context, id int) error {
	if err := s.api.DeleteTournament(ctx, id); err != nil {
		return err
	}
	slog.Info("tournament deleted", "tournament_id", id)
	return nil
}

func (s *TournamentService) Schedule(ctx context.Context, id int, opts viewmodel.Options) (viewmodel.Schedule, error) {
	rounds, err := s.api.Rounds(ctx, id)
	if err != nil {
		return viewmodel.Schedule{}, fmt.Errorf("failed to load rounds: %w", err)
	}
	return viewmodel.BuildSchedule(rounds, opts), nil
}

func (s *TournamentService) Standings(ctx context.Context, id int, opts viewmodel.Options) (viewmodel.Standings, error) {
	poules, err := s.api.Standings(ctx, id)
	if err != nil {
		return viewmodel.Standings{}, fmt.Errorf("failed to load standings: %w", err)
	}
	return viewmodel.BuildStandings(poules, opts), nil
}

func (s *TournamentService) Overall(ctx context.Context, id int, opts viewmodel.Options) (viewmodel.Overall, error) {
	rows, err := s.api.OverallStandings(ctx, id)
	if err != nil {
		return viewmodel.Overall{}, fmt.Errorf("failed to load overall standings: %w", err)
	}
	return viewmodel.BuildOverall(rows, opts), nil
}

func (s *TournamentService) ScoreEntry(ctx context.Context, id int, sel tournament.PhaseSelection, opts viewmodel.Options) (viewmodel.ScoreEntry, error) {
	rounds, err := s.api.Rounds(ctx, id)
	if err != nil {
		return viewmodel.ScoreEntry{}, fmt.Errorf("failed to load rounds: %w", err)
	}
	return viewmodel.BuildScoreEntry(rounds, sel, opts), nil
}

type ManageData struct {
	Tournament   *tournament.Tournament
	Poules       []tournament.Poule
	Teams        []tournament.Team
	Gates        gate.State
	CurrentPhase tournament.PhaseType
	Rounds       int
}

// TeamsInPoule returns the teams assigned to pouleID, or the unassigned ones
// for nil.
func (d *ManageData) TeamsInPoule(pouleID *int) []tournament.Team {
	var out []tournament.Team
	for _, t := range d.Teams {
		switch {
		case pouleID == nil && t.PouleID == nil:
			out = append(out, t)
		case pouleID != nil && t.PouleID != nil && *t.PouleID == *pouleID:
			out = append(out, t)
		}
	}
	return out
}

// Manage loads everything the organizer page shows in parallel. The gates
// start from a direct phase status read so the page never renders them
// before the first poll lands.
func (s *TournamentService) Manage(ctx context.Context, id int) (*ManageData, error) {
	data := &ManageData{}
	var rounds []tournament.Round

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.Get(gctx, id)
		data.Tournament = t
		return err
	})
	g.Go(func() error {
		poules, err := s.api.ListPoules(gctx, id)
		data.Poules = poules
		return err
	})
	g.Go(func() error {
		teams, err := s.api.ListTeams(gctx, id)
		data.Teams = teams
		return err
	})
	g.Go(func() error {
		r, err := s.api.Rounds(gctx, id)
		rounds = r
		return err
	})
	g.Go(func() error {
		status, err := s.api.PhaseStatus(gctx, id)
		if err != nil {
			data.Gates = gate.Closed(err)
		} else {
			data.Gates = gate.Derive(status)
		}
		data.Gates.TournamentID = id
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data.CurrentPhase = tournament.CurrentPhase(rounds)
	data.Rounds = len(rounds)
	return data, nil
}
