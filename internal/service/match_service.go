package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AdamBeresnev/poule-board/internal/score"
	"github.com/AdamBeresnev/poule-board/internal/tournament"
	"github.com/AdamBeresnev/poule-board/internal/viewmodel"
)

type MatchService struct {
	api   API
	gates GateRefresher
}

func NewMatchService(api API, gates GateRefresher) *MatchService {
	return &MatchService{api: api, gates: gates}
}

// SubmitScore validates the raw form values, sends them and reloads the whole
// match list. The returned view is rebuilt from the server's answer, never
// patched locally.
func (s *MatchService) SubmitScore(ctx context.Context, tournamentID, matchID int, in score.Input, sel tournament.PhaseSelection, opts viewmodel.Options) (viewmodel.ScoreEntry, error) {
	update := score.Parse(in)
	if err := s.api.SubmitScore(ctx, matchID, update); err != nil {
		return viewmodel.ScoreEntry{}, err
	}
	slog.Info("score submitted", "tournament_id", tournamentID, "match_id", matchID)

	// A completed match can complete a phase.
	if s.gates != nil {
		s.gates.Refresh(tournamentID)
	}

	rounds, err := s.api.Rounds(ctx, tournamentID)
	if err != nil {
		return viewmodel.ScoreEntry{}, fmt.Errorf("failed to reload rounds: %w", err)
	}
	return viewmodel.BuildScoreEntry(rounds, sel, opts), nil
}
