package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AdamBeresnev/poule-board/internal/tournament"
)

type PhaseService struct {
	api   API
	gates GateRefresher
}

func NewPhaseService(api API, gates GateRefresher) *PhaseService {
	return &PhaseService{api: api, gates: gates}
}

// Generate asks the server to build a phase and triggers an immediate gate
// poll so the organizer does not wait for the next tick. The gates are
// refreshed on failure too, since a rejection often means they are stale.
func (s *PhaseService) Generate(ctx context.Context, tournamentID int, phase tournament.PhaseType) (string, error) {
	if !phase.Valid() {
		return "", fmt.Errorf("unknown phase %q", phase)
	}

	msg, err := s.api.Generate(ctx, tournamentID, phase)
	if s.gates != nil {
		s.gates.Refresh(tournamentID)
	}
	if err != nil {
		slog.Warn("phase generation rejected", "tournament_id", tournamentID, "phase", phase, "error", err)
		return "", err
	}

	slog.Info("phase generated", "tournament_id", tournamentID, "phase", phase)
	if msg == "" {
		msg = fmt.Sprintf("Generated the %s.", phase.Label())
	}
	return msg, nil
}
