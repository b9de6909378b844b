package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/league-standings/internal/domain/player"
	"github.com/riskibarqy/league-standings/internal/domain/tournament"
)

// DivisionRoster is the active roster of a division next to its cap.
type DivisionRoster struct {
	Division tournament.Division
	Capacity int
	Players  []player.Player
}

type TournamentService struct {
	tournamentRepo tournament.Repository
	playerRepo     player.Repository
}

func NewTournamentService(tournamentRepo tournament.Repository, playerRepo player.Repository) *TournamentService {
	return &TournamentService{
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
	}
}

func (s *TournamentService) ListTournaments(ctx context.Context) ([]tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.ListTournaments")
	defer span.End()

	items, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}

	return items, nil
}

func (s *TournamentService) DivisionRoster(ctx context.Context, tournamentID, divisionID string) (DivisionRoster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.DivisionRoster", scopeAttrs(tournamentID, divisionID)...)
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	divisionID = strings.TrimSpace(divisionID)
	if tournamentID == "" || divisionID == "" {
		return DivisionRoster{}, fmt.Errorf("%w: tournament id and division id are required", ErrInvalidInput)
	}

	t, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return DivisionRoster{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return DivisionRoster{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}
	division, ok := t.Division(divisionID)
	if !ok {
		return DivisionRoster{}, fmt.Errorf("%w: division=%s tournament=%s", ErrNotFound, divisionID, tournamentID)
	}

	players, err := s.playerRepo.ListByDivision(ctx, tournamentID, divisionID)
	if err != nil {
		return DivisionRoster{}, fmt.Errorf("list division players: %w", err)
	}

	return DivisionRoster{
		Division: division,
		Capacity: t.Capacity(),
		Players:  player.FilterActive(players, tournamentID, divisionID),
	}, nil
}
