package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/league-standings/internal/domain/matchresult"
	"github.com/riskibarqy/league-standings/internal/domain/player"
	"github.com/riskibarqy/league-standings/internal/domain/schedule"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	"github.com/riskibarqy/league-standings/internal/domain/tournament"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const defaultRankingWorkers = 4

// DivisionTable is the ranked table of one division.
type DivisionTable struct {
	Division  tournament.Division
	Capacity  int
	Standings []standing.PlayerStats
}

type StandingService struct {
	tournamentRepo tournament.Repository
	playerRepo     player.Repository
	resultRepo     matchresult.Repository
	scheduleRepo   schedule.Repository
	workers        int
	logger         *logging.Logger
}

func NewStandingService(
	tournamentRepo tournament.Repository,
	playerRepo player.Repository,
	resultRepo matchresult.Repository,
	scheduleRepo schedule.Repository,
	workers int,
	logger *logging.Logger,
) *StandingService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultRankingWorkers
	}

	return &StandingService{
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		resultRepo:     resultRepo,
		scheduleRepo:   scheduleRepo,
		workers:        workers,
		logger:         logger,
	}
}

// divisionState is everything the rules need to rank one division.
type divisionState struct {
	roster    []player.Player
	results   []matchresult.Result
	scheduled []schedule.Match
}

func (s *StandingService) loadDivision(ctx context.Context, tournamentID, divisionID string) (divisionState, error) {
	roster, err := s.playerRepo.ListByDivision(ctx, tournamentID, divisionID)
	if err != nil {
		return divisionState{}, fmt.Errorf("list division roster: %w", err)
	}
	results, err := s.resultRepo.ListByScope(ctx, tournamentID, divisionID)
	if err != nil {
		return divisionState{}, fmt.Errorf("list results: %w", err)
	}
	scheduled, err := s.scheduleRepo.ListByScope(ctx, tournamentID, divisionID)
	if err != nil {
		return divisionState{}, fmt.Errorf("list scheduled matches: %w", err)
	}

	return divisionState{roster: roster, results: results, scheduled: scheduled}, nil
}

// ComputeStats returns one player's row. Unknown players, divisions or
// tournaments yield a zeroed row rather than an error.
func (s *StandingService) ComputeStats(ctx context.Context, tournamentID, divisionID, playerID string) (standing.PlayerStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ComputeStats", scopeAttrs(tournamentID, divisionID)...)
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	divisionID = strings.TrimSpace(divisionID)
	playerID = strings.TrimSpace(playerID)
	if tournamentID == "" || divisionID == "" || playerID == "" {
		return standing.PlayerStats{PlayerID: playerID}, nil
	}

	state, err := s.loadDivision(ctx, tournamentID, divisionID)
	if err != nil {
		return standing.PlayerStats{}, err
	}

	for _, p := range state.roster {
		if p.ID == playerID {
			return standing.ComputeStats(p.ID, p.Name, state.results, state.scheduled, len(state.roster)), nil
		}
	}

	zero := standing.PlayerStats{PlayerID: playerID}
	if p, exists, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return standing.PlayerStats{}, fmt.Errorf("get player: %w", err)
	} else if exists {
		zero.Name = p.Name
	}
	return zero, nil
}

func (s *StandingService) HeadToHead(ctx context.Context, tournamentID, divisionID, playerA, playerB string) (standing.HeadToHeadRecord, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.HeadToHead", scopeAttrs(tournamentID, divisionID)...)
	defer span.End()

	playerA = strings.TrimSpace(playerA)
	playerB = strings.TrimSpace(playerB)
	if playerA == "" || playerB == "" {
		return standing.HeadToHeadRecord{}, false, fmt.Errorf("%w: both player ids are required", ErrInvalidInput)
	}

	results, err := s.resultRepo.ListByScope(ctx, strings.TrimSpace(tournamentID), strings.TrimSpace(divisionID))
	if err != nil {
		return standing.HeadToHeadRecord{}, false, fmt.Errorf("list results: %w", err)
	}

	rec, ok := standing.HeadToHead(results, playerA, playerB)
	return rec, ok, nil
}

// Rank returns the league table of one division, one row per active player.
func (s *StandingService) Rank(ctx context.Context, tournamentID, divisionID string) ([]standing.PlayerStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.Rank", scopeAttrs(tournamentID, divisionID)...)
	defer span.End()

	rows, results, err := s.divisionRows(ctx, strings.TrimSpace(tournamentID), strings.TrimSpace(divisionID))
	if err != nil {
		return nil, err
	}

	return standing.Rank(rows, results), nil
}

// PintsLeaderboard ranks the division by drinks shared after matches.
func (s *StandingService) PintsLeaderboard(ctx context.Context, tournamentID, divisionID string) ([]standing.PlayerStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.PintsLeaderboard", scopeAttrs(tournamentID, divisionID)...)
	defer span.End()

	rows, _, err := s.divisionRows(ctx, strings.TrimSpace(tournamentID), strings.TrimSpace(divisionID))
	if err != nil {
		return nil, err
	}

	return standing.RankByPints(rows), nil
}

func (s *StandingService) divisionRows(ctx context.Context, tournamentID, divisionID string) ([]standing.PlayerStats, []matchresult.Result, error) {
	if tournamentID == "" || divisionID == "" {
		return []standing.PlayerStats{}, nil, nil
	}

	state, err := s.loadDivision(ctx, tournamentID, divisionID)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]standing.PlayerStats, 0, len(state.roster))
	for _, p := range state.roster {
		rows = append(rows, standing.ComputeStats(p.ID, p.Name, state.results, state.scheduled, len(state.roster)))
	}

	return rows, state.results, nil
}

// TournamentOverview ranks every division of a tournament concurrently.
func (s *StandingService) TournamentOverview(ctx context.Context, tournamentID string) ([]DivisionTable, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.TournamentOverview", attribute.String("league.tournament_id", tournamentID))
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return nil, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	t, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}

	tables := make([]DivisionTable, len(t.Divisions))
	if len(t.Divisions) == 0 {
		return tables, nil
	}

	pool, err := ants.NewPool(min(s.workers, len(t.Divisions)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		workers  sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	for i, division := range t.Divisions {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			rows, err := s.Rank(ctx, t.ID, division.ID)
			if err != nil {
				errOnce.Do(func() {
					firstErr = fmt.Errorf("rank division %s: %w", division.ID, err)
				})
				return
			}
			tables[i] = DivisionTable{
				Division:  division,
				Capacity:  t.Capacity(),
				Standings: rows,
			}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit division to worker pool: %w", err)
		}
	}
	workers.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	s.logger.DebugContext(ctx, "tournament overview ranked",
		"tournament_id", t.ID,
		"divisions", len(tables),
	)

	return tables, nil
}
