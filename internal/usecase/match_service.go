package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/matchresult"
	"github.com/riskibarqy/league-standings/internal/domain/player"
	"github.com/riskibarqy/league-standings/internal/domain/schedule"
	"github.com/riskibarqy/league-standings/internal/domain/tournament"
	idgen "github.com/riskibarqy/league-standings/internal/platform/id"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type RecordResultInput struct {
	TournamentID string
	DivisionID   string
	Player1ID    string
	Player2ID    string
	Sets         []matchresult.SetScore
	HadPint      bool
	PintCount    int
}

type ScheduleMatchInput struct {
	TournamentID string
	DivisionID   string
	Player1ID    string
	// Player2ID is optional. Leaving it empty opens the slot for anyone in
	// the division to join.
	Player2ID string
	Location  string
	Date      string
	TimeSlot  string
}

type MatchService struct {
	tournamentRepo tournament.Repository
	playerRepo     player.Repository
	resultRepo     matchresult.Repository
	scheduleRepo   schedule.Repository
	idGen          idgen.Generator
	now            func() time.Time
	logger         *logging.Logger
}

func NewMatchService(
	tournamentRepo tournament.Repository,
	playerRepo player.Repository,
	resultRepo matchresult.Repository,
	scheduleRepo schedule.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		resultRepo:     resultRepo,
		scheduleRepo:   scheduleRepo,
		idGen:          idGen,
		now:            time.Now,
		logger:         logger,
	}
}

// RecordResult appends a played match and drops every scheduled booking of
// the same pair in that division. Validation runs before any write.
func (s *MatchService) RecordResult(ctx context.Context, input RecordResultInput) (matchresult.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RecordResult", scopeAttrs(input.TournamentID, input.DivisionID)...)
	defer span.End()

	input.TournamentID = strings.TrimSpace(input.TournamentID)
	input.DivisionID = strings.TrimSpace(input.DivisionID)
	input.Player1ID = strings.TrimSpace(input.Player1ID)
	input.Player2ID = strings.TrimSpace(input.Player2ID)
	if input.Player1ID == "" || input.Player2ID == "" {
		return matchresult.Result{}, fmt.Errorf("%w: both players are required", ErrInvalidInput)
	}
	if input.Player1ID == input.Player2ID {
		return matchresult.Result{}, fmt.Errorf("%w: a player cannot play against themselves", ErrInvalidInput)
	}
	if matchresult.ValidSetCount(input.Sets) == 0 {
		return matchresult.Result{}, fmt.Errorf("%w: %w", ErrInvalidInput, matchresult.ErrNoValidSets)
	}

	if _, err := s.resolveDivision(ctx, input.TournamentID, input.DivisionID); err != nil {
		return matchresult.Result{}, err
	}
	p1, err := s.resolvePlayer(ctx, input.Player1ID, "player1")
	if err != nil {
		return matchresult.Result{}, err
	}
	p2, err := s.resolvePlayer(ctx, input.Player2ID, "player2")
	if err != nil {
		return matchresult.Result{}, err
	}

	pints := 0
	if input.HadPint {
		pints = max(input.PintCount, 1)
	}

	resultID, err := s.idGen.NewID()
	if err != nil {
		return matchresult.Result{}, fmt.Errorf("generate result id: %w", err)
	}

	result := matchresult.Result{
		ID:           resultID,
		TournamentID: input.TournamentID,
		DivisionID:   input.DivisionID,
		Player1ID:    p1.ID,
		Player1Name:  p1.Name,
		Player2ID:    p2.ID,
		Player2Name:  p2.Name,
		Sets:         append([]matchresult.SetScore(nil), input.Sets...),
		HadPint:      input.HadPint,
		PintCount:    pints,
		CreatedAt:    s.now().UTC(),
	}
	result.ApplyTotals()
	if err := result.Validate(); err != nil {
		return matchresult.Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.resultRepo.Append(ctx, result); err != nil {
		return matchresult.Result{}, fmt.Errorf("append result: %w", err)
	}

	// The result is stored at this point. A failed cleanup leaves stale
	// bookings behind but must not report the match as unrecorded.
	removed, err := s.scheduleRepo.RemoveByPair(ctx, result.TournamentID, result.DivisionID, result.Player1ID, result.Player2ID)
	if err != nil {
		s.logger.WarnContext(ctx, "remove scheduled matches for pair failed",
			"result_id", result.ID,
			"tournament_id", result.TournamentID,
			"division_id", result.DivisionID,
			"error", err,
		)
	}

	s.logger.InfoContext(ctx, "match result recorded",
		"result_id", result.ID,
		"tournament_id", result.TournamentID,
		"division_id", result.DivisionID,
		"player1_id", result.Player1ID,
		"player2_id", result.Player2ID,
		"sets_won", fmt.Sprintf("%d-%d", result.Player1SetsWon, result.Player2SetsWon),
		"scheduled_removed", removed,
	)

	return result, nil
}

// ScheduleMatch books a match. Without a second player the booking stays
// pending until someone joins.
func (s *MatchService) ScheduleMatch(ctx context.Context, input ScheduleMatchInput) (schedule.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ScheduleMatch", scopeAttrs(input.TournamentID, input.DivisionID)...)
	defer span.End()

	input.TournamentID = strings.TrimSpace(input.TournamentID)
	input.DivisionID = strings.TrimSpace(input.DivisionID)
	input.Player1ID = strings.TrimSpace(input.Player1ID)
	input.Player2ID = strings.TrimSpace(input.Player2ID)
	input.Location = strings.TrimSpace(input.Location)
	input.Date = strings.TrimSpace(input.Date)
	input.TimeSlot = strings.TrimSpace(input.TimeSlot)
	if input.Player1ID == "" {
		return schedule.Match{}, fmt.Errorf("%w: player1 is required", ErrInvalidInput)
	}
	if input.Location == "" || input.Date == "" || input.TimeSlot == "" {
		return schedule.Match{}, fmt.Errorf("%w: location, date and time are required", ErrInvalidInput)
	}
	if input.Player1ID == input.Player2ID {
		return schedule.Match{}, fmt.Errorf("%w: a player cannot play against themselves", ErrInvalidInput)
	}

	if _, err := s.resolveDivision(ctx, input.TournamentID, input.DivisionID); err != nil {
		return schedule.Match{}, err
	}
	p1, err := s.resolvePlayer(ctx, input.Player1ID, "player1")
	if err != nil {
		return schedule.Match{}, err
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return schedule.Match{}, fmt.Errorf("generate scheduled match id: %w", err)
	}

	m := schedule.Match{
		ID:           matchID,
		TournamentID: input.TournamentID,
		DivisionID:   input.DivisionID,
		Player1ID:    p1.ID,
		Player1Name:  p1.Name,
		Player2Name:  schedule.PendingPlaceholder,
		Location:     input.Location,
		Date:         input.Date,
		TimeSlot:     input.TimeSlot,
		Status:       schedule.StatusPending,
		CreatedAt:    s.now().UTC(),
	}

	if input.Player2ID != "" {
		p2, err := s.resolvePlayer(ctx, input.Player2ID, "player2")
		if err != nil {
			return schedule.Match{}, err
		}
		m.Player2ID = p2.ID
		m.Player2Name = p2.Name
		m.Status = schedule.StatusConfirmed
	}

	if err := m.Validate(); err != nil {
		return schedule.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.scheduleRepo.Append(ctx, m); err != nil {
		if errors.Is(err, schedule.ErrActivePair) {
			return schedule.Match{}, fmt.Errorf("%w: %w", ErrDuplicateMatch, err)
		}
		return schedule.Match{}, fmt.Errorf("append scheduled match: %w", err)
	}

	s.logger.InfoContext(ctx, "match scheduled",
		"match_id", m.ID,
		"tournament_id", m.TournamentID,
		"division_id", m.DivisionID,
		"status", m.Status,
	)

	return m, nil
}

// JoinPendingMatch fills the open slot of a pending match.
func (s *MatchService) JoinPendingMatch(ctx context.Context, matchID, playerID string) (schedule.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.JoinPendingMatch", attribute.String("league.match_id", matchID))
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	playerID = strings.TrimSpace(playerID)
	if matchID == "" || playerID == "" {
		return schedule.Match{}, fmt.Errorf("%w: match id and player id are required", ErrInvalidInput)
	}

	m, exists, err := s.scheduleRepo.GetByID(ctx, matchID)
	if err != nil {
		return schedule.Match{}, fmt.Errorf("get scheduled match: %w", err)
	}
	if !exists {
		return schedule.Match{}, fmt.Errorf("%w: scheduled match=%s", ErrNotFound, matchID)
	}
	if m.Status != schedule.StatusPending {
		return schedule.Match{}, fmt.Errorf("%w: %w", ErrConflict, schedule.ErrMatchNotPending)
	}
	if m.Player1ID == playerID {
		return schedule.Match{}, fmt.Errorf("%w: cannot join your own match", ErrInvalidInput)
	}

	joiner, err := s.resolvePlayer(ctx, playerID, "player")
	if err != nil {
		return schedule.Match{}, err
	}
	if !joiner.PlaysIn(m.TournamentID, m.DivisionID) {
		return schedule.Match{}, fmt.Errorf("%w: player %s does not play in division %s", ErrInvalidInput, joiner.ID, m.DivisionID)
	}
	joined, err := s.scheduleRepo.ConfirmPending(ctx, m.ID, joiner.ID, joiner.Name)
	if err != nil {
		if errors.Is(err, schedule.ErrMatchNotPending) {
			return schedule.Match{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		if errors.Is(err, schedule.ErrMatchNotFound) {
			return schedule.Match{}, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		if errors.Is(err, schedule.ErrActivePair) {
			return schedule.Match{}, fmt.Errorf("%w: %w", ErrDuplicateMatch, err)
		}
		return schedule.Match{}, fmt.Errorf("confirm pending match: %w", err)
	}

	s.logger.InfoContext(ctx, "pending match joined",
		"match_id", joined.ID,
		"player_id", joiner.ID,
	)

	return joined, nil
}

func (s *MatchService) ListSchedule(ctx context.Context, tournamentID, divisionID string) ([]schedule.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListSchedule", scopeAttrs(tournamentID, divisionID)...)
	defer span.End()

	items, err := s.scheduleRepo.ListByScope(ctx, strings.TrimSpace(tournamentID), strings.TrimSpace(divisionID))
	if err != nil {
		return nil, fmt.Errorf("list scheduled matches: %w", err)
	}
	return items, nil
}

func (s *MatchService) ListResults(ctx context.Context, tournamentID, divisionID string) ([]matchresult.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListResults", scopeAttrs(tournamentID, divisionID)...)
	defer span.End()

	items, err := s.resultRepo.ListByScope(ctx, strings.TrimSpace(tournamentID), strings.TrimSpace(divisionID))
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return items, nil
}

// ExportSchedule renders the division schedule as a fixed-width text table.
func (s *MatchService) ExportSchedule(ctx context.Context, tournamentID, divisionID string) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ExportSchedule", scopeAttrs(tournamentID, divisionID)...)
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	divisionID = strings.TrimSpace(divisionID)

	items, err := s.scheduleRepo.ListByScope(ctx, tournamentID, divisionID)
	if err != nil {
		return "", fmt.Errorf("list scheduled matches: %w", err)
	}

	names := map[string]string{}
	t, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return "", fmt.Errorf("get tournament: %w", err)
	}
	if exists {
		for _, d := range t.Divisions {
			names[d.ID] = d.Name
		}
	}

	return schedule.FormatTable(items, names), nil
}

func (s *MatchService) resolveDivision(ctx context.Context, tournamentID, divisionID string) (tournament.Tournament, error) {
	if tournamentID == "" || divisionID == "" {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament and division are required", ErrInvalidInput)
	}

	t, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}
	if _, ok := t.Division(divisionID); !ok {
		return tournament.Tournament{}, fmt.Errorf("%w: division=%s tournament=%s", ErrNotFound, divisionID, tournamentID)
	}
	return t, nil
}

func (s *MatchService) resolvePlayer(ctx context.Context, playerID, field string) (player.Player, error) {
	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get %s: %w", field, err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: unknown %s=%s", ErrInvalidInput, field, playerID)
	}
	return p, nil
}
