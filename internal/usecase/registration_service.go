package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/league-standings/internal/domain/player"
	"github.com/riskibarqy/league-standings/internal/domain/tournament"
	idgen "github.com/riskibarqy/league-standings/internal/platform/id"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var fieldValidator = validator.New()

type RegisterInput struct {
	Name               string
	Email              string
	Password           string
	Role               player.Role
	DivisionID         string
	TournamentIDs      []string
	Availability       []string
	PreferredLocations []string
}

type RegistrationService struct {
	tournamentRepo tournament.Repository
	playerRepo     player.Repository
	sessionRepo    player.SessionRepository
	idGen          idgen.Generator
	hashCost       int
	now            func() time.Time
	logger         *logging.Logger
}

func NewRegistrationService(
	tournamentRepo tournament.Repository,
	playerRepo player.Repository,
	sessionRepo player.SessionRepository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *RegistrationService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RegistrationService{
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		sessionRepo:    sessionRepo,
		idGen:          idGen,
		hashCost:       bcrypt.DefaultCost,
		now:            time.Now,
		logger:         logger,
	}
}

// Register creates a player account and makes it the current session
// player. Every selected tournament must have room in the chosen division.
func (s *RegistrationService) Register(ctx context.Context, input RegisterInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.Register")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.DivisionID = strings.TrimSpace(input.DivisionID)
	if input.Role == "" {
		input.Role = player.RolePlayer
	}
	if input.Name == "" {
		return player.Player{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := fieldValidator.Var(input.Email, "required,email"); err != nil {
		return player.Player{}, fmt.Errorf("%w: invalid email %q", ErrInvalidInput, input.Email)
	}
	if len(input.Password) < minPasswordLength {
		return player.Player{}, fmt.Errorf("%w: password must have at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if _, ok := player.AllRoles[input.Role]; !ok {
		return player.Player{}, fmt.Errorf("%w: invalid role %q", ErrInvalidInput, input.Role)
	}

	tournamentIDs := normalizeIDs(input.TournamentIDs)
	if input.Role == player.RolePlayer {
		if input.DivisionID == "" {
			return player.Player{}, fmt.Errorf("%w: division is required", ErrInvalidInput)
		}
		if len(tournamentIDs) == 0 {
			return player.Player{}, fmt.Errorf("%w: select at least one tournament", ErrInvalidInput)
		}
	}

	selected, err := s.selectedTournaments(ctx, tournamentIDs, input.DivisionID)
	if err != nil {
		return player.Player{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return player.Player{}, fmt.Errorf("hash password: %w", err)
	}
	playerID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	p := player.Player{
		ID:                 playerID,
		Name:               input.Name,
		Email:              input.Email,
		PasswordHash:       string(hash),
		Role:               input.Role,
		DivisionID:         input.DivisionID,
		TournamentIDs:      tournamentIDs,
		Availability:       normalizeIDs(input.Availability),
		PreferredLocations: normalizeIDs(input.PreferredLocations),
		CreatedAt:          s.now().UTC(),
	}
	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.playerRepo.CreateAdmitted(ctx, p, admitPlayer(p, selected)); err != nil {
		switch {
		case errors.Is(err, player.ErrDuplicateEmail):
			return player.Player{}, fmt.Errorf("%w: email %s is already registered", ErrConflict, input.Email)
		case errors.Is(err, ErrConflict), errors.Is(err, ErrDivisionFull):
			return player.Player{}, err
		}
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}
	if err := s.sessionRepo.SetCurrentPlayerID(ctx, p.ID); err != nil {
		return player.Player{}, fmt.Errorf("set current player: %w", err)
	}

	s.logger.InfoContext(ctx, "player registered",
		"player_id", p.ID,
		"role", p.Role,
		"division_id", p.DivisionID,
		"tournaments", len(p.TournamentIDs),
	)

	return p, nil
}

// admitPlayer rejects p when its email is taken or, for a competing player,
// when any selected tournament has no room left in p's division.
func admitPlayer(p player.Player, selected []tournament.Tournament) player.Admission {
	return func(roster []player.Player) error {
		for _, existing := range roster {
			if strings.EqualFold(existing.Email, p.Email) {
				return fmt.Errorf("%w: email %s is already registered", ErrConflict, p.Email)
			}
		}
		if p.Role != player.RolePlayer {
			return nil
		}
		if full, ok := tournament.FirstFull(selected, p.DivisionID, roster); ok {
			division, _ := full.Division(p.DivisionID)
			return fmt.Errorf("%w: %s in %s has reached its limit of %d players",
				ErrDivisionFull, division.Name, full.Name, full.Capacity())
		}
		return nil
	}
}

// CanRegister reports whether the division of a tournament still has room.
func (s *RegistrationService) CanRegister(ctx context.Context, tournamentID, divisionID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.CanRegister", scopeAttrs(tournamentID, divisionID)...)
	defer span.End()

	selected, err := s.selectedTournaments(ctx, normalizeIDs([]string{tournamentID}), strings.TrimSpace(divisionID))
	if err != nil {
		return false, err
	}
	if len(selected) == 0 {
		return false, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	roster, err := s.playerRepo.List(ctx)
	if err != nil {
		return false, fmt.Errorf("list players: %w", err)
	}
	return tournament.CanRegister(selected[0], strings.TrimSpace(divisionID), roster), nil
}

// CurrentPlayer returns the player the session acts as, if any.
func (s *RegistrationService) CurrentPlayer(ctx context.Context) (player.Player, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.CurrentPlayer")
	defer span.End()

	playerID, exists, err := s.sessionRepo.GetCurrentPlayerID(ctx)
	if err != nil {
		return player.Player{}, false, fmt.Errorf("get current player id: %w", err)
	}
	if !exists {
		return player.Player{}, false, nil
	}

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, false, fmt.Errorf("get current player: %w", err)
	}
	return p, exists, nil
}

func (s *RegistrationService) SetCurrentPlayer(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.SetCurrentPlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	if err := s.sessionRepo.SetCurrentPlayerID(ctx, p.ID); err != nil {
		return player.Player{}, fmt.Errorf("set current player: %w", err)
	}
	return p, nil
}

func (s *RegistrationService) selectedTournaments(ctx context.Context, ids []string, divisionID string) ([]tournament.Tournament, error) {
	out := make([]tournament.Tournament, 0, len(ids))
	for _, id := range ids {
		t, exists, err := s.tournamentRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get tournament: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: tournament=%s", ErrNotFound, id)
		}
		if divisionID != "" {
			if _, ok := t.Division(divisionID); !ok {
				return nil, fmt.Errorf("%w: tournament %s has no division %s", ErrInvalidInput, t.Name, divisionID)
			}
		}
		out = append(out, t)
	}
	return out, nil
}

// normalizeIDs trims values and drops blanks and duplicates, keeping order.
func normalizeIDs(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
