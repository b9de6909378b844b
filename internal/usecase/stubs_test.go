package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/league-standings/internal/domain/matchresult"
	"github.com/riskibarqy/league-standings/internal/domain/player"
	"github.com/riskibarqy/league-standings/internal/domain/schedule"
	"github.com/riskibarqy/league-standings/internal/domain/tournament"
)

const (
	testTournamentID = "ppc-winter"
	testDivisionID   = "oro"
)

func testTournaments() []tournament.Tournament {
	return []tournament.Tournament{
		{
			ID:   testTournamentID,
			Name: "PPC Winter 2025/2026",
			Divisions: []tournament.Division{
				{ID: "oro", Name: "Oro"},
				{ID: "plata", Name: "Plata"},
				{ID: "bronce", Name: "Bronce"},
			},
		},
		{
			ID:   "ppc-cup",
			Name: "PPC Cup 2026",
			Divisions: []tournament.Division{
				{ID: "oro", Name: "Oro"},
				{ID: "plata", Name: "Plata"},
			},
		},
	}
}

func testPlayer(id, name, divisionID string, tournamentIDs ...string) player.Player {
	return player.Player{
		ID:            id,
		Name:          name,
		Email:         id + "@example.com",
		Role:          player.RolePlayer,
		DivisionID:    divisionID,
		TournamentIDs: tournamentIDs,
	}
}

type stubTournamentRepository struct {
	items []tournament.Tournament
	err   error
}

func (s *stubTournamentRepository) List(context.Context) ([]tournament.Tournament, error) {
	return s.items, s.err
}

func (s *stubTournamentRepository) GetByID(_ context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	if s.err != nil {
		return tournament.Tournament{}, false, s.err
	}
	for _, t := range s.items {
		if t.ID == tournamentID {
			return t, true, nil
		}
	}
	return tournament.Tournament{}, false, nil
}

type stubPlayerRepository struct {
	items []player.Player
	err   error
}

func (s *stubPlayerRepository) List(context.Context) ([]player.Player, error) {
	return append([]player.Player(nil), s.items...), s.err
}

func (s *stubPlayerRepository) ListByDivision(_ context.Context, tournamentID, divisionID string) ([]player.Player, error) {
	if s.err != nil {
		return nil, s.err
	}
	return player.FilterActive(s.items, tournamentID, divisionID), nil
}

func (s *stubPlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	if s.err != nil {
		return player.Player{}, false, s.err
	}
	for _, p := range s.items {
		if p.ID == playerID {
			return p, true, nil
		}
	}
	return player.Player{}, false, nil
}

func (s *stubPlayerRepository) Create(ctx context.Context, p player.Player) error {
	return s.CreateAdmitted(ctx, p, nil)
}

func (s *stubPlayerRepository) CreateAdmitted(_ context.Context, p player.Player, admit player.Admission) error {
	if s.err != nil {
		return s.err
	}
	if admit != nil {
		if err := admit(slices.Clone(s.items)); err != nil {
			return err
		}
	}
	s.items = append(s.items, p)
	return nil
}

type stubResultRepository struct {
	items     []matchresult.Result
	appendErr error
}

func (s *stubResultRepository) ListByScope(_ context.Context, tournamentID, divisionID string) ([]matchresult.Result, error) {
	out := make([]matchresult.Result, 0, len(s.items))
	for _, r := range s.items {
		if r.TournamentID == tournamentID && r.DivisionID == divisionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubResultRepository) Append(_ context.Context, r matchresult.Result) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.items = append(s.items, r)
	return nil
}

type stubScheduleRepository struct {
	items     []schedule.Match
	removeErr error
}

func (s *stubScheduleRepository) ListByScope(_ context.Context, tournamentID, divisionID string) ([]schedule.Match, error) {
	out := make([]schedule.Match, 0, len(s.items))
	for _, m := range s.items {
		if m.TournamentID == tournamentID && m.DivisionID == divisionID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stubScheduleRepository) GetByID(_ context.Context, matchID string) (schedule.Match, bool, error) {
	for _, m := range s.items {
		if m.ID == matchID {
			return m, true, nil
		}
	}
	return schedule.Match{}, false, nil
}

func (s *stubScheduleRepository) Append(_ context.Context, m schedule.Match) error {
	if err := schedule.CheckPair(s.items, m); err != nil {
		return err
	}
	s.items = append(s.items, m)
	return nil
}

func (s *stubScheduleRepository) ConfirmPending(_ context.Context, matchID, playerID, playerName string) (schedule.Match, error) {
	for i := range s.items {
		if s.items[i].ID != matchID {
			continue
		}
		joined := s.items[i]
		if err := joined.Join(playerID, playerName); err != nil {
			return schedule.Match{}, err
		}
		if err := schedule.CheckPair(s.items, joined); err != nil {
			return schedule.Match{}, err
		}
		s.items[i] = joined
		return joined, nil
	}
	return schedule.Match{}, fmt.Errorf("%w: %s", schedule.ErrMatchNotFound, matchID)
}

func (s *stubScheduleRepository) RemoveByPair(_ context.Context, tournamentID, divisionID, playerA, playerB string) (int, error) {
	if s.removeErr != nil {
		return 0, s.removeErr
	}
	kept, removed := schedule.WithoutPair(s.items, tournamentID, divisionID, playerA, playerB)
	s.items = kept
	return removed, nil
}

type stubSessionRepository struct {
	playerID string
}

func (s *stubSessionRepository) GetCurrentPlayerID(context.Context) (string, bool, error) {
	return s.playerID, s.playerID != "", nil
}

func (s *stubSessionRepository) SetCurrentPlayerID(_ context.Context, playerID string) error {
	s.playerID = playerID
	return nil
}
