package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/riskibarqy/league-standings/internal/domain/player"
	"github.com/riskibarqy/league-standings/internal/domain/tournament"
	"github.com/riskibarqy/league-standings/internal/infrastructure/repository/memory"
	playermock "github.com/riskibarqy/league-standings/internal/mocks/domain/player"
	tournamentmock "github.com/riskibarqy/league-standings/internal/mocks/domain/tournament"
	idgen "github.com/riskibarqy/league-standings/internal/platform/id"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func newRegistrationFixture(roster []player.Player) (*RegistrationService, *stubPlayerRepository, *stubSessionRepository) {
	players := &stubPlayerRepository{items: roster}
	session := &stubSessionRepository{}
	service := NewRegistrationService(&stubTournamentRepository{items: testTournaments()}, players, session, idgen.NewSequence("new-player"), nil)
	service.hashCost = bcrypt.MinCost
	return service, players, session
}

func fillDivision(n int, tournamentID, divisionID string) []player.Player {
	out := make([]player.Player, 0, n)
	for i := range n {
		out = append(out, testPlayer(fmt.Sprintf("%s-%s-%d", tournamentID, divisionID, i), fmt.Sprintf("Player %d", i), divisionID, tournamentID))
	}
	return out
}

func TestRegistrationService_Register(t *testing.T) {
	t.Parallel()

	service, players, session := newRegistrationFixture(fillDivision(11, testTournamentID, "oro"))

	got, err := service.Register(context.Background(), RegisterInput{
		Name:          " Lucia ",
		Email:         "Lucia@Example.com",
		Password:      "secret-pass",
		DivisionID:    "oro",
		TournamentIDs: []string{testTournamentID, testTournamentID, " "},
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if got.ID != "new-player" || got.Name != "Lucia" || got.Email != "lucia@example.com" || got.Role != player.RolePlayer {
		t.Fatalf("unexpected player: %+v", got)
	}
	if len(got.TournamentIDs) != 1 {
		t.Fatalf("expected de-duplicated tournaments, got %v", got.TournamentIDs)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("secret-pass")); err != nil {
		t.Fatalf("password hash does not verify: %v", err)
	}
	if len(players.items) != 12 {
		t.Fatalf("expected player to be stored, roster=%d", len(players.items))
	}
	if session.playerID != "new-player" {
		t.Fatalf("expected session to act as the new player, got %q", session.playerID)
	}
}

func TestRegistrationService_Register_DivisionFull(t *testing.T) {
	t.Parallel()

	roster := append(fillDivision(12, testTournamentID, "oro"), fillDivision(5, "ppc-cup", "oro")...)
	service, players, session := newRegistrationFixture(roster)

	_, err := service.Register(context.Background(), RegisterInput{
		Name:          "Lucia",
		Email:         "lucia@example.com",
		Password:      "secret-pass",
		DivisionID:    "oro",
		TournamentIDs: []string{"ppc-cup", testTournamentID},
	})
	if !errors.Is(err, ErrDivisionFull) {
		t.Fatalf("expected ErrDivisionFull, got %v", err)
	}
	if !strings.Contains(err.Error(), "Oro") || !strings.Contains(err.Error(), "PPC Winter 2025/2026") {
		t.Fatalf("expected error to name division and tournament, got %q", err.Error())
	}
	if len(players.items) != len(roster) || session.playerID != "" {
		t.Fatalf("nothing should be stored when a division is full")
	}
}

func TestRegistrationService_Register_CupHasLargerCapacity(t *testing.T) {
	t.Parallel()

	service, _, _ := newRegistrationFixture(fillDivision(19, "ppc-cup", "plata"))

	if _, err := service.Register(context.Background(), RegisterInput{
		Name:          "Lucia",
		Email:         "lucia@example.com",
		Password:      "secret-pass",
		DivisionID:    "plata",
		TournamentIDs: []string{"ppc-cup"},
	}); err != nil {
		t.Fatalf("expected the 20th cup player to fit, got %v", err)
	}
}

func TestRegistrationService_Register_AdminSkipsCapacity(t *testing.T) {
	t.Parallel()

	service, _, _ := newRegistrationFixture(fillDivision(12, testTournamentID, "oro"))

	got, err := service.Register(context.Background(), RegisterInput{
		Name:          "Organiser",
		Email:         "admin@example.com",
		Password:      "secret-pass",
		Role:          player.RoleAdmin,
		DivisionID:    "oro",
		TournamentIDs: []string{testTournamentID},
	})
	if err != nil {
		t.Fatalf("Register admin error: %v", err)
	}
	if !got.IsAdmin() {
		t.Fatalf("expected admin role, got %s", got.Role)
	}
}

func TestRegistrationService_Register_InvalidInput(t *testing.T) {
	t.Parallel()

	base := RegisterInput{
		Name:          "Lucia",
		Email:         "lucia@example.com",
		Password:      "secret-pass",
		DivisionID:    "oro",
		TournamentIDs: []string{testTournamentID},
	}

	cases := []struct {
		name   string
		mutate func(*RegisterInput)
		want   error
	}{
		{name: "blank name", mutate: func(in *RegisterInput) { in.Name = " " }, want: ErrInvalidInput},
		{name: "bad email", mutate: func(in *RegisterInput) { in.Email = "not-an-email" }, want: ErrInvalidInput},
		{name: "short password", mutate: func(in *RegisterInput) { in.Password = "abc" }, want: ErrInvalidInput},
		{name: "no tournaments", mutate: func(in *RegisterInput) { in.TournamentIDs = nil }, want: ErrInvalidInput},
		{name: "unknown tournament", mutate: func(in *RegisterInput) { in.TournamentIDs = []string{"missing"} }, want: ErrNotFound},
		{name: "division not in tournament", mutate: func(in *RegisterInput) {
			in.DivisionID = "bronce"
			in.TournamentIDs = []string{"ppc-cup"}
		}, want: ErrInvalidInput},
		{name: "duplicate email", mutate: func(in *RegisterInput) { in.Email = "p-ana@example.com" }, want: ErrConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			service, _, _ := newRegistrationFixture([]player.Player{testPlayer("p-ana", "Ana", "oro", testTournamentID)})
			input := base
			tc.mutate(&input)

			_, err := service.Register(context.Background(), input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRegistrationService_Register_ConcurrentSignupsRespectCapacity(t *testing.T) {
	t.Parallel()

	players := memory.NewPlayerRepository(fillDivision(10, testTournamentID, "oro"))
	service := NewRegistrationService(
		&stubTournamentRepository{items: testTournaments()},
		players,
		memory.NewSessionRepository(),
		idgen.NewUUIDGenerator(),
		nil,
	)
	service.hashCost = bcrypt.MinCost

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		full     int
	)
	for i := range 20 {
		wg.Go(func() {
			_, err := service.Register(context.Background(), RegisterInput{
				Name:          fmt.Sprintf("Signup %d", i),
				Email:         fmt.Sprintf("signup-%d@example.com", i),
				Password:      "secret-pass",
				DivisionID:    "oro",
				TournamentIDs: []string{testTournamentID},
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, ErrDivisionFull):
				full++
			default:
				t.Errorf("unexpected register error: %v", err)
			}
		})
	}
	wg.Wait()

	if accepted != 2 || full != 18 {
		t.Fatalf("expected 2 accepted and 18 rejected, got accepted=%d full=%d", accepted, full)
	}
	roster, err := players.ListByDivision(context.Background(), testTournamentID, "oro")
	if err != nil {
		t.Fatalf("list division: %v", err)
	}
	if len(roster) != 12 {
		t.Fatalf("expected division capped at 12 players, got %d", len(roster))
	}
}

func TestRegistrationService_Register_StoreRejectsDuplicateEmail_UsingMockery(t *testing.T) {
	t.Parallel()

	tournamentRepo := tournamentmock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	sessionRepo := playermock.NewSessionRepository(t)
	service := NewRegistrationService(tournamentRepo, playerRepo, sessionRepo, idgen.NewUUIDGenerator(), nil)
	service.hashCost = bcrypt.MinCost

	winter := testTournaments()[0]
	tournamentRepo.
		On("GetByID", mock.Anything, winter.ID).
		Return(winter, true, nil).
		Once()
	playerRepo.
		On("CreateAdmitted", mock.Anything, mock.AnythingOfType("player.Player"), mock.AnythingOfType("player.Admission")).
		Return(fmt.Errorf("%w: lucia@example.com", player.ErrDuplicateEmail)).
		Once()

	_, err := service.Register(context.Background(), RegisterInput{
		Name:          "Lucia",
		Email:         "lucia@example.com",
		Password:      "secret-pass",
		DivisionID:    "oro",
		TournamentIDs: []string{winter.ID},
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestRegistrationService_CanRegister_UsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tournamentRepo := tournamentmock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	sessionRepo := playermock.NewSessionRepository(t)
	service := NewRegistrationService(tournamentRepo, playerRepo, sessionRepo, idgen.NewUUIDGenerator(), nil)

	winter := testTournaments()[0]
	tournamentRepo.
		On("GetByID", mock.Anything, winter.ID).
		Return(winter, true, nil).
		Twice()
	playerRepo.
		On("List", mock.Anything).
		Return(fillDivision(11, winter.ID, "plata"), nil).
		Once()
	playerRepo.
		On("List", mock.Anything).
		Return(fillDivision(12, winter.ID, "plata"), nil).
		Once()

	ok, err := service.CanRegister(ctx, winter.ID, "plata")
	if err != nil || !ok {
		t.Fatalf("expected room at 11 players, got ok=%v err=%v", ok, err)
	}
	ok, err = service.CanRegister(ctx, winter.ID, "plata")
	if err != nil || ok {
		t.Fatalf("expected division full at 12 players, got ok=%v err=%v", ok, err)
	}
}

func TestRegistrationService_Session_UsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tournamentRepo := tournamentmock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	sessionRepo := playermock.NewSessionRepository(t)
	service := NewRegistrationService(tournamentRepo, playerRepo, sessionRepo, idgen.NewUUIDGenerator(), nil)

	ana := testPlayer("p-ana", "Ana", "oro", testTournamentID)

	sessionRepo.
		On("GetCurrentPlayerID", mock.Anything).
		Return("", false, nil).
		Once()
	if _, exists, err := service.CurrentPlayer(ctx); err != nil || exists {
		t.Fatalf("expected no current player, got exists=%v err=%v", exists, err)
	}

	playerRepo.
		On("GetByID", mock.Anything, "p-ana").
		Return(ana, true, nil).
		Twice()
	sessionRepo.
		On("SetCurrentPlayerID", mock.Anything, "p-ana").
		Return(nil).
		Once()
	if _, err := service.SetCurrentPlayer(ctx, "p-ana"); err != nil {
		t.Fatalf("SetCurrentPlayer error: %v", err)
	}

	sessionRepo.
		On("GetCurrentPlayerID", mock.Anything).
		Return("p-ana", true, nil).
		Once()
	got, exists, err := service.CurrentPlayer(ctx)
	if err != nil || !exists || got.ID != "p-ana" {
		t.Fatalf("expected ana as current player, got %+v exists=%v err=%v", got, exists, err)
	}

	playerRepo.
		On("GetByID", mock.Anything, "p-ghost").
		Return(player.Player{}, false, nil).
		Once()
	if _, err := service.SetCurrentPlayer(ctx, "p-ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

var _ tournament.Repository = (*tournamentmock.Repository)(nil)
