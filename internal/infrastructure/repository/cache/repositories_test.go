package cache

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/player"
	"github.com/riskibarqy/league-standings/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/league-standings/internal/platform/cache"
)

type countingPlayerRepository struct {
	player.Repository
	listByDivision atomic.Int32
}

func (r *countingPlayerRepository) ListByDivision(ctx context.Context, tournamentID, divisionID string) ([]player.Player, error) {
	r.listByDivision.Add(1)
	return r.Repository.ListByDivision(ctx, tournamentID, divisionID)
}

func TestPlayerRepository_CreateInvalidatesRoster(t *testing.T) {
	ctx := context.Background()
	next := &countingPlayerRepository{Repository: memory.NewPlayerRepository(memory.SeedPlayers())}
	repo := NewPlayerRepository(next, basecache.NewStore(time.Minute))

	first, err := repo.ListByDivision(ctx, memory.TournamentIDWinter, memory.DivisionIDOro)
	if err != nil {
		t.Fatalf("list division: %v", err)
	}
	if _, err := repo.ListByDivision(ctx, memory.TournamentIDWinter, memory.DivisionIDOro); err != nil {
		t.Fatalf("list division again: %v", err)
	}
	if got := next.listByDivision.Load(); got != 1 {
		t.Fatalf("expected one backend read, got %d", got)
	}

	err = repo.Create(ctx, player.Player{
		ID:            "new-oro",
		Name:          "Nuria Camps",
		Email:         "nuria@ppc.example",
		Role:          player.RolePlayer,
		DivisionID:    memory.DivisionIDOro,
		TournamentIDs: []string{memory.TournamentIDWinter},
		CreatedAt:     time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	after, err := repo.ListByDivision(ctx, memory.TournamentIDWinter, memory.DivisionIDOro)
	if err != nil {
		t.Fatalf("list division after create: %v", err)
	}
	if len(after) != len(first)+1 {
		t.Fatalf("expected %d players after create, got %d", len(first)+1, len(after))
	}
	if got := next.listByDivision.Load(); got != 2 {
		t.Fatalf("expected a fresh backend read after create, got %d reads", got)
	}

	p, ok, err := repo.GetByID(ctx, "new-oro")
	if err != nil || !ok || p.Name != "Nuria Camps" {
		t.Fatalf("expected created player by id, got %+v ok=%v err=%v", p, ok, err)
	}
}

func TestPlayerRepository_CreateAdmittedInvalidatesRoster(t *testing.T) {
	ctx := context.Background()
	next := &countingPlayerRepository{Repository: memory.NewPlayerRepository(memory.SeedPlayers())}
	repo := NewPlayerRepository(next, basecache.NewStore(time.Minute))

	before, err := repo.ListByDivision(ctx, memory.TournamentIDWinter, memory.DivisionIDPlata)
	if err != nil {
		t.Fatalf("list division: %v", err)
	}

	var rosterSize int
	err = repo.CreateAdmitted(ctx, player.Player{
		ID:            "new-plata",
		Name:          "Pau Ribas",
		Email:         "pau@ppc.example",
		Role:          player.RolePlayer,
		DivisionID:    memory.DivisionIDPlata,
		TournamentIDs: []string{memory.TournamentIDWinter},
	}, func(roster []player.Player) error {
		rosterSize = len(roster)
		return nil
	})
	if err != nil {
		t.Fatalf("create admitted: %v", err)
	}
	if rosterSize != len(memory.SeedPlayers()) {
		t.Fatalf("admission should see the full stored roster, saw %d", rosterSize)
	}

	after, err := repo.ListByDivision(ctx, memory.TournamentIDWinter, memory.DivisionIDPlata)
	if err != nil {
		t.Fatalf("list division after create: %v", err)
	}
	if len(after) != len(before)+1 || next.listByDivision.Load() != 2 {
		t.Fatalf("expected a fresh read with %d players, got %d after %d reads", len(before)+1, len(after), next.listByDivision.Load())
	}
}

func TestTournamentRepository_CachesMissingLookups(t *testing.T) {
	ctx := context.Background()
	repo := NewTournamentRepository(memory.NewTournamentRepository(memory.SeedTournaments()), basecache.NewStore(time.Minute))

	if _, ok, err := repo.GetByID(ctx, "unknown"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list tournaments: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 tournaments, got %d", len(items))
	}

	items[0].Name = "mutated"
	again, _ := repo.List(ctx)
	if again[0].Name == "mutated" {
		t.Fatalf("cached list must not be shared with callers")
	}
}
