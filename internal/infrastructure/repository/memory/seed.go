package memory

import (
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/player"
	"github.com/riskibarqy/league-standings/internal/domain/tournament"
)

const (
	TournamentIDWinter = "ppc-winter-2025-2026"
	TournamentIDCup    = "ppc-cup-2026"

	DivisionIDOro    = "oro"
	DivisionIDPlata  = "plata"
	DivisionIDBronce = "bronce"
)

// SeedTournaments is the tournament catalogue. Every storage backend serves
// it from memory.
func SeedTournaments() []tournament.Tournament {
	return []tournament.Tournament{
		{
			ID:   TournamentIDWinter,
			Name: "PPC Winter 2025/2026",
			Divisions: []tournament.Division{
				{ID: DivisionIDOro, Name: "Oro"},
				{ID: DivisionIDPlata, Name: "Plata"},
				{ID: DivisionIDBronce, Name: "Bronce"},
			},
		},
		{
			ID:   TournamentIDCup,
			Name: "PPC Cup 2026",
			Divisions: []tournament.Division{
				{ID: DivisionIDOro, Name: "Oro"},
				{ID: DivisionIDPlata, Name: "Plata"},
			},
		},
	}
}

// SeedPlayers is a demo roster for local runs.
func SeedPlayers() []player.Player {
	joined := time.Date(2025, time.October, 1, 9, 0, 0, 0, time.UTC)
	both := []string{TournamentIDWinter, TournamentIDCup}
	winter := []string{TournamentIDWinter}

	return []player.Player{
		{ID: "seed-admin", Name: "League Admin", Email: "admin@ppc.example", Role: player.RoleAdmin, TournamentIDs: both, CreatedAt: joined},
		{ID: "seed-oro-1", Name: "Marta Vidal", Email: "marta@ppc.example", Role: player.RolePlayer, DivisionID: DivisionIDOro, TournamentIDs: both, Availability: []string{"weekday-evening"}, PreferredLocations: []string{"Club Norte"}, CreatedAt: joined},
		{ID: "seed-oro-2", Name: "Jordi Puig", Email: "jordi@ppc.example", Role: player.RolePlayer, DivisionID: DivisionIDOro, TournamentIDs: both, Availability: []string{"weekend-morning"}, PreferredLocations: []string{"Club Sur"}, CreatedAt: joined},
		{ID: "seed-oro-3", Name: "Elena Soler", Email: "elena@ppc.example", Role: player.RolePlayer, DivisionID: DivisionIDOro, TournamentIDs: winter, CreatedAt: joined},
		{ID: "seed-plata-1", Name: "Pau Ferrer", Email: "pau@ppc.example", Role: player.RolePlayer, DivisionID: DivisionIDPlata, TournamentIDs: winter, CreatedAt: joined},
		{ID: "seed-plata-2", Name: "Laia Roca", Email: "laia@ppc.example", Role: player.RolePlayer, DivisionID: DivisionIDPlata, TournamentIDs: winter, CreatedAt: joined},
		{ID: "seed-bronce-1", Name: "Oriol Mas", Email: "oriol@ppc.example", Role: player.RolePlayer, DivisionID: DivisionIDBronce, TournamentIDs: winter, CreatedAt: joined},
	}
}
