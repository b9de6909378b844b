package player

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrDuplicateEmail is returned when the store already holds the email.
var ErrDuplicateEmail = errors.New("email already registered")

// Role separates league administrators from competing players.
type Role string

const (
	RoleAdmin  Role = "admin"
	RolePlayer Role = "player"
)

var AllRoles = map[Role]struct{}{
	RoleAdmin:  {},
	RolePlayer: {},
}

// Player is a registered league member. Credential fields are owned by the
// account flow and never read by the standings engine.
type Player struct {
	ID                 string
	Name               string
	Email              string
	PasswordHash       string
	Role               Role
	DivisionID         string
	TournamentIDs      []string
	Availability       []string
	PreferredLocations []string
	CreatedAt          time.Time
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllRoles[p.Role]; !ok {
		return fmt.Errorf("invalid player role: %s", p.Role)
	}
	if p.Role == RolePlayer && p.DivisionID == "" {
		return fmt.Errorf("player %s has no division", p.ID)
	}

	return nil
}

func (p Player) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Player) JoinedTournament(tournamentID string) bool {
	return slices.Contains(p.TournamentIDs, tournamentID)
}

// PlaysIn reports whether p is an active competitor of the division.
func (p Player) PlaysIn(tournamentID, divisionID string) bool {
	return !p.IsAdmin() && p.DivisionID == divisionID && p.JoinedTournament(tournamentID)
}

// FilterActive returns the non-admin players of one division, preserving order.
func FilterActive(players []Player, tournamentID, divisionID string) []Player {
	out := make([]Player, 0, len(players))
	for _, p := range players {
		if p.PlaysIn(tournamentID, divisionID) {
			out = append(out, p)
		}
	}
	return out
}
