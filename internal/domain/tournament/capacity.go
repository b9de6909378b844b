package tournament

import (
	"strings"

	"github.com/riskibarqy/league-standings/internal/domain/player"
)

const (
	CupDivisionCapacity     = 20
	DefaultDivisionCapacity = 12
)

// Capacity returns the division player cap for a tournament name.
// Cup-style competitions run larger brackets.
func Capacity(tournamentName string) int {
	if strings.Contains(tournamentName, "Cup") {
		return CupDivisionCapacity
	}
	return DefaultDivisionCapacity
}

// CanRegister reports whether one more player fits in the division.
// Admins never count against the cap.
func CanRegister(t Tournament, divisionID string, roster []player.Player) bool {
	return len(player.FilterActive(roster, t.ID, divisionID)) < t.Capacity()
}

// FirstFull returns the first selected tournament whose division is at
// capacity. The selection may hold more than one tournament.
func FirstFull(selected []Tournament, divisionID string, roster []player.Player) (Tournament, bool) {
	for _, t := range selected {
		if !CanRegister(t, divisionID, roster) {
			return t, true
		}
	}
	return Tournament{}, false
}
