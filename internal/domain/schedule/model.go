package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a scheduled match.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
)

// PendingPlaceholder is shown as the second player of an open match.
const PendingPlaceholder = "Pending"

var (
	ErrMatchNotFound   = errors.New("scheduled match not found")
	ErrMatchNotPending = errors.New("scheduled match is not pending")
	// ErrActivePair is returned by writes that would leave two pending or
	// confirmed bookings of one pair in a division.
	ErrActivePair = errors.New("pair already has an active scheduled match")
)

// Match is a future match proposal. An empty Player2ID marks an open slot.
type Match struct {
	ID           string
	TournamentID string
	DivisionID   string
	Player1ID    string
	Player1Name  string
	Player2ID    string
	Player2Name  string
	Location     string
	Date         string
	TimeSlot     string
	Status       Status
	CreatedAt    time.Time
}

func NormalizeStatus(value string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(value))) {
	case StatusConfirmed:
		return StatusConfirmed
	default:
		return StatusPending
	}
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("scheduled match id is required")
	}
	if m.Player1ID == "" {
		return fmt.Errorf("player1 is required")
	}
	if m.TournamentID == "" || m.DivisionID == "" {
		return fmt.Errorf("tournament and division are required")
	}
	if m.Location == "" || m.Date == "" || m.TimeSlot == "" {
		return fmt.Errorf("location, date and time are required")
	}
	if m.Status == StatusConfirmed && m.IsOpen() {
		return fmt.Errorf("confirmed match %s has no second player", m.ID)
	}
	return nil
}

func (m Match) IsOpen() bool {
	return m.Player2ID == ""
}

// IsActive reports whether the match still blocks a new booking of the pair.
func (m Match) IsActive() bool {
	return m.Status == StatusPending || m.Status == StatusConfirmed
}

func (m Match) Involves(playerID string) bool {
	return playerID != "" && (m.Player1ID == playerID || m.Player2ID == playerID)
}

// SamePair reports whether the match is between a and b, in any order.
func (m Match) SamePair(a, b string) bool {
	return (m.Player1ID == a && m.Player2ID == b) || (m.Player1ID == b && m.Player2ID == a)
}

// Join fills the open slot and confirms the match.
func (m *Match) Join(playerID, playerName string) error {
	if m.Status != StatusPending {
		return fmt.Errorf("%w: match=%s status=%s", ErrMatchNotPending, m.ID, m.Status)
	}
	m.Player2ID = playerID
	m.Player2Name = playerName
	m.Status = StatusConfirmed
	return nil
}

// CheckPair returns ErrActivePair when matches already hold another active
// booking of m's pair in m's division. Open matches never clash.
func CheckPair(matches []Match, m Match) error {
	if m.IsOpen() {
		return nil
	}
	for _, other := range matches {
		if other.ID == m.ID || !other.IsActive() || !other.sameScope(m) {
			continue
		}
		if other.SamePair(m.Player1ID, m.Player2ID) {
			return fmt.Errorf("%w: %s and %s already booked as %s", ErrActivePair, m.Player1ID, m.Player2ID, other.ID)
		}
	}
	return nil
}

func (m Match) sameScope(other Match) bool {
	return m.TournamentID == other.TournamentID && m.DivisionID == other.DivisionID
}

// WithoutPair drops every match between a and b in one division, whatever
// its status.
func WithoutPair(matches []Match, tournamentID, divisionID, a, b string) ([]Match, int) {
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.TournamentID == tournamentID && m.DivisionID == divisionID && m.SamePair(a, b) {
			continue
		}
		out = append(out, m)
	}
	return out, len(matches) - len(out)
}
