package matchresult

import (
	"errors"
	"fmt"
	"time"
)

var ErrNoValidSets = errors.New("at least one set with two valid scores is required")

// Outcome is the result of a match decided on sets won.
type Outcome int

const (
	OutcomeDraw Outcome = iota
	OutcomePlayer1Win
	OutcomePlayer2Win
)

// SetScore holds the games each side took in one set. A nil side means the
// score was left blank.
type SetScore struct {
	Player1 *int
	Player2 *int
}

// Valid reports whether both sides carry a non-negative game count.
func (s SetScore) Valid() bool {
	return s.Player1 != nil && s.Player2 != nil && *s.Player1 >= 0 && *s.Player2 >= 0
}

// NewSet is a convenience constructor for a fully scored set.
func NewSet(player1, player2 int) SetScore {
	return SetScore{Player1: &player1, Player2: &player2}
}

// Totals are the derived per-side aggregates of a match.
type Totals struct {
	Player1Games   int
	Player2Games   int
	Player1SetsWon int
	Player2SetsWon int
}

// Result is an immutable record of a played match.
type Result struct {
	ID           string
	TournamentID string
	DivisionID   string
	Player1ID    string
	Player1Name  string
	Player2ID    string
	Player2Name  string
	Sets         []SetScore
	HadPint      bool
	PintCount    int
	CreatedAt    time.Time

	Player1Games   int
	Player2Games   int
	Player1SetsWon int
	Player2SetsWon int
}

// Derive sums games and counts sets won over the valid sets only.
// A set with equal game counts goes to neither side.
func Derive(sets []SetScore) Totals {
	var out Totals
	for _, s := range sets {
		if !s.Valid() {
			continue
		}
		p1, p2 := *s.Player1, *s.Player2
		out.Player1Games += p1
		out.Player2Games += p2
		switch {
		case p1 > p2:
			out.Player1SetsWon++
		case p2 > p1:
			out.Player2SetsWon++
		}
	}
	return out
}

func ValidSetCount(sets []SetScore) int {
	n := 0
	for _, s := range sets {
		if s.Valid() {
			n++
		}
	}
	return n
}

// ApplyTotals stores the derived aggregates on the result.
func (r *Result) ApplyTotals() {
	t := Derive(r.Sets)
	r.Player1Games = t.Player1Games
	r.Player2Games = t.Player2Games
	r.Player1SetsWon = t.Player1SetsWon
	r.Player2SetsWon = t.Player2SetsWon
}

func (r Result) Validate() error {
	if r.Player1ID == "" || r.Player2ID == "" {
		return fmt.Errorf("both player ids are required")
	}
	if r.Player1ID == r.Player2ID {
		return fmt.Errorf("a player cannot play against themselves")
	}
	if r.TournamentID == "" || r.DivisionID == "" {
		return fmt.Errorf("tournament and division are required")
	}
	if ValidSetCount(r.Sets) == 0 {
		return ErrNoValidSets
	}
	return nil
}

func (r Result) Outcome() Outcome {
	switch {
	case r.Player1SetsWon > r.Player2SetsWon:
		return OutcomePlayer1Win
	case r.Player2SetsWon > r.Player1SetsWon:
		return OutcomePlayer2Win
	default:
		return OutcomeDraw
	}
}

func (r Result) Involves(playerID string) bool {
	return playerID != "" && (r.Player1ID == playerID || r.Player2ID == playerID)
}

// SamePair reports whether the result was played between a and b, in any order.
func (r Result) SamePair(a, b string) bool {
	return (r.Player1ID == a && r.Player2ID == b) || (r.Player1ID == b && r.Player2ID == a)
}

// SideOf returns the player's own and opposing aggregates. ok is false when
// the player did not take part.
func (r Result) SideOf(playerID string) (own Side, opp Side, ok bool) {
	p1 := Side{Games: r.Player1Games, SetsWon: r.Player1SetsWon}
	p2 := Side{Games: r.Player2Games, SetsWon: r.Player2SetsWon}
	switch playerID {
	case "":
		return Side{}, Side{}, false
	case r.Player1ID:
		return p1, p2, true
	case r.Player2ID:
		return p2, p1, true
	default:
		return Side{}, Side{}, false
	}
}

// Side is one player's share of a match.
type Side struct {
	Games   int
	SetsWon int
}
