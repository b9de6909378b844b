package schedule

import "context"

// Repository stores scheduled matches.
type Repository interface {
	ListByScope(ctx context.Context, tournamentID, divisionID string) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	Append(ctx context.Context, m Match) error
	// ConfirmPending fills player2 only while the match is still pending.
	// It returns ErrMatchNotPending when another writer got there first.
	ConfirmPending(ctx context.Context, matchID, playerID, playerName string) (Match, error)
	RemoveByPair(ctx context.Context, tournamentID, divisionID, playerA, playerB string) (int, error)
}
