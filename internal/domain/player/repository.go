package player

import "context"

// Repository is the roster provider.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	ListByDivision(ctx context.Context, tournamentID, divisionID string) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	Create(ctx context.Context, p Player) error
	// CreateAdmitted stores p only if admit accepts the roster as it stands
	// at write time. No other write lands between the two.
	CreateAdmitted(ctx context.Context, p Player, admit Admission) error
}

// Admission vets a new player against the full stored roster.
type Admission func(roster []Player) error

// SessionRepository persists which player the current session acts as.
type SessionRepository interface {
	GetCurrentPlayerID(ctx context.Context) (string, bool, error)
	SetCurrentPlayerID(ctx context.Context, playerID string) error
}
