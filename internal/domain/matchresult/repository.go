package matchresult

import "context"

// Repository is the append-only store of played matches.
type Repository interface {
	ListByScope(ctx context.Context, tournamentID, divisionID string) ([]Result, error)
	Append(ctx context.Context, r Result) error
}
