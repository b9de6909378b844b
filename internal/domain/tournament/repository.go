package tournament

import "context"

// Repository exposes tournament reference data.
type Repository interface {
	List(ctx context.Context) ([]Tournament, error)
	GetByID(ctx context.Context, tournamentID string) (Tournament, bool, error)
}
