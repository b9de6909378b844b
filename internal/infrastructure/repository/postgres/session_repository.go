package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	qb "github.com/riskibarqy/league-standings/internal/platform/querybuilder"
)

// sessionRowID is the single row of session_state.
const sessionRowID = 1

type SessionRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db, now: time.Now}
}

func (r *SessionRepository) GetCurrentPlayerID(ctx context.Context) (string, bool, error) {
	query, args, err := qb.Select("current_player_id").From("session_state").
		Where(qb.Eq("id", sessionRowID)).
		ToSQL()
	if err != nil {
		return "", false, fmt.Errorf("build get session query: %w", err)
	}

	var playerID string
	if err := r.db.GetContext(ctx, &playerID, query, args...); err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get session: %w", err)
	}
	return playerID, playerID != "", nil
}

func (r *SessionRepository) SetCurrentPlayerID(ctx context.Context, playerID string) error {
	insertModel := sessionStateInsertModel{
		ID:              sessionRowID,
		CurrentPlayerID: playerID,
		UpdatedAt:       r.now().UTC(),
	}
	query, args, err := qb.Insert("session_state", insertModel).
		OnConflict("(id) DO UPDATE SET current_player_id = EXCLUDED.current_player_id, updated_at = EXCLUDED.updated_at").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert session query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}
