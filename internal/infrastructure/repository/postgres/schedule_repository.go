package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-standings/internal/domain/schedule"
	qb "github.com/riskibarqy/league-standings/internal/platform/querybuilder"
)

type ScheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) ListByScope(ctx context.Context, tournamentID, divisionID string) ([]schedule.Match, error) {
	query, args, err := qb.Select("*").From("scheduled_matches").
		Where(
			qb.Eq("tournament_id", tournamentID),
			qb.Eq("division_id", divisionID),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select scheduled matches query: %w", err)
	}

	var rows []scheduledMatchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select scheduled matches: %w", err)
	}

	out := make([]schedule.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, scheduledMatchFromRow(row))
	}
	return out, nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, matchID string) (schedule.Match, bool, error) {
	query, args, err := qb.Select("*").From("scheduled_matches").
		Where(qb.Eq("public_id", matchID)).
		ToSQL()
	if err != nil {
		return schedule.Match{}, false, fmt.Errorf("build get scheduled match query: %w", err)
	}

	var row scheduledMatchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return schedule.Match{}, false, nil
		}
		return schedule.Match{}, false, fmt.Errorf("get scheduled match: %w", err)
	}
	return scheduledMatchFromRow(row), true, nil
}

func (r *ScheduleRepository) Append(ctx context.Context, m schedule.Match) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("validate scheduled match: %w", err)
	}

	insertModel := scheduledMatchInsertModel{
		PublicID:     m.ID,
		TournamentID: m.TournamentID,
		DivisionID:   m.DivisionID,
		Player1ID:    m.Player1ID,
		Player1Name:  m.Player1Name,
		Player2ID:    nullString(m.Player2ID),
		Player2Name:  m.Player2Name,
		Location:     m.Location,
		MatchDate:    m.Date,
		TimeSlot:     m.TimeSlot,
		Status:       string(m.Status),
		CreatedAt:    m.CreatedAt,
	}
	query, args, err := qb.Insert("scheduled_matches", insertModel).ToSQL()
	if err != nil {
		return fmt.Errorf("build insert scheduled match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, constraintActivePair) {
			return fmt.Errorf("%w: %s and %s", schedule.ErrActivePair, m.Player1ID, m.Player2ID)
		}
		return fmt.Errorf("insert scheduled match: %w", err)
	}
	return nil
}

// ConfirmPending is a single conditional UPDATE: of two concurrent joins only
// one matches status = pending. The active pair index rejects a join that
// would book the same pair twice.
func (r *ScheduleRepository) ConfirmPending(ctx context.Context, matchID, playerID, playerName string) (schedule.Match, error) {
	query, args, err := qb.Update("scheduled_matches").
		Set("player2_id", playerID).
		Set("player2_name", playerName).
		Set("status", string(schedule.StatusConfirmed)).
		SetRaw("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", matchID),
			qb.Eq("status", string(schedule.StatusPending)),
		).
		Returning("*").
		ToSQL()
	if err != nil {
		return schedule.Match{}, fmt.Errorf("build confirm pending match query: %w", err)
	}

	var row scheduledMatchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isUniqueViolation(err, constraintActivePair) {
			return schedule.Match{}, fmt.Errorf("%w: match=%s player=%s", schedule.ErrActivePair, matchID, playerID)
		}
		if !isNotFound(err) {
			return schedule.Match{}, fmt.Errorf("confirm pending match: %w", err)
		}
		current, exists, getErr := r.GetByID(ctx, matchID)
		if getErr != nil {
			return schedule.Match{}, getErr
		}
		if !exists {
			return schedule.Match{}, fmt.Errorf("%w: match=%s", schedule.ErrMatchNotFound, matchID)
		}
		return schedule.Match{}, fmt.Errorf("%w: match=%s status=%s", schedule.ErrMatchNotPending, matchID, current.Status)
	}

	return scheduledMatchFromRow(row), nil
}

func (r *ScheduleRepository) RemoveByPair(ctx context.Context, tournamentID, divisionID, playerA, playerB string) (int, error) {
	query, args, err := qb.DeleteFrom("scheduled_matches").
		Where(
			qb.Eq("tournament_id", tournamentID),
			qb.Eq("division_id", divisionID),
			qb.AnyOf(
				qb.All(qb.Eq("player1_id", playerA), qb.Eq("player2_id", playerB)),
				qb.All(qb.Eq("player1_id", playerB), qb.Eq("player2_id", playerA)),
			),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete scheduled matches query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete scheduled matches: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deleted scheduled matches count: %w", err)
	}
	return int(affected), nil
}

func scheduledMatchFromRow(row scheduledMatchTableModel) schedule.Match {
	return schedule.Match{
		ID:           row.PublicID,
		TournamentID: row.TournamentID,
		DivisionID:   row.DivisionID,
		Player1ID:    row.Player1ID,
		Player1Name:  row.Player1Name,
		Player2ID:    row.Player2ID.String,
		Player2Name:  row.Player2Name,
		Location:     row.Location,
		Date:         row.MatchDate,
		TimeSlot:     row.TimeSlot,
		Status:       schedule.NormalizeStatus(row.Status),
		CreatedAt:    row.CreatedAt,
	}
}
