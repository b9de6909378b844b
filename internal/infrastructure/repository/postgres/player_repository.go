package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/league-standings/internal/domain/player"
	qb "github.com/riskibarqy/league-standings/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	return playersFromRows(rows), nil
}

func (r *PlayerRepository) ListByDivision(ctx context.Context, tournamentID, divisionID string) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(
			qb.Eq("division_id", divisionID),
			qb.Eq("role", string(player.RolePlayer)),
			qb.Expr("? = ANY(tournament_ids)", tournamentID),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select division players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select division players: %w", err)
	}

	return playersFromRows(rows), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("public_id", playerID)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}

	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("validate player: %w", err)
	}
	return insertPlayer(ctx, r.db, p)
}

// CreateAdmitted locks the players table against other writers for the
// length of the transaction, so two registrations cannot both pass a
// capacity check on the same roster.
func (r *PlayerRepository) CreateAdmitted(ctx context.Context, p player.Player, admit player.Admission) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("validate player: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create player: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "LOCK TABLE players IN SHARE ROW EXCLUSIVE MODE"); err != nil {
		return fmt.Errorf("lock players: %w", err)
	}

	if admit != nil {
		query, args, err := qb.Select("*").From("players").OrderBy("id").ToSQL()
		if err != nil {
			return fmt.Errorf("build select players query: %w", err)
		}
		var rows []playerTableModel
		if err := tx.SelectContext(ctx, &rows, query, args...); err != nil {
			return fmt.Errorf("select players: %w", err)
		}
		if err := admit(playersFromRows(rows)); err != nil {
			return err
		}
	}

	if err := insertPlayer(ctx, tx, p); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create player tx: %w", err)
	}
	return nil
}

func insertPlayer(ctx context.Context, db sqlx.ExecerContext, p player.Player) error {
	insertModel := playerInsertModel{
		PublicID:           p.ID,
		Name:               p.Name,
		Email:              p.Email,
		PasswordHash:       p.PasswordHash,
		Role:               string(p.Role),
		DivisionID:         nullString(p.DivisionID),
		TournamentIDs:      pq.StringArray(nonNil(p.TournamentIDs)),
		Availability:       pq.StringArray(nonNil(p.Availability)),
		PreferredLocations: pq.StringArray(nonNil(p.PreferredLocations)),
		CreatedAt:          p.CreatedAt,
	}
	query, args, err := qb.Insert("players", insertModel).ToSQL()
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, constraintPlayerEmail) {
			return fmt.Errorf("%w: %s", player.ErrDuplicateEmail, p.Email)
		}
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func playersFromRows(rows []playerTableModel) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:                 row.PublicID,
		Name:               row.Name,
		Email:              row.Email,
		PasswordHash:       row.PasswordHash,
		Role:               player.Role(row.Role),
		DivisionID:         row.DivisionID.String,
		TournamentIDs:      []string(row.TournamentIDs),
		Availability:       []string(row.Availability),
		PreferredLocations: []string(row.PreferredLocations),
		CreatedAt:          row.CreatedAt,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
