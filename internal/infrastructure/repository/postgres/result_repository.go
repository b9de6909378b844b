package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-standings/internal/domain/matchresult"
	qb "github.com/riskibarqy/league-standings/internal/platform/querybuilder"
)

type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) ListByScope(ctx context.Context, tournamentID, divisionID string) ([]matchresult.Result, error) {
	query, args, err := qb.Select("*").From("match_results").
		Where(
			qb.Eq("tournament_id", tournamentID),
			qb.Eq("division_id", divisionID),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select match results query: %w", err)
	}

	var rows []matchResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select match results: %w", err)
	}

	out := make([]matchresult.Result, 0, len(rows))
	for _, row := range rows {
		item, err := resultFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *ResultRepository) Append(ctx context.Context, result matchresult.Result) error {
	if err := result.Validate(); err != nil {
		return fmt.Errorf("validate result: %w", err)
	}
	result.ApplyTotals()

	sets := make([]setScoreColumn, 0, len(result.Sets))
	for _, s := range result.Sets {
		sets = append(sets, setScoreColumn{Player1: s.Player1, Player2: s.Player2})
	}
	encoded, err := sonic.Marshal(sets)
	if err != nil {
		return fmt.Errorf("encode sets for result %s: %w", result.ID, err)
	}

	insertModel := matchResultInsertModel{
		PublicID:       result.ID,
		TournamentID:   result.TournamentID,
		DivisionID:     result.DivisionID,
		Player1ID:      result.Player1ID,
		Player1Name:    result.Player1Name,
		Player2ID:      result.Player2ID,
		Player2Name:    result.Player2Name,
		Sets:           string(encoded),
		HadPint:        result.HadPint,
		PintCount:      result.PintCount,
		Player1Games:   result.Player1Games,
		Player2Games:   result.Player2Games,
		Player1SetsWon: result.Player1SetsWon,
		Player2SetsWon: result.Player2SetsWon,
		CreatedAt:      result.CreatedAt,
	}
	query, args, err := qb.Insert("match_results", insertModel).ToSQL()
	if err != nil {
		return fmt.Errorf("build insert match result query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match result: %w", err)
	}
	return nil
}

func resultFromRow(row matchResultTableModel) (matchresult.Result, error) {
	var sets []setScoreColumn
	if len(row.Sets) > 0 {
		if err := sonic.Unmarshal(row.Sets, &sets); err != nil {
			return matchresult.Result{}, fmt.Errorf("decode sets for result %s: %w", row.PublicID, err)
		}
	}

	out := matchresult.Result{
		ID:             row.PublicID,
		TournamentID:   row.TournamentID,
		DivisionID:     row.DivisionID,
		Player1ID:      row.Player1ID,
		Player1Name:    row.Player1Name,
		Player2ID:      row.Player2ID,
		Player2Name:    row.Player2Name,
		Sets:           make([]matchresult.SetScore, 0, len(sets)),
		HadPint:        row.HadPint,
		PintCount:      row.PintCount,
		CreatedAt:      row.CreatedAt,
		Player1Games:   row.Player1Games,
		Player2Games:   row.Player2Games,
		Player1SetsWon: row.Player1SetsWon,
		Player2SetsWon: row.Player2SetsWon,
	}
	for _, s := range sets {
		out.Sets = append(out.Sets, matchresult.SetScore{Player1: s.Player1, Player2: s.Player2})
	}
	return out, nil
}
