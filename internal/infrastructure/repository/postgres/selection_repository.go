package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/draftroom/keeper-league/internal/domain/selection"
	qb "github.com/draftroom/keeper-league/internal/platform/querybuilder"
)

type selectionTableModel struct {
	ID              string    `db:"id"`
	SlotID          string    `db:"slot_id"`
	SeasonYear      int       `db:"season_year"`
	PlayerID        string    `db:"player_id"`
	CalculatedRound int       `db:"calculated_round"`
	FinalRound      int       `db:"final_round"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

var selectionSelectColumns = []string{
	"id", "slot_id", "season_year", "player_id", "calculated_round", "final_round", "created_at", "updated_at",
}

func (m selectionTableModel) toDomain() selection.Selection {
	return selection.Selection{
		ID:              m.ID,
		SlotID:          m.SlotID,
		SeasonYear:      m.SeasonYear,
		PlayerID:        m.PlayerID,
		CalculatedRound: m.CalculatedRound,
		FinalRound:      m.FinalRound,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

type SelectionRepository struct {
	db *sqlx.DB
}

func NewSelectionRepository(db *sqlx.DB) *SelectionRepository {
	return &SelectionRepository{db: db}
}

func (r *SelectionRepository) ListBySlotAndSeason(ctx context.Context, slotID string, seasonYear int) ([]selection.Selection, error) {
	query, args, err := qb.Select(selectionSelectColumns...).From("keeper_selections").
		Where(
			qb.Eq("slot_id", slotID),
			qb.Eq("season_year", seasonYear),
		).
		OrderBy("final_round", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list selections query: %w", err)
	}

	var rows []selectionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}

	out := make([]selection.Selection, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *SelectionRepository) Get(ctx context.Context, slotID string, seasonYear int, playerID string) (selection.Selection, bool, error) {
	query, args, err := qb.Select(selectionSelectColumns...).From("keeper_selections").
		Where(
			qb.Eq("slot_id", slotID),
			qb.Eq("season_year", seasonYear),
			qb.Eq("player_id", playerID),
		).
		ToSQL()
	if err != nil {
		return selection.Selection{}, false, fmt.Errorf("build get selection query: %w", err)
	}

	var row selectionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return selection.Selection{}, false, nil
		}
		return selection.Selection{}, false, fmt.Errorf("get selection: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *SelectionRepository) Create(ctx context.Context, s selection.Selection) error {
	query, args, err := qb.InsertInto("keeper_selections").
		Columns("id", "slot_id", "season_year", "player_id", "calculated_round", "final_round").
		Values(s.ID, s.SlotID, s.SeasonYear, s.PlayerID, s.CalculatedRound, s.FinalRound).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert selection query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert selection: %w", err)
	}

	return nil
}

func (r *SelectionRepository) UpdateFinalRound(ctx context.Context, id string, finalRound int, updatedAt time.Time) error {
	query, args, err := qb.Update("keeper_selections").
		Set("final_round", finalRound).
		Set("updated_at", updatedAt).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update selection query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update selection round: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check updated rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("selection %s not found", id)
	}

	return nil
}

func (r *SelectionRepository) Delete(ctx context.Context, id string) (bool, error) {
	const query = `DELETE FROM keeper_selections WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete selection: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("check deleted rows: %w", err)
	}

	return affected > 0, nil
}

func (r *SelectionRepository) GetFinalized(ctx context.Context, slotID string, seasonYear int) (bool, error) {
	const query = `SELECT finalized FROM selection_states WHERE slot_id = $1 AND season_year = $2`

	var finalized bool
	if err := r.db.GetContext(ctx, &finalized, query, slotID, seasonYear); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("get finalized state: %w", err)
	}

	return finalized, nil
}

func (r *SelectionRepository) SetFinalized(ctx context.Context, slotID string, seasonYear int, finalized bool) error {
	query, args, err := qb.InsertInto("selection_states").
		Columns("slot_id", "season_year", "finalized").
		Values(slotID, seasonYear, finalized).
		Suffix(`ON CONFLICT (slot_id, season_year) DO UPDATE SET finalized = EXCLUDED.finalized, updated_at = now()`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set finalized query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set finalized state: %w", err)
	}

	return nil
}
