package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/draftroom/keeper-league/internal/domain/override"
	qb "github.com/draftroom/keeper-league/internal/platform/querybuilder"
)

type overrideTableModel struct {
	PlayerID   string    `db:"player_id"`
	SlotID     string    `db:"slot_id"`
	SeasonYear int       `db:"season_year"`
	Round      int       `db:"round"`
	Note       string    `db:"note"`
	CreatedAt  time.Time `db:"created_at"`
}

var overrideSelectColumns = []string{"player_id", "slot_id", "season_year", "round", "note", "created_at"}

func (m overrideTableModel) toDomain() override.Override {
	return override.Override{
		PlayerID:   m.PlayerID,
		SlotID:     m.SlotID,
		SeasonYear: m.SeasonYear,
		Round:      m.Round,
		Note:       m.Note,
		CreatedAt:  m.CreatedAt,
	}
}

type OverrideRepository struct {
	db *sqlx.DB
}

func NewOverrideRepository(db *sqlx.DB) *OverrideRepository {
	return &OverrideRepository{db: db}
}

func (r *OverrideRepository) Get(ctx context.Context, playerID, slotID string, seasonYear int) (override.Override, bool, error) {
	query, args, err := qb.Select(overrideSelectColumns...).From("cost_overrides").
		Where(
			qb.Eq("player_id", playerID),
			qb.Eq("slot_id", slotID),
			qb.Eq("season_year", seasonYear),
		).
		ToSQL()
	if err != nil {
		return override.Override{}, false, fmt.Errorf("build get override query: %w", err)
	}

	var row overrideTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return override.Override{}, false, nil
		}
		return override.Override{}, false, fmt.Errorf("get override: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *OverrideRepository) ListBySeason(ctx context.Context, seasonYear int) ([]override.Override, error) {
	query, args, err := qb.Select(overrideSelectColumns...).From("cost_overrides").
		Where(qb.Eq("season_year", seasonYear)).
		OrderBy("slot_id", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list overrides query: %w", err)
	}

	var rows []overrideTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}

	out := make([]override.Override, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *OverrideRepository) Create(ctx context.Context, o override.Override) error {
	query, args, err := qb.InsertInto("cost_overrides").
		Columns("player_id", "slot_id", "season_year", "round", "note").
		Values(o.PlayerID, o.SlotID, o.SeasonYear, o.Round, o.Note).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert override query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert override: %w", err)
	}

	return nil
}

func (r *OverrideRepository) Delete(ctx context.Context, playerID, slotID string, seasonYear int) (bool, error) {
	const query = `DELETE FROM cost_overrides WHERE player_id = $1 AND slot_id = $2 AND season_year = $3`

	result, err := r.db.ExecContext(ctx, query, playerID, slotID, seasonYear)
	if err != nil {
		return false, fmt.Errorf("delete override: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("check deleted rows: %w", err)
	}

	return affected > 0, nil
}
