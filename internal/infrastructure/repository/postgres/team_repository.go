package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/draftroom/keeper-league/internal/domain/team"
	qb "github.com/draftroom/keeper-league/internal/platform/querybuilder"
)

type slotTableModel struct {
	ID     string `db:"id"`
	Number int    `db:"number"`
}

type aliasTableModel struct {
	SlotID   string `db:"slot_id"`
	Name     string `db:"name"`
	FromYear int    `db:"from_year"`
	ToYear   *int   `db:"to_year"`
}

var aliasSelectColumns = []string{"slot_id", "name", "from_year", "to_year"}

func (m aliasTableModel) toDomain() team.NameAlias {
	return team.NameAlias{
		SlotID:   m.SlotID,
		Name:     m.Name,
		FromYear: m.FromYear,
		ToYear:   m.ToYear,
	}
}

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListSlots(ctx context.Context) ([]team.Slot, error) {
	query, args, err := qb.Select("id", "number").From("slots").
		OrderBy("number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list slots query: %w", err)
	}

	var rows []slotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	out := make([]team.Slot, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Slot{ID: row.ID, Number: row.Number})
	}

	return out, nil
}

func (r *TeamRepository) GetSlot(ctx context.Context, slotID string) (team.Slot, bool, error) {
	query, args, err := qb.Select("id", "number").From("slots").
		Where(qb.Eq("id", slotID)).
		ToSQL()
	if err != nil {
		return team.Slot{}, false, fmt.Errorf("build get slot query: %w", err)
	}

	var row slotTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Slot{}, false, nil
		}
		return team.Slot{}, false, fmt.Errorf("get slot: %w", err)
	}

	return team.Slot{ID: row.ID, Number: row.Number}, true, nil
}

func (r *TeamRepository) ListAliases(ctx context.Context, slotID string) ([]team.NameAlias, error) {
	query, args, err := qb.Select(aliasSelectColumns...).From("slot_aliases").
		Where(qb.Eq("slot_id", slotID)).
		OrderBy("from_year").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list aliases query: %w", err)
	}

	var rows []aliasTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list aliases: %w", err)
	}

	out := make([]team.NameAlias, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *TeamRepository) AliasesForYear(ctx context.Context, year int) ([]team.NameAlias, error) {
	query, args, err := qb.Select(aliasSelectColumns...).From("slot_aliases").
		Where(
			qb.Expr("from_year <= ?", year),
			qb.Expr("(to_year IS NULL OR to_year >= ?)", year),
		).
		OrderBy("slot_id", "from_year").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build aliases for year query: %w", err)
	}

	var rows []aliasTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list aliases for year: %w", err)
	}

	out := make([]team.NameAlias, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
