package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/draftroom/keeper-league/internal/domain/season"
	qb "github.com/draftroom/keeper-league/internal/platform/querybuilder"
)

type seasonTableModel struct {
	Year           int       `db:"year"`
	KeeperDeadline time.Time `db:"keeper_deadline"`
	IsActive       bool      `db:"is_active"`
}

var seasonSelectColumns = []string{"year", "keeper_deadline", "is_active"}

func (m seasonTableModel) toDomain() season.Season {
	return season.Season{
		Year:           m.Year,
		KeeperDeadline: m.KeeperDeadline,
		IsActive:       m.IsActive,
	}
}

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) GetActive(ctx context.Context) (season.Season, bool, error) {
	query, args, err := qb.Select(seasonSelectColumns...).From("seasons").
		Where(qb.Expr("is_active = true")).
		Limit(1).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get active season query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get active season: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *SeasonRepository) GetByYear(ctx context.Context, year int) (season.Season, bool, error) {
	query, args, err := qb.Select(seasonSelectColumns...).From("seasons").
		Where(qb.Eq("year", year)).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get season query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get season: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	query, args, err := qb.Select(seasonSelectColumns...).From("seasons").
		OrderBy("year").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

// Upsert writes a season and, when it is active, deactivates the rest inside
// the same transaction.
func (r *SeasonRepository) Upsert(ctx context.Context, s season.Season) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for season upsert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if s.IsActive {
		deactivate, deactivateArgs, err := qb.Update("seasons").
			Set("is_active", false).
			Where(qb.Expr("year <> ?", s.Year)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build deactivate seasons query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, deactivate, deactivateArgs...); err != nil {
			return fmt.Errorf("deactivate other seasons: %w", err)
		}
	}

	query, args, err := qb.InsertInto("seasons").
		Columns("year", "keeper_deadline", "is_active").
		Values(s.Year, s.KeeperDeadline, s.IsActive).
		Suffix(`ON CONFLICT (year) DO UPDATE SET keeper_deadline = EXCLUDED.keeper_deadline, is_active = EXCLUDED.is_active`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert season query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert season: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit season upsert: %w", err)
	}

	return nil
}
