package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/draftroom/keeper-league/internal/domain/rule"
	qb "github.com/draftroom/keeper-league/internal/platform/querybuilder"
)

type ruleTableModel struct {
	Code            string `db:"code"`
	Name            string `db:"name"`
	Enabled         bool   `db:"enabled"`
	EffectiveSeason int    `db:"effective_season"`
}

var ruleSelectColumns = []string{"code", "name", "enabled", "effective_season"}

func (m ruleTableModel) toDomain() rule.Rule {
	return rule.Rule{
		Code:            m.Code,
		Name:            m.Name,
		Enabled:         m.Enabled,
		EffectiveSeason: m.EffectiveSeason,
	}
}

type RuleRepository struct {
	db *sqlx.DB
}

func NewRuleRepository(db *sqlx.DB) *RuleRepository {
	return &RuleRepository{db: db}
}

func (r *RuleRepository) GetByCode(ctx context.Context, code string) (rule.Rule, bool, error) {
	query, args, err := qb.Select(ruleSelectColumns...).From("rules").
		Where(qb.Eq("code", code)).
		ToSQL()
	if err != nil {
		return rule.Rule{}, false, fmt.Errorf("build get rule query: %w", err)
	}

	var row ruleTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return rule.Rule{}, false, nil
		}
		return rule.Rule{}, false, fmt.Errorf("get rule: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *RuleRepository) List(ctx context.Context) ([]rule.Rule, error) {
	query, args, err := qb.Select(ruleSelectColumns...).From("rules").
		OrderBy("code").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rules query: %w", err)
	}

	var rows []ruleTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}

	out := make([]rule.Rule, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *RuleRepository) Upsert(ctx context.Context, ru rule.Rule) error {
	query, args, err := qb.InsertInto("rules").
		Columns("code", "name", "enabled", "effective_season").
		Values(ru.Code, ru.Name, ru.Enabled, ru.EffectiveSeason).
		Suffix(`ON CONFLICT (code) DO UPDATE SET
    name = EXCLUDED.name,
    enabled = EXCLUDED.enabled,
    effective_season = EXCLUDED.effective_season,
    updated_at = now()`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert rule query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert rule: %w", err)
	}

	return nil
}
