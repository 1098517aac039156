package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/draftroom/keeper-league/internal/domain/acquisition"
	"github.com/draftroom/keeper-league/internal/domain/keeper"
	qb "github.com/draftroom/keeper-league/internal/platform/querybuilder"
)

type AcquisitionRepository struct {
	db *sqlx.DB
}

func NewAcquisitionRepository(db *sqlx.DB) *AcquisitionRepository {
	return &AcquisitionRepository{db: db}
}

func (r *AcquisitionRepository) GetActive(ctx context.Context, playerID, slotID string) (acquisition.Acquisition, bool, error) {
	query, args, err := qb.Select(acquisitionSelectColumns...).From("acquisitions").
		Where(
			qb.Eq("player_id", playerID),
			qb.Eq("slot_id", slotID),
			qb.IsNull("dropped_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return acquisition.Acquisition{}, false, fmt.Errorf("build get active acquisition query: %w", err)
	}

	var row acquisitionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return acquisition.Acquisition{}, false, nil
		}
		return acquisition.Acquisition{}, false, fmt.Errorf("get active acquisition: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *AcquisitionRepository) ListByPlayerAndSlot(ctx context.Context, playerID, slotID string) ([]acquisition.Acquisition, error) {
	query, args, err := qb.Select(acquisitionSelectColumns...).From("acquisitions").
		Where(
			qb.Eq("player_id", playerID),
			qb.Eq("slot_id", slotID),
		).
		OrderBy("season_year", "acquired_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list acquisitions by slot query: %w", err)
	}

	var rows []acquisitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list acquisitions by slot: %w", err)
	}

	return acquisitionsToDomain(rows), nil
}

func (r *AcquisitionRepository) ListByPlayerAndSeason(ctx context.Context, playerID string, seasonYear int) ([]acquisition.Acquisition, error) {
	query, args, err := qb.Select(acquisitionSelectColumns...).From("acquisitions").
		Where(
			qb.Eq("player_id", playerID),
			qb.Eq("season_year", seasonYear),
		).
		OrderBy("acquired_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list acquisitions by season query: %w", err)
	}

	var rows []acquisitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list acquisitions by season: %w", err)
	}

	return acquisitionsToDomain(rows), nil
}

func (r *AcquisitionRepository) GetEarliestDraft(ctx context.Context, playerID string) (acquisition.Acquisition, bool, error) {
	query, args, err := qb.Select(acquisitionSelectColumns...).From("acquisitions").
		Where(
			qb.Eq("player_id", playerID),
			qb.EqLiteral("type", "DRAFT"),
		).
		OrderBy("season_year", "acquired_at").
		Limit(1).
		ToSQL()
	if err != nil {
		return acquisition.Acquisition{}, false, fmt.Errorf("build earliest draft query: %w", err)
	}

	var row acquisitionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return acquisition.Acquisition{}, false, nil
		}
		return acquisition.Acquisition{}, false, fmt.Errorf("get earliest draft: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *AcquisitionRepository) ListActiveBySlot(ctx context.Context, slotID string) ([]acquisition.Acquisition, error) {
	query, args, err := qb.Select(acquisitionSelectColumns...).From("acquisitions").
		Where(
			qb.Eq("slot_id", slotID),
			qb.IsNull("dropped_at"),
		).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list active by slot query: %w", err)
	}

	var rows []acquisitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list active acquisitions: %w", err)
	}

	return acquisitionsToDomain(rows), nil
}

func (r *AcquisitionRepository) ListByPlayers(ctx context.Context, playerIDs []string) ([]acquisition.Acquisition, error) {
	if len(playerIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select(acquisitionSelectColumns...).From("acquisitions").
		Where(qb.In("player_id", stringSliceToAny(playerIDs))).
		OrderBy("player_id", "season_year", "acquired_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list acquisitions by players query: %w", err)
	}

	var rows []acquisitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list acquisitions by players: %w", err)
	}

	return acquisitionsToDomain(rows), nil
}

func (r *AcquisitionRepository) Create(ctx context.Context, a acquisition.Acquisition) error {
	query, args, err := qb.InsertInto("acquisitions").
		Columns(acquisitionInsertColumns...).
		Values(acquisitionInsertValues(a)...).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert acquisition query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert acquisition: %w", err)
	}

	return nil
}

// CreateBatch writes the whole batch as one multi-row insert, so a rejected
// row aborts all of it.
func (r *AcquisitionRepository) CreateBatch(ctx context.Context, batch []acquisition.Acquisition) error {
	if len(batch) == 0 {
		return nil
	}

	builder := qb.InsertInto("acquisitions").Columns(acquisitionInsertColumns...)
	for _, a := range batch {
		builder = builder.Values(acquisitionInsertValues(a)...)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build acquisition batch query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert acquisition batch: %w", err)
	}

	return nil
}

func (r *AcquisitionRepository) SetDropped(ctx context.Context, id string, droppedAt time.Time) error {
	query, args, err := qb.Update("acquisitions").
		Set("dropped_at", droppedAt).
		Where(qb.Eq("id", id), qb.IsNull("dropped_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set dropped query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set acquisition dropped: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check dropped rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("acquisition %s is not active", id)
	}

	return nil
}

// ExecuteTrade closes the sending slots' records and opens TRADE records on
// the receiving slots in one transaction.
func (r *AcquisitionRepository) ExecuteTrade(ctx context.Context, moves []acquisition.TradeMove) error {
	if len(moves) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for trade: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, m := range moves {
		closeQuery, closeArgs, err := qb.Update("acquisitions").
			Set("dropped_at", m.TradedAt).
			Where(
				qb.Eq("player_id", m.PlayerID),
				qb.Eq("slot_id", m.FromSlotID),
				qb.IsNull("dropped_at"),
			).
			Suffix("RETURNING id, draft_round").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build close acquisition query: %w", err)
		}

		var closed struct {
			ID         string `db:"id"`
			DraftRound *int   `db:"draft_round"`
		}
		if err := tx.GetContext(ctx, &closed, closeQuery, closeArgs...); err != nil {
			if isNotFound(err) {
				return fmt.Errorf("player %s has no active acquisition on slot %s", m.PlayerID, m.FromSlotID)
			}
			return fmt.Errorf("close acquisition for player %s: %w", m.PlayerID, err)
		}

		tradeID := fmt.Sprintf("%s-trade-%d-%d", m.PlayerID, m.SeasonYear, i)
		openQuery, openArgs, err := qb.InsertInto("acquisitions").
			Columns("id", "player_id", "slot_id", "season_year", "type", "draft_round", "acquired_at", "traded_from_slot_id").
			Values(tradeID, m.PlayerID, m.ToSlotID, m.SeasonYear, string(keeper.TypeTrade), closed.DraftRound, m.TradedAt, m.FromSlotID).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build open trade query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, openQuery, openArgs...); err != nil {
			return fmt.Errorf("open trade acquisition for player %s: %w", m.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit trade: %w", err)
	}

	return nil
}
