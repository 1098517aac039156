package postgres

import (
	"time"

	"github.com/draftroom/keeper-league/internal/domain/acquisition"
	"github.com/draftroom/keeper-league/internal/domain/keeper"
)

type acquisitionTableModel struct {
	ID               string     `db:"id"`
	PlayerID         string     `db:"player_id"`
	SlotID           string     `db:"slot_id"`
	SeasonYear       int        `db:"season_year"`
	Type             string     `db:"type"`
	DraftRound       *int       `db:"draft_round"`
	PickNumber       *int       `db:"pick_number"`
	AcquiredAt       time.Time  `db:"acquired_at"`
	DroppedAt        *time.Time `db:"dropped_at"`
	TradedFromSlotID *string    `db:"traded_from_slot_id"`
	CreatedAt        time.Time  `db:"created_at"`
}

var acquisitionSelectColumns = []string{
	"id", "player_id", "slot_id", "season_year", "type", "draft_round",
	"pick_number", "acquired_at", "dropped_at", "traded_from_slot_id", "created_at",
}

func (m acquisitionTableModel) toDomain() acquisition.Acquisition {
	return acquisition.Acquisition{
		ID:               m.ID,
		PlayerID:         m.PlayerID,
		SlotID:           m.SlotID,
		SeasonYear:       m.SeasonYear,
		Type:             keeper.AcquisitionType(m.Type),
		DraftRound:       m.DraftRound,
		PickNumber:       m.PickNumber,
		AcquiredAt:       m.AcquiredAt,
		DroppedAt:        m.DroppedAt,
		TradedFromSlotID: m.TradedFromSlotID,
		CreatedAt:        m.CreatedAt,
	}
}

var acquisitionInsertColumns = []string{
	"id", "player_id", "slot_id", "season_year", "type", "draft_round",
	"pick_number", "acquired_at", "dropped_at", "traded_from_slot_id",
}

func acquisitionInsertValues(a acquisition.Acquisition) []any {
	return []any{
		a.ID, a.PlayerID, a.SlotID, a.SeasonYear, string(a.Type), a.DraftRound,
		a.PickNumber, a.AcquiredAt, a.DroppedAt, a.TradedFromSlotID,
	}
}

func acquisitionsToDomain(rows []acquisitionTableModel) []acquisition.Acquisition {
	out := make([]acquisition.Acquisition, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out
}
