package acquisition

import (
	"context"
	"time"
)

// TradeMove is one player changing slots as part of an executed trade.
type TradeMove struct {
	PlayerID   string
	FromSlotID string
	ToSlotID   string
	SeasonYear int
	TradedAt   time.Time
}

// Repository describes acquisition persistence needs from use cases.
// Acquisitions are append-only; the only mutation is setting a drop date.
type Repository interface {
	GetActive(ctx context.Context, playerID, slotID string) (Acquisition, bool, error)
	ListByPlayerAndSlot(ctx context.Context, playerID, slotID string) ([]Acquisition, error)
	ListByPlayerAndSeason(ctx context.Context, playerID string, seasonYear int) ([]Acquisition, error)
	GetEarliestDraft(ctx context.Context, playerID string) (Acquisition, bool, error)
	ListActiveBySlot(ctx context.Context, slotID string) ([]Acquisition, error)
	ListByPlayers(ctx context.Context, playerIDs []string) ([]Acquisition, error)
	Create(ctx context.Context, acq Acquisition) error
	CreateBatch(ctx context.Context, acqs []Acquisition) error
	SetDropped(ctx context.Context, id string, droppedAt time.Time) error
}

// TradeExecutor applies every move of a trade in one atomic write. A move
// referencing a player who is not active on the claimed sending slot aborts
// the whole trade.
type TradeExecutor interface {
	ExecuteTrade(ctx context.Context, moves []TradeMove) error
}
