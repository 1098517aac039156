package selection

import (
	"context"
	"time"
)

// Repository describes selection persistence needs from use cases. Stores
// enforce uniqueness of (slot, season, player) so two concurrent selects of
// one player cannot both land.
type Repository interface {
	ListBySlotAndSeason(ctx context.Context, slotID string, seasonYear int) ([]Selection, error)
	Get(ctx context.Context, slotID string, seasonYear int, playerID string) (Selection, bool, error)
	Create(ctx context.Context, sel Selection) error
	UpdateFinalRound(ctx context.Context, id string, finalRound int, updatedAt time.Time) error
	Delete(ctx context.Context, id string) (bool, error)
	GetFinalized(ctx context.Context, slotID string, seasonYear int) (bool, error)
	SetFinalized(ctx context.Context, slotID string, seasonYear int, finalized bool) error
}
