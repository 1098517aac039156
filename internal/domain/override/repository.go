package override

import "context"

// Repository describes override persistence needs from use cases.
type Repository interface {
	Get(ctx context.Context, playerID, slotID string, seasonYear int) (Override, bool, error)
	ListBySeason(ctx context.Context, seasonYear int) ([]Override, error)
	Create(ctx context.Context, o Override) error
	Delete(ctx context.Context, playerID, slotID string, seasonYear int) (bool, error)
}
