package season

import "context"

// Repository describes season persistence needs from use cases.
type Repository interface {
	GetActive(ctx context.Context) (Season, bool, error)
	GetByYear(ctx context.Context, year int) (Season, bool, error)
	List(ctx context.Context) ([]Season, error)
	Upsert(ctx context.Context, s Season) error
}
