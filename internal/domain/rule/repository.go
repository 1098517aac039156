package rule

import "context"

// Repository describes rule persistence needs from use cases.
type Repository interface {
	GetByCode(ctx context.Context, code string) (Rule, bool, error)
	List(ctx context.Context) ([]Rule, error)
	Upsert(ctx context.Context, r Rule) error
}
