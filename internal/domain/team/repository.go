package team

import "context"

// Repository describes slot and alias persistence needs from use cases.
type Repository interface {
	ListSlots(ctx context.Context) ([]Slot, error)
	GetSlot(ctx context.Context, slotID string) (Slot, bool, error)
	ListAliases(ctx context.Context, slotID string) ([]NameAlias, error)
	AliasesForYear(ctx context.Context, year int) ([]NameAlias, error)
}
