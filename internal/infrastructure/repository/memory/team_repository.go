package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/draftroom/keeper-league/internal/domain/team"
)

type TeamRepository struct {
	mu      sync.RWMutex
	slots   map[string]team.Slot
	aliases []team.NameAlias
}

func NewTeamRepository(slots []team.Slot, aliases []team.NameAlias) *TeamRepository {
	items := make(map[string]team.Slot, len(slots))
	for _, s := range slots {
		items[s.ID] = s
	}

	return &TeamRepository{
		slots:   items,
		aliases: append([]team.NameAlias(nil), aliases...),
	}
}

func (r *TeamRepository) ListSlots(_ context.Context) ([]team.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Slot, 0, len(r.slots))
	for _, s := range r.slots {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })

	return out, nil
}

func (r *TeamRepository) GetSlot(_ context.Context, slotID string) (team.Slot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.slots[slotID]
	if !ok {
		return team.Slot{}, false, nil
	}

	return s, true, nil
}

func (r *TeamRepository) ListAliases(_ context.Context, slotID string) ([]team.NameAlias, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.NameAlias, 0)
	for _, a := range r.aliases {
		if a.SlotID == slotID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FromYear < out[j].FromYear })

	return out, nil
}

func (r *TeamRepository) AliasesForYear(_ context.Context, year int) ([]team.NameAlias, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.NameAlias, 0)
	for _, a := range r.aliases {
		if a.FromYear <= year && (a.ToYear == nil || *a.ToYear >= year) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SlotID < out[j].SlotID })

	return out, nil
}
