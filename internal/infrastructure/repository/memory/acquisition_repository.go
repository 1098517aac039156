package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/draftroom/keeper-league/internal/domain/acquisition"
	"github.com/draftroom/keeper-league/internal/domain/keeper"
)

type AcquisitionRepository struct {
	mu    sync.RWMutex
	items map[string]acquisition.Acquisition
	order []string
}

func NewAcquisitionRepository(seed []acquisition.Acquisition) *AcquisitionRepository {
	items := make(map[string]acquisition.Acquisition, len(seed))
	order := make([]string, 0, len(seed))

	for _, a := range seed {
		items[a.ID] = a
		order = append(order, a.ID)
	}

	return &AcquisitionRepository{
		items: items,
		order: order,
	}
}

func (r *AcquisitionRepository) GetActive(_ context.Context, playerID, slotID string) (acquisition.Acquisition, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		a := r.items[id]
		if a.PlayerID == playerID && a.SlotID == slotID && a.Active() {
			return a, true, nil
		}
	}

	return acquisition.Acquisition{}, false, nil
}

func (r *AcquisitionRepository) ListByPlayerAndSlot(_ context.Context, playerID, slotID string) ([]acquisition.Acquisition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]acquisition.Acquisition, 0)
	for _, id := range r.order {
		a := r.items[id]
		if a.PlayerID == playerID && a.SlotID == slotID {
			out = append(out, a)
		}
	}
	sortAcquisitions(out)

	return out, nil
}

func (r *AcquisitionRepository) ListByPlayerAndSeason(_ context.Context, playerID string, seasonYear int) ([]acquisition.Acquisition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]acquisition.Acquisition, 0)
	for _, id := range r.order {
		a := r.items[id]
		if a.PlayerID == playerID && a.SeasonYear == seasonYear {
			out = append(out, a)
		}
	}
	sortAcquisitions(out)

	return out, nil
}

func (r *AcquisitionRepository) GetEarliestDraft(_ context.Context, playerID string) (acquisition.Acquisition, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best acquisition.Acquisition
	found := false
	for _, id := range r.order {
		a := r.items[id]
		if a.PlayerID != playerID || a.Type != keeper.TypeDraft {
			continue
		}
		if !found || a.SeasonYear < best.SeasonYear ||
			(a.SeasonYear == best.SeasonYear && a.AcquiredAt.Before(best.AcquiredAt)) {
			best = a
			found = true
		}
	}

	return best, found, nil
}

func (r *AcquisitionRepository) ListActiveBySlot(_ context.Context, slotID string) ([]acquisition.Acquisition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]acquisition.Acquisition, 0)
	for _, id := range r.order {
		a := r.items[id]
		if a.SlotID == slotID && a.Active() {
			out = append(out, a)
		}
	}
	sortAcquisitions(out)

	return out, nil
}

func (r *AcquisitionRepository) ListByPlayers(_ context.Context, playerIDs []string) ([]acquisition.Acquisition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		wanted[id] = struct{}{}
	}

	out := make([]acquisition.Acquisition, 0)
	for _, id := range r.order {
		a := r.items[id]
		if _, ok := wanted[a.PlayerID]; ok {
			out = append(out, a)
		}
	}
	sortAcquisitions(out)

	return out, nil
}

func (r *AcquisitionRepository) Create(_ context.Context, a acquisition.Acquisition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.createLocked(a)
}

// CreateBatch is all-or-nothing: any conflicting row leaves the repository
// untouched.
func (r *AcquisitionRepository) CreateBatch(_ context.Context, batch []acquisition.Acquisition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	staged := make(map[string]struct{}, len(batch))
	for _, a := range batch {
		if _, exists := r.items[a.ID]; exists {
			return fmt.Errorf("acquisition %s already exists", a.ID)
		}
		if _, dup := staged[a.ID]; dup {
			return fmt.Errorf("acquisition %s appears twice in the batch", a.ID)
		}
		staged[a.ID] = struct{}{}
		if a.Active() {
			if held, ok := r.activeLocked(a.PlayerID, a.SlotID); ok {
				return fmt.Errorf("player %s already active on slot %s via acquisition %s", a.PlayerID, a.SlotID, held.ID)
			}
		}
	}

	for _, a := range batch {
		r.items[a.ID] = a
		r.order = append(r.order, a.ID)
	}

	return nil
}

func (r *AcquisitionRepository) SetDropped(_ context.Context, id string, droppedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[id]
	if !ok {
		return fmt.Errorf("acquisition %s not found", id)
	}
	a.DroppedAt = &droppedAt
	r.items[id] = a

	return nil
}

// ExecuteTrade applies all moves under one lock so a half-applied trade is
// never observable.
func (r *AcquisitionRepository) ExecuteTrade(_ context.Context, moves []acquisition.TradeMove) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	type staged struct {
		dropID string
		create acquisition.Acquisition
	}
	plan := make([]staged, 0, len(moves))

	for i, m := range moves {
		source, ok := r.activeLocked(m.PlayerID, m.FromSlotID)
		if !ok {
			return fmt.Errorf("player %s has no active acquisition on slot %s", m.PlayerID, m.FromSlotID)
		}
		fromSlot := m.FromSlotID
		plan = append(plan, staged{
			dropID: source.ID,
			create: acquisition.Acquisition{
				ID:               fmt.Sprintf("%s-trade-%d-%d", m.PlayerID, m.SeasonYear, i),
				PlayerID:         m.PlayerID,
				SlotID:           m.ToSlotID,
				SeasonYear:       m.SeasonYear,
				Type:             keeper.TypeTrade,
				DraftRound:       source.DraftRound,
				AcquiredAt:       m.TradedAt,
				TradedFromSlotID: &fromSlot,
				CreatedAt:        m.TradedAt,
			},
		})
	}

	for _, s := range plan {
		a := r.items[s.dropID]
		droppedAt := s.create.AcquiredAt
		a.DroppedAt = &droppedAt
		r.items[s.dropID] = a

		if err := r.createLocked(s.create); err != nil {
			return err
		}
	}

	return nil
}

func (r *AcquisitionRepository) createLocked(a acquisition.Acquisition) error {
	if _, exists := r.items[a.ID]; exists {
		return fmt.Errorf("acquisition %s already exists", a.ID)
	}
	if a.Active() {
		if held, ok := r.activeLocked(a.PlayerID, a.SlotID); ok {
			return fmt.Errorf("player %s already active on slot %s via acquisition %s", a.PlayerID, a.SlotID, held.ID)
		}
	}

	r.items[a.ID] = a
	r.order = append(r.order, a.ID)

	return nil
}

func (r *AcquisitionRepository) activeLocked(playerID, slotID string) (acquisition.Acquisition, bool) {
	for _, id := range r.order {
		a := r.items[id]
		if a.PlayerID == playerID && a.SlotID == slotID && a.Active() {
			return a, true
		}
	}

	return acquisition.Acquisition{}, false
}

func sortAcquisitions(list []acquisition.Acquisition) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].SeasonYear != list[j].SeasonYear {
			return list[i].SeasonYear < list[j].SeasonYear
		}
		return list[i].AcquiredAt.Before(list[j].AcquiredAt)
	})
}
