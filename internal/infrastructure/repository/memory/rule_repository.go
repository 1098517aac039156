package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/draftroom/keeper-league/internal/domain/rule"
)

type RuleRepository struct {
	mu    sync.RWMutex
	items map[string]rule.Rule
}

func NewRuleRepository(seed []rule.Rule) *RuleRepository {
	items := make(map[string]rule.Rule, len(seed))
	for _, ru := range seed {
		items[ru.Code] = ru
	}

	return &RuleRepository{items: items}
}

func (r *RuleRepository) GetByCode(_ context.Context, code string) (rule.Rule, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ru, ok := r.items[code]
	if !ok {
		return rule.Rule{}, false, nil
	}

	return ru, true, nil
}

func (r *RuleRepository) List(_ context.Context) ([]rule.Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rule.Rule, 0, len(r.items))
	for _, ru := range r.items {
		out = append(out, ru)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })

	return out, nil
}

func (r *RuleRepository) Upsert(_ context.Context, ru rule.Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[ru.Code] = ru

	return nil
}
