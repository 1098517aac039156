package cache

import (
	"context"
	"strconv"

	"github.com/draftroom/keeper-league/internal/domain/rule"
	"github.com/draftroom/keeper-league/internal/domain/season"
	"github.com/draftroom/keeper-league/internal/domain/team"
	basecache "github.com/draftroom/keeper-league/internal/platform/cache"
)

// RuleRepository is a read-through decorator: rule reads are hot on every
// cost computation and rules change rarely.
type RuleRepository struct {
	next  rule.Repository
	cache *basecache.Store
}

func NewRuleRepository(next rule.Repository, cache *basecache.Store) *RuleRepository {
	return &RuleRepository{next: next, cache: cache}
}

func (r *RuleRepository) GetByCode(ctx context.Context, code string) (rule.Rule, bool, error) {
	key := "rule:code:" + code
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		return cachedRuleByCode{value: item, exists: exists}, nil
	})
	if err != nil {
		return rule.Rule{}, false, err
	}

	cached, _ := v.(cachedRuleByCode)
	return cached.value, cached.exists, nil
}

func (r *RuleRepository) List(ctx context.Context) ([]rule.Rule, error) {
	v, err := r.cache.GetOrLoad(ctx, "rule:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]rule.Rule(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]rule.Rule)
	return append([]rule.Rule(nil), items...), nil
}

func (r *RuleRepository) Upsert(ctx context.Context, ru rule.Rule) error {
	if err := r.next.Upsert(ctx, ru); err != nil {
		return err
	}
	r.cache.Delete(ctx, "rule:code:"+ru.Code)
	r.cache.Delete(ctx, "rule:list")
	return nil
}

type cachedRuleByCode struct {
	value  rule.Rule
	exists bool
}

type SeasonRepository struct {
	next  season.Repository
	cache *basecache.Store
}

func NewSeasonRepository(next season.Repository, cache *basecache.Store) *SeasonRepository {
	return &SeasonRepository{next: next, cache: cache}
}

func (r *SeasonRepository) GetActive(ctx context.Context) (season.Season, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "season:active", func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetActive(ctx)
		if err != nil {
			return nil, err
		}
		return cachedSeason{value: item, exists: exists}, nil
	})
	if err != nil {
		return season.Season{}, false, err
	}

	cached, _ := v.(cachedSeason)
	return cached.value, cached.exists, nil
}

func (r *SeasonRepository) GetByYear(ctx context.Context, year int) (season.Season, bool, error) {
	key := "season:year:" + strconv.Itoa(year)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByYear(ctx, year)
		if err != nil {
			return nil, err
		}
		return cachedSeason{value: item, exists: exists}, nil
	})
	if err != nil {
		return season.Season{}, false, err
	}

	cached, _ := v.(cachedSeason)
	return cached.value, cached.exists, nil
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	v, err := r.cache.GetOrLoad(ctx, "season:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]season.Season(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]season.Season)
	return append([]season.Season(nil), items...), nil
}

func (r *SeasonRepository) Upsert(ctx context.Context, s season.Season) error {
	if err := r.next.Upsert(ctx, s); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "season:")
	return nil
}

type cachedSeason struct {
	value  season.Season
	exists bool
}

// TeamRepository caches the slot list and alias lookups; the league's
// structure changes at most once a year.
type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListSlots(ctx context.Context) ([]team.Slot, error) {
	v, err := r.cache.GetOrLoad(ctx, "team:slots", func(ctx context.Context) (any, error) {
		items, err := r.next.ListSlots(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Slot(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Slot)
	return append([]team.Slot(nil), items...), nil
}

func (r *TeamRepository) GetSlot(ctx context.Context, slotID string) (team.Slot, bool, error) {
	key := "team:slot:" + slotID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetSlot(ctx, slotID)
		if err != nil {
			return nil, err
		}
		return cachedSlot{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Slot{}, false, err
	}

	cached, _ := v.(cachedSlot)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) ListAliases(ctx context.Context, slotID string) ([]team.NameAlias, error) {
	key := "team:aliases:slot:" + slotID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListAliases(ctx, slotID)
		if err != nil {
			return nil, err
		}
		return append([]team.NameAlias(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.NameAlias)
	return append([]team.NameAlias(nil), items...), nil
}

func (r *TeamRepository) AliasesForYear(ctx context.Context, year int) ([]team.NameAlias, error) {
	key := "team:aliases:year:" + strconv.Itoa(year)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.AliasesForYear(ctx, year)
		if err != nil {
			return nil, err
		}
		return append([]team.NameAlias(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.NameAlias)
	return append([]team.NameAlias(nil), items...), nil
}

type cachedSlot struct {
	value  team.Slot
	exists bool
}
