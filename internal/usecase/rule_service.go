package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/draftroom/keeper-league/internal/domain/keeper"
	"github.com/draftroom/keeper-league/internal/domain/rule"
	"github.com/draftroom/keeper-league/internal/platform/cache"
)

// RuleService answers "is rule X active for season Y" and assembles the
// per-target-year flag struct the calculator and resolver consume. Flags are
// cached per year so roster-wide computations hit the store once.
type RuleService struct {
	ruleRepo rule.Repository
	flags    *cache.Store
}

func NewRuleService(ruleRepo rule.Repository, flagsCache *cache.Store) *RuleService {
	return &RuleService{
		ruleRepo: ruleRepo,
		flags:    flagsCache,
	}
}

// IsActive reports whether a rule applies to the given season. A rule that
// does not exist is simply inactive, not an error.
func (s *RuleService) IsActive(ctx context.Context, code string, seasonYear int) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RuleService.IsActive")
	defer span.End()

	code = strings.TrimSpace(code)
	if code == "" {
		return false, fmt.Errorf("%w: rule code is required", ErrInvalidInput)
	}
	if seasonYear <= 0 {
		return false, fmt.Errorf("%w: season year is required", ErrInvalidInput)
	}

	r, exists, err := s.ruleRepo.GetByCode(ctx, code)
	if err != nil {
		return false, fmt.Errorf("get rule %s: %w", code, err)
	}
	if !exists {
		return false, nil
	}

	return r.ActiveFor(seasonYear), nil
}

// FlagsForYear builds the immutable rule configuration for one target year.
func (s *RuleService) FlagsForYear(ctx context.Context, targetYear int) (keeper.RuleFlags, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RuleService.FlagsForYear")
	defer span.End()

	if targetYear <= 0 {
		return keeper.RuleFlags{}, fmt.Errorf("%w: target year is required", ErrInvalidInput)
	}

	if s.flags == nil {
		return s.loadFlags(ctx, targetYear)
	}

	key := "ruleflags:" + strconv.Itoa(targetYear)
	value, err := s.flags.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.loadFlags(ctx, targetYear)
	})
	if err != nil {
		return keeper.RuleFlags{}, err
	}

	flags, ok := value.(keeper.RuleFlags)
	if !ok {
		return s.loadFlags(ctx, targetYear)
	}
	return flags, nil
}

func (s *RuleService) loadFlags(ctx context.Context, targetYear int) (keeper.RuleFlags, error) {
	var flags keeper.RuleFlags

	rules, err := s.ruleRepo.List(ctx)
	if err != nil {
		return keeper.RuleFlags{}, fmt.Errorf("list rules: %w", err)
	}

	for _, r := range rules {
		active := r.ActiveFor(targetYear)
		switch r.Code {
		case rule.CodeKeeperCostYear3Plus:
			flags.CostReductionYear2Plus = active
		case rule.CodeKeeperIneligibility:
			flags.IneligibilityBelowRound1 = active
		case rule.CodeTrueFARound15:
			flags.TrueFreeAgentRound15 = active
		case rule.CodeTradeInheritsCost:
			flags.TradeInheritsCost = active
		case rule.CodeFAInheritsDraftRound:
			flags.FreeAgentInheritsRound = active
		}
	}

	return flags, nil
}

// ListRules exposes the full registry for the commissioner view.
func (s *RuleService) ListRules(ctx context.Context) ([]rule.Rule, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RuleService.ListRules")
	defer span.End()

	rules, err := s.ruleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}

	return rules, nil
}

// SetRule toggles or retimes a rule and invalidates the flag cache.
func (s *RuleService) SetRule(ctx context.Context, r rule.Rule) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RuleService.SetRule")
	defer span.End()

	r.Code = strings.TrimSpace(r.Code)
	if err := r.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.ruleRepo.Upsert(ctx, r); err != nil {
		return fmt.Errorf("upsert rule %s: %w", r.Code, err)
	}
	if s.flags != nil {
		s.flags.DeletePrefix(ctx, "ruleflags:")
	}

	return nil
}
