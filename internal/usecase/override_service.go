package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/draftroom/keeper-league/internal/domain/override"
	"github.com/draftroom/keeper-league/internal/platform/logging"
)

// OverrideService manages commissioner cost overrides. An override pins a
// player's keeper round for one season and wins over every computed value.
type OverrideService struct {
	overrideRepo override.Repository
	logger       *logging.Logger
	now          func() time.Time
}

func NewOverrideService(overrideRepo override.Repository, logger *logging.Logger) *OverrideService {
	if logger == nil {
		logger = logging.Default()
	}

	return &OverrideService{
		overrideRepo: overrideRepo,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *OverrideService) Set(ctx context.Context, o override.Override) (override.Override, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OverrideService.Set")
	defer span.End()

	o.CreatedAt = s.now().UTC()
	if err := o.Validate(); err != nil {
		return override.Override{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, exists, err := s.overrideRepo.Get(ctx, o.PlayerID, o.SlotID, o.SeasonYear); err != nil {
		return override.Override{}, fmt.Errorf("get override: %w", err)
	} else if exists {
		return override.Override{}, fmt.Errorf("%w: an override already exists for player %s on slot %s in %d",
			ErrOperationRejected, o.PlayerID, o.SlotID, o.SeasonYear)
	}

	if err := s.overrideRepo.Create(ctx, o); err != nil {
		return override.Override{}, fmt.Errorf("create override: %w", err)
	}

	s.logger.InfoContext(ctx, "cost override set",
		"player_id", o.PlayerID,
		"slot_id", o.SlotID,
		"season", o.SeasonYear,
		"round", o.Round,
	)

	return o, nil
}

func (s *OverrideService) Remove(ctx context.Context, playerID, slotID string, seasonYear int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.OverrideService.Remove")
	defer span.End()

	deleted, err := s.overrideRepo.Delete(ctx, playerID, slotID, seasonYear)
	if err != nil {
		return fmt.Errorf("delete override: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: no override for player %s on slot %s in %d", ErrNotFound, playerID, slotID, seasonYear)
	}

	return nil
}

func (s *OverrideService) ListBySeason(ctx context.Context, seasonYear int) ([]override.Override, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OverrideService.ListBySeason")
	defer span.End()

	if seasonYear <= 0 {
		return nil, fmt.Errorf("%w: season year is required", ErrInvalidInput)
	}

	return s.overrideRepo.ListBySeason(ctx, seasonYear)
}
