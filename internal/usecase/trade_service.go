package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/draftroom/keeper-league/internal/domain/acquisition"
	"github.com/draftroom/keeper-league/internal/domain/team"
	"github.com/draftroom/keeper-league/internal/platform/logging"
)

// TradeInput is one multi-player trade between roster slots. Every listed
// player moves, or none do.
type TradeInput struct {
	SeasonYear int         `json:"seasonYear" validate:"required,min=1990"`
	Moves      []TradeMove `json:"moves" validate:"required,min=1,dive"`
}

type TradeMove struct {
	PlayerID   string `json:"playerId" validate:"required"`
	FromSlotID string `json:"fromSlotId" validate:"required"`
	ToSlotID   string `json:"toSlotId" validate:"required"`
}

// TradeService records trades as acquisition history: the sending slot's
// record is closed and a TRADE record opens on the receiving slot, atomically
// across all moves.
type TradeService struct {
	acqRepo  acquisition.Repository
	trades   acquisition.TradeExecutor
	teamRepo team.Repository
	logger   *logging.Logger
	now      func() time.Time
}

func NewTradeService(
	acqRepo acquisition.Repository,
	trades acquisition.TradeExecutor,
	teamRepo team.Repository,
	logger *logging.Logger,
) *TradeService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TradeService{
		acqRepo:  acqRepo,
		trades:   trades,
		teamRepo: teamRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// Execute validates and applies a trade. Inconsistent moves abort the whole
// trade before anything is written.
func (s *TradeService) Execute(ctx context.Context, input TradeInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TradeService.Execute")
	defer span.End()

	if input.SeasonYear <= 0 || len(input.Moves) == 0 {
		return fmt.Errorf("%w: a trade needs a season and at least one move", ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(input.Moves))
	tradedAt := s.now().UTC()
	moves := make([]acquisition.TradeMove, 0, len(input.Moves))

	for _, m := range input.Moves {
		if m.PlayerID == "" || m.FromSlotID == "" || m.ToSlotID == "" {
			return fmt.Errorf("%w: every move needs a player and both slots", ErrInvalidInput)
		}
		if m.FromSlotID == m.ToSlotID {
			return fmt.Errorf("%w: player %s cannot be traded to the same slot", ErrInvalidInput, m.PlayerID)
		}
		if _, dup := seen[m.PlayerID]; dup {
			return fmt.Errorf("%w: player %s appears in more than one move", ErrInvalidInput, m.PlayerID)
		}
		seen[m.PlayerID] = struct{}{}

		for _, slotID := range []string{m.FromSlotID, m.ToSlotID} {
			if _, found, err := s.teamRepo.GetSlot(ctx, slotID); err != nil {
				return fmt.Errorf("get slot %s: %w", slotID, err)
			} else if !found {
				return fmt.Errorf("%w: slot %s does not exist", ErrNotFound, slotID)
			}
		}

		if _, active, err := s.acqRepo.GetActive(ctx, m.PlayerID, m.FromSlotID); err != nil {
			return fmt.Errorf("get active acquisition: %w", err)
		} else if !active {
			return fmt.Errorf("%w: player %s is not on slot %s", ErrOperationRejected, m.PlayerID, m.FromSlotID)
		}

		moves = append(moves, acquisition.TradeMove{
			PlayerID:   m.PlayerID,
			FromSlotID: m.FromSlotID,
			ToSlotID:   m.ToSlotID,
			SeasonYear: input.SeasonYear,
			TradedAt:   tradedAt,
		})
	}

	if err := s.trades.ExecuteTrade(ctx, moves); err != nil {
		return fmt.Errorf("execute trade: %w", err)
	}

	s.logger.InfoContext(ctx, "trade recorded",
		"season", input.SeasonYear,
		"moves", len(moves),
	)

	return nil
}
