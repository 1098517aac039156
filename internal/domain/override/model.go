package override

import (
	"fmt"
	"time"

	"github.com/draftroom/keeper-league/internal/domain/keeper"
)

// Override is a commissioner-entered exception that replaces the computed
// keeper round outright for one (player, slot, season). Overrides always win
// over calculation and force eligibility.
type Override struct {
	PlayerID   string
	SlotID     string
	SeasonYear int
	Round      int
	Note       string
	CreatedAt  time.Time
}

func (o Override) Validate() error {
	if o.PlayerID == "" {
		return fmt.Errorf("override player id is required")
	}
	if o.SlotID == "" {
		return fmt.Errorf("override slot id is required")
	}
	if o.SeasonYear <= 0 {
		return fmt.Errorf("override season year is required")
	}
	if o.Round < keeper.MinDraftRound || o.Round > keeper.MaxDraftRound {
		return fmt.Errorf("override round %d is outside %d..%d", o.Round, keeper.MinDraftRound, keeper.MaxDraftRound)
	}

	return nil
}
