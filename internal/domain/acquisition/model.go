package acquisition

import (
	"fmt"
	"time"

	"github.com/draftroom/keeper-league/internal/domain/keeper"
)

// Acquisition is an immutable historical fact: a player joined a roster slot
// through a draft pick, a free-agent pickup, or a trade. Kept players are
// represented by a fresh DRAFT acquisition each season at their keeper cost,
// so a continuously kept player has one DRAFT row per season on one slot.
type Acquisition struct {
	ID               string
	PlayerID         string
	SlotID           string
	SeasonYear       int
	Type             keeper.AcquisitionType
	DraftRound       *int
	PickNumber       *int
	AcquiredAt       time.Time
	DroppedAt        *time.Time
	TradedFromSlotID *string
	CreatedAt        time.Time
}

// Active reports whether the player is still on the slot through this record.
func (a Acquisition) Active() bool {
	return a.DroppedAt == nil
}

func (a Acquisition) Validate() error {
	if a.PlayerID == "" {
		return fmt.Errorf("acquisition player id is required")
	}
	if a.SlotID == "" {
		return fmt.Errorf("acquisition slot id is required")
	}
	if a.SeasonYear <= 0 {
		return fmt.Errorf("acquisition season year is required")
	}
	if _, ok := keeper.AllAcquisitionTypes[a.Type]; !ok {
		return fmt.Errorf("unknown acquisition type %q", a.Type)
	}
	if a.Type == keeper.TypeDraft {
		if a.DraftRound == nil {
			return fmt.Errorf("draft acquisition requires a draft round")
		}
		if *a.DraftRound < keeper.MinDraftRound || *a.DraftRound > keeper.MaxDraftRound {
			return fmt.Errorf("draft round %d is outside %d..%d", *a.DraftRound, keeper.MinDraftRound, keeper.MaxDraftRound)
		}
	}
	if a.Type == keeper.TypeTrade && a.TradedFromSlotID == nil {
		return fmt.Errorf("trade acquisition requires the sending slot")
	}

	return nil
}
