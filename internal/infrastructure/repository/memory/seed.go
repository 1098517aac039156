package memory

import (
	"time"

	"github.com/draftroom/keeper-league/internal/domain/acquisition"
	"github.com/draftroom/keeper-league/internal/domain/keeper"
	"github.com/draftroom/keeper-league/internal/domain/rule"
	"github.com/draftroom/keeper-league/internal/domain/season"
	"github.com/draftroom/keeper-league/internal/domain/team"
)

const (
	SlotIDWizards  = "slot-01"
	SlotIDElite    = "slot-02"
	SlotIDHeavies  = "slot-03"
	SlotIDOutlaws  = "slot-04"
	SeedActiveYear = 2025
)

func SeedSlots() []team.Slot {
	return []team.Slot{
		{ID: SlotIDWizards, Number: 1},
		{ID: SlotIDElite, Number: 2},
		{ID: SlotIDHeavies, Number: 3},
		{ID: SlotIDOutlaws, Number: 4},
	}
}

func SeedAliases() []team.NameAlias {
	to2023 := 2023
	return []team.NameAlias{
		{SlotID: SlotIDWizards, Name: "Gridiron Gurus", FromYear: 2019, ToYear: &to2023},
		{SlotID: SlotIDWizards, Name: "Waiver Wire Wizards", FromYear: 2024},
		{SlotID: SlotIDElite, Name: "End Zone Elite", FromYear: 2020},
		{SlotID: SlotIDHeavies, Name: "Flex Tape Heavies", FromYear: 2021},
		{SlotID: SlotIDOutlaws, Name: "Fourth Down Outlaws", FromYear: 2019},
	}
}

func SeedSeasons() []season.Season {
	return []season.Season{
		{
			Year:           2024,
			KeeperDeadline: time.Date(2024, time.August, 30, 23, 59, 0, 0, time.UTC),
			IsActive:       false,
		},
		{
			Year:           SeedActiveYear,
			KeeperDeadline: time.Date(2025, time.August, 30, 23, 59, 0, 0, time.UTC),
			IsActive:       true,
		},
	}
}

func SeedRules() []rule.Rule {
	return []rule.Rule{
		{Code: rule.CodeKeeperCostYear3Plus, Name: "Escalating keeper cost from year two", Enabled: true, EffectiveSeason: 2020},
		{Code: rule.CodeKeeperIneligibility, Name: "Ineligible below round one", Enabled: true, EffectiveSeason: 2020},
		{Code: rule.CodeTrueFARound15, Name: "True free agents cost round fifteen", Enabled: true, EffectiveSeason: 2020},
		{Code: rule.CodeTradeInheritsCost, Name: "Trades inherit the original draft cost", Enabled: true, EffectiveSeason: 2022},
		{Code: rule.CodeFAInheritsDraftRound, Name: "Same-season pickups inherit the draft round", Enabled: true, EffectiveSeason: 2022},
	}
}

// SeedAcquisitions builds a roster that exercises every resolution branch:
// a multi-year draft chain, a true free agent, a same-season draft-then-drop
// pickup, and a trade with draft lineage.
func SeedAcquisitions() []acquisition.Acquisition {
	round1 := 1
	round6 := 6
	round2 := 2
	round8 := 8
	round12 := 12
	elite := SlotIDElite

	return []acquisition.Acquisition{
		// wr-chase: drafted 2023 R6 by slot-01, kept in 2024 and 2025.
		{
			ID: "acq-chase-2023", PlayerID: "wr-chase", SlotID: SlotIDWizards, SeasonYear: 2023,
			Type: keeper.TypeDraft, DraftRound: &round6,
			AcquiredAt: draftDay(2023), DroppedAt: timePtr(draftDay(2024)), CreatedAt: draftDay(2023),
		},
		{
			ID: "acq-chase-2024", PlayerID: "wr-chase", SlotID: SlotIDWizards, SeasonYear: 2024,
			Type: keeper.TypeDraft, DraftRound: &round6,
			AcquiredAt: draftDay(2024), DroppedAt: timePtr(draftDay(2025)), CreatedAt: draftDay(2024),
		},
		{
			ID: "acq-chase-2025", PlayerID: "wr-chase", SlotID: SlotIDWizards, SeasonYear: 2025,
			Type: keeper.TypeDraft, DraftRound: &round2,
			AcquiredAt: draftDay(2025), CreatedAt: draftDay(2025),
		},

		// wr-hill: clean waiver pickup, no draft history.
		{
			ID: "acq-hill-2025", PlayerID: "wr-hill", SlotID: SlotIDWizards, SeasonYear: 2025,
			Type: keeper.TypeFreeAgent,
			AcquiredAt: time.Date(2025, time.October, 7, 15, 0, 0, 0, time.UTC),
			CreatedAt:  time.Date(2025, time.October, 7, 15, 0, 0, 0, time.UTC),
		},

		// wr-lamb: drafted R12 by slot-02, dropped, picked up by slot-01 the
		// same season.
		{
			ID: "acq-lamb-draft-2025", PlayerID: "wr-lamb", SlotID: SlotIDElite, SeasonYear: 2025,
			Type: keeper.TypeDraft, DraftRound: &round12,
			AcquiredAt: draftDay(2025),
			DroppedAt:  timePtr(time.Date(2025, time.September, 20, 12, 0, 0, 0, time.UTC)),
			CreatedAt:  draftDay(2025),
		},
		{
			ID: "acq-lamb-fa-2025", PlayerID: "wr-lamb", SlotID: SlotIDWizards, SeasonYear: 2025,
			Type: keeper.TypeFreeAgent,
			AcquiredAt: time.Date(2025, time.September, 24, 9, 0, 0, 0, time.UTC),
			CreatedAt:  time.Date(2025, time.September, 24, 9, 0, 0, 0, time.UTC),
		},

		// te-kelce: drafted 2024 R8 by slot-02, traded to slot-01 in 2025.
		{
			ID: "acq-kelce-draft-2024", PlayerID: "te-kelce", SlotID: SlotIDElite, SeasonYear: 2024,
			Type: keeper.TypeDraft, DraftRound: &round8,
			AcquiredAt: draftDay(2024),
			DroppedAt:  timePtr(time.Date(2025, time.October, 30, 17, 0, 0, 0, time.UTC)),
			CreatedAt:  draftDay(2024),
		},
		{
			ID: "acq-kelce-trade-2025", PlayerID: "te-kelce", SlotID: SlotIDWizards, SeasonYear: 2025,
			Type: keeper.TypeTrade, DraftRound: &round8, TradedFromSlotID: &elite,
			AcquiredAt: time.Date(2025, time.October, 30, 17, 0, 0, 0, time.UTC),
			CreatedAt:  time.Date(2025, time.October, 30, 17, 0, 0, 0, time.UTC),
		},

		// qb-allen anchors slot-02's remaining roster.
		{
			ID: "acq-allen-2025", PlayerID: "qb-allen", SlotID: SlotIDElite, SeasonYear: 2025,
			Type: keeper.TypeDraft, DraftRound: &round1,
			AcquiredAt: draftDay(2025), CreatedAt: draftDay(2025),
		},
	}
}

func draftDay(year int) time.Time {
	return time.Date(year, time.September, 1, 19, 0, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
