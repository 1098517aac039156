package keeper

// AcquisitionType describes how a player arrived on a roster slot.
type AcquisitionType string

const (
	TypeDraft     AcquisitionType = "DRAFT"
	TypeFreeAgent AcquisitionType = "FREE_AGENT"
	TypeTrade     AcquisitionType = "TRADE"
)

// AllAcquisitionTypes is used to validate incoming acquisition records.
var AllAcquisitionTypes = map[AcquisitionType]struct{}{
	TypeDraft:     {},
	TypeFreeAgent: {},
	TypeTrade:     {},
}

const (
	MinDraftRound = 1
	MaxDraftRound = 28

	// TrueFreeAgentBaseRound is the keeper basis for a player picked up off
	// waivers with no same-season draft history.
	TrueFreeAgentBaseRound = 15

	// CostReductionPerYear is subtracted from the base round for every keeper
	// year beyond the first.
	CostReductionPerYear = 4
)

// RuleFlags is the immutable per-target-year rule configuration threaded
// through the calculator and the chain resolver. Build it once per target
// year, never from ambient state.
type RuleFlags struct {
	// CostReductionYear2Plus applies the per-year cost reduction from the
	// second keeper year onward.
	CostReductionYear2Plus bool
	// IneligibilityBelowRound1 makes a computed round below 1 ineligible.
	// When off, every computed round stands regardless of sign.
	IneligibilityBelowRound1 bool
	// TrueFreeAgentRound15 pins a true free agent's base round at 15. When
	// off, an inherited round is used when present, falling back to 15.
	TrueFreeAgentRound15 bool
	// TradeInheritsCost lets a traded player keep their original draft basis.
	TradeInheritsCost bool
	// FreeAgentInheritsRound lets a same-season drop-and-pickup inherit the
	// round the player was drafted at. Gated on the pickup's own season.
	FreeAgentInheritsRound bool
}

// CostInput is everything the calculator needs about a resolved keeper base.
type CostInput struct {
	Type            AcquisitionType
	DraftRound      *int
	AcquisitionYear int
	TargetYear      int
	// InheritedRound carries a draft round recovered by the chain resolver
	// for free-agent pickups with same-season draft history.
	InheritedRound *int
}

// CostResult is the full audit trail of one keeper-cost computation.
type CostResult struct {
	TargetYear       int    `json:"targetYear"`
	BaseRound        int    `json:"baseRound"`
	YearsKept        int    `json:"yearsKept"`
	CostReduction    int    `json:"costReduction"`
	KeeperRound      *int   `json:"keeperRound"`
	Eligible         bool   `json:"eligible"`
	IneligibleReason string `json:"ineligibleReason,omitempty"`
}
