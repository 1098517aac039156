package rule

import "fmt"

// Codes for the toggleable keeper rules. Each rule is season-gated: it only
// applies from its effective season onward.
const (
	CodeKeeperCostYear3Plus  = "KEEPER_COST_YEAR_3_PLUS"
	CodeKeeperIneligibility  = "KEEPER_INELIGIBILITY"
	CodeTrueFARound15        = "TRUE_FA_ROUND_15"
	CodeTradeInheritsCost    = "TRADE_INHERITS_COST"
	CodeFAInheritsDraftRound = "FA_INHERITS_DRAFT_ROUND"
)

// KnownCodes lists every rule the calculator and resolver understand.
var KnownCodes = []string{
	CodeKeeperCostYear3Plus,
	CodeKeeperIneligibility,
	CodeTrueFARound15,
	CodeTradeInheritsCost,
	CodeFAInheritsDraftRound,
}

// Rule is a named, toggleable league policy with an effective season.
type Rule struct {
	Code            string
	Name            string
	Enabled         bool
	EffectiveSeason int
}

// ActiveFor reports whether the rule applies to the given season.
func (r Rule) ActiveFor(seasonYear int) bool {
	return r.Enabled && seasonYear >= r.EffectiveSeason
}

func (r Rule) Validate() error {
	if r.Code == "" {
		return fmt.Errorf("rule code is required")
	}
	if r.EffectiveSeason <= 0 {
		return fmt.Errorf("rule effective season is required")
	}

	return nil
}
