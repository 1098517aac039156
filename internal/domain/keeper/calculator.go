package keeper

import "fmt"

const (
	reasonSameSeason    = "player cannot be kept in the season they were acquired"
	reasonBelowMinRound = "calculated round %d is below round %d"
	reasonBadDraftRound = "draft round %d is outside %d..%d"
	reasonNoDraftRound  = "draft acquisition is missing its draft round"
)

// CalculateCost computes keeper eligibility and round for one resolved keeper
// base. The function is pure: identical input and flags always produce an
// identical result.
func CalculateCost(input CostInput, flags RuleFlags) CostResult {
	result := CostResult{TargetYear: input.TargetYear}

	if input.TargetYear <= input.AcquisitionYear {
		result.IneligibleReason = reasonSameSeason
		return result
	}

	baseRound, reason := baseRound(input, flags)
	if reason != "" {
		result.IneligibleReason = reason
		return result
	}
	result.BaseRound = baseRound
	result.YearsKept = input.TargetYear - input.AcquisitionYear

	if flags.CostReductionYear2Plus && result.YearsKept > 1 {
		result.CostReduction = CostReductionPerYear * (result.YearsKept - 1)
	}

	calculated := baseRound - result.CostReduction
	if flags.IneligibilityBelowRound1 && calculated < MinDraftRound {
		result.IneligibleReason = fmt.Sprintf(reasonBelowMinRound, calculated, MinDraftRound)
		return result
	}

	result.Eligible = true
	result.KeeperRound = &calculated
	return result
}

func baseRound(input CostInput, flags RuleFlags) (int, string) {
	switch input.Type {
	case TypeDraft:
		if input.DraftRound == nil {
			return 0, reasonNoDraftRound
		}
		round := *input.DraftRound
		if round < MinDraftRound || round > MaxDraftRound {
			return 0, fmt.Sprintf(reasonBadDraftRound, round, MinDraftRound, MaxDraftRound)
		}
		return round, ""
	default:
		// Trades normalize to free-agent costing once the resolver has ruled
		// out an inheritable draft basis.
		if !flags.TrueFreeAgentRound15 && input.InheritedRound != nil {
			return *input.InheritedRound, ""
		}
		return TrueFreeAgentBaseRound, ""
	}
}

// CostProgression evaluates the calculator over an inclusive year range,
// one result per target year.
func CostProgression(input CostInput, flags RuleFlags, fromYear, toYear int) []CostResult {
	if toYear < fromYear {
		return nil
	}

	out := make([]CostResult, 0, toYear-fromYear+1)
	for year := fromYear; year <= toYear; year++ {
		yearInput := input
		yearInput.TargetYear = year
		out = append(out, CalculateCost(yearInput, flags))
	}
	return out
}

// LastEligibleYear is the closed form of the final season a base can still be
// kept: one year of base cost plus one additional year per full reduction step
// remaining above round 1.
func LastEligibleYear(baseRound, acquisitionYear int) int {
	years := (baseRound + CostReductionPerYear - 1) / CostReductionPerYear
	if years < 1 {
		years = 1
	}
	return acquisitionYear + years
}

// IsEligible reports whether the base can be kept into the input's target year.
func IsEligible(input CostInput, flags RuleFlags) bool {
	return CalculateCost(input, flags).Eligible
}

// Round returns only the keeper round, nil when ineligible.
func Round(input CostInput, flags RuleFlags) *int {
	return CalculateCost(input, flags).KeeperRound
}
