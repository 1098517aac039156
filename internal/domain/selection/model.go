package selection

import (
	"fmt"
	"sort"
	"time"

	"github.com/draftroom/keeper-league/internal/domain/keeper"
)

// Selection is a team's declared intent to keep one player for a target
// season. FinalRound starts at the calculated cost and may be bumped to an
// earlier (numerically lower) round to resolve a conflict.
type Selection struct {
	ID              string
	SlotID          string
	SeasonYear      int
	PlayerID        string
	CalculatedRound int
	FinalRound      int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (s Selection) Validate() error {
	if s.SlotID == "" {
		return fmt.Errorf("selection slot id is required")
	}
	if s.PlayerID == "" {
		return fmt.Errorf("selection player id is required")
	}
	if s.SeasonYear <= 0 {
		return fmt.Errorf("selection season year is required")
	}
	if s.FinalRound < keeper.MinDraftRound {
		return fmt.Errorf("selection final round %d is below %d", s.FinalRound, keeper.MinDraftRound)
	}

	return nil
}

// Conflict flags two or more of a team's selections occupying one round.
type Conflict struct {
	Round     int      `json:"round"`
	PlayerIDs []string `json:"playerIds"`
}

// FindConflicts groups a team's current selections by final round and flags
// every round claimed more than once. Finalization is blocked while any
// conflict remains.
func FindConflicts(selections []Selection) []Conflict {
	byRound := make(map[int][]string)
	for _, sel := range selections {
		byRound[sel.FinalRound] = append(byRound[sel.FinalRound], sel.PlayerID)
	}

	out := make([]Conflict, 0)
	for round, players := range byRound {
		if len(players) < 2 {
			continue
		}
		sort.Strings(players)
		out = append(out, Conflict{Round: round, PlayerIDs: players})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Round < out[j].Round })

	return out
}

// BumpOptions lists every round the player could be moved to: strictly
// earlier than their calculated round, no lower than round 1, and not already
// occupied by another of the team's selections.
func BumpOptions(sel Selection, all []Selection) []int {
	occupied := make(map[int]struct{}, len(all))
	for _, other := range all {
		if other.PlayerID == sel.PlayerID {
			continue
		}
		occupied[other.FinalRound] = struct{}{}
	}

	out := make([]int, 0)
	for round := sel.CalculatedRound - 1; round >= keeper.MinDraftRound; round-- {
		if _, taken := occupied[round]; taken {
			continue
		}
		out = append(out, round)
	}
	sort.Ints(out)

	return out
}
