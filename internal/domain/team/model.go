package team

import (
	"fmt"
	"strings"
)

// Slot is a permanent league seat. Slot identity never changes; what the team
// calls itself in a given season is an alias on top.
type Slot struct {
	ID     string
	Number int
}

func (s Slot) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("slot id is required")
	}
	if s.Number <= 0 {
		return fmt.Errorf("slot number must be positive")
	}

	return nil
}

// NameAlias maps a slot to a display name over an inclusive year range.
// ToYear nil means the alias is still current.
type NameAlias struct {
	SlotID   string
	Name     string
	FromYear int
	ToYear   *int
}

func (a NameAlias) coversYear(year int) bool {
	if year < a.FromYear {
		return false
	}
	return a.ToYear == nil || year <= *a.ToYear
}

// DisplayName resolves what a slot was called in a given season. Falls back
// to a generic seat label so missing alias data never blocks a roster view.
func DisplayName(aliases []NameAlias, slotID string, year int) string {
	for _, alias := range aliases {
		if alias.SlotID != slotID {
			continue
		}
		if alias.coversYear(year) && strings.TrimSpace(alias.Name) != "" {
			return alias.Name
		}
	}

	return fmt.Sprintf("Slot %s", slotID)
}
