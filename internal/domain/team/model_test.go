package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	to2023 := 2023
	aliases := []NameAlias{
		{SlotID: "slot-1", Name: "The Mudhens", FromYear: 2019, ToYear: &to2023},
		{SlotID: "slot-1", Name: "Mudhens Reborn", FromYear: 2024},
		{SlotID: "slot-2", Name: "Gridlock", FromYear: 2020},
	}

	assert.Equal(t, "The Mudhens", DisplayName(aliases, "slot-1", 2021))
	assert.Equal(t, "The Mudhens", DisplayName(aliases, "slot-1", 2023))
	assert.Equal(t, "Mudhens Reborn", DisplayName(aliases, "slot-1", 2024))
	assert.Equal(t, "Gridlock", DisplayName(aliases, "slot-2", 2026))

	// No alias coverage falls back to the seat label.
	assert.Equal(t, "Slot slot-1", DisplayName(aliases, "slot-1", 2018))
	assert.Equal(t, "Slot slot-9", DisplayName(aliases, "slot-9", 2024))
}
