package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActiveFor(t *testing.T) {
	r := Rule{Code: CodeKeeperCostYear3Plus, Enabled: true, EffectiveSeason: 2022}

	assert.False(t, r.ActiveFor(2021))
	assert.True(t, r.ActiveFor(2022))
	assert.True(t, r.ActiveFor(2026))

	r.Enabled = false
	assert.False(t, r.ActiveFor(2026))
}
