package season

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeadlineStateAt(t *testing.T) {
	deadline := time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want DeadlineState
	}{
		{name: "weeks out", now: deadline.Add(-30 * 24 * time.Hour), want: DeadlineOpen},
		{name: "just outside window", now: deadline.Add(-7*24*time.Hour - time.Minute), want: DeadlineOpen},
		{name: "seven days out", now: deadline.Add(-7 * 24 * time.Hour), want: DeadlineApproaching},
		{name: "two days out", now: deadline.Add(-48 * time.Hour), want: DeadlineApproaching},
		{name: "under a day", now: deadline.Add(-23 * time.Hour), want: DeadlineUrgent},
		{name: "one minute left", now: deadline.Add(-time.Minute), want: DeadlineUrgent},
		{name: "at deadline", now: deadline, want: DeadlinePassed},
		{name: "after deadline", now: deadline.Add(time.Hour), want: DeadlinePassed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeadlineStateAt(deadline, tc.now))
		})
	}
}

func TestDeadlineStateMonotonic(t *testing.T) {
	deadline := time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)
	order := map[DeadlineState]int{
		DeadlineOpen:        0,
		DeadlineApproaching: 1,
		DeadlineUrgent:      2,
		DeadlinePassed:      3,
	}

	now := deadline.Add(-30 * 24 * time.Hour)
	previous := DeadlineStateAt(deadline, now)
	for now.Before(deadline.Add(48 * time.Hour)) {
		now = now.Add(time.Hour)
		current := DeadlineStateAt(deadline, now)
		assert.GreaterOrEqual(t, order[current], order[previous], "state moved backward at %v", now)
		previous = current
	}
	assert.Equal(t, DeadlinePassed, previous)
}

func TestCanModifySelections(t *testing.T) {
	assert.True(t, CanModifySelections(DeadlineOpen, false))
	assert.True(t, CanModifySelections(DeadlineUrgent, false))
	assert.False(t, CanModifySelections(DeadlinePassed, false))
	assert.False(t, CanModifySelections(DeadlineOpen, true))
	assert.False(t, CanModifySelections(DeadlinePassed, true))
}
