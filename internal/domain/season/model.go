package season

import (
	"fmt"
	"time"
)

// Season carries the league calendar facts the keeper core needs: which year
// is active and when keeper declarations lock.
type Season struct {
	Year           int
	KeeperDeadline time.Time
	IsActive       bool
}

func (s Season) Validate() error {
	if s.Year <= 0 {
		return fmt.Errorf("season year is required")
	}
	if s.KeeperDeadline.IsZero() {
		return fmt.Errorf("season keeper deadline is required")
	}

	return nil
}

// DeadlineState is derived from current time against the deadline, never
// stored.
type DeadlineState string

const (
	DeadlineOpen        DeadlineState = "open"
	DeadlineApproaching DeadlineState = "approaching"
	DeadlineUrgent      DeadlineState = "urgent"
	DeadlinePassed      DeadlineState = "passed"
)

const (
	approachingWindow = 7 * 24 * time.Hour
	urgentWindow      = 24 * time.Hour
)

// DeadlineStateAt maps the remaining time to one of the four deadline states.
func DeadlineStateAt(deadline, now time.Time) DeadlineState {
	remaining := deadline.Sub(now)
	switch {
	case remaining <= 0:
		return DeadlinePassed
	case remaining < urgentWindow:
		return DeadlineUrgent
	case remaining <= approachingWindow:
		return DeadlineApproaching
	default:
		return DeadlineOpen
	}
}

// CanModifySelections gates every select/remove/bump mutation: selections are
// editable only before finalization and before the deadline.
func CanModifySelections(state DeadlineState, finalized bool) bool {
	return !finalized && state != DeadlinePassed
}
