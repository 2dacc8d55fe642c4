package live

import "time"

const (
	// countdownDuration is how long each limited-offer window runs.
	countdownDuration = 12 * time.Hour
	// countdownGrace keeps the expired state visible before the window
	// silently re-arms.
	countdownGrace = time.Hour
)

type CountdownState struct {
	Deadline    int64 `json:"deadline"` // unix milliseconds
	RemainingMS int64 `json:"remainingMs"`
	Expired     bool  `json:"expired"`
}

// resolveDeadline decides which deadline is in effect at now. A missing or
// corrupt stored value starts a fresh window, and so does a deadline whose
// grace period has fully elapsed. An expired deadline still inside the grace
// period is kept as is.
func resolveDeadline(now, stored time.Time) (deadline time.Time, changed bool) {
	if stored.IsZero() || now.After(stored.Add(countdownGrace)) {
		return now.Add(countdownDuration), true
	}
	return stored, false
}

func countdownState(now, deadline time.Time) CountdownState {
	remaining := deadline.Sub(now).Milliseconds()
	if remaining < 0 {
		remaining = 0
	}

	return CountdownState{
		Deadline:    deadline.UnixMilli(),
		RemainingMS: remaining,
		Expired:     !now.Before(deadline),
	}
}
