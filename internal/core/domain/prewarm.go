package domain

import "time"

// Outcome is the result of attempting to prewarm one cache unit.
type Outcome int

const (
	// OutcomeCompleted means the replay tool exited successfully.
	OutcomeCompleted Outcome = iota
	// OutcomeFailed means the replay tool failed or timed out.
	OutcomeFailed
	// OutcomeSkipped means the unit is not replayable.
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeFailed:
		return "failed"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// PrewarmResult accumulates outcomes over a prewarm batch.
type PrewarmResult struct {
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
	Total     int `json:"total"`
}

// Record counts one outcome.
func (r *PrewarmResult) Record(o Outcome) {
	switch o {
	case OutcomeCompleted:
		r.Completed++
	case OutcomeFailed:
		r.Failed++
	case OutcomeSkipped:
		r.Skipped++
	}
	r.Total++
}

// Balanced reports whether Total equals the sum of the outcome counters.
func (r PrewarmResult) Balanced() bool {
	return r.Total == r.Completed+r.Failed+r.Skipped
}

// PrewarmRecord is the persisted history of the last prewarm of one game.
type PrewarmRecord struct {
	GameID   string        `json:"game_id"`
	GameName string        `json:"game_name,omitempty"`
	LastRun  time.Time     `json:"last_run"`
	Result   PrewarmResult `json:"result"`
}
