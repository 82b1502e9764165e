package engine

import (
	"math"

	"github.com/lazypower/duedays/internal/store"
)

// Logistic curve parameters.
const (
	countSteepness  = 0.8 // a
	countInflection = 5.0 // n0: ~50 at five open tasks

	deadlineSteepness  = 1.5 // b
	deadlineInflection = 2.0 // d0: ~50 when the closest deadline is two days out

	// DeadlineWeight is the share of the deadline score in the geometric mean;
	// the task-count score gets the rest.
	DeadlineWeight = 0.7
)

// Score is a snapshot of the completion health of a task list.
type Score struct {
	Count    float64 `json:"count" yaml:"count"`
	Deadline float64 `json:"deadline" yaml:"deadline"`
	Overall  float64 `json:"overall" yaml:"overall"`
}

// Tier buckets an overall score for display.
type Tier int

const (
	TierPoor Tier = iota
	TierPassable
	TierGood
)

// Tier returns the display tier of the overall score.
func (s Score) Tier() Tier {
	return TierFor(s.Overall)
}

// TierFor maps an overall score to its tier: >= 80 good, >= 60 passable.
func TierFor(overall float64) Tier {
	switch {
	case overall >= 80:
		return TierGood
	case overall >= 60:
		return TierPassable
	default:
		return TierPoor
	}
}

func (t Tier) String() string {
	switch t {
	case TierGood:
		return "good"
	case TierPassable:
		return "passable"
	default:
		return "poor"
	}
}

// Advice is the one-line status message shown under a score.
func (t Tier) Advice() string {
	switch t {
	case TierGood:
		return "good, can relax"
	case TierPassable:
		return "passable, handle tasks soon"
	default:
		return "not good, handle immediately"
	}
}

// CountScore penalizes the number of open tasks: 100 / (1 + e^(a(n-n0))).
func CountScore(n int) float64 {
	return 100 / (1 + math.Exp(countSteepness*(float64(n)-countInflection)))
}

// DeadlineScore penalizes the most urgent task: 100 / (1 + e^(-b(d-d0))),
// where d is the minimum remaining days. An empty list has no urgency and
// scores exactly 100.
func DeadlineScore(tasks []store.Task) float64 {
	if len(tasks) == 0 {
		return 100
	}
	minDays := tasks[0].Days
	for _, t := range tasks[1:] {
		minDays = min(minDays, t.Days)
	}
	return deadlineCurve(minDays)
}

func deadlineCurve(d int) float64 {
	return 100 / (1 + math.Exp(-deadlineSteepness*(float64(d)-deadlineInflection)))
}

// Evaluate combines both sub-scores with a weighted geometric mean:
// deadline^w * count^(1-w). A count score that underflows to 0 on a huge list
// gives an overall of 0, not NaN.
func Evaluate(tasks []store.Task) Score {
	count := CountScore(len(tasks))
	deadline := DeadlineScore(tasks)
	overall := math.Exp(DeadlineWeight*math.Log(deadline) + (1-DeadlineWeight)*math.Log(count))
	return Score{Count: count, Deadline: deadline, Overall: overall}
}
