package nutrition

import (
	"math"
	"slices"
	"strings"

	"nutriplan/models"
)

// DefaultWeightLossGoal is the percentage of the initial weight a user aims
// to lose when the profile does not say otherwise.
const DefaultWeightLossGoal = 5.0

// WeightPoint is one day of the weight log.
type WeightPoint struct {
	Date     string  `json:"date"`
	WeightKG float64 `json:"weight_kg"`
}

// Progress compares the first and latest logged weights against the
// weight-loss goal.
type Progress struct {
	Entries       []WeightPoint `json:"entries"`
	InitialWeight float64       `json:"initial_weight"`
	LatestWeight  float64       `json:"latest_weight"`
	TotalLoss     float64       `json:"total_loss"`
	LossPercent   float64       `json:"loss_percent"`
	GoalPercent   float64       `json:"goal_percent"`
	TargetWeight  float64       `json:"target_weight"`
	RemainingLoss float64       `json:"remaining_loss"`
	GoalProgress  int           `json:"goal_progress"`
}

// WeightProgress builds a Progress from a weight log. Entries may arrive in
// any order. Without entries the profile weight stands in for both the
// initial and latest weight. A goalPercent outside (0, 100) falls back to
// DefaultWeightLossGoal. GoalProgress is clamped to 0..100.
func WeightProgress(entries []models.WeightEntry, profileWeight, goalPercent float64) Progress {
	if goalPercent <= 0 || goalPercent >= 100 || math.IsNaN(goalPercent) {
		goalPercent = DefaultWeightLossGoal
	}

	points := make([]WeightPoint, 0, len(entries))
	for _, entry := range entries {
		points = append(points, WeightPoint{Date: entry.EntryDate, WeightKG: entry.WeightKG})
	}
	slices.SortFunc(points, func(a, b WeightPoint) int {
		return strings.Compare(a.Date, b.Date)
	})

	progress := Progress{
		Entries:       points,
		InitialWeight: profileWeight,
		LatestWeight:  profileWeight,
		GoalPercent:   goalPercent,
	}
	if len(points) > 0 {
		progress.InitialWeight = points[0].WeightKG
		progress.LatestWeight = points[len(points)-1].WeightKG
	}

	initial := progress.InitialWeight
	if initial <= 0 {
		return progress
	}

	loss := initial - progress.LatestWeight
	target := initial * (1 - goalPercent/100)
	progress.TotalLoss = round1(loss)
	progress.LossPercent = round1(loss / initial * 100)
	progress.TargetWeight = round1(target)
	progress.RemainingLoss = round1(max(progress.LatestWeight-target, 0))
	progress.GoalProgress = int(math.Round(min(max(loss/(initial-target)*100, 0), 100)))
	return progress
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
