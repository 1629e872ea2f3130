package nutrition

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"nutriplan/models"
)

// Ranges maps the supported analysis windows to their length in days.
var Ranges = map[string]int{
	"7days":  7,
	"30days": 30,
	"90days": 90,
}

const comparedWeeks = 4

// DailyPoint averages the menus that share a target date.
type DailyPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	models.Macros
}

// WeeklyPoint is the average calories of one rolling seven-day window.
type WeeklyPoint struct {
	Label    string  `json:"label"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	Calories float64 `json:"calories"`
}

// PFCSplit is the calorie contribution of protein, fat and carbohydrates.
type PFCSplit struct {
	ProteinKcal float64 `json:"protein_kcal"`
	FatKcal     float64 `json:"fat_kcal"`
	CarbsKcal   float64 `json:"carbs_kcal"`
}

// Summary is the nutrition dashboard over one analysis window.
type Summary struct {
	From            string        `json:"from"`
	To              string        `json:"to"`
	MenuCount       int           `json:"menu_count"`
	Average         models.Macros `json:"average"`
	Daily           []DailyPoint  `json:"daily"`
	Weekly          []WeeklyPoint `json:"weekly"`
	PFC             PFCSplit      `json:"pfc"`
	TargetCalories  int           `json:"target_calories"`
	AchievementRate int           `json:"achievement_rate"`
}

// Analyze summarises menus dated within [today-days, today]. Weekly points
// always cover the last four rolling weeks ending today, oldest first.
func Analyze(menus []models.DailyMenu, today time.Time, days, targetCalories int) Summary {
	today = midnight(today)
	from := today.AddDate(0, 0, -days)

	summary := Summary{
		From:           from.Format(models.DateLayout),
		To:             today.Format(models.DateLayout),
		TargetCalories: targetCalories,
		Daily:          []DailyPoint{},
	}

	var total models.Macros
	index := map[string]int{}
	for _, menu := range menus {
		date, err := menu.Date()
		if err != nil || date.Before(from) || date.After(today) {
			continue
		}
		summary.MenuCount++
		total = total.Add(menu.Totals())

		pos, ok := index[menu.TargetDate]
		if !ok {
			pos = len(summary.Daily)
			index[menu.TargetDate] = pos
			summary.Daily = append(summary.Daily, DailyPoint{Date: menu.TargetDate})
		}
		summary.Daily[pos].Count++
		summary.Daily[pos].Macros = summary.Daily[pos].Macros.Add(menu.Totals())
	}

	for i := range summary.Daily {
		summary.Daily[i].Macros = averageOf(summary.Daily[i].Macros, summary.Daily[i].Count)
	}
	slices.SortFunc(summary.Daily, func(a, b DailyPoint) int {
		return strings.Compare(a.Date, b.Date)
	})

	summary.Average = averageOf(total, summary.MenuCount)
	summary.PFC = PFCSplit{
		ProteinKcal: summary.Average.Protein * 4,
		FatKcal:     summary.Average.Fat * 9,
		CarbsKcal:   summary.Average.Carbs * 4,
	}
	if targetCalories > 0 {
		summary.AchievementRate = int(math.Round(summary.Average.Calories / float64(targetCalories) * 100))
	}
	summary.Weekly = weeklyComparison(menus, today)

	return summary
}

func weeklyComparison(menus []models.DailyMenu, today time.Time) []WeeklyPoint {
	points := make([]WeeklyPoint, comparedWeeks)
	for i := 0; i < comparedWeeks; i++ {
		end := today.AddDate(0, 0, -7*i)
		start := end.AddDate(0, 0, -6)

		var sum float64
		var count int
		for _, menu := range menus {
			date, err := menu.Date()
			if err != nil || date.Before(start) || date.After(end) {
				continue
			}
			sum += menu.TotalCalories
			count++
		}

		point := WeeklyPoint{
			Label: fmt.Sprintf("%d/%d - %d/%d", start.Month(), start.Day(), end.Month(), end.Day()),
			From:  start.Format(models.DateLayout),
			To:    end.Format(models.DateLayout),
		}
		if count > 0 {
			point.Calories = math.Round(sum / float64(count))
		}
		points[comparedWeeks-1-i] = point
	}
	return points
}

func averageOf(sum models.Macros, count int) models.Macros {
	if count == 0 {
		return models.Macros{}
	}
	n := float64(count)
	return models.Macros{
		Calories: math.Round(sum.Calories / n),
		Protein:  math.Round(sum.Protein / n),
		Carbs:    math.Round(sum.Carbs / n),
		Fat:      math.Round(sum.Fat / n),
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
