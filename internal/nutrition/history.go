package nutrition

import (
	"math"

	"nutriplan/models"
)

// HistoryStats summarises a user's saved menus.
type HistoryStats struct {
	Total           int `json:"total"`
	Favorites       int `json:"favorites"`
	AverageCalories int `json:"average_calories"`
}

func History(menus []models.DailyMenu) HistoryStats {
	stats := HistoryStats{Total: len(menus)}
	if len(menus) == 0 {
		return stats
	}
	var calories float64
	for _, menu := range menus {
		if menu.IsFavorite {
			stats.Favorites++
		}
		calories += menu.TotalCalories
	}
	stats.AverageCalories = int(math.Round(calories / float64(len(menus))))
	return stats
}
