package plan

import (
	"time"

	"nutriplan/models"
)

// NutritionPlan is the window of a user's menus starting today.
type NutritionPlan struct {
	UserID    string             `json:"user_id"`
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
	Menus     []models.DailyMenu `json:"menus"`
}

// DayCell is one slot of a calendar week.
type DayCell struct {
	Date    string            `json:"date"`
	Weekday string            `json:"weekday"`
	Menu    *models.DailyMenu `json:"menu,omitempty"`
	IsToday bool              `json:"is_today"`
}

// MenuOn returns the menu whose target date equals date exactly.
func (p NutritionPlan) MenuOn(date string) (models.DailyMenu, bool) {
	for _, menu := range p.Menus {
		if menu.TargetDate == date {
			return menu, true
		}
	}
	return models.DailyMenu{}, false
}

// MenuOnDay formats t in its own location before looking it up.
func (p NutritionPlan) MenuOnDay(t time.Time) (models.DailyMenu, bool) {
	return p.MenuOn(t.Format(models.DateLayout))
}

func (p NutritionPlan) ByDate() map[string]models.DailyMenu {
	byDate := make(map[string]models.DailyMenu, len(p.Menus))
	for _, menu := range p.Menus {
		byDate[menu.TargetDate] = menu
	}
	return byDate
}

// Week lays out Monday to Sunday of the week containing anchor. Days without
// a menu have a nil Menu.
func (p NutritionPlan) Week(anchor time.Time) []DayCell {
	byDate := p.ByDate()
	monday := WeekStart(anchor)
	cells := make([]DayCell, 0, 7)
	for i := range 7 {
		day := monday.AddDate(0, 0, i)
		date := day.Format(models.DateLayout)
		cell := DayCell{Date: date, Weekday: day.Weekday().String(), IsToday: date == p.StartDate}
		if menu, ok := byDate[date]; ok {
			cell.Menu = &menu
		}
		cells = append(cells, cell)
	}
	return cells
}

// WeekStart returns midnight of the Monday on or before t, in t's location.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
