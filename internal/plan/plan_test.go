package plan

import (
	"testing"
	"time"

	"nutriplan/models"
)

func TestMenuOnDayUsesOwnLocation(t *testing.T) {
	t.Parallel()

	p := NutritionPlan{Menus: []models.DailyMenu{{TargetDate: "2024-01-02"}}}

	tokyo := time.FixedZone("JST", 9*60*60)
	local := time.Date(2024, 1, 2, 1, 0, 0, 0, tokyo)
	if _, ok := p.MenuOnDay(local); !ok {
		t.Fatal("expected lookup in the time's own location")
	}
	if _, ok := p.MenuOnDay(local.UTC()); ok {
		t.Fatal("expected UTC conversion to move to the previous day")
	}
}

func TestByDate(t *testing.T) {
	t.Parallel()

	p := NutritionPlan{Menus: []models.DailyMenu{{ID: "a", TargetDate: "2024-01-01"}, {ID: "b", TargetDate: "2024-01-02"}}}
	byDate := p.ByDate()
	if len(byDate) != 2 || byDate["2024-01-02"].ID != "b" {
		t.Fatalf("unexpected map %+v", byDate)
	}
}

func TestWeekLaysOutMondayToSunday(t *testing.T) {
	t.Parallel()

	p := NutritionPlan{
		StartDate: "2024-01-03",
		Menus: []models.DailyMenu{
			{ID: "wed", TargetDate: "2024-01-03"},
			{ID: "sun", TargetDate: "2024-01-07"},
		},
	}
	cells := p.Week(time.Date(2024, 1, 5, 15, 0, 0, 0, time.UTC))
	if len(cells) != 7 {
		t.Fatalf("expected 7 cells, got %d", len(cells))
	}
	if cells[0].Date != "2024-01-01" || cells[0].Weekday != "Monday" || cells[6].Date != "2024-01-07" {
		t.Fatalf("unexpected week bounds %s..%s", cells[0].Date, cells[6].Date)
	}
	if cells[0].Menu != nil {
		t.Fatal("expected empty Monday")
	}
	if cells[2].Menu == nil || cells[2].Menu.ID != "wed" || !cells[2].IsToday {
		t.Fatalf("unexpected Wednesday cell %+v", cells[2])
	}
	if cells[6].Menu == nil || cells[6].Menu.ID != "sun" || cells[6].IsToday {
		t.Fatalf("unexpected Sunday cell %+v", cells[6])
	}
}

func TestWeekStart(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"2024-01-01": "2024-01-01",
		"2024-01-07": "2024-01-01",
		"2024-01-08": "2024-01-08",
		"2024-03-01": "2024-02-26",
	}
	for in, want := range cases {
		day, _ := time.Parse(models.DateLayout, in)
		if got := WeekStart(day).Format(models.DateLayout); got != want {
			t.Fatalf("WeekStart(%s) = %s, want %s", in, got, want)
		}
	}
}
