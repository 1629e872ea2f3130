package components

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"nutriplan/internal/plan"
	"nutriplan/models"
)

// SidebarLink is one navigation entry of the application shell.
type SidebarLink struct {
	Label   string
	Path    string
	Section string
}

type SidebarData struct {
	Active   string
	UserName string
	Links    []SidebarLink
}

func linkState(section, active string) string {
	if section == active {
		return "active"
	}
	return "inactive"
}

func Sidebar(data SidebarData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<aside class="sidebar"><nav>`)
		if data.UserName != "" {
			fmt.Fprintf(&b, `<p class="sidebar__user">%s</p>`, templ.EscapeString(data.UserName))
		}
		b.WriteString(`<ul>`)
		for _, link := range data.Links {
			fmt.Fprintf(&b, `<li><a href="%s" data-state="%s" data-nav-section="%s">%s</a></li>`,
				templ.EscapeString(link.Path),
				linkState(link.Section, data.Active),
				templ.EscapeString(link.Section),
				templ.EscapeString(link.Label),
			)
		}
		b.WriteString(`</ul><form method="post" action="/logout"><button type="submit">Sign out</button></form></nav></aside>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// StatCard shows one headline number with an optional delta.
func StatCard(label, value, delta, caption string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="stat-card"><p class="stat-card__label">%s</p><p class="stat-card__value">%s</p><p class="stat-card__delta">%s</p><p class="stat-card__caption">%s</p></div>`,
			templ.EscapeString(label),
			templ.EscapeString(value),
			templ.EscapeString(delta),
			templ.EscapeString(caption),
		)
		return err
	})
}

// DayCard renders one calendar cell with the menu summary, if any.
func DayCard(cell plan.DayCell) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		class := "day-card"
		if cell.IsToday {
			class += " day-card--today"
		}
		fmt.Fprintf(&b, `<article class="%s" data-date="%s"><header><span class="day-card__weekday">%s</span> <time datetime="%s">%s</time></header>`,
			class,
			cell.Date,
			templ.EscapeString(abbreviate(cell.Weekday)),
			cell.Date,
			templ.EscapeString(shortDate(cell.Date)),
		)
		if cell.Menu == nil {
			b.WriteString(`<p class="day-card__empty">No menu</p></article>`)
			_, err := io.WriteString(w, b.String())
			return err
		}

		fmt.Fprintf(&b, `<h3>%s</h3><p class="day-card__kcal">%.0f kcal</p>`, templ.EscapeString(cell.Menu.Title), cell.Menu.TotalCalories)
		writeMeals(&b, cell.Menu.Meals)
		b.WriteString(`</article>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// MealList renders the dishes of a menu grouped by meal.
func MealList(meals []models.Meal) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		writeMeals(&b, meals)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeMeals(b *strings.Builder, meals []models.Meal) {
	b.WriteString(`<ul class="meals">`)
	for _, meal := range meals {
		names := make([]string, 0, len(meal.Dishes))
		for _, dish := range meal.Dishes {
			names = append(names, templ.EscapeString(dish.Name))
		}
		fmt.Fprintf(b, `<li data-meal-type="%s"><strong>%s</strong> %s</li>`,
			templ.EscapeString(meal.MealType),
			templ.EscapeString(MealLabel(meal.MealType)),
			strings.Join(names, ", "),
		)
	}
	b.WriteString(`</ul>`)
}

// MealLabel is the display name of a meal type.
func MealLabel(mealType string) string {
	switch mealType {
	case models.MealBreakfast:
		return "Breakfast"
	case models.MealLunch:
		return "Lunch"
	case models.MealDinner:
		return "Dinner"
	case models.MealSnack:
		return "Snack"
	default:
		return mealType
	}
}

func shortDate(date string) string {
	if len(date) == len(models.DateLayout) {
		return date[5:]
	}
	return date
}

func abbreviate(weekday string) string {
	if len(weekday) > 3 {
		return weekday[:3]
	}
	return weekday
}
