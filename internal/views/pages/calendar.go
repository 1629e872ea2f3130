package pages

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"

	"nutriplan/internal/plan"
	"nutriplan/internal/views/components"
	"nutriplan/internal/views/layout"
	"nutriplan/models"
)

// CalendarSnapshot is everything the week calendar needs to render.
type CalendarSnapshot struct {
	UserName  string
	HasPlan   bool
	StartDate string
	EndDate   string
	WeekStart time.Time
	Cells     []plan.DayCell
}

// NewCalendarSnapshot lays out the week containing anchor. A nil plan renders
// an empty week with a call to generate one.
func NewCalendarSnapshot(userName string, p *plan.NutritionPlan, anchor time.Time) CalendarSnapshot {
	snapshot := CalendarSnapshot{UserName: userName, WeekStart: plan.WeekStart(anchor)}
	if p == nil {
		snapshot.Cells = plan.NutritionPlan{}.Week(anchor)
		return snapshot
	}
	snapshot.HasPlan = true
	snapshot.StartDate = p.StartDate
	snapshot.EndDate = p.EndDate
	snapshot.Cells = p.Week(anchor)
	return snapshot
}

// WeekFromRequest reads the ?week=YYYY-MM-DD anchor, falling back to today.
func WeekFromRequest(r *http.Request, today time.Time) time.Time {
	value := strings.TrimSpace(r.URL.Query().Get("week"))
	if value == "" {
		return today
	}
	anchor, err := time.ParseInLocation(models.DateLayout, value, today.Location())
	if err != nil {
		return today
	}
	return anchor
}

func (s CalendarSnapshot) PreviousWeek() string {
	return s.WeekStart.AddDate(0, 0, -7).Format(models.DateLayout)
}

func (s CalendarSnapshot) NextWeek() string {
	return s.WeekStart.AddDate(0, 0, 7).Format(models.DateLayout)
}

func sidebar(userName string) templ.Component {
	return components.Sidebar(components.SidebarData{
		Active:   "calendar",
		UserName: userName,
		Links: []components.SidebarLink{
			{Label: "Calendar", Path: "/app/calendar", Section: "calendar"},
			{Label: "Menu history", Path: "/app/api/menus", Section: "history"},
			{Label: "Analysis", Path: "/app/api/analysis", Section: "analysis"},
		},
	})
}

// Calendar renders the full week calendar document.
func Calendar(snapshot CalendarSnapshot) templ.Component {
	return layout.Layout("Calendar · Nutriplan", sidebar(snapshot.UserName), CalendarPartial(snapshot), true)
}

// CalendarPartial renders only the calendar section for HTMX navigation.
func CalendarPartial(snapshot CalendarSnapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section id="calendar" class="calendar">`)
		fmt.Fprintf(&b, `<header class="calendar__header"><a href="/app/calendar?week=%s" hx-get="/app/calendar?week=%s" hx-target="#calendar" hx-swap="outerHTML">Previous week</a>`+
			`<h1>Week of %s</h1>`+
			`<a href="/app/calendar?week=%s" hx-get="/app/calendar?week=%s" hx-target="#calendar" hx-swap="outerHTML">Next week</a></header>`,
			snapshot.PreviousWeek(), snapshot.PreviousWeek(),
			snapshot.WeekStart.Format("January 2, 2006"),
			snapshot.NextWeek(), snapshot.NextWeek(),
		)
		if snapshot.HasPlan {
			fmt.Fprintf(&b, `<p class="calendar__range">Plan from %s to %s</p>`, snapshot.StartDate, snapshot.EndDate)
		} else {
			b.WriteString(`<p class="calendar__empty">You have no plan yet. <button hx-post="/app/api/plans">Generate a 60-day plan</button></p>`)
		}
		if _, err := io.WriteString(w, b.String()+`<div class="calendar__grid">`); err != nil {
			return err
		}
		for _, cell := range snapshot.Cells {
			if err := components.DayCard(cell).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div></section>`)
		return err
	})
}
