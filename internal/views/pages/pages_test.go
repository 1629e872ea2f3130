package pages

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nutriplan/internal/plan"
	"nutriplan/models"
)

func TestLoginRendersMessageAndEmail(t *testing.T) {
	var buf bytes.Buffer
	if err := Login("Invalid <email>", "demo@nutriplan.app").Render(context.Background(), &buf); err != nil {
		t.Fatalf("render login: %v", err)
	}
	out := buf.String()
	for _, token := range []string{"<title>Sign in", "Invalid &lt;email&gt;", `value="demo@nutriplan.app"`, `action="/login"`} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected output to contain %q: %s", token, out)
		}
	}
}

func TestLoginPartialOmitsDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := LoginPartial("", "").Render(context.Background(), &buf); err != nil {
		t.Fatalf("render login partial: %v", err)
	}
	if strings.Contains(buf.String(), "<html") || strings.Contains(buf.String(), "role=\"alert\"") {
		t.Fatalf("unexpected partial output: %s", buf.String())
	}
}

func TestSignupRendersFields(t *testing.T) {
	var buf bytes.Buffer
	if err := Signup("Passwords do not match.", "Ada", "ada@example.com").Render(context.Background(), &buf); err != nil {
		t.Fatalf("render signup: %v", err)
	}
	out := buf.String()
	for _, token := range []string{"Passwords do not match.", `value="Ada"`, `name="confirm_password"`} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected output to contain %q: %s", token, out)
		}
	}
}

func TestCalendarRendersWeek(t *testing.T) {
	p := &plan.NutritionPlan{
		StartDate: "2024-01-03",
		EndDate:   "2024-03-02",
		Menus:     []models.DailyMenu{{TargetDate: "2024-01-04", Title: "Day 2 easy plan", TotalCalories: 1700}},
	}
	snapshot := NewCalendarSnapshot("Demo", p, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	if err := Calendar(snapshot).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render calendar: %v", err)
	}
	out := buf.String()
	for _, token := range []string{"Week of January 1, 2024", "week=2023-12-25", "week=2024-01-08", "Day 2 easy plan", "Plan from 2024-01-03 to 2024-03-02", `data-nav-section="calendar"`} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected output to contain %q: %s", token, out)
		}
	}
	if strings.Count(out, "<article") != 7 {
		t.Fatalf("expected seven day cards: %s", out)
	}
}

func TestCalendarWithoutPlan(t *testing.T) {
	snapshot := NewCalendarSnapshot("Demo", nil, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))
	if snapshot.HasPlan || len(snapshot.Cells) != 7 {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}

	var buf bytes.Buffer
	if err := CalendarPartial(snapshot).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render calendar partial: %v", err)
	}
	if !strings.Contains(buf.String(), "Generate a 60-day plan") {
		t.Fatalf("expected call to action: %s", buf.String())
	}
}

func TestWeekFromRequest(t *testing.T) {
	today := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	cases := map[string]string{
		"/app/calendar":                  "2024-05-10",
		"/app/calendar?week=2024-06-03":  "2024-06-03",
		"/app/calendar?week=next-monday": "2024-05-10",
	}
	for target, want := range cases {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if got := WeekFromRequest(req, today).Format(models.DateLayout); got != want {
			t.Fatalf("WeekFromRequest(%s) = %s, want %s", target, got, want)
		}
	}
}
