package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tmc/langchaingo/llms"

	"nutriplan/models"
)

type fakeModel struct {
	response string
	err      error
	messages []llms.MessageContent
	options  llms.CallOptions
}

func (f *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	for _, opt := range options {
		opt(&f.options)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.response}}}, nil
}

func (f *fakeModel) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	return f.response, f.err
}

func (f *fakeModel) prompt(t *testing.T) string {
	t.Helper()
	if len(f.messages) != 2 {
		t.Fatalf("expected system and user messages, got %d", len(f.messages))
	}
	text, ok := f.messages[1].Parts[0].(llms.TextContent)
	if !ok {
		t.Fatalf("unexpected message part %T", f.messages[1].Parts[0])
	}
	return text.Text
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{APIKey: "  "}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}

	client, err := NewClient(Config{APIKey: "sk-test", BaseURL: "http://localhost:1234/v1/"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if client.Model() != defaultModel || client.temperature != defaultTemperature {
		t.Fatalf("unexpected defaults model=%q temperature=%v", client.Model(), client.temperature)
	}
}

func TestGenerateDailyMenuNormalisesResponse(t *testing.T) {
	t.Parallel()

	model := &fakeModel{response: "```json\n" + `{
  "total_calories": "1650 kcal",
  "total_protein": 90,
  "meals": [
    {"meal_type": "Breakfast", "dishes": [
      {"name": "Miso soup", "calories": 120, "protein": "8", "ingredients": ["Tofu 50g", {"name": "Miso", "quantity": "15g"}, 3], "recipe": "Dissolve miso"}
    ]},
    {"meal_type": "brunch", "dishes": [{"name": "", "calories": 300, "ingredients": ["Rice"]}]}
  ]
}` + "\n```"}
	client := NewClientWithModel(model, "test-model", 0.4)

	profile := models.Profile{Age: 40, Gender: models.GenderMale, Allergies: []string{"shrimp"}}
	menu, err := client.GenerateDailyMenu(context.Background(), profile, DayRequest{TargetDate: "2024-05-01", MealCount: 3, CalorieTarget: 1700})
	if err != nil {
		t.Fatalf("GenerateDailyMenu() error = %v", err)
	}

	if menu.Title != "Special menu for 2024-05-01" || menu.TargetDate != "2024-05-01" {
		t.Fatalf("unexpected header %q %q", menu.Title, menu.TargetDate)
	}
	if menu.TotalCalories != 1650 || menu.TotalProtein != 90 {
		t.Fatalf("unexpected totals %+v", menu.Totals())
	}
	if len(menu.Meals) != 2 || menu.Meals[0].MealType != models.MealBreakfast || menu.Meals[1].MealType != models.MealSnack {
		t.Fatalf("unexpected meals %+v", menu.Meals)
	}

	soup := menu.Meals[0].Dishes[0]
	if soup.Protein != 8 || len(soup.Ingredients) != 3 {
		t.Fatalf("unexpected dish %+v", soup)
	}
	if soup.Ingredients[0].Label() != "Tofu 50g" || soup.Ingredients[1].Label() != "Miso 15g" || soup.Ingredients[2].Label() != "3 as needed" {
		t.Fatalf("unexpected ingredient labels %q %q %q", soup.Ingredients[0].Label(), soup.Ingredients[1].Label(), soup.Ingredients[2].Label())
	}

	unnamed := menu.Meals[1].Dishes[0]
	if unnamed.Name != "Unnamed dish" || unnamed.Recipe != "No recipe provided" {
		t.Fatalf("expected defaults, got %+v", unnamed)
	}

	prompt := model.prompt(t)
	for _, want := range []string{"2024-05-01", "1700 kcal", "Number of meals: 3", "Allergies: shrimp", "Special requests: none"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected prompt to contain %q:\n%s", want, prompt)
		}
	}
	if !model.options.JSONMode || model.options.Temperature != 0.4 {
		t.Fatalf("unexpected call options %+v", model.options)
	}
}

func TestGenerateDailyMenuValidation(t *testing.T) {
	t.Parallel()

	client := NewClientWithModel(&fakeModel{response: "{}"}, "test", 0)
	cases := map[string]DayRequest{
		"blank date":   {CalorieTarget: 1800},
		"bad date":     {TargetDate: "tomorrow", CalorieTarget: 1800},
		"zero target":  {TargetDate: "2024-05-01"},
		"below target": {TargetDate: "2024-05-01", CalorieTarget: -5},
	}
	for name, req := range cases {
		if _, err := client.GenerateDailyMenu(context.Background(), models.Profile{}, req); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("%s: expected ErrInvalidRequest, got %v", name, err)
		}
	}
}

func TestGenerateDailyMenuModelErrors(t *testing.T) {
	t.Parallel()

	req := DayRequest{TargetDate: "2024-05-01", CalorieTarget: 1800}

	failing := NewClientWithModel(&fakeModel{err: errors.New("rate limited")}, "test", 0)
	if _, err := failing.GenerateDailyMenu(context.Background(), models.Profile{}, req); err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("expected model error, got %v", err)
	}

	garbage := NewClientWithModel(&fakeModel{response: "Sorry, I cannot help"}, "test", 0)
	if _, err := garbage.GenerateDailyMenu(context.Background(), models.Profile{}, req); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestStripFences(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		`{"a":1}`:                `{"a":1}`,
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}```":       `{"a":1}`,
		"```{\"a\":1}```":         `{"a":1}`,
	}
	for in, want := range cases {
		if got := stripFences(in); got != want {
			t.Fatalf("stripFences(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseNumeric(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   any
		want float64
	}{
		{nil, 0},
		{12.5, 12.5},
		{"420 kcal", 420},
		{"approx. 3.5g", 3.5},
		{"unknown", 0},
		{true, 0},
	}
	for _, tc := range cases {
		if got := parseNumeric(tc.in); got != tc.want {
			t.Fatalf("parseNumeric(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
