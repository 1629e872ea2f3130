package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"nutriplan/models"
)

// ErrInvalidRequest reports a DayRequest that cannot be sent to the model.
var ErrInvalidRequest = errors.New("ai: invalid menu request")

const menuSystemPrompt = "You are an expert nutritionist. Design balanced, realistic daily menus and answer with JSON only."

// DayRequest describes the single-day menu a user asked for.
type DayRequest struct {
	TargetDate      string `json:"target_date"`
	MealCount       int    `json:"meal_count"`
	CalorieTarget   int    `json:"calorie_target"`
	SpecialRequests string `json:"special_requests"`
}

// GenerateDailyMenu asks the model for one day's menu and normalises the
// answer into an unsaved DailyMenu.
func (c *Client) GenerateDailyMenu(ctx context.Context, profile models.Profile, req DayRequest) (models.DailyMenu, error) {
	req.TargetDate = strings.TrimSpace(req.TargetDate)
	if req.TargetDate == "" {
		return models.DailyMenu{}, fmt.Errorf("%w: target date is required", ErrInvalidRequest)
	}
	if _, err := time.Parse(models.DateLayout, req.TargetDate); err != nil {
		return models.DailyMenu{}, fmt.Errorf("%w: target date must be YYYY-MM-DD", ErrInvalidRequest)
	}
	if req.CalorieTarget <= 0 {
		return models.DailyMenu{}, fmt.Errorf("%w: calorie target must be positive", ErrInvalidRequest)
	}
	if req.MealCount <= 0 {
		req.MealCount = 3
	}

	content, err := c.complete(ctx, menuSystemPrompt, buildMenuPrompt(profile, req))
	if err != nil {
		return models.DailyMenu{}, err
	}

	var parsed aiMenuResponse
	decoder := json.NewDecoder(strings.NewReader(content))
	decoder.UseNumber()
	if err := decoder.Decode(&parsed); err != nil {
		return models.DailyMenu{}, fmt.Errorf("ai: parse JSON payload: %w", err)
	}

	return normaliseMenu(req.TargetDate, parsed), nil
}

func buildMenuPrompt(profile models.Profile, req DayRequest) string {
	special := normaliseText(req.SpecialRequests)
	if special == "" {
		special = "none"
	}

	return fmt.Sprintf(`Create a personalised menu for one day.

User profile:
- Age: %d
- Gender: %s
- Height: %.0f cm
- Weight: %.1f kg
- Activity level: %s
- Goal: %s
- Allergies: %s
- Dietary restrictions: %s
- Preferred cuisine: %s
- Disliked foods: %s

Menu requirements:
- Target date: %s
- Number of meals: %d
- Calorie target: %d kcal
- Special requests: %s

Always respect allergies and dietary restrictions. Give every dish concrete ingredients with quantities and short preparation steps.
Return JSON with this shape:
{
  "title": string,
  "total_calories": number,
  "total_protein": number,
  "total_carbs": number,
  "total_fat": number,
  "meals": [
    {
      "meal_type": "breakfast" | "lunch" | "dinner" | "snack",
      "dishes": [
        {"name": string, "calories": number, "protein": number, "carbs": number, "fat": number,
         "ingredients": [{"name": string, "quantity": string}], "recipe": string}
      ]
    }
  ]
}
Strict rules: respond with raw JSON, no Markdown, no comments.`,
		profile.Age,
		orNone(profile.Gender),
		profile.HeightCM,
		profile.WeightKG,
		orNone(profile.ActivityLevel),
		orNone(profile.Goal),
		joinOrNone(profile.Allergies),
		joinOrNone(profile.DietaryRestrictions),
		joinOrNone(profile.PreferredCuisine),
		joinOrNone(profile.DislikedFoods),
		req.TargetDate,
		req.MealCount,
		req.CalorieTarget,
		special,
	)
}

type aiMenuResponse struct {
	Title         string   `json:"title"`
	TotalCalories any      `json:"total_calories"`
	TotalProtein  any      `json:"total_protein"`
	TotalCarbs    any      `json:"total_carbs"`
	TotalFat      any      `json:"total_fat"`
	Meals         []aiMeal `json:"meals"`
}

type aiMeal struct {
	MealType string   `json:"meal_type"`
	Dishes   []aiDish `json:"dishes"`
}

type aiDish struct {
	Name        string            `json:"name"`
	Calories    any               `json:"calories"`
	Protein     any               `json:"protein"`
	Carbs       any               `json:"carbs"`
	Fat         any               `json:"fat"`
	Ingredients []json.RawMessage `json:"ingredients"`
	Recipe      string            `json:"recipe"`
}

func normaliseMenu(targetDate string, data aiMenuResponse) models.DailyMenu {
	title := normaliseText(data.Title)
	if title == "" {
		title = "Special menu for " + targetDate
	}

	menu := models.DailyMenu{
		Title:         title,
		TargetDate:    targetDate,
		TotalCalories: parseNumeric(data.TotalCalories),
		TotalProtein:  parseNumeric(data.TotalProtein),
		TotalCarbs:    parseNumeric(data.TotalCarbs),
		TotalFat:      parseNumeric(data.TotalFat),
		Meals:         make([]models.Meal, 0, len(data.Meals)),
	}

	for _, meal := range data.Meals {
		mealType := strings.ToLower(normaliseValue(meal.MealType))
		if !models.ValidMealType(mealType) {
			mealType = models.MealSnack
		}
		dishes := make([]models.Dish, 0, len(meal.Dishes))
		for _, dish := range meal.Dishes {
			dishes = append(dishes, normaliseDish(dish))
		}
		menu.Meals = append(menu.Meals, models.Meal{MealType: mealType, Dishes: dishes})
	}

	return menu
}

func normaliseDish(data aiDish) models.Dish {
	name := normaliseText(data.Name)
	if name == "" {
		name = "Unnamed dish"
	}
	recipe := strings.TrimSpace(data.Recipe)
	if normaliseValue(recipe) == "" {
		recipe = "No recipe provided"
	}

	ingredients := make([]models.Ingredient, 0, len(data.Ingredients))
	for _, raw := range data.Ingredients {
		var ingredient models.Ingredient
		if err := json.Unmarshal(raw, &ingredient); err != nil {
			// Numbers or nested lists are kept as their literal text.
			ingredient = models.PlainIngredient(string(bytes.Trim(raw, `"`)))
		}
		if ingredient.Label() == "" {
			continue
		}
		ingredients = append(ingredients, ingredient)
	}

	return models.Dish{
		Name:        name,
		Calories:    parseNumeric(data.Calories),
		Protein:     parseNumeric(data.Protein),
		Carbs:       parseNumeric(data.Carbs),
		Fat:         parseNumeric(data.Fat),
		Ingredients: ingredients,
		Recipe:      recipe,
	}
}

func normaliseValue(value string) string {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "", "n/a", "na", "none", "null":
		return ""
	default:
		return value
	}
}

func normaliseText(value string) string {
	value = normaliseValue(value)
	if value == "" {
		return ""
	}
	return strings.Join(strings.Fields(value), " ")
}

func orNone(value string) string {
	if value = normaliseText(value); value == "" {
		return "none"
	}
	return value
}

func joinOrNone(values []string) string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if v = normaliseText(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	if len(cleaned) == 0 {
		return "none"
	}
	return strings.Join(cleaned, ", ")
}

// parseNumeric accepts numbers, numeric strings and strings such as "420 kcal".
func parseNumeric(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case json.Number:
		parsed, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return 0
		}
		return parsed
	case string:
		return parseFirstNumber(v)
	default:
		return 0
	}
}

func parseFirstNumber(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	match := numberPattern.FindString(value)
	if match == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return parsed
}

var numberPattern = regexp.MustCompile(`[-+]?\d*\.?\d+`)
