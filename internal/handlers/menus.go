package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"

	"nutriplan/internal/ai"
	applog "nutriplan/internal/log"
	"nutriplan/internal/nutrition"
	"nutriplan/internal/plan"
	"nutriplan/models"
)

type menuRequest struct {
	Title         string        `json:"title"`
	TargetDate    string        `json:"target_date"`
	TotalCalories float64       `json:"total_calories"`
	TotalProtein  float64       `json:"total_protein"`
	TotalCarbs    float64       `json:"total_carbs"`
	TotalFat      float64       `json:"total_fat"`
	Meals         []models.Meal `json:"meals"`
}

type generateMenuRequest struct {
	TargetDate        string `json:"target_date"`
	MealCount         int    `json:"meal_count"`
	CalorieAdjustment int    `json:"calorie_adjustment"`
	SpecialRequests   string `json:"special_requests"`
}

type favoriteRequest struct {
	IsFavorite *bool `json:"is_favorite"`
}

type shoppingListResponse struct {
	MenuID string   `json:"menu_id"`
	Items  []string `json:"items"`
}

// MenuResource handles saved menus of the current user.
//
//	GET    /app/api/menus?from=&to=&favorite=
//	POST   /app/api/menus
//	POST   /app/api/menus/generate
//	GET    /app/api/menus/summary
//	GET    /app/api/menus/{id}
//	PUT    /app/api/menus/{id}
//	DELETE /app/api/menus/{id}
//	POST   /app/api/menus/{id}/favorite
//	GET    /app/api/menus/{id}/shopping-list
func MenuResource(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	owner := models.OwnerKey(userID)

	path := strings.TrimPrefix(r.URL.Path, "/app/api/menus")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			listMenus(w, r, owner)
		case http.MethodPost:
			saveMenu(w, r, owner)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	if path == "summary" {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		summarizeMenus(w, r, owner)
		return
	}

	if path == "generate" {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		generateMenu(w, r, userID)
		return
	}

	segments := strings.Split(path, "/")
	menu, ok := loadOwnedMenu(w, r, segments[0], owner)
	if !ok {
		return
	}

	if len(segments) > 1 {
		switch {
		case len(segments) == 2 && segments[1] == "favorite" && r.Method == http.MethodPost:
			toggleFavorite(w, r, menu)
		case len(segments) == 2 && segments[1] == "shopping-list" && r.Method == http.MethodGet:
			writeJSON(w, http.StatusOK, shoppingListResponse{MenuID: menu.ID, Items: nutrition.ShoppingList(menu)})
		case len(segments) == 2 && (segments[1] == "favorite" || segments[1] == "shopping-list"):
			w.WriteHeader(http.StatusMethodNotAllowed)
		default:
			http.NotFound(w, r)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, menu)
	case http.MethodPut:
		updateMenu(w, r, menu)
	case http.MethodDelete:
		deleteMenu(w, r, menu)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// loadOwnedMenu reports menus of other users as missing.
func loadOwnedMenu(w http.ResponseWriter, r *http.Request, id, owner string) (models.DailyMenu, bool) {
	menu, err := planning.Store.Get(r.Context(), id)
	if err != nil {
		writePlanError(w, r, err, "unable to load menu")
		return models.DailyMenu{}, false
	}
	if menu.CreatedBy != owner {
		applog.Debug(r.Context(), "menu access denied", "id", id)
		writeJSONError(w, http.StatusNotFound, "menu not found")
		return models.DailyMenu{}, false
	}
	return menu, true
}

func listMenus(w http.ResponseWriter, r *http.Request, owner string) {
	query := r.URL.Query()
	filter := plan.Filter{
		CreatedBy: owner,
		From:      strings.TrimSpace(query.Get("from")),
		To:        strings.TrimSpace(query.Get("to")),
	}
	for _, value := range []string{filter.From, filter.To} {
		if value == "" {
			continue
		}
		if _, err := time.Parse(models.DateLayout, value); err != nil {
			writeJSONError(w, http.StatusBadRequest, "from and to must be YYYY-MM-DD")
			return
		}
	}
	if favorite := strings.TrimSpace(query.Get("favorite")); favorite != "" {
		only, err := strconv.ParseBool(favorite)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "favorite must be true or false")
			return
		}
		filter.FavoritesOnly = only
	}

	menus, err := planning.Store.Find(r.Context(), filter, plan.OrderDescending)
	if err != nil {
		writePlanError(w, r, err, "unable to load menus")
		return
	}
	if menus == nil {
		menus = []models.DailyMenu{}
	}
	writeJSON(w, http.StatusOK, menus)
}

func summarizeMenus(w http.ResponseWriter, r *http.Request, owner string) {
	menus, err := planning.Store.Find(r.Context(), plan.Filter{CreatedBy: owner}, plan.OrderDescending)
	if err != nil {
		writePlanError(w, r, err, "unable to load menus")
		return
	}
	writeJSON(w, http.StatusOK, nutrition.History(menus))
}

func saveMenu(w http.ResponseWriter, r *http.Request, owner string) {
	var payload menuRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		applog.Debug(r.Context(), "invalid menu payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	title := strings.TrimSpace(payload.Title)
	if title == "" {
		title = "Special menu for " + payload.TargetDate
	}

	saved, err := planning.Service.SaveMenu(r.Context(), models.DailyMenu{
		Title:         title,
		TargetDate:    strings.TrimSpace(payload.TargetDate),
		TotalCalories: payload.TotalCalories,
		TotalProtein:  payload.TotalProtein,
		TotalCarbs:    payload.TotalCarbs,
		TotalFat:      payload.TotalFat,
		Meals:         payload.Meals,
		CreatedBy:     owner,
	})
	if err != nil {
		writePlanError(w, r, err, "We couldn't save your menu. Please try again.")
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func generateMenu(w http.ResponseWriter, r *http.Request, userID uint) {
	ctx := r.Context()
	if planning.Drafter == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "AI menu generation is not configured")
		return
	}

	var payload generateMenuRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		applog.Debug(ctx, "invalid menu generation payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(payload.TargetDate) == "" {
		payload.TargetDate = planning.Reader.Today().Format(models.DateLayout)
	}

	profile, err := loadProfile(ctx, userID)
	if err != nil {
		applog.Error(ctx, "failed to load profile for menu generation", "error", err)
		writeJSONError(w, http.StatusServiceUnavailable, "unable to load profile")
		return
	}

	draft, err := planning.Drafter.GenerateDailyMenu(ctx, profile, ai.DayRequest{
		TargetDate:      payload.TargetDate,
		MealCount:       payload.MealCount,
		CalorieTarget:   nutrition.TargetCalories(profile, payload.CalorieAdjustment),
		SpecialRequests: payload.SpecialRequests,
	})
	if err != nil {
		if errors.Is(err, ai.ErrInvalidRequest) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		applog.Error(ctx, "menu generation failed", "error", err)
		writeJSONError(w, http.StatusBadGateway, "We couldn't generate a menu right now. Please try again later.")
		return
	}

	draft.CreatedBy = models.OwnerKey(userID)
	plan.NormalizeTotals(ctx, &draft)
	writeJSON(w, http.StatusOK, draft)
}

func updateMenu(w http.ResponseWriter, r *http.Request, menu models.DailyMenu) {
	ctx := r.Context()

	var payload menuRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		applog.Debug(ctx, "invalid menu update payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.TargetDate != "" && payload.TargetDate != menu.TargetDate {
		writeJSONError(w, http.StatusBadRequest, "target_date cannot be changed")
		return
	}
	for _, meal := range payload.Meals {
		if !models.ValidMealType(meal.MealType) {
			writeJSONError(w, http.StatusBadRequest, "unknown meal type "+meal.MealType)
			return
		}
	}

	if title := strings.TrimSpace(payload.Title); title != "" {
		menu.Title = title
	}
	if payload.Meals != nil {
		menu.Meals = payload.Meals
	}
	menu.TotalCalories = payload.TotalCalories
	menu.TotalProtein = payload.TotalProtein
	menu.TotalCarbs = payload.TotalCarbs
	menu.TotalFat = payload.TotalFat
	plan.NormalizeTotals(ctx, &menu)

	updated, err := planning.Store.Update(ctx, menu.ID, map[string]any{
		"title":          menu.Title,
		"meals":          datatypes.JSONSlice[models.Meal](menu.Meals),
		"total_calories": menu.TotalCalories,
		"total_protein":  menu.TotalProtein,
		"total_carbs":    menu.TotalCarbs,
		"total_fat":      menu.TotalFat,
	})
	if err != nil {
		writePlanError(w, r, err, "We couldn't update your menu. Please try again.")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func toggleFavorite(w http.ResponseWriter, r *http.Request, menu models.DailyMenu) {
	var payload favoriteRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	favorite := !menu.IsFavorite
	if payload.IsFavorite != nil {
		favorite = *payload.IsFavorite
	}

	updated, err := planning.Store.Update(r.Context(), menu.ID, map[string]any{"is_favorite": favorite})
	if err != nil {
		writePlanError(w, r, err, "We couldn't update your menu. Please try again.")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func deleteMenu(w http.ResponseWriter, r *http.Request, menu models.DailyMenu) {
	if err := planning.Store.DeleteByID(r.Context(), menu.ID); err != nil {
		writePlanError(w, r, err, "We couldn't delete your menu. Please try again.")
		return
	}
	applog.Debug(r.Context(), "menu deleted", "id", menu.ID, "target_date", menu.TargetDate)
	w.WriteHeader(http.StatusNoContent)
}
