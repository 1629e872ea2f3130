// Command seedplan generates and stores a 60-day plan for an existing user.
//
//	seedplan <email> [start-date] [lifestyle]
//
// The start date defaults to today in PLAN_TIMEZONE. PLAN_CATALOG_DIR selects
// the dish catalog used for generation.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"

	"nutriplan/internal/catalog"
	"nutriplan/internal/config"
	"nutriplan/internal/db"
	"nutriplan/internal/plan"
	"nutriplan/models"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
}

type seedRequest struct {
	Email     string
	StartDate string
	Lifestyle string
}

func parseArgs(args []string) (seedRequest, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return seedRequest{}, errors.New("usage: seedplan <email> [start-date] [lifestyle]")
	}
	req := seedRequest{Email: strings.ToLower(strings.TrimSpace(args[0]))}
	if len(args) > 1 {
		req.StartDate = strings.TrimSpace(args[1])
	}
	if len(args) > 2 {
		req.Lifestyle = strings.TrimSpace(args[2])
	}
	return req, nil
}

func run(ctx context.Context, args []string) error {
	req, err := parseArgs(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(database); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	created, err := seed(ctx, database, cfg.Plan, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Stored %d menus for %s from %s to %s\n", len(created.Menus), req.Email, created.StartDate, created.EndDate)
	return nil
}

func seed(ctx context.Context, database *gorm.DB, cfg config.PlanConfig, req seedRequest) (plan.NutritionPlan, error) {
	var user models.User
	if err := database.WithContext(ctx).Where("lower(email) = ?", req.Email).First(&user).Error; err != nil {
		return plan.NutritionPlan{}, fmt.Errorf("find user %q: %w", req.Email, err)
	}

	profile := models.Profile{UserID: user.ID}
	if err := database.WithContext(ctx).Where("user_id = ?", user.ID).First(&profile).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return plan.NutritionPlan{}, fmt.Errorf("load profile: %w", err)
	}

	picker := catalog.Default()
	if cfg.CatalogDir != "" {
		loaded, err := catalog.LoadDir(cfg.CatalogDir)
		if err != nil {
			return plan.NutritionPlan{}, fmt.Errorf("load catalog: %w", err)
		}
		picker = loaded
	}

	startDate := req.StartDate
	if startDate == "" {
		location := cfg.TimeZone
		if location == nil {
			location = time.UTC
		}
		startDate = time.Now().In(location).Format(models.DateLayout)
	}

	service := plan.NewService(plan.NewGenerator(picker), db.NewMenuStore(database))
	created, err := service.CreatePlan(ctx, user.OwnerKey(), profile, plan.Options{
		Lifestyle: req.Lifestyle,
		StartDate: startDate,
	})
	if err != nil {
		return plan.NutritionPlan{}, fmt.Errorf("create plan: %w", err)
	}
	return created, nil
}
