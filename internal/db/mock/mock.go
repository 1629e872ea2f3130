package mock

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nutriplan/internal/db"
	applog "nutriplan/internal/log"
	"nutriplan/internal/plan"
	"nutriplan/models"
)

const (
	DemoEmail    = "demo@nutriplan.app"
	DemoPassword = "nutriplan"
)

// New returns an in-memory sqlite database seeded with a demo account and a
// 60-day plan starting today (UTC).
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	database, err := gorm.Open(sqlite.Open("file:nutriplan-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	if err := seed(ctx, database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

func seed(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	password, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{
		Name:         "Demo Planner",
		Email:        DemoEmail,
		PasswordHash: string(password),
	}
	if err := database.WithContext(ctx).Where(models.User{Email: DemoEmail}).FirstOrCreate(&user).Error; err != nil {
		return err
	}

	profile := models.Profile{
		UserID:              user.ID,
		Age:                 34,
		Gender:              models.GenderFemale,
		HeightCM:            165,
		WeightKG:            62,
		ActivityLevel:       models.ActivityLight,
		Goal:                models.GoalMaintain,
		Allergies:           []string{"peanuts"},
		DietaryRestrictions: []string{},
		PreferredCuisine:    []string{"mediterranean", "japanese"},
		DislikedFoods:       []string{"celery"},
		WeightLossGoal:      4,
	}
	if err := database.WithContext(ctx).Where(models.Profile{UserID: user.ID}).FirstOrCreate(&profile).Error; err != nil {
		return err
	}

	today := time.Now().UTC()
	weights := db.NewWeightStore(database)
	for i, kg := range []float64{64.1, 63.6, 63.0, 62.4} {
		date := today.AddDate(0, 0, -7*(3-i)).Format(models.DateLayout)
		if _, err := weights.Record(ctx, user.ID, date, kg); err != nil {
			return err
		}
	}

	start := today.Format(models.DateLayout)
	service := plan.NewService(plan.NewGenerator(nil), db.NewMenuStore(database))
	if _, err := service.CreatePlan(ctx, user.OwnerKey(), profile, plan.Options{
		Lifestyle: plan.LifestyleStandard,
		StartDate: start,
	}); err != nil {
		return err
	}

	applog.Debug(ctx, "mock database seeded", "user", DemoEmail, "plan_start", start)
	return nil
}
