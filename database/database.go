package database

import (
	"fmt"
	"log"
	"os"

	"sellify-app/internal/domain/billing"
	"sellify-app/internal/domain/pages"
	"sellify-app/internal/domain/plans"
	"sellify-app/internal/domain/submissions"
	"sellify-app/internal/domain/users"
	"sellify-app/internal/domain/webhooks"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	if err := SeedPlans(DB); err != nil {
		log.Fatal("❌ Plan seed error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}

// Migrate runs AutoMigrate over all domain models. Split out so tests can
// run it against their own database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// core
		&users.User{},
		&users.VerificationToken{},
		&plans.Plan{},

		// checkout
		&pages.CheckoutPage{},
		&submissions.Submission{},
		&billing.Payment{},

		// webhook ingestion
		&webhooks.WebhookEvent{},
	)
}

// SeedPlans inserts the built-in plan catalogue, keeping existing rows (and
// any admin-tuned limits) untouched.
func SeedPlans(db *gorm.DB) error {
	for _, p := range plans.Defaults() {
		plan := p
		if err := db.Where("tier = ?", plan.Tier).FirstOrCreate(&plan).Error; err != nil {
			return err
		}
	}
	return nil
}
