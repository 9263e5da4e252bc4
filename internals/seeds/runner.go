package seeds

import (
	"gorm.io/gorm"

	"cftl_backend/internals/configs"
	"cftl_backend/internals/seeds/admins"
	"cftl_backend/internals/seeds/counters"
)

// RunAllSeeds is idempotent and safe to call on every boot.
func RunAllSeeds(db *gorm.DB, cfg configs.AppConfig) {
	if err := counters.SeedStudentCounter(db); err != nil {
		configs.Log.WithError(err).Fatal("❌ failed to seed student counter")
	}

	//* Bootstrap admin
	if err := admins.SeedAdminInvite(db, cfg.SeedAdminInvite); err != nil {
		configs.Log.WithError(err).Error("❌ failed to seed admin invite")
	}
}
