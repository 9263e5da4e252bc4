package counters

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cftl_backend/internals/configs"
	studentModel "cftl_backend/internals/features/students/students/model"
)

// SeedStudentCounter creates the registration-number counter at 0 when missing.
func SeedStudentCounter(db *gorm.DB) error {
	res := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&studentModel.Counter{CounterName: studentModel.StudentCounter})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		configs.Log.Info("✅ student counter initialised")
	}
	return nil
}
