package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Enrollment keeps a snapshot of the course fee at enrollment time.
type Enrollment struct {
	EnrollmentID         uuid.UUID                   `gorm:"column:enrollment_id;type:uuid;primaryKey"`
	EnrollmentStudentID  uuid.UUID                   `gorm:"column:enrollment_student_id;type:uuid;not null;index"`
	EnrollmentCourseID   uuid.UUID                   `gorm:"column:enrollment_course_id;type:uuid;not null;index"`
	EnrollmentEnrolledBy string                      `gorm:"column:enrollment_enrolled_by;type:text"`
	EnrollmentDate       time.Time                   `gorm:"column:enrollment_date"`
	EnrollmentStatus     string                      `gorm:"column:enrollment_status;type:text;not null;index"`
	EnrollmentTotalFee   int64                       `gorm:"column:enrollment_total_fee;not null"`
	EnrollmentMonthlyFee int64                       `gorm:"column:enrollment_monthly_fee;not null"`
	EnrollmentStream     *string                     `gorm:"column:enrollment_stream;type:text"`
	EnrollmentSubjects   datatypes.JSONSlice[string] `gorm:"column:enrollment_subjects"`
	EnrollmentCreatedAt  time.Time                   `gorm:"column:enrollment_created_at;autoCreateTime"`
	EnrollmentUpdatedAt  time.Time                   `gorm:"column:enrollment_updated_at;autoUpdateTime"`
}

func (Enrollment) TableName() string { return "enrollments" }

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.EnrollmentID == uuid.Nil {
		e.EnrollmentID = uuid.New()
	}
	if e.EnrollmentDate.IsZero() {
		e.EnrollmentDate = time.Now()
	}
	return nil
}
