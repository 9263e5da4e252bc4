package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"cftl_backend/internals/constants"
)

// CourseStreams maps an AL stream (biology, maths, ...) to its subject ids.
type CourseStreams map[string][]string

type Course struct {
	CourseID                uuid.UUID                         `gorm:"column:course_id;type:uuid;primaryKey"`
	CourseName              string                            `gorm:"column:course_name;type:text;not null"`
	CourseProgram           string                            `gorm:"column:course_program;type:text;not null;index"`
	CourseYear              string                            `gorm:"column:course_year;type:text;not null"`
	CourseDuration          string                            `gorm:"column:course_duration;type:text;not null"`
	CourseCoordinatorEmail  string                            `gorm:"column:course_coordinator_email;type:text;not null;index"`
	CourseTotalFee          int64                             `gorm:"column:course_total_fee;not null"`
	CourseStartDate         time.Time                         `gorm:"column:course_start_date;type:date"`
	CourseEndDate           time.Time                         `gorm:"column:course_end_date;type:date"`
	CourseMandatorySubjects datatypes.JSONSlice[string]       `gorm:"column:course_mandatory_subjects"`
	CourseOptionalSubjects  datatypes.JSONSlice[string]       `gorm:"column:course_optional_subjects"`
	CourseCommonSubjects    datatypes.JSONSlice[string]       `gorm:"column:course_common_subjects"`
	CourseStreams           datatypes.JSONType[CourseStreams] `gorm:"column:course_streams"`
	CourseCreatedAt         time.Time                         `gorm:"column:course_created_at;autoCreateTime"`
	CourseUpdatedAt         time.Time                         `gorm:"column:course_updated_at;autoUpdateTime"`
}

func (Course) TableName() string { return "courses" }

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.CourseID == uuid.Nil {
		c.CourseID = uuid.New()
	}
	return nil
}

// Streams returns the AL stream map (never nil).
func (c *Course) Streams() CourseStreams {
	s := c.CourseStreams.Data()
	if s == nil {
		return CourseStreams{}
	}
	return s
}

// DurationMonths is the length of the payment schedule for this course.
func (c *Course) DurationMonths() int {
	if c.CourseDuration == constants.DurationOneYear {
		return constants.MonthsPerYearPlan
	}
	return constants.MonthsPerShortPlan
}
