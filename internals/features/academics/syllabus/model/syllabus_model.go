package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Subtopic struct {
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	Completed   bool       `json:"completed,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CompletedBy string     `json:"completedBy,omitempty"`
	Approved    bool       `json:"approved,omitempty"`
	ApprovedAt  *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy  string     `json:"approvedBy,omitempty"`
}

type Topic struct {
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	Subtopics  []Subtopic `json:"subtopics"`
	Approved   bool       `json:"approved,omitempty"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy string     `json:"approvedBy,omitempty"`
}

type Week struct {
	WeekNumber int     `json:"weekNumber"`
	Topics     []Topic `json:"topics"`
}

// Syllabus is the monthly plan of one subject; its id is "<subjectId>_<YYYY-MM>".
type Syllabus struct {
	SyllabusID         string                    `gorm:"column:syllabus_id;type:text;primaryKey"`
	SyllabusSubjectID  uuid.UUID                 `gorm:"column:syllabus_subject_id;type:uuid;not null;index"`
	SyllabusMonth      string                    `gorm:"column:syllabus_month;type:text;not null"`
	SyllabusWeeks      datatypes.JSONSlice[Week] `gorm:"column:syllabus_weeks"`
	SyllabusApproved   bool                      `gorm:"column:syllabus_approved;not null;default:false"`
	SyllabusApprovedAt *time.Time                `gorm:"column:syllabus_approved_at"`
	SyllabusApprovedBy *string                   `gorm:"column:syllabus_approved_by;type:text"`
	SyllabusCreatedBy  string                    `gorm:"column:syllabus_created_by;type:text"`
	SyllabusCreatedAt  time.Time                 `gorm:"column:syllabus_created_at;autoCreateTime"`
	SyllabusUpdatedAt  time.Time                 `gorm:"column:syllabus_updated_at;autoUpdateTime"`
}

func (Syllabus) TableName() string { return "syllabus" }

func SyllabusKey(subjectID uuid.UUID, month string) string {
	return fmt.Sprintf("%s_%s", subjectID, month)
}

// FindWeek returns the index of weekNumber in weeks, or -1.
func FindWeek(weeks []Week, weekNumber int) int {
	for i, w := range weeks {
		if w.WeekNumber == weekNumber {
			return i
		}
	}
	return -1
}
