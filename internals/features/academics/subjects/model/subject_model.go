package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Subject struct {
	SubjectID          uuid.UUID `gorm:"column:subject_id;type:uuid;primaryKey"`
	SubjectName        string    `gorm:"column:subject_name;type:text;not null"`
	SubjectProgram     string    `gorm:"column:subject_program;type:text;not null;index"`
	SubjectStream      *string   `gorm:"column:subject_stream;type:text;index"`
	SubjectIsMandatory bool      `gorm:"column:subject_is_mandatory;not null;default:false"`
	// reverse index of teachers.teacher_assigned_subjects
	SubjectTeacherIDs datatypes.JSONSlice[string] `gorm:"column:subject_teacher_ids"`
	SubjectCreatedAt  time.Time                   `gorm:"column:subject_created_at;autoCreateTime"`
	SubjectUpdatedAt  time.Time                   `gorm:"column:subject_updated_at;autoUpdateTime"`
}

func (Subject) TableName() string { return "subjects" }

func (s *Subject) BeforeCreate(tx *gorm.DB) error {
	if s.SubjectID == uuid.Nil {
		s.SubjectID = uuid.New()
	}
	if s.SubjectTeacherIDs == nil {
		s.SubjectTeacherIDs = datatypes.JSONSlice[string]{}
	}
	return nil
}
