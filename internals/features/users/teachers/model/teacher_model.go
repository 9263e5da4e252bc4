package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Teacher struct {
	TeacherID               uuid.UUID                   `gorm:"column:teacher_id;type:uuid;primaryKey"`
	TeacherUID              *string                     `gorm:"column:teacher_uid;type:text"`
	TeacherEmail            string                      `gorm:"column:teacher_email;type:text;not null;uniqueIndex"`
	TeacherFullName         string                      `gorm:"column:teacher_full_name;type:text"`
	TeacherTelephone        string                      `gorm:"column:teacher_telephone;type:text"`
	TeacherEmploymentType   string                      `gorm:"column:teacher_employment_type;type:text"`
	TeacherSalary           *int64                      `gorm:"column:teacher_salary"`
	TeacherRole             string                      `gorm:"column:teacher_role;type:text;not null;default:teacher"`
	TeacherAssignedSubjects datatypes.JSONSlice[string] `gorm:"column:teacher_assigned_subjects"`
	TeacherCreatedAt        time.Time                   `gorm:"column:teacher_created_at;autoCreateTime"`
	TeacherUpdatedAt        time.Time                   `gorm:"column:teacher_updated_at;autoUpdateTime"`
}

func (Teacher) TableName() string { return "teachers" }

func (t *Teacher) BeforeCreate(tx *gorm.DB) error {
	if t.TeacherID == uuid.Nil {
		t.TeacherID = uuid.New()
	}
	t.TeacherEmail = strings.ToLower(strings.TrimSpace(t.TeacherEmail))
	if t.TeacherAssignedSubjects == nil {
		t.TeacherAssignedSubjects = datatypes.JSONSlice[string]{}
	}
	return nil
}
