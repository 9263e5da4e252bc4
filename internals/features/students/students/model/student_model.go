package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Guardian struct {
	Name       string `json:"name"`
	NIC        string `json:"nic"`
	Email      string `json:"email,omitempty"`
	Telephone  string `json:"telephone,omitempty"`
	Occupation string `json:"occupation,omitempty"`
}

type StudentFees struct {
	RegistrationFee int64 `json:"registrationFee"`
	MonthlyFee      int64 `json:"monthlyFee"`
	PreBudget       int64 `json:"preBudget"`
	TotalAmount     int64 `json:"totalAmount"`
}

type EnrollmentPreferences struct {
	CourseID string `json:"courseId,omitempty"`
	Stream   string `json:"stream,omitempty"`
}

type Student struct {
	StudentID               uuid.UUID                                 `gorm:"column:student_id;type:uuid;primaryKey"`
	StudentRegistrationNo   string                                    `gorm:"column:student_registration_no;type:text;not null;uniqueIndex"`
	StudentRegistrationDate *time.Time                                `gorm:"column:student_registration_date;type:date"`
	StudentFullName         string                                    `gorm:"column:student_full_name;type:text"`
	StudentNameInitials     string                                    `gorm:"column:student_name_initials;type:text"`
	StudentNIC              string                                    `gorm:"column:student_nic;type:text;index"`
	StudentDOB              *time.Time                                `gorm:"column:student_dob;type:date"`
	StudentGender           string                                    `gorm:"column:student_gender;type:text"`
	StudentEmail            string                                    `gorm:"column:student_email;type:text"`
	StudentTelephone        string                                    `gorm:"column:student_telephone;type:text"`
	StudentAddress          string                                    `gorm:"column:student_address;type:text"`
	StudentSchool           string                                    `gorm:"column:student_school;type:text"`
	StudentProfilePicture   *string                                   `gorm:"column:student_profile_picture_url;type:text"`
	StudentFees             datatypes.JSONType[StudentFees]           `gorm:"column:student_fees"`
	StudentMother           datatypes.JSONType[Guardian]              `gorm:"column:student_mother"`
	StudentFather           datatypes.JSONType[Guardian]              `gorm:"column:student_father"`
	StudentNominee          datatypes.JSONType[Guardian]              `gorm:"column:student_nominee"`
	StudentSubjects         datatypes.JSONSlice[string]               `gorm:"column:student_subjects"`
	StudentPreferences      datatypes.JSONType[EnrollmentPreferences] `gorm:"column:student_enrollment_preferences"`
	// copy of preferences.courseId so coordinators can filter on it
	StudentPreferredCourseID *uuid.UUID `gorm:"column:student_preferred_course_id;type:uuid;index"`
	StudentCreatedAt         time.Time  `gorm:"column:student_created_at;autoCreateTime"`
	StudentUpdatedAt         time.Time  `gorm:"column:student_updated_at;autoUpdateTime"`
}

func (Student) TableName() string { return "students" }

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.StudentID == uuid.Nil {
		s.StudentID = uuid.New()
	}
	return nil
}

// GuardianNICs lists the non-empty guardian NICs (mother, father, nominee).
func (s *Student) GuardianNICs() []string {
	var out []string
	for _, g := range []Guardian{s.StudentMother.Data(), s.StudentFather.Data(), s.StudentNominee.Data()} {
		if g.NIC != "" {
			out = append(out, g.NIC)
		}
	}
	return out
}

// Counter holds the last issued number of a sequence ("student").
type Counter struct {
	CounterName      string    `gorm:"column:counter_name;type:text;primaryKey"`
	CounterLastValue int64     `gorm:"column:counter_last_value;not null;default:0"`
	CounterUpdatedAt time.Time `gorm:"column:counter_updated_at;autoUpdateTime"`
}

func (Counter) TableName() string { return "counters" }

const StudentCounter = "student"
