package dto

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"cftl_backend/internals/constants"
	"cftl_backend/internals/features/users/teachers/model"
)

// TeacherProfileRequest is what a signed-in teacher may set on their own row.
type TeacherProfileRequest struct {
	FullName       *string `json:"fullName"`
	Telephone      *string `json:"telephone"`
	EmploymentType *string `json:"employmentType"`
	Salary         *int64  `json:"salary" validate:"omitempty,gte=0"`
}

type CreateTeacherRequest struct {
	Email            string   `json:"email" validate:"required,email"`
	FullName         string   `json:"fullName" validate:"required"`
	Telephone        string   `json:"telephone"`
	EmploymentType   string   `json:"employmentType"`
	Salary           *int64   `json:"salary" validate:"omitempty,gte=0"`
	AssignedSubjects []string `json:"assignedSubjects"`
}

// UpdateTeacherRequest has no role field; the role of a teacher is fixed.
type UpdateTeacherRequest struct {
	Email            *string  `json:"email" validate:"omitempty,email"`
	FullName         *string  `json:"fullName"`
	Telephone        *string  `json:"telephone"`
	EmploymentType   *string  `json:"employmentType"`
	Salary           *int64   `json:"salary" validate:"omitempty,gte=0"`
	AssignedSubjects []string `json:"assignedSubjects"`
}

type AssignSubjectsRequest struct {
	AssignedSubjects []string `json:"assignedSubjects"`
}

type TeacherResponse struct {
	ID               string    `json:"id"`
	UID              *string   `json:"uid,omitempty"`
	Email            string    `json:"email"`
	FullName         string    `json:"fullName"`
	Telephone        string    `json:"telephone"`
	EmploymentType   string    `json:"employmentType"`
	Salary           *int64    `json:"salary,omitempty"`
	Role             string    `json:"role"`
	AssignedSubjects []string  `json:"assignedSubjects"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (r TeacherProfileRequest) Apply(m *model.Teacher) map[string]any {
	upd := map[string]any{}
	if r.FullName != nil {
		m.TeacherFullName = strings.TrimSpace(*r.FullName)
		upd["teacher_full_name"] = m.TeacherFullName
	}
	if r.Telephone != nil {
		m.TeacherTelephone = strings.TrimSpace(*r.Telephone)
		upd["teacher_telephone"] = m.TeacherTelephone
	}
	if r.EmploymentType != nil {
		m.TeacherEmploymentType = strings.TrimSpace(*r.EmploymentType)
		upd["teacher_employment_type"] = m.TeacherEmploymentType
	}
	if r.Salary != nil {
		m.TeacherSalary = r.Salary
		upd["teacher_salary"] = *r.Salary
	}
	return upd
}

func (r CreateTeacherRequest) ToModel() model.Teacher {
	subjects := r.AssignedSubjects
	if subjects == nil {
		subjects = []string{}
	}
	return model.Teacher{
		TeacherEmail:            strings.ToLower(strings.TrimSpace(r.Email)),
		TeacherFullName:         strings.TrimSpace(r.FullName),
		TeacherTelephone:        strings.TrimSpace(r.Telephone),
		TeacherEmploymentType:   strings.TrimSpace(r.EmploymentType),
		TeacherSalary:           r.Salary,
		TeacherRole:             constants.RoleTeacher,
		TeacherAssignedSubjects: datatypes.JSONSlice[string](subjects),
	}
}

// Apply copies scalar fields; assignedSubjects is synced separately.
func (r UpdateTeacherRequest) Apply(m *model.Teacher) map[string]any {
	upd := TeacherProfileRequest{
		FullName:       r.FullName,
		Telephone:      r.Telephone,
		EmploymentType: r.EmploymentType,
		Salary:         r.Salary,
	}.Apply(m)
	if r.Email != nil {
		m.TeacherEmail = strings.ToLower(strings.TrimSpace(*r.Email))
		upd["teacher_email"] = m.TeacherEmail
	}
	return upd
}

func FromModel(m model.Teacher) TeacherResponse {
	subjects := []string(m.TeacherAssignedSubjects)
	if subjects == nil {
		subjects = []string{}
	}
	return TeacherResponse{
		ID:               m.TeacherID.String(),
		UID:              m.TeacherUID,
		Email:            m.TeacherEmail,
		FullName:         m.TeacherFullName,
		Telephone:        m.TeacherTelephone,
		EmploymentType:   m.TeacherEmploymentType,
		Salary:           m.TeacherSalary,
		Role:             m.TeacherRole,
		AssignedSubjects: subjects,
		CreatedAt:        m.TeacherCreatedAt,
		UpdatedAt:        m.TeacherUpdatedAt,
	}
}

func FromModels(list []model.Teacher) []TeacherResponse {
	out := make([]TeacherResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
