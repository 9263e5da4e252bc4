package dto

import (
	"strings"
	"time"

	"cftl_backend/internals/constants"
	"cftl_backend/internals/features/students/registration_requests/model"
)

type CreateRegistrationRequest struct {
	Name          string  `json:"name" validate:"required,fullname"`
	Email         string  `json:"email" validate:"required,looseemail"`
	Phone         string  `json:"phone" validate:"required,phone10"`
	Program       string  `json:"program" validate:"required,program"`
	Stream        *string `json:"stream"`
	Year          string  `json:"year"`
	Duration      string  `json:"duration"`
	StartingMonth string  `json:"startingMonth"`
}

func oneOf(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// Normalize trims input and upper-cases the program before validation.
func (r *CreateRegistrationRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Program = strings.ToUpper(strings.TrimSpace(r.Program))
	r.Duration = strings.TrimSpace(r.Duration)
	if r.Stream != nil {
		s := strings.TrimSpace(*r.Stream)
		r.Stream = &s
	}
}

// CheckChoices validates stream and duration against the form's option lists.
func (r CreateRegistrationRequest) CheckChoices() string {
	if r.Program == constants.ProgramAL && (r.Stream == nil || !oneOf(constants.RegistrationStreams, *r.Stream)) {
		return "Invalid stream selection"
	}
	if !oneOf(constants.RegistrationDurations, r.Duration) {
		return "Invalid duration"
	}
	return ""
}

func (r CreateRegistrationRequest) ToModel() model.RegistrationRequest {
	m := model.RegistrationRequest{
		RegistrationRequestName:          r.Name,
		RegistrationRequestEmail:         r.Email,
		RegistrationRequestPhone:         r.Phone,
		RegistrationRequestProgram:       r.Program,
		RegistrationRequestYear:          strings.TrimSpace(r.Year),
		RegistrationRequestDuration:      r.Duration,
		RegistrationRequestStartingMonth: strings.TrimSpace(r.StartingMonth),
	}
	if r.Program == constants.ProgramAL {
		m.RegistrationRequestStream = r.Stream
	}
	return m
}

type StartingMonthsRequest struct {
	Months []string `json:"months"`
}

type RegistrationRequestResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Program       string    `json:"program"`
	Stream        *string   `json:"stream"`
	Year          string    `json:"year"`
	Duration      string    `json:"duration"`
	StartingMonth string    `json:"startingMonth"`
	CreatedAt     time.Time `json:"createdAt"`
}

func FromModel(m model.RegistrationRequest) RegistrationRequestResponse {
	return RegistrationRequestResponse{
		ID:            m.RegistrationRequestID.String(),
		Name:          m.RegistrationRequestName,
		Email:         m.RegistrationRequestEmail,
		Phone:         m.RegistrationRequestPhone,
		Program:       m.RegistrationRequestProgram,
		Stream:        m.RegistrationRequestStream,
		Year:          m.RegistrationRequestYear,
		Duration:      m.RegistrationRequestDuration,
		StartingMonth: m.RegistrationRequestStartingMonth,
		CreatedAt:     m.RegistrationRequestCreatedAt,
	}
}

func FromModels(list []model.RegistrationRequest) []RegistrationRequestResponse {
	out := make([]RegistrationRequestResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
