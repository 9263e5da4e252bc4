package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RegistrationRequest is a prospective student's public sign-up form.
type RegistrationRequest struct {
	RegistrationRequestID            uuid.UUID `gorm:"column:registration_request_id;type:uuid;primaryKey"`
	RegistrationRequestName          string    `gorm:"column:registration_request_name;type:text;not null"`
	RegistrationRequestEmail         string    `gorm:"column:registration_request_email;type:text;not null;index"`
	RegistrationRequestPhone         string    `gorm:"column:registration_request_phone;type:text;not null"`
	RegistrationRequestProgram       string    `gorm:"column:registration_request_program;type:text;not null"`
	RegistrationRequestStream        *string   `gorm:"column:registration_request_stream;type:text"`
	RegistrationRequestYear          string    `gorm:"column:registration_request_year;type:text"`
	RegistrationRequestDuration      string    `gorm:"column:registration_request_duration;type:text;not null"`
	RegistrationRequestStartingMonth string    `gorm:"column:registration_request_starting_month;type:text"`
	RegistrationRequestCreatedAt     time.Time `gorm:"column:registration_request_created_at;autoCreateTime"`
}

func (RegistrationRequest) TableName() string { return "registration_requests" }

func (r *RegistrationRequest) BeforeCreate(tx *gorm.DB) error {
	if r.RegistrationRequestID == uuid.Nil {
		r.RegistrationRequestID = uuid.New()
	}
	return nil
}

const SettingStartingMonths = "startingMonths"

// Setting is a small key/value document for admin-editable options.
type Setting struct {
	SettingKey       string         `gorm:"column:setting_key;type:text;primaryKey"`
	SettingValue     datatypes.JSON `gorm:"column:setting_value"`
	SettingUpdatedBy string         `gorm:"column:setting_updated_by;type:text"`
	SettingUpdatedAt time.Time      `gorm:"column:setting_updated_at;autoUpdateTime"`
}

func (Setting) TableName() string { return "settings" }

type StartingMonths struct {
	Months []string `json:"months"`
}
