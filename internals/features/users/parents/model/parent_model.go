package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Parent is created automatically from a guardian NIC on student registration.
type Parent struct {
	ParentID           uuid.UUID  `gorm:"column:parent_id;type:uuid;primaryKey"`
	ParentNIC          string     `gorm:"column:parent_nic;type:text;not null;uniqueIndex"`
	ParentName         string     `gorm:"column:parent_name;type:text"`
	ParentEmail        *string    `gorm:"column:parent_email;type:text"`
	ParentTelephone    *string    `gorm:"column:parent_telephone;type:text"`
	ParentPasswordHash string     `gorm:"column:parent_password_hash;type:text;not null"`
	ParentLastLoginAt  *time.Time `gorm:"column:parent_last_login_at"`
	ParentCreatedAt    time.Time  `gorm:"column:parent_created_at;autoCreateTime"`
	ParentUpdatedAt    time.Time  `gorm:"column:parent_updated_at;autoUpdateTime"`
}

func (Parent) TableName() string { return "parents" }

func (p *Parent) BeforeCreate(tx *gorm.DB) error {
	if p.ParentID == uuid.Nil {
		p.ParentID = uuid.New()
	}
	return nil
}
