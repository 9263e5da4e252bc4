package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin is a staff member with full access (role admin) or a course coordinator.
type Admin struct {
	AdminID           uuid.UUID `gorm:"column:admin_id;type:uuid;primaryKey"`
	AdminFullName     string    `gorm:"column:admin_full_name;type:text;not null"`
	AdminNameInitials string    `gorm:"column:admin_name_initials;type:text;not null"`
	AdminTelephone    string    `gorm:"column:admin_telephone;type:text;not null"`
	AdminAltTelephone *string   `gorm:"column:admin_alt_telephone;type:text"`
	AdminEmail        string    `gorm:"column:admin_email;type:text;not null;uniqueIndex"`
	AdminRole         string    `gorm:"column:admin_role;type:text;not null;default:admin"`
	AdminCreatedAt    time.Time `gorm:"column:admin_created_at;autoCreateTime"`
	AdminUpdatedAt    time.Time `gorm:"column:admin_updated_at;autoUpdateTime"`
}

func (Admin) TableName() string { return "admins" }

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.AdminID == uuid.Nil {
		a.AdminID = uuid.New()
	}
	a.AdminEmail = strings.ToLower(strings.TrimSpace(a.AdminEmail))
	return nil
}

// AdminInvite lets a not-yet-registered email sign in as "invited-admin"
// and create its admin profile.
type AdminInvite struct {
	AdminInviteID        uuid.UUID `gorm:"column:admin_invite_id;type:uuid;primaryKey"`
	AdminInviteEmail     string    `gorm:"column:admin_invite_email;type:text;not null;uniqueIndex"`
	AdminInviteInvitedBy string    `gorm:"column:admin_invite_invited_by;type:text"`
	AdminInviteCreatedAt time.Time `gorm:"column:admin_invite_created_at;autoCreateTime"`
}

func (AdminInvite) TableName() string { return "admin_invites" }

func (i *AdminInvite) BeforeCreate(tx *gorm.DB) error {
	if i.AdminInviteID == uuid.Nil {
		i.AdminInviteID = uuid.New()
	}
	i.AdminInviteEmail = strings.ToLower(strings.TrimSpace(i.AdminInviteEmail))
	return nil
}
