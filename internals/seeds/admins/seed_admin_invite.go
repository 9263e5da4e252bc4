package admins

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cftl_backend/internals/configs"
	adminModel "cftl_backend/internals/features/users/admins/model"
)

// SeedAdminInvite invites email unless an admin with it already exists.
func SeedAdminInvite(db *gorm.DB, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}

	var n int64
	if err := db.Model(&adminModel.Admin{}).Where("admin_email = ?", email).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		configs.Log.Infof("ℹ️ admin %s already exists, skipping invite", email)
		return nil
	}

	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "admin_invite_email"}},
		DoNothing: true,
	}).Create(&adminModel.AdminInvite{AdminInviteEmail: email, AdminInviteInvitedBy: "seed"})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		configs.Log.Infof("✅ admin invite created for %s", email)
	}
	return nil
}
