package service

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	studentModel "cftl_backend/internals/features/students/students/model"
	"cftl_backend/internals/features/users/parents/model"
	helper "cftl_backend/internals/helpers"
)

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// EnsureParent creates a parent account for a guardian NIC unless one exists.
// The initial password is the NIC itself. Invalid or empty NICs are skipped.
func EnsureParent(tx *gorm.DB, g studentModel.Guardian) error {
	nic := strings.TrimSpace(g.NIC)
	if nic == "" || !helper.IsValidNIC(nic) {
		return nil
	}

	var n int64
	if err := tx.Model(&model.Parent{}).Where("parent_nic = ?", nic).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := HashPassword(nic)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(g.Name)
	if name == "" {
		name = "Unknown"
	}
	p := model.Parent{
		ParentNIC:          nic,
		ParentName:         name,
		ParentPasswordHash: hash,
	}
	if email := strings.ToLower(strings.TrimSpace(g.Email)); email != "" {
		p.ParentEmail = &email
	}
	if tel := strings.TrimSpace(g.Telephone); tel != "" {
		p.ParentTelephone = &tel
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "parent_nic"}},
		DoNothing: true,
	}).Create(&p).Error
}

// EnsureParents runs EnsureParent for every guardian block.
func EnsureParents(tx *gorm.DB, guardians ...studentModel.Guardian) error {
	for _, g := range guardians {
		if err := EnsureParent(tx, g); err != nil {
			return err
		}
	}
	return nil
}

// ScopeStudentsOfParent matches students listing nic as mother, father or nominee.
func ScopeStudentsOfParent(nic string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			db.Session(&gorm.Session{NewDB: true}).
				Where(datatypes.JSONQuery("student_mother").Equals(nic, "nic")).
				Or(datatypes.JSONQuery("student_father").Equals(nic, "nic")).
				Or(datatypes.JSONQuery("student_nominee").Equals(nic, "nic")),
		)
	}
}

// StudentIDsOfParent returns the ids of the parent's students.
func StudentIDsOfParent(db *gorm.DB, nic string) ([]string, error) {
	var ids []string
	err := db.Model(&studentModel.Student{}).
		Scopes(ScopeStudentsOfParent(nic)).
		Pluck("student_id", &ids).Error
	return ids, err
}
