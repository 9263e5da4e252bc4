package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentDTO "cftl_backend/internals/features/finance/payments/dto"
	paymentModel "cftl_backend/internals/features/finance/payments/model"
	studentDTO "cftl_backend/internals/features/students/students/dto"
	studentModel "cftl_backend/internals/features/students/students/model"
	"cftl_backend/internals/features/users/parents/dto"
	"cftl_backend/internals/features/users/parents/model"
	"cftl_backend/internals/features/users/parents/service"
	helper "cftl_backend/internals/helpers"
	helperAuth "cftl_backend/internals/helpers/auth"
	"cftl_backend/internals/helpers/dbtime"
)

type ParentController struct {
	DB       *gorm.DB
	Secret   string
	TokenTTL time.Duration
}

func (ctl *ParentController) current(c *fiber.Ctx) (*model.Parent, error) {
	id, err := helperAuth.GetParentID(c)
	if err != nil {
		return nil, err
	}
	var m model.Parent
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "parent_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Parent not found")
		}
		return nil, err
	}
	return &m, nil
}

// POST /api/parents/login
func (ctl *ParentController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.NIC = strings.TrimSpace(req.NIC)
	if ok, err := helper.ValidateStruct(c, &req); !ok {
		return err
	}

	db := ctl.DB.WithContext(c.UserContext())
	var m model.Parent
	res := db.Where("parent_nic = ?", req.NIC).Limit(1).Find(&m)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 || !service.CheckPassword(m.ParentPasswordHash, req.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, exp, err := helperAuth.IssueParentToken(ctl.Secret, m.ParentID, m.ParentNIC, ctl.TokenTTL)
	if err != nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Parent login is not configured")
	}

	now := dbtime.Now()
	if err := db.Model(&m).Update("parent_last_login_at", now).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	m.ParentLastLoginAt = &now

	return helper.JsonOK(c, "Login successful", dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		Parent:    dto.FromModel(m),
	})
}

// GET /api/parents/me
func (ctl *ParentController) GetMe(c *fiber.Ctx) error {
	m, err := ctl.current(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(*m))
}

// GET /api/parents/students
func (ctl *ParentController) GetMyStudents(c *fiber.Ctx) error {
	nic := helperAuth.GetParentNIC(c)
	var list []studentModel.Student
	if err := ctl.DB.WithContext(c.UserContext()).
		Scopes(service.ScopeStudentsOfParent(nic)).
		Order("student_registration_no ASC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", studentDTO.FromModels(list), nil)
}

// GET /api/parents/payments
func (ctl *ParentController) GetMyPayments(c *fiber.Ctx) error {
	db := ctl.DB.WithContext(c.UserContext())
	ids, err := service.StudentIDsOfParent(db, helperAuth.GetParentNIC(c))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if len(ids) == 0 {
		return helper.JsonList(c, "ok", []paymentDTO.PaymentResponse{}, nil)
	}

	var list []paymentModel.Payment
	if err := db.Where("payment_student_id IN ?", ids).
		Order("payment_month ASC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", paymentDTO.FromModels(list), nil)
}

// PUT /api/parents/password
func (ctl *ParentController) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if ok, err := helper.ValidateStruct(c, &req); !ok {
		return err
	}

	m, err := ctl.current(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !service.CheckPassword(m.ParentPasswordHash, req.CurrentPassword) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Current password is incorrect")
	}
	hash, err := service.HashPassword(req.NewPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := ctl.DB.WithContext(c.UserContext()).Model(m).
		Update("parent_password_hash", hash).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Password updated", nil)
}
