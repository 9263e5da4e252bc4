package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cftl_backend/internals/constants"
	"cftl_backend/internals/features/users/admins/dto"
	"cftl_backend/internals/features/users/admins/model"
	helper "cftl_backend/internals/helpers"
	helperAuth "cftl_backend/internals/helpers/auth"
)

type AdminHandler struct {
	DB *gorm.DB
}

func (h *AdminHandler) findByEmail(c *fiber.Ctx, email string) (*model.Admin, error) {
	var m model.Admin
	res := h.DB.WithContext(c.UserContext()).Where("admin_email = ?", email).Limit(1).Find(&m)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &m, nil
}

// POST /api/admins
// The caller's email comes from the token; only invited emails may register.
func (h *AdminHandler) CreateAdmin(c *fiber.Ctx) error {
	email := helperAuth.GetEmail(c)
	if email == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var in dto.CreateAdminRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if ok, err := helper.ValidateStruct(c, &in); !ok {
		return err
	}

	existing, err := h.findByEmail(c, email)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if existing != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Admin with this email already exists")
	}
	if helperAuth.GetRole(c) != constants.RoleInvitedAdmin {
		return helper.JsonError(c, fiber.StatusForbidden, "Not invited")
	}

	m := in.ToModel(email)
	err = h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusBadRequest, "Admin with this email already exists")
			}
			return err
		}
		return tx.Where("admin_invite_email = ?", email).Delete(&model.AdminInvite{}).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Admin created", fiber.Map{"id": m.AdminID})
}

// GET /api/admins/check-invite?email=
func (h *AdminHandler) CheckInvite(c *fiber.Ctx) error {
	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if email == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Email is required")
	}
	var count int64
	if err := h.DB.WithContext(c.UserContext()).Model(&model.AdminInvite{}).
		Where("admin_invite_email = ?", email).Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if count == 0 {
		return helper.JsonError(c, fiber.StatusForbidden, "Not invited")
	}
	return helper.JsonOK(c, "Invited", fiber.Map{"invited": true})
}

// GET /api/admins/me
func (h *AdminHandler) GetMe(c *fiber.Ctx) error {
	m, err := h.findByEmail(c, helperAuth.GetEmail(c))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if m == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Admin not found")
	}
	return helper.JsonOK(c, "ok", dto.ToAdminResponse(*m))
}

// PUT /api/admins/me
func (h *AdminHandler) UpdateMe(c *fiber.Ctx) error {
	var in dto.UpdateAdminRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if ok, err := helper.ValidateStruct(c, &in); !ok {
		return err
	}

	m, err := h.findByEmail(c, helperAuth.GetEmail(c))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if m == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Admin not found")
	}

	upd := in.Apply(m)
	if len(upd) > 0 {
		if err := h.DB.WithContext(c.UserContext()).Model(m).Updates(upd).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}
	return helper.JsonUpdated(c, "Admin profile updated", dto.ToAdminResponse(*m))
}

// DELETE /api/admins/me
func (h *AdminHandler) DeleteMe(c *fiber.Ctx) error {
	m, err := h.findByEmail(c, helperAuth.GetEmail(c))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if m == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Admin not found")
	}
	if err := h.DB.WithContext(c.UserContext()).Delete(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonNoContent(c)
}
