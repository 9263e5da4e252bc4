package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cftl_backend/internals/features/users/admins/dto"
	"cftl_backend/internals/features/users/admins/model"
	helper "cftl_backend/internals/helpers"
	helperAuth "cftl_backend/internals/helpers/auth"
)

// GET /api/admins/invites
func (h *AdminHandler) ListInvites(c *fiber.Ctx) error {
	var list []model.AdminInvite
	if err := h.DB.WithContext(c.UserContext()).
		Order("admin_invite_created_at DESC").Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", dto.ToInviteResponses(list), nil)
}

// POST /api/admins/invites
func (h *AdminHandler) CreateInvite(c *fiber.Ctx) error {
	var in dto.CreateInviteRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if ok, err := helper.ValidateStruct(c, &in); !ok {
		return err
	}

	m := model.AdminInvite{
		AdminInviteEmail:     in.Email,
		AdminInviteInvitedBy: helperAuth.GetEmail(c),
	}
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email already invited")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Invite created", dto.ToInviteResponse(m))
}

// DELETE /api/admins/invites/:id
func (h *AdminHandler) DeleteInvite(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid invite id")
	}
	res := h.DB.WithContext(c.UserContext()).Delete(&model.AdminInvite{}, "admin_invite_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Invite not found")
	}
	return helper.JsonNoContent(c)
}
