package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals populated by the auth middlewares.
const (
	LocUserUID   = "userUID"
	LocUserEmail = "userEmail"
	LocUserRole  = "userRole"
	LocTeacherID = "teacherID"
	LocParentID  = "parentID"
	LocParentNIC = "parentNIC"
)

type CurrentUser struct {
	UID   string
	Email string
	Role  string
}

func localString(c *fiber.Ctx, key string) string {
	if v, ok := c.Locals(key).(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func GetCurrentUser(c *fiber.Ctx) CurrentUser {
	return CurrentUser{
		UID:   localString(c, LocUserUID),
		Email: localString(c, LocUserEmail),
		Role:  localString(c, LocUserRole),
	}
}

func GetEmail(c *fiber.Ctx) string { return localString(c, LocUserEmail) }

func GetRole(c *fiber.Ctx) string { return localString(c, LocUserRole) }

func HasRole(c *fiber.Ctx, roles ...string) bool {
	role := GetRole(c)
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// GetTeacherID is set only when the caller has a teachers row.
func GetTeacherID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(LocTeacherID).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

func GetParentID(c *fiber.Ctx) (uuid.UUID, error) {
	id, ok := c.Locals(LocParentID).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Parent not authenticated")
	}
	return id, nil
}

func GetParentNIC(c *fiber.Ctx) string { return localString(c, LocParentNIC) }
