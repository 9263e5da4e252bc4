package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"cftl_backend/internals/constants"
	adminModel "cftl_backend/internals/features/users/admins/model"
	teacherModel "cftl_backend/internals/features/users/teachers/model"
	helper "cftl_backend/internals/helpers"
	helperAuth "cftl_backend/internals/helpers/auth"
)

// Guards bundles the three authentication entry points used by the routes.
type Guards struct {
	Staff   fiber.Handler
	Teacher fiber.Handler
	Parent  fiber.Handler
}

func NewGuards(db *gorm.DB, v Verifier, parentSecret string) Guards {
	return Guards{
		Staff:   StaffAuth(db, v),
		Teacher: TeacherAuth(db, v),
		Parent:  ParentAuth(parentSecret),
	}
}

// StaffRole is the outcome of resolving a verified email against the staff tables.
type StaffRole struct {
	Role      string
	TeacherID uuid.UUID
}

// ResolveStaffRole: admins → admin_invites → teachers → incomplete-teacher.
func ResolveStaffRole(ctx context.Context, db *gorm.DB, email string) (StaffRole, error) {
	var admin adminModel.Admin
	res := db.WithContext(ctx).Where("admin_email = ?", email).Limit(1).Find(&admin)
	if res.Error != nil {
		return StaffRole{}, res.Error
	}
	if res.RowsAffected > 0 {
		role := admin.AdminRole
		if role == "" {
			role = constants.RoleAdmin
		}
		return StaffRole{Role: role}, nil
	}

	var invites int64
	if err := db.WithContext(ctx).Model(&adminModel.AdminInvite{}).
		Where("admin_invite_email = ?", email).Count(&invites).Error; err != nil {
		return StaffRole{}, err
	}
	if invites > 0 {
		return StaffRole{Role: constants.RoleInvitedAdmin}, nil
	}

	var teacher teacherModel.Teacher
	res = db.WithContext(ctx).Where("teacher_email = ?", email).Limit(1).Find(&teacher)
	if res.Error != nil {
		return StaffRole{}, res.Error
	}
	if res.RowsAffected > 0 {
		role := teacher.TeacherRole
		if role == "" {
			role = constants.RoleTeacher
		}
		return StaffRole{Role: role, TeacherID: teacher.TeacherID}, nil
	}

	return StaffRole{Role: constants.RoleIncompleteTeacher}, nil
}

// verifyRequest: 401 without a bearer token, 403 when the provider rejects it.
func verifyRequest(c *fiber.Ctx, v Verifier) (Identity, *fiber.Error) {
	raw, err := extractBearerToken(c)
	if err != nil {
		return Identity{}, fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}
	id, err := v.Verify(c.UserContext(), raw)
	if err != nil {
		return Identity{}, fiber.NewError(fiber.StatusForbidden, "Unauthorized")
	}
	return id, nil
}

// StaffAuth verifies the bearer token and attaches uid, email and role.
func StaffAuth(db *gorm.DB, v Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ferr := verifyRequest(c, v)
		if ferr != nil {
			return helper.JsonError(c, ferr.Code, ferr.Message)
		}

		sr, err := ResolveStaffRole(c.UserContext(), db, id.Email)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve role")
		}

		c.Locals(helperAuth.LocUserUID, id.UID)
		c.Locals(helperAuth.LocUserEmail, id.Email)
		c.Locals(helperAuth.LocUserRole, sr.Role)
		if sr.TeacherID != uuid.Nil {
			c.Locals(helperAuth.LocTeacherID, sr.TeacherID)
		}
		return c.Next()
	}
}

// TeacherAuth only lets through callers that have a teachers row.
func TeacherAuth(db *gorm.DB, v Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ferr := verifyRequest(c, v)
		if ferr != nil {
			return helper.JsonError(c, ferr.Code, ferr.Message)
		}

		var teacher teacherModel.Teacher
		res := db.WithContext(c.UserContext()).Where("teacher_email = ?", id.Email).Limit(1).Find(&teacher)
		if res.Error != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve role")
		}
		if res.RowsAffected == 0 {
			return helper.JsonError(c, fiber.StatusForbidden, "Not a teacher")
		}

		role := teacher.TeacherRole
		if role == "" {
			role = constants.RoleTeacher
		}
		c.Locals(helperAuth.LocUserUID, id.UID)
		c.Locals(helperAuth.LocUserEmail, id.Email)
		c.Locals(helperAuth.LocUserRole, role)
		c.Locals(helperAuth.LocTeacherID, teacher.TeacherID)
		return c.Next()
	}
}

// ParentAuth verifies tokens issued by the parent login endpoint.
func ParentAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}
		if secret == "" {
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "Parent login is not configured")
		}
		parentID, claims, err := helperAuth.ParseParentToken(secret, raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid token")
		}
		c.Locals(helperAuth.LocParentID, parentID)
		c.Locals(helperAuth.LocParentNIC, claims.NIC)
		c.Locals(helperAuth.LocUserRole, constants.RoleParent)
		return c.Next()
	}
}
