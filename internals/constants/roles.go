package constants

import "fmt"

const (
	RoleAdmin             = "admin"
	RoleCoordinator       = "coordinator"
	RoleInvitedAdmin      = "invited-admin"
	RoleTeacher           = "teacher"
	RoleIncompleteTeacher = "incomplete-teacher"
	RoleParent            = "parent"
)

const (
	ErrInsufficientRole   = "Forbidden: Insufficient role"
	ErrOnlyStaffCanAccess = "Only coordinators or admins can %s"
)

func RoleErrorStaff(action string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, action)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AdminOnly = []string{RoleAdmin}

	CoordinatorOnly = []string{RoleCoordinator}

	StaffRoles = []string{RoleAdmin, RoleCoordinator}

	TeacherAndAbove = []string{RoleTeacher, RoleCoordinator, RoleAdmin}
)
