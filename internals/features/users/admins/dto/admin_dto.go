package dto

import (
	"strings"
	"time"

	"cftl_backend/internals/features/users/admins/model"
)

type CreateAdminRequest struct {
	FullName     string  `json:"fullName" validate:"required"`
	NameInitials string  `json:"nameInitials" validate:"required"`
	Telephone    string  `json:"telephone" validate:"required"`
	AltTelephone *string `json:"altTelephone"`
	Role         string  `json:"role" validate:"omitempty,oneof=admin coordinator"`
}

// UpdateAdminRequest: email and role are not editable through /me.
type UpdateAdminRequest struct {
	FullName     *string `json:"fullName" validate:"omitempty,min=1"`
	NameInitials *string `json:"nameInitials" validate:"omitempty,min=1"`
	Telephone    *string `json:"telephone" validate:"omitempty,min=1"`
	AltTelephone *string `json:"altTelephone"`
}

type AdminResponse struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	NameInitials string    `json:"nameInitials"`
	Telephone    string    `json:"telephone"`
	AltTelephone *string   `json:"altTelephone,omitempty"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (r CreateAdminRequest) ToModel(email string) model.Admin {
	role := r.Role
	if role == "" {
		role = "admin"
	}
	return model.Admin{
		AdminFullName:     strings.TrimSpace(r.FullName),
		AdminNameInitials: strings.TrimSpace(r.NameInitials),
		AdminTelephone:    strings.TrimSpace(r.Telephone),
		AdminAltTelephone: r.AltTelephone,
		AdminEmail:        email,
		AdminRole:         role,
	}
}

// Apply returns the column map for a partial update.
func (r UpdateAdminRequest) Apply(m *model.Admin) map[string]any {
	upd := map[string]any{}
	if r.FullName != nil {
		m.AdminFullName = strings.TrimSpace(*r.FullName)
		upd["admin_full_name"] = m.AdminFullName
	}
	if r.NameInitials != nil {
		m.AdminNameInitials = strings.TrimSpace(*r.NameInitials)
		upd["admin_name_initials"] = m.AdminNameInitials
	}
	if r.Telephone != nil {
		m.AdminTelephone = strings.TrimSpace(*r.Telephone)
		upd["admin_telephone"] = m.AdminTelephone
	}
	if r.AltTelephone != nil {
		m.AdminAltTelephone = r.AltTelephone
		upd["admin_alt_telephone"] = *r.AltTelephone
	}
	return upd
}

func ToAdminResponse(m model.Admin) AdminResponse {
	return AdminResponse{
		ID:           m.AdminID.String(),
		FullName:     m.AdminFullName,
		NameInitials: m.AdminNameInitials,
		Telephone:    m.AdminTelephone,
		AltTelephone: m.AdminAltTelephone,
		Email:        m.AdminEmail,
		Role:         m.AdminRole,
		CreatedAt:    m.AdminCreatedAt,
	}
}

/* ===== invites ===== */

type CreateInviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type InviteResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	InvitedBy string    `json:"invitedBy"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToInviteResponse(m model.AdminInvite) InviteResponse {
	return InviteResponse{
		ID:        m.AdminInviteID.String(),
		Email:     m.AdminInviteEmail,
		InvitedBy: m.AdminInviteInvitedBy,
		CreatedAt: m.AdminInviteCreatedAt,
	}
}

func ToInviteResponses(list []model.AdminInvite) []InviteResponse {
	out := make([]InviteResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToInviteResponse(m))
	}
	return out
}
