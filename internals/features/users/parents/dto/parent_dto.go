package dto

import (
	"time"

	"cftl_backend/internals/features/users/parents/model"
)

type LoginRequest struct {
	NIC      string `json:"nic" validate:"required,nic"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

type ParentResponse struct {
	ID          string     `json:"id"`
	NIC         string     `json:"nic"`
	Name        string     `json:"name"`
	Email       *string    `json:"email"`
	Telephone   *string    `json:"telephone"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
}

func FromModel(m model.Parent) ParentResponse {
	return ParentResponse{
		ID:          m.ParentID.String(),
		NIC:         m.ParentNIC,
		Name:        m.ParentName,
		Email:       m.ParentEmail,
		Telephone:   m.ParentTelephone,
		LastLoginAt: m.ParentLastLoginAt,
	}
}

type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Parent    ParentResponse `json:"parent"`
}
