package tenant

import (
	internal "github.com/pradiptamal/crm-management/internal"
)

type InviteMemberDTO struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (d InviteMemberDTO) Validate() error {
	if d.Email == "" {
		return internal.NewValidationFieldError("email", "email is required", internal.ErrCodeMissingField)
	}
	if !ValidRole(d.Role) {
		return internal.NewValidationFieldError("role", "role must be one of owner, admin, member, super_admin", internal.ErrCodeValidationFailed)
	}
	return nil
}

type AddMemberDTO struct {
	UserID       int64  `json:"user_id"`
	Role         string `json:"role"`
	CustomRoleID *int64 `json:"custom_role_id,omitempty"`
}

func (d AddMemberDTO) Validate() error {
	if d.UserID == 0 {
		return internal.NewValidationFieldError("user_id", "user_id is required", internal.ErrCodeMissingField)
	}
	if !ValidRole(d.Role) {
		return internal.NewValidationFieldError("role", "invalid role", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateMemberDTO struct {
	Role         string `json:"role"`
	CustomRoleID *int64 `json:"custom_role_id,omitempty"`
}

type ResetMemberPasswordDTO struct {
	UserID      int64  `json:"user_id"`
	NewPassword string `json:"new_password"`
}

func (d ResetMemberPasswordDTO) Validate() error {
	if d.UserID == 0 {
		return internal.NewValidationFieldError("user_id", "user_id is required", internal.ErrCodeMissingField)
	}
	if len(d.NewPassword) < 8 {
		return internal.NewValidationFieldError("new_password", "password must be at least 8 characters", internal.ErrCodeValidationFailed)
	}
	return nil
}
