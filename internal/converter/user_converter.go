package converter

import (
	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	role := user.Role.RoleName
	if role == "" {
		role = entity.RoleLabel(user.RoleID)
	}

	return &dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     role,
	}
}
