// Package dto carries the user context's transport-facing shapes.
package dto

import (
	"time"

	"github.com/sentra-pos/sentra/internal/domain/user"
)

type UserDTO struct {
	ID        uint      `json:"id"`
	TenantID  uint      `json:"tenant_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func ToDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:        u.ID(),
		TenantID:  u.TenantID(),
		Name:      u.Name(),
		Email:     u.Email(),
		Role:      u.Role().String(),
		Active:    u.IsActive(),
		CreatedAt: u.CreatedAt(),
	}
}

func ToDTOs(users []*user.User) []*UserDTO {
	result := make([]*UserDTO, 0, len(users))
	for _, u := range users {
		result = append(result, ToDTO(u))
	}
	return result
}
