// Package dto carries the outlet context's transport-facing shapes.
package dto

import (
	"time"

	"github.com/sentra-pos/sentra/internal/domain/outlet"
)

type OutletDTO struct {
	ID        uint      `json:"id"`
	TenantID  uint      `json:"tenant_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func ToDTO(o *outlet.Outlet) *OutletDTO {
	return &OutletDTO{
		ID:        o.ID(),
		TenantID:  o.TenantID(),
		Name:      o.Name(),
		Address:   o.Address(),
		Active:    o.IsActive(),
		CreatedAt: o.CreatedAt(),
	}
}

func ToDTOs(outlets []*outlet.Outlet) []*OutletDTO {
	result := make([]*OutletDTO, 0, len(outlets))
	for _, o := range outlets {
		result = append(result, ToDTO(o))
	}
	return result
}
