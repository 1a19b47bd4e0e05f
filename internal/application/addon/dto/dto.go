// Package dto carries the addon context's transport-facing shapes.
package dto

import (
	"time"

	"github.com/sentra-pos/sentra/internal/domain/addon"
)

type GrantDTO struct {
	ID        uint       `json:"id"`
	TenantID  uint       `json:"tenant_id"`
	AddonType string     `json:"addon_type"`
	Status    string     `json:"status"`
	Limit     *int       `json:"limit,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func ToDTO(g *addon.Grant) *GrantDTO {
	return &GrantDTO{
		ID:        g.ID(),
		TenantID:  g.TenantID(),
		AddonType: g.AddonType().String(),
		Status:    string(g.Status()),
		Limit:     g.Limit(),
		EndDate:   g.EndDate(),
		CreatedAt: g.CreatedAt(),
	}
}

func ToDTOs(grants []*addon.Grant) []*GrantDTO {
	result := make([]*GrantDTO, 0, len(grants))
	for _, g := range grants {
		result = append(result, ToDTO(g))
	}
	return result
}
