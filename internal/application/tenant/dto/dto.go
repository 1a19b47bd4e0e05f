// Package dto carries the tenant context's transport-facing shapes.
package dto

import (
	"time"

	"github.com/sentra-pos/sentra/internal/domain/tenant"
)

type TenantDTO struct {
	ID                 uint       `json:"id"`
	Name               string     `json:"name"`
	Slug               string     `json:"slug"`
	Active             bool       `json:"active"`
	CurrentPlan        string     `json:"current_plan"`
	EntitlementEnd     *time.Time `json:"entitlement_end,omitempty"`
	IsTemporaryUpgrade bool       `json:"is_temporary_upgrade"`
	PriorPlan          *string    `json:"prior_plan,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

func ToDTO(t *tenant.Tenant) *TenantDTO {
	d := &TenantDTO{
		ID:                 t.ID(),
		Name:               t.Name(),
		Slug:               t.Slug(),
		Active:             t.IsActive(),
		CurrentPlan:        t.CurrentPlan().String(),
		EntitlementEnd:     t.EntitlementEnd(),
		IsTemporaryUpgrade: t.IsTemporaryUpgrade(),
		CreatedAt:          t.CreatedAt(),
	}
	if prior := t.PriorPlan(); prior != nil {
		s := prior.String()
		d.PriorPlan = &s
	}
	return d
}

func ToDTOs(tenants []*tenant.Tenant) []*TenantDTO {
	result := make([]*TenantDTO, 0, len(tenants))
	for _, t := range tenants {
		result = append(result, ToDTO(t))
	}
	return result
}
