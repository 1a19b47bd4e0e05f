// Package dto carries the subscription context's transport-facing shapes.
package dto

import (
	"time"

	"github.com/sentra-pos/sentra/internal/application/entitlement"
	"github.com/sentra-pos/sentra/internal/domain/subscription"
)

// PeriodDTO is the API shape of one subscription period.
type PeriodDTO struct {
	ID                 uint       `json:"id"`
	TenantID           uint       `json:"tenant_id"`
	Plan               string     `json:"plan"`
	StartDate          time.Time  `json:"start_date"`
	EndDate            time.Time  `json:"end_date"`
	Status             string     `json:"status"`
	IsTemporaryUpgrade bool       `json:"is_temporary_upgrade"`
	PriorPlan          *string    `json:"prior_plan,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// HistoryEntryDTO is the API shape of one audit-trail entry.
type HistoryEntryDTO struct {
	ID                 uint      `json:"id"`
	PeriodID           uint      `json:"period_id"`
	TenantID           uint      `json:"tenant_id"`
	Plan               string    `json:"plan"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	DurationDays       int       `json:"duration_days"`
	IsTemporaryUpgrade bool      `json:"is_temporary_upgrade"`
	Reverted           bool      `json:"reverted"`
	CreatedAt          time.Time `json:"created_at"`
}

// StatusDTO is the reconciled entitlement view of one tenant.
type StatusDTO struct {
	TenantID       uint         `json:"tenant_id"`
	State          string       `json:"state"`
	Plan           string       `json:"plan"`
	TenantActive   bool         `json:"tenant_active"`
	EntitlementEnd *time.Time   `json:"entitlement_end,omitempty"`
	Changed        bool         `json:"changed"`
	ActivePeriods  []*PeriodDTO `json:"active_periods"`
}

func PeriodToDTO(p *subscription.Period) *PeriodDTO {
	d := &PeriodDTO{
		ID:                 p.ID(),
		TenantID:           p.TenantID(),
		Plan:               p.Plan().String(),
		StartDate:          p.StartDate(),
		EndDate:            p.EndDate(),
		Status:             string(p.Status()),
		IsTemporaryUpgrade: p.IsTemporaryUpgrade(),
		CreatedAt:          p.CreatedAt(),
	}
	if prior := p.PriorPlan(); prior != nil {
		s := prior.String()
		d.PriorPlan = &s
	}
	return d
}

func HistoryEntryToDTO(e *subscription.HistoryEntry) *HistoryEntryDTO {
	return &HistoryEntryDTO{
		ID:                 e.ID(),
		PeriodID:           e.PeriodID(),
		TenantID:           e.TenantID(),
		Plan:               e.Plan().String(),
		StartDate:          e.StartDate(),
		EndDate:            e.EndDate(),
		DurationDays:       e.DurationDays(),
		IsTemporaryUpgrade: e.IsTemporaryUpgrade(),
		Reverted:           e.Reverted(),
		CreatedAt:          e.CreatedAt(),
	}
}

func OutcomeToStatusDTO(tenantID uint, o *entitlement.Outcome) *StatusDTO {
	return &StatusDTO{
		TenantID:       tenantID,
		State:          string(o.State),
		Plan:           o.Plan.String(),
		TenantActive:   o.TenantActive,
		EntitlementEnd: o.EntitlementEnd,
		Changed:        o.Changed,
	}
}
