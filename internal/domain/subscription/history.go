package subscription

import (
	"fmt"
	"time"
)

// HistoryEntry is the append-only audit record of one committed transition
// (grant, extension, upgrade, revert). Entries are never mutated except for
// the reverted flag, which flips to true at most once when a revert consumes
// the entry's remaining time.
type HistoryEntry struct {
	id                 uint
	periodID           uint
	tenantID           uint
	plan               Plan
	startDate          time.Time
	endDate            time.Time
	durationDays       int
	isTemporaryUpgrade bool
	reverted           bool
	createdAt          time.Time
}

// NewHistoryEntry records a committed transition for the given period.
func NewHistoryEntry(periodID, tenantID uint, plan Plan, startDate, endDate time.Time, isTemporaryUpgrade bool) (*HistoryEntry, error) {
	if periodID == 0 {
		return nil, fmt.Errorf("period ID is required")
	}
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if !plan.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPlan, plan)
	}
	if !endDate.After(startDate) {
		return nil, fmt.Errorf("end date must be after start date")
	}

	return &HistoryEntry{
		periodID:           periodID,
		tenantID:           tenantID,
		plan:               plan,
		startDate:          startDate,
		endDate:            endDate,
		durationDays:       durationDays(startDate, endDate),
		isTemporaryUpgrade: isTemporaryUpgrade,
		createdAt:          time.Now().UTC(),
	}, nil
}

// ReconstructHistoryEntry reconstructs an entry from persistence.
func ReconstructHistoryEntry(
	id, periodID, tenantID uint,
	plan Plan,
	startDate, endDate time.Time,
	durationDays int,
	isTemporaryUpgrade, reverted bool,
	createdAt time.Time,
) (*HistoryEntry, error) {
	if id == 0 {
		return nil, fmt.Errorf("history ID cannot be zero")
	}
	if periodID == 0 {
		return nil, fmt.Errorf("period ID is required")
	}
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if !plan.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPlan, plan)
	}

	return &HistoryEntry{
		id:                 id,
		periodID:           periodID,
		tenantID:           tenantID,
		plan:               plan,
		startDate:          startDate,
		endDate:            endDate,
		durationDays:       durationDays,
		isTemporaryUpgrade: isTemporaryUpgrade,
		reverted:           reverted,
		createdAt:          createdAt,
	}, nil
}

func (h *HistoryEntry) ID() uint                 { return h.id }
func (h *HistoryEntry) PeriodID() uint           { return h.periodID }
func (h *HistoryEntry) TenantID() uint           { return h.tenantID }
func (h *HistoryEntry) Plan() Plan               { return h.plan }
func (h *HistoryEntry) StartDate() time.Time     { return h.startDate }
func (h *HistoryEntry) EndDate() time.Time       { return h.endDate }
func (h *HistoryEntry) DurationDays() int        { return h.durationDays }
func (h *HistoryEntry) IsTemporaryUpgrade() bool { return h.isTemporaryUpgrade }
func (h *HistoryEntry) Reverted() bool           { return h.reverted }
func (h *HistoryEntry) CreatedAt() time.Time     { return h.createdAt }

// SetID sets the history ID (only for persistence layer use).
func (h *HistoryEntry) SetID(id uint) error {
	if h.id != 0 {
		return fmt.Errorf("history ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("history ID cannot be zero")
	}
	h.id = id
	return nil
}

// EndsAfter reports whether the recorded grant still had time left at now.
func (h *HistoryEntry) EndsAfter(now time.Time) bool {
	return h.endDate.After(now)
}

// MarkReverted consumes the entry. It succeeds exactly once.
func (h *HistoryEntry) MarkReverted() error {
	if h.reverted {
		return ErrHistoryAlreadyReverted
	}
	h.reverted = true
	return nil
}

func durationDays(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}
