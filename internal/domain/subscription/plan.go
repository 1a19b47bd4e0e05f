package subscription

import "fmt"

// Plan is the subscription tier a tenant can be entitled to.
type Plan string

const (
	PlanBasic      Plan = "basic"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// DefaultPlan is the plan every tenant falls back to once all grants lapse.
const DefaultPlan = PlanBasic

var planRanks = map[Plan]int{
	PlanBasic:      1,
	PlanPro:        2,
	PlanEnterprise: 3,
}

func (p Plan) String() string {
	return string(p)
}

func (p Plan) IsValid() bool {
	_, ok := planRanks[p]
	return ok
}

// Rank orders plans from lowest to highest tier.
func (p Plan) Rank() int {
	return planRanks[p]
}

// IsUpgradeOf reports whether p is a strictly higher tier than other.
func (p Plan) IsUpgradeOf(other Plan) bool {
	return p.Rank() > other.Rank()
}

func ParsePlan(s string) (Plan, error) {
	p := Plan(s)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidPlan, s)
	}
	return p, nil
}
