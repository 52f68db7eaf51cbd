package enums

import "fmt"

// ClientPlan is the membership tier a client is subscribed to.
type ClientPlan string

const (
	ClientPlanBasic    ClientPlan = "Basic"
	ClientPlanStandard ClientPlan = "Standard"
	ClientPlanPremium  ClientPlan = "Premium"
	ClientPlanVIP      ClientPlan = "VIP"
)

var validClientPlans = []ClientPlan{
	ClientPlanBasic,
	ClientPlanStandard,
	ClientPlanPremium,
	ClientPlanVIP,
}

// ClientPlans returns every known plan in display order.
func ClientPlans() []ClientPlan {
	out := make([]ClientPlan, len(validClientPlans))
	copy(out, validClientPlans)
	return out
}

// String implements fmt.Stringer.
func (p ClientPlan) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ClientPlan.
func (p ClientPlan) IsValid() bool {
	for _, candidate := range validClientPlans {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseClientPlan converts raw input into a ClientPlan.
func ParseClientPlan(value string) (ClientPlan, error) {
	for _, candidate := range validClientPlans {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid client plan %q", value)
}
