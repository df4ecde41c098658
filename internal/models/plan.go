package models

import (
	"fmt"
	"time"
)

type PremiumPlan string

const (
	PlanMonthly PremiumPlan = "monthly"
	PlanYearly  PremiumPlan = "yearly"
)

func ParsePlan(s string) (PremiumPlan, error) {
	switch p := PremiumPlan(s); p {
	case PlanMonthly, PlanYearly:
		return p, nil
	}
	return "", NewValidationError("plan", fmt.Sprintf("unknown plan %q", s))
}

func (p PremiumPlan) Months() int {
	if p == PlanYearly {
		return 12
	}
	return 1
}

// ExpiryFrom returns when a plan bought at now runs out.
func (p PremiumPlan) ExpiryFrom(now time.Time) time.Time {
	return now.AddDate(0, p.Months(), 0)
}
