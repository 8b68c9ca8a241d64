package entitlement

import (
	"fmt"

	"github.com/cleared-dev/bizledger/internal/model"
)

// QuotaDecision is the outcome of a monthly quota check.
type QuotaDecision struct {
	Allowed bool
	Limit   Quota
}

// CheckQuota decides whether a tier may record another transaction when
// currentMonthCount transactions already exist this month.
func CheckQuota(t model.Tier, currentMonthCount int) QuotaDecision {
	limit := For(t).Quota
	return QuotaDecision{
		Allowed: limit.Unlimited() || currentMonthCount < int(limit),
		Limit:   limit,
	}
}

// FeatureDecision is the outcome of a tier gate.
type FeatureDecision struct {
	Allowed  bool
	Required model.Tier
}

// CheckFeature gates on the tier order basic < standard == trial < premium.
// TierNone is always denied.
func CheckFeature(t, required model.Tier) FeatureDecision {
	return FeatureDecision{Allowed: t.AtLeast(required), Required: required}
}

// RequiredTier is the cheapest paid tier that includes f.
func RequiredTier(f Feature) model.Tier {
	return cheapest(func(r Rule) bool { return r.HasFeature(f) })
}

// RequiredTierForPeriod is the cheapest paid tier offering reports for p.
func RequiredTierForPeriod(p model.Period) model.Tier {
	return cheapest(func(r Rule) bool { return r.AllowsPeriod(p) })
}

func cheapest(ok func(Rule) bool) model.Tier {
	for _, t := range []model.Tier{model.TierBasic, model.TierStandard, model.TierPremium} {
		if ok(For(t)) {
			return t
		}
	}
	return model.TierPremium
}

// View is a dashboard section with its own minimum tier.
type View string

const (
	ViewReports   View = "Reports"
	ViewAnalytics View = "Advanced Analytics"
)

// RequiredTier is the minimum tier that opens v.
func (v View) RequiredTier() model.Tier {
	if v == ViewAnalytics {
		return model.TierStandard
	}
	return model.TierBasic
}

// CheckViewAccess gates a dashboard section for a tier.
func CheckViewAccess(t model.Tier, v View) FeatureDecision {
	return CheckFeature(t, v.RequiredTier())
}

// CheckFeatureAccess gates a named feature for a tier.
func CheckFeatureAccess(t model.Tier, f Feature) FeatureDecision {
	return CheckFeature(t, RequiredTier(f))
}

// CheckPeriodAccess gates a report period for a tier.
func CheckPeriodAccess(t model.Tier, p model.Period) FeatureDecision {
	return CheckFeature(t, RequiredTierForPeriod(p))
}

// QuotaExceededError reports a refused submission at the monthly limit.
type QuotaExceededError struct {
	Tier  model.Tier
	Limit Quota
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("monthly transaction limit reached: the %s plan allows %s transactions per month", e.Tier, e.Limit)
}

// DeniedError reports a feature or view requested below the needed tier.
type DeniedError struct {
	What     string
	Current  model.Tier
	Required model.Tier
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("upgrade required: %s requires a %s plan or higher (current: %s)", e.What, e.Required, e.Current)
}

// Require turns a denied decision into a *DeniedError.
func Require(d FeatureDecision, current model.Tier, what string) error {
	if d.Allowed {
		return nil
	}
	return &DeniedError{What: what, Current: current, Required: d.Required}
}
