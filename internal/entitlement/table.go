// Package entitlement maps subscription tiers to quotas and features and
// decides whether a tier may use them.
package entitlement

import (
	"slices"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bizledger/internal/model"
)

// Feature is a capability beyond basic tracking.
type Feature string

const (
	FeatureCSVExport               Feature = "csvExport"
	FeatureTextReportExport        Feature = "textReportExport"
	FeatureOptimizationSuggestions Feature = "optimizationSuggestions"
)

// Unlimited marks a quota without an upper bound.
const Unlimited = -1

// Quota is the maximum number of transactions per calendar month.
type Quota int

// Unlimited reports whether q has no upper bound.
func (q Quota) Unlimited() bool { return q == Unlimited }

func (q Quota) String() string {
	if q.Unlimited() {
		return "unlimited"
	}
	return strconv.Itoa(int(q))
}

// Rule is the resolved entitlement of a tier.
type Rule struct {
	Quota    Quota
	Periods  []model.Period
	Features []Feature
}

// AllowsPeriod reports whether reports for p are available.
func (r Rule) AllowsPeriod(p model.Period) bool {
	return slices.Contains(r.Periods, p)
}

// HasFeature reports whether f is available.
func (r Rule) HasFeature(f Feature) bool {
	return slices.Contains(r.Features, f)
}

var (
	noneRule = Rule{Quota: 0}

	basicRule = Rule{
		Quota:   100,
		Periods: []model.Period{model.PeriodMonthly},
	}

	// Trial previews the standard plan and resolves to this same rule.
	standardRule = Rule{
		Quota:    500,
		Periods:  []model.Period{model.PeriodWeekly, model.PeriodMonthly, model.PeriodQuarterly},
		Features: []Feature{FeatureCSVExport},
	}

	premiumRule = Rule{
		Quota:    Unlimited,
		Periods:  model.Periods,
		Features: []Feature{FeatureCSVExport, FeatureTextReportExport, FeatureOptimizationSuggestions},
	}
)

// For returns the rule for a tier.
func For(t model.Tier) Rule {
	switch t {
	case model.TierBasic:
		return basicRule
	case model.TierStandard, model.TierTrial:
		return standardRule
	case model.TierPremium:
		return premiumRule
	default:
		return noneRule
	}
}

// Plan is the catalogue entry shown when choosing a subscription.
type Plan struct {
	Tier        model.Tier
	Name        string
	Price       decimal.Decimal // per month
	Description string
}

// Catalogue lists the purchasable plans in display order.
func Catalogue() []Plan {
	return []Plan{
		{Tier: model.TierTrial, Name: "Free Trial", Price: decimal.Zero,
			Description: "Try all Standard features free for 30 days - no credit card required"},
		{Tier: model.TierBasic, Name: "Basic", Price: decimal.RequireFromString("5.50"),
			Description: "Perfect for small businesses just getting started"},
		{Tier: model.TierStandard, Name: "Standard", Price: decimal.RequireFromString("10.00"),
			Description: "Ideal for growing businesses with more complex needs"},
		{Tier: model.TierPremium, Name: "Premium", Price: decimal.RequireFromString("17.00"),
			Description: "Everything you need to run and optimize your business"},
	}
}
