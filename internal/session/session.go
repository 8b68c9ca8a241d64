// Package session owns the signed-in user's state and the commands that
// change it. Commands never mutate the receiver; they return a new State.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/cleared-dev/bizledger/internal/entitlement"
	"github.com/cleared-dev/bizledger/internal/ledger"
	"github.com/cleared-dev/bizledger/internal/metrics"
	"github.com/cleared-dev/bizledger/internal/model"
	"github.com/cleared-dev/bizledger/internal/report"
	"github.com/cleared-dev/bizledger/internal/subscription"
)

var (
	ErrNotLoggedIn          = errors.New("not logged in")
	ErrSubscriptionRequired = errors.New("an active subscription is required")
	ErrTransactionNotFound  = errors.New("transaction not found")
)

// ExpiredError blocks the dashboard once a non-premium plan lapses.
type ExpiredError struct {
	Tier   model.Tier
	Expiry time.Time
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("your %s subscription expired on %s", e.Tier, e.Expiry.Format(model.DateFormat))
}

// IDSource issues transaction IDs.
type IDSource interface {
	Next() string
}

// State is the session: who is signed in and their transactions.
type State struct {
	User   *model.User
	Ledger ledger.Ledger
}

// Tier is the signed-in user's tier, TierNone when signed out.
func (s State) Tier() model.Tier {
	if s.User == nil {
		return model.TierNone
	}
	return s.User.Subscription.Tier
}

// Access decides whether the dashboard is open at now.
func (s State) Access(now time.Time) error {
	if s.User == nil {
		return ErrNotLoggedIn
	}
	sub := s.User.Subscription
	if sub.Tier == model.TierNone {
		return ErrSubscriptionRequired
	}
	if subscription.IsExpired(sub, now) {
		return &ExpiredError{Tier: sub.Tier, Expiry: *sub.Expiry}
	}
	return nil
}

// SignIn replaces the user and the ledger loaded for them.
func (s State) SignIn(u model.User, l ledger.Ledger) State {
	return State{User: &u, Ledger: l}
}

// SignOut clears the user. The ledger is kept as stored data.
func (s State) SignOut() State {
	return State{Ledger: s.Ledger}
}

// Usage is the month's transaction count against the tier quota.
type Usage struct {
	Used  int
	Limit entitlement.Quota
}

func (u Usage) String() string {
	if u.Limit.Unlimited() {
		return fmt.Sprintf("%d transactions this month (unlimited)", u.Used)
	}
	return fmt.Sprintf("%d/%s transactions used this month", u.Used, u.Limit)
}

// Remaining is how many more transactions fit this month, -1 if unlimited.
func (u Usage) Remaining() int {
	if u.Limit.Unlimited() {
		return -1
	}
	return max(int(u.Limit)-u.Used, 0)
}

func (s State) QuotaUsage(now time.Time) Usage {
	return Usage{Used: s.Ledger.CountInMonth(now), Limit: entitlement.For(s.Tier()).Quota}
}

// AddTransaction validates in, checks access and the monthly quota, then
// prepends the transaction. Nothing is recorded on any error.
func (s State) AddTransaction(in ledger.Input, ids IDSource, now time.Time) (State, model.Transaction, error) {
	if err := s.Access(now); err != nil {
		return s, model.Transaction{}, err
	}
	tx, err := ledger.Validate(in, now)
	if err != nil {
		return s, model.Transaction{}, err
	}
	tier := s.Tier()
	if d := entitlement.CheckQuota(tier, s.Ledger.CountInMonth(now)); !d.Allowed {
		return s, model.Transaction{}, &entitlement.QuotaExceededError{Tier: tier, Limit: d.Limit}
	}

	tx.ID = ids.Next()
	return State{User: s.User, Ledger: s.Ledger.Add(tx)}, tx, nil
}

// DeleteTransaction removes one transaction by ID.
func (s State) DeleteTransaction(id string) (State, error) {
	if s.User == nil {
		return s, ErrNotLoggedIn
	}
	l, ok := s.Ledger.Remove(id)
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}
	return State{User: s.User, Ledger: l}, nil
}

// Activate switches the user to tier.
func (s State) Activate(tier model.Tier, now time.Time) (State, error) {
	if s.User == nil {
		return s, ErrNotLoggedIn
	}
	sub, err := subscription.Activate(s.User.Subscription, tier, now)
	if err != nil {
		return s, err
	}
	u := *s.User
	u.Subscription = sub
	return State{User: &u, Ledger: s.Ledger}, nil
}

// Analytics computes the month-over-month snapshot.
func (s State) Analytics(now time.Time) (metrics.Snapshot, error) {
	if err := s.gate(now, entitlement.CheckViewAccess(s.Tier(), entitlement.ViewAnalytics), string(entitlement.ViewAnalytics)); err != nil {
		return metrics.Snapshot{}, err
	}
	return metrics.Compute(s.Ledger.All(), now), nil
}

// Suggestions derives cost optimization hints from the snapshot.
func (s State) Suggestions(now time.Time) (metrics.Suggestions, error) {
	d := entitlement.CheckFeatureAccess(s.Tier(), entitlement.FeatureOptimizationSuggestions)
	if err := s.gate(now, d, "optimization suggestions"); err != nil {
		return metrics.Suggestions{}, err
	}
	return metrics.Suggest(metrics.Compute(s.Ledger.All(), now)), nil
}

// Report builds the report for period p around now.
func (s State) Report(p model.Period, now time.Time) (report.Report, error) {
	if err := s.gate(now, entitlement.CheckViewAccess(s.Tier(), entitlement.ViewReports), string(entitlement.ViewReports)); err != nil {
		return report.Report{}, err
	}
	d := entitlement.CheckPeriodAccess(s.Tier(), p)
	if err := entitlement.Require(d, s.Tier(), string(p)+" reports"); err != nil {
		return report.Report{}, err
	}
	return report.Generate(s.Ledger.All(), p, now)
}

// Export encodes the period report and names the file.
func (s State) Export(p model.Period, f report.Format, now time.Time) (name string, content []byte, err error) {
	r, err := s.Report(p, now)
	if err != nil {
		return "", nil, err
	}
	content, err = report.Export(s.Tier(), f, r, now)
	if err != nil {
		return "", nil, err
	}
	return report.FileName(p, f, now), content, nil
}

func (s State) gate(now time.Time, d entitlement.FeatureDecision, what string) error {
	if err := s.Access(now); err != nil {
		return err
	}
	return entitlement.Require(d, s.Tier(), what)
}
