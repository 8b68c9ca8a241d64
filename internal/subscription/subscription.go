// Package subscription applies plan activations and derives expiry state.
package subscription

import (
	"fmt"
	"math"
	"time"

	"github.com/cleared-dev/bizledger/internal/model"
)

const (
	// TrialLength is how long a trial lasts from activation.
	TrialLength = 30 * 24 * time.Hour
	// ExpiringSoonDays is the threshold for the trial warning banner.
	ExpiringSoonDays = 7
)

// Activate returns sub switched to tier at now. A trial runs TrialLength and
// stamps TrialStartedAt the first time only; paid plans run one calendar
// month.
func Activate(sub model.Subscription, tier model.Tier, now time.Time) (model.Subscription, error) {
	if tier == model.TierNone {
		return sub, fmt.Errorf("cannot activate %s", tier)
	}

	out := model.Subscription{Tier: tier, TrialStartedAt: sub.TrialStartedAt}
	var expiry time.Time
	if tier == model.TierTrial {
		expiry = now.Add(TrialLength)
		if out.TrialStartedAt == nil {
			started := now
			out.TrialStartedAt = &started
		}
	} else {
		expiry = now.AddDate(0, 1, 0)
	}
	out.Expiry = &expiry
	return out, nil
}

// IsExpired reports whether a non-premium subscription is at or past its
// expiry. The tier itself is left alone.
func IsExpired(sub model.Subscription, now time.Time) bool {
	if sub.Tier == model.TierPremium || sub.Tier == model.TierNone || sub.Expiry == nil {
		return false
	}
	return !sub.Expiry.After(now)
}

// TrialStatus is the countdown shown while on a trial.
type TrialStatus struct {
	Active       bool
	DaysLeft     int
	ExpiringSoon bool
	Expired      bool
}

// Trial computes the countdown for sub. Active is false for other tiers.
func Trial(sub model.Subscription, now time.Time) TrialStatus {
	if sub.Tier != model.TierTrial || sub.Expiry == nil {
		return TrialStatus{}
	}
	days := DaysLeft(*sub.Expiry, now)
	return TrialStatus{
		Active:       days > 0,
		DaysLeft:     max(days, 0),
		ExpiringSoon: days > 0 && days <= ExpiringSoonDays,
		Expired:      days <= 0,
	}
}

// DaysLeft is the number of started days until expiry, rounded up.
func DaysLeft(expiry, now time.Time) int {
	return int(math.Ceil(expiry.Sub(now).Hours() / 24))
}
