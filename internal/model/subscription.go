package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Tier is a subscription level. The zero value is TierNone.
type Tier int

const (
	TierNone Tier = iota
	TierTrial
	TierBasic
	TierStandard
	TierPremium
)

// Tiers lists every tier a user can activate, cheapest first.
var Tiers = []Tier{TierTrial, TierBasic, TierStandard, TierPremium}

func (t Tier) String() string {
	switch t {
	case TierNone:
		return "none"
	case TierTrial:
		return "trial"
	case TierBasic:
		return "basic"
	case TierStandard:
		return "standard"
	case TierPremium:
		return "premium"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Rank orders tiers for feature gating. Trial sits level with standard.
func (t Tier) Rank() int {
	switch t {
	case TierBasic:
		return 1
	case TierStandard, TierTrial:
		return 2
	case TierPremium:
		return 3
	}
	return 0
}

// AtLeast reports whether t grants everything required does.
// TierNone never satisfies anything.
func (t Tier) AtLeast(required Tier) bool {
	if t == TierNone {
		return false
	}
	return t.Rank() >= required.Rank()
}

// ParseTier converts a tier name. Empty and "none" both mean TierNone.
func ParseTier(s string) (Tier, error) {
	switch s {
	case "", "none":
		return TierNone, nil
	case "trial":
		return TierTrial, nil
	case "basic":
		return TierBasic, nil
	case "standard":
		return TierStandard, nil
	case "premium":
		return TierPremium, nil
	}
	return TierNone, fmt.Errorf("unknown subscription tier %q", s)
}

// MarshalJSON encodes TierNone as null and every other tier by name.
func (t Tier) MarshalJSON() ([]byte, error) {
	if t == TierNone {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts null or a tier name.
func (t *Tier) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*t = TierNone
		return nil
	}
	parsed, err := ParseTier(*s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Subscription is the billing state attached to a user.
type Subscription struct {
	Tier           Tier
	Expiry         *time.Time // nil means no expiry
	TrialStartedAt *time.Time // set on first trial activation, never cleared
}

// User is the signed-in account.
type User struct {
	ID           string
	Name         string
	Email        string
	BusinessName string
	Subscription Subscription
}

type userJSON struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	BusinessName       string     `json:"businessName"`
	Subscription       Tier       `json:"subscription"`
	SubscriptionExpiry *time.Time `json:"subscriptionExpiry"`
	TrialStarted       *time.Time `json:"trialStarted"`
}

// MarshalJSON writes the flat user record with ISO-8601 timestamps.
func (u User) MarshalJSON() ([]byte, error) {
	return json.Marshal(userJSON{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		BusinessName:       u.BusinessName,
		Subscription:       u.Subscription.Tier,
		SubscriptionExpiry: utcPtr(u.Subscription.Expiry),
		TrialStarted:       utcPtr(u.Subscription.TrialStartedAt),
	})
}

// UnmarshalJSON reads the flat user record.
func (u *User) UnmarshalJSON(data []byte) error {
	var raw userJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = User{
		ID:           raw.ID,
		Name:         raw.Name,
		Email:        raw.Email,
		BusinessName: raw.BusinessName,
		Subscription: Subscription{
			Tier:           raw.Subscription,
			Expiry:         raw.SubscriptionExpiry,
			TrialStartedAt: raw.TrialStarted,
		},
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
