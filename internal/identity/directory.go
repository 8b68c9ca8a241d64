// Package identity is the demo user directory: signup, login and the
// current-user record, all kept in the KV store.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cleared-dev/bizledger/internal/model"
	"github.com/cleared-dev/bizledger/internal/store"
)

var (
	// ErrInvalidCredentials covers unknown emails and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user already exists")
	ErrUnknownUser        = errors.New("unknown user")
)

type record struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	Password           string     `json:"password"`
	BusinessName       string     `json:"businessName"`
	Subscription       model.Tier `json:"subscription"`
	SubscriptionExpiry *time.Time `json:"subscriptionExpiry"`
	TrialStarted       *time.Time `json:"trialStarted"`
}

func (r record) user() model.User {
	return model.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		BusinessName: r.BusinessName,
		Subscription: model.Subscription{
			Tier:           r.Subscription,
			Expiry:         r.SubscriptionExpiry,
			TrialStartedAt: r.TrialStarted,
		},
	}
}

// Directory is the set of registered users.
type Directory struct {
	kv   store.KV
	cost int
}

type Option func(*Directory)

// WithCost sets the bcrypt cost for new password hashes.
func WithCost(cost int) Option {
	return func(d *Directory) { d.cost = cost }
}

func NewDirectory(kv store.KV, opts ...Option) *Directory {
	d := &Directory{kv: kv, cost: bcrypt.DefaultCost}
	for _, o := range opts {
		o(d)
	}
	return d
}

// SignupParams is a new registration.
type SignupParams struct {
	Name         string
	Email        string
	Password     string
	BusinessName string
}

// Signup registers a user with no subscription.
func (d *Directory) Signup(ctx context.Context, p SignupParams) (model.User, error) {
	email := normalizeEmail(p.Email)
	if email == "" || p.Password == "" {
		return model.User{}, errors.New("email and password are required")
	}

	records, err := d.load(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, r := range records {
		if normalizeEmail(r.Email) == email {
			return model.User{}, ErrUserExists
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), d.cost)
	if err != nil {
		return model.User{}, fmt.Errorf("hashing password: %w", err)
	}

	r := record{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(p.Name),
		Email:        email,
		Password:     string(hash),
		BusinessName: strings.TrimSpace(p.BusinessName),
	}
	if err := d.save(ctx, append(records, r)); err != nil {
		return model.User{}, err
	}
	return r.user(), nil
}

// Login checks a credential pair. Failures never reveal whether the email
// is registered.
func (d *Directory) Login(ctx context.Context, email, password string) (model.User, error) {
	records, err := d.load(ctx)
	if err != nil {
		return model.User{}, err
	}
	email = normalizeEmail(email)
	for _, r := range records {
		if normalizeEmail(r.Email) != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(r.Password), []byte(password)) != nil {
			return model.User{}, ErrInvalidCredentials
		}
		return r.user(), nil
	}
	return model.User{}, ErrInvalidCredentials
}

// UpdateSubscription mirrors u's subscription into its directory record.
func (d *Directory) UpdateSubscription(ctx context.Context, u model.User) error {
	records, err := d.load(ctx)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID == u.ID {
			records[i].Subscription = u.Subscription.Tier
			records[i].SubscriptionExpiry = u.Subscription.Expiry
			records[i].TrialStarted = u.Subscription.TrialStartedAt
			return d.save(ctx, records)
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownUser, u.ID)
}

func (d *Directory) load(ctx context.Context) ([]record, error) {
	var records []record
	if _, err := store.GetJSON(ctx, d.kv, store.KeyUsers, &records); err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	return records, nil
}

func (d *Directory) save(ctx context.Context, records []record) error {
	if err := store.SetJSON(ctx, d.kv, store.KeyUsers, records); err != nil {
		return fmt.Errorf("saving users: %w", err)
	}
	return nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
