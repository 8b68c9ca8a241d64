package commands

import (
	"errors"
	"fmt"

	"github.com/cleared-dev/bizledger/internal/entitlement"
	"github.com/cleared-dev/bizledger/internal/flight"
	"github.com/cleared-dev/bizledger/internal/identity"
	"github.com/cleared-dev/bizledger/internal/model"
	"github.com/cleared-dev/bizledger/internal/session"
)

// messageError carries a user-facing message while keeping the cause
// reachable through errors.Is and errors.As.
type messageError struct {
	msg string
	err error
}

func (e *messageError) Error() string { return e.msg }
func (e *messageError) Unwrap() error { return e.err }

// userError rewrites domain errors into the prompts shown at the terminal.
func userError(err error) error {
	if err == nil {
		return nil
	}

	var (
		expired *session.ExpiredError
		denied  *entitlement.DeniedError
		quota   *entitlement.QuotaExceededError
	)
	switch {
	case errors.Is(err, session.ErrNotLoggedIn):
		return &messageError{"not logged in: run 'bizledger login' or 'bizledger signup'", err}
	case errors.Is(err, session.ErrSubscriptionRequired):
		return &messageError{"subscription required: run 'bizledger plans' and 'bizledger plan activate <tier>'", err}
	case errors.As(err, &expired):
		return &messageError{fmt.Sprintf("%s; renew with 'bizledger plan activate %s'", expired.Error(), renewTier(expired.Tier)), err}
	case errors.As(err, &denied):
		return &messageError{fmt.Sprintf("%s; run 'bizledger plan activate %s'", denied.Error(), denied.Required), err}
	case errors.As(err, &quota):
		return &messageError{fmt.Sprintf("%s; upgrade with 'bizledger plans'", quota.Error()), err}
	case errors.Is(err, identity.ErrInvalidCredentials):
		return &messageError{"invalid email or password", err}
	case errors.Is(err, flight.ErrInFlight):
		return &messageError{"another request is still being processed, try again shortly", err}
	}
	return err
}

// renewTier is the plan suggested when a subscription lapses. Expired
// trials point at the plan they previewed.
func renewTier(t model.Tier) model.Tier {
	if t == model.TierTrial {
		return model.TierStandard
	}
	return t
}
