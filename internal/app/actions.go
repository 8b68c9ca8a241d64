package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cleared-dev/bizledger/internal/activity"
	"github.com/cleared-dev/bizledger/internal/entitlement"
	"github.com/cleared-dev/bizledger/internal/identity"
	"github.com/cleared-dev/bizledger/internal/ledger"
	"github.com/cleared-dev/bizledger/internal/metrics"
	"github.com/cleared-dev/bizledger/internal/model"
	"github.com/cleared-dev/bizledger/internal/report"
	"github.com/cleared-dev/bizledger/internal/session"
)

// Signup registers and signs in. The simulated auth delay runs inside the
// auth guard, so a second call while one is pending gets flight.ErrInFlight.
func (a *App) Signup(ctx context.Context, p identity.SignupParams) (model.User, error) {
	var u model.User
	err := a.auth.Do(ctx, func(ctx context.Context) error {
		a.sleep(a.cfg.Simulation.AuthLatency)
		var err error
		u, err = a.dir.Signup(ctx, p)
		return err
	})
	if err != nil {
		return model.User{}, err
	}
	a.state = a.state.SignIn(u, a.state.Ledger)
	a.saveUser(ctx)
	a.record(activity.ActionSignup, u.Email, "")
	a.log.Info().Str("user", u.ID).Msg("signed up")
	return u, nil
}

// Login checks credentials against the directory and signs in.
func (a *App) Login(ctx context.Context, email, password string) (model.User, error) {
	var u model.User
	err := a.auth.Do(ctx, func(ctx context.Context) error {
		a.sleep(a.cfg.Simulation.AuthLatency)
		var err error
		u, err = a.dir.Login(ctx, email, password)
		return err
	})
	if err != nil {
		return model.User{}, err
	}
	a.state = a.state.SignIn(u, a.state.Ledger)
	a.saveUser(ctx)
	a.record(activity.ActionLogin, u.Email, "")
	a.log.Info().Str("user", u.ID).Msg("logged in")
	return u, nil
}

func (a *App) Logout(ctx context.Context) {
	a.record(activity.ActionLogout, "", "")
	a.state = a.state.SignOut()
	a.saveUser(ctx)
}

// Activate switches plans. Paid plans pause for the simulated payment.
func (a *App) Activate(ctx context.Context, tier model.Tier) (model.Subscription, error) {
	if a.state.User == nil {
		return model.Subscription{}, session.ErrNotLoggedIn
	}
	var next session.State
	err := a.payment.Do(ctx, func(ctx context.Context) error {
		if tier != model.TierTrial {
			a.sleep(a.cfg.Simulation.PaymentLatency)
		}
		var err error
		next, err = a.state.Activate(tier, a.now())
		return err
	})
	if err != nil {
		return model.Subscription{}, err
	}

	a.state = next
	a.saveUser(ctx)
	if err := a.dir.UpdateSubscription(ctx, *a.state.User); err != nil {
		a.log.Warn().Err(err).Msg("mirroring subscription into directory")
	}
	a.record(activity.ActionActivate, tier.String(), "")
	a.log.Info().Str("tier", tier.String()).Msg("plan activated")
	return a.state.User.Subscription, nil
}

// AddTransaction records one submission. Categories must come from the
// configured list; the listed spelling is stored.
func (a *App) AddTransaction(ctx context.Context, in ledger.Input) (model.Transaction, error) {
	name, ok := a.cats.Canonical(in.Category)
	if !ok && in.Category != "" {
		return model.Transaction{}, ledger.ValidationErrors{{Field: "category", Description: fmt.Sprintf("unknown category %q", in.Category)}}
	}
	in.Category = name

	next, tx, err := a.state.AddTransaction(in, a.ids, a.now())
	if err != nil {
		a.recordDenial(err)
		return model.Transaction{}, err
	}
	a.state = next
	a.saveLedger(ctx)
	a.record(activity.ActionAddTx, txDetails(tx), tx.ID)
	return tx, nil
}

func (a *App) DeleteTransaction(ctx context.Context, txID string) error {
	tx, _ := a.state.Ledger.Find(txID)
	next, err := a.state.DeleteTransaction(txID)
	if err != nil {
		return err
	}
	a.state = next
	a.saveLedger(ctx)
	a.record(activity.ActionDeleteTx, txDetails(tx), txID)
	return nil
}

func txDetails(tx model.Transaction) string {
	return fmt.Sprintf("%s %s %s", tx.Kind, tx.Amount.StringFixed(2), tx.Category)
}

func (a *App) Analytics() (metrics.Snapshot, error) {
	s, err := a.state.Analytics(a.now())
	a.recordDenial(err)
	return s, err
}

func (a *App) Suggestions() (metrics.Suggestions, error) {
	s, err := a.state.Suggestions(a.now())
	a.recordDenial(err)
	return s, err
}

func (a *App) Report(p model.Period) (report.Report, error) {
	r, err := a.state.Report(p, a.now())
	a.recordDenial(err)
	return r, err
}

// Export writes the encoded report into outDir and returns its path.
func (a *App) Export(p model.Period, f report.Format, outDir string) (string, error) {
	name, content, err := a.state.Export(p, f, a.now())
	if err != nil {
		a.recordDenial(err)
		return "", err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}
	path := filepath.Join(outDir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	a.record(activity.ActionExport, name, "")
	return path, nil
}

func (a *App) QuotaUsage() session.Usage {
	return a.state.QuotaUsage(a.now())
}

func (a *App) recordDenial(err error) {
	var quota *entitlement.QuotaExceededError
	var denied *entitlement.DeniedError
	switch {
	case errors.As(err, &quota):
		a.record(activity.ActionQuotaExceeded, quota.Error(), "")
	case errors.As(err, &denied):
		a.record(activity.ActionDenied, denied.Error(), "")
	}
}
