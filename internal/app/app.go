// Package app wires storage, identity and the session together and
// persists every change.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/bizledger/internal/activity"
	"github.com/cleared-dev/bizledger/internal/categories"
	"github.com/cleared-dev/bizledger/internal/config"
	"github.com/cleared-dev/bizledger/internal/flight"
	"github.com/cleared-dev/bizledger/internal/id"
	"github.com/cleared-dev/bizledger/internal/identity"
	"github.com/cleared-dev/bizledger/internal/ledger"
	"github.com/cleared-dev/bizledger/internal/logger"
	"github.com/cleared-dev/bizledger/internal/session"
	"github.com/cleared-dev/bizledger/internal/store"
)

// App is one open session against a data directory.
type App struct {
	cfg      *config.Config
	kv       store.KV
	closer   io.Closer
	dir      *identity.Directory
	cats     *categories.Service
	activity *activity.Log
	ids      *id.Generator
	dirOpts  []identity.Option
	log      zerolog.Logger
	now      func() time.Time
	sleep    func(time.Duration)

	payment *flight.Guard
	auth    *flight.Guard

	state   session.State
	notices []string
}

type Option func(*App)

// WithSleep replaces the simulated-latency pause.
func WithSleep(fn func(time.Duration)) Option {
	return func(a *App) { a.sleep = fn }
}

// WithKV uses kv instead of the configured backend.
func WithKV(kv store.KV) Option {
	return func(a *App) { a.kv = kv }
}

func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithDirectoryOptions passes options to the user directory.
func WithDirectoryOptions(opts ...identity.Option) Option {
	return func(a *App) { a.dirOpts = append(a.dirOpts, opts...) }
}

// Open builds the store from cfg and reads the session, logging through the
// logger carried by ctx. A store that cannot be opened or data that cannot be
// read does not fail Open: the session runs in memory or starts empty and a
// notice is queued. Only an unknown backend is an error.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	a := &App{
		cfg:     cfg,
		log:     logger.FromContext(ctx),
		now:     time.Now,
		sleep:   time.Sleep,
		payment: flight.New("payment"),
		auth:    flight.New("auth"),
	}
	for _, o := range opts {
		o(a)
	}

	if a.kv == nil {
		kv, closer, err := openStore(cfg.Storage)
		switch {
		case errors.Is(err, errUnknownBackend):
			return nil, err
		case err != nil:
			a.log.Error().Err(err).Str("backend", cfg.Storage.Backend).Msg("opening store, falling back to memory")
			a.notice(fmt.Sprintf("Could not open saved data (%v); changes are kept for this session only.", err))
			kv, closer = store.NewMemory(), nil
		}
		a.kv, a.closer = kv, closer
	}
	a.dir = identity.NewDirectory(a.kv, a.dirOpts...)

	names := cfg.Categories
	if len(names) == 0 {
		a.cats = categories.NewService(categories.Default())
	} else {
		a.cats = categories.NewService(categories.FromNames(names))
	}
	a.activity = activity.New(cfg.Storage.Dir)
	a.ids = id.NewGenerator(a.now)

	a.load(ctx)
	return a, nil
}

var errUnknownBackend = errors.New("unknown storage backend")

func openStore(sc config.StorageConfig) (store.KV, io.Closer, error) {
	switch sc.Backend {
	case config.BackendSQLite:
		db, err := store.OpenSQLite(sc.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	case config.BackendMemory:
		return store.NewMemory(), nil, nil
	case config.BackendFile, "":
		f, err := store.NewFile(filepath.Join(sc.Dir, "kv"))
		if err != nil {
			return nil, nil, err
		}
		return f, nil, nil
	}
	return nil, nil, fmt.Errorf("%w %q", errUnknownBackend, sc.Backend)
}

func (a *App) load(ctx context.Context) {
	l, err := ledger.Load(ctx, a.kv)
	if err != nil {
		a.recover("transactions", err)
		l = ledger.New(nil)
	}
	a.ids.Seed(l.IDs()...)

	u, err := identity.LoadCurrent(ctx, a.kv)
	if err != nil {
		a.recover("user", err)
		u = nil
	}
	a.state = session.State{User: u, Ledger: l}
}

// recover turns a storage failure into a notice.
func (a *App) recover(what string, err error) {
	a.log.Warn().Err(err).Str("data", what).Msg("storage failure, continuing with empty data")
	var perr *store.PersistenceError
	if errors.As(err, &perr) {
		a.notice(fmt.Sprintf("Could not read saved %s; starting with empty data.", what))
		return
	}
	a.notice(fmt.Sprintf("Could not access saved %s: %v", what, err))
}

func (a *App) notice(msg string) {
	a.notices = append(a.notices, msg)
}

// Notices returns and clears the queued non-fatal notifications.
func (a *App) Notices() []string {
	n := a.notices
	a.notices = nil
	return n
}

func (a *App) State() session.State { return a.state }
func (a *App) Now() time.Time { return a.now() }
func (a *App) Config() *config.Config { return a.cfg }
func (a *App) Categories() *categories.Service { return a.cats }
func (a *App) Activity() *activity.Log { return a.activity }

// Close releases the store.
func (a *App) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

func (a *App) saveLedger(ctx context.Context) {
	if err := ledger.Save(ctx, a.kv, a.state.Ledger); err != nil {
		a.log.Error().Err(err).Msg("saving transactions")
		a.notice("Your transactions could not be saved; changes are kept for this session only.")
	}
}

func (a *App) saveUser(ctx context.Context) {
	var err error
	if a.state.User == nil {
		err = identity.ClearCurrent(ctx, a.kv)
	} else {
		err = identity.SaveCurrent(ctx, a.kv, *a.state.User)
	}
	if err != nil {
		a.log.Error().Err(err).Msg("saving current user")
		a.notice("Your sign-in could not be saved; it lasts for this session only.")
	}
}

func (a *App) record(action, details, txID string) {
	e := activity.Entry{Timestamp: a.now(), Action: action, Details: details, TransactionID: txID}
	if a.state.User != nil {
		e.UserID = a.state.User.ID
	}
	if err := a.activity.Append(e); err != nil {
		a.log.Warn().Err(err).Str("action", action).Msg("writing activity log")
	}
}
