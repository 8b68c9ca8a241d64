package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/cleared-dev/bizledger/internal/activity"
	"github.com/cleared-dev/bizledger/internal/categories"
	"github.com/cleared-dev/bizledger/internal/entitlement"
	"github.com/cleared-dev/bizledger/internal/importer"
	"github.com/cleared-dev/bizledger/internal/ledger"
)

// ImportResult summarizes one statement import.
type ImportResult struct {
	File    string
	Added   int
	Skipped int // lines left out once the monthly quota was hit
	Invalid []error
}

// Import parses a statement file and adds each line through AddTransaction,
// so quota and access rules apply to every row. Guessed categories missing
// from the configured list become Other. Import stops adding at the
// first quota refusal.
func (a *App) Import(ctx context.Context, path string, registry *importer.Registry) (ImportResult, error) {
	res := ImportResult{File: path}

	p, err := registry.ForFile(path)
	if err != nil {
		return res, err
	}
	f, err := os.Open(path)
	if err != nil {
		return res, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	lines, err := p.Parse(f)
	if err != nil {
		return res, fmt.Errorf("parsing %s: %w", path, err)
	}

	for i, line := range lines {
		category := importer.Categorize(line)
		if !a.cats.Exists(category) {
			category = categories.Other
		}
		_, err := a.AddTransaction(ctx, line.Input(category))
		var verrs ledger.ValidationErrors
		var quota *entitlement.QuotaExceededError
		switch {
		case err == nil:
			res.Added++
		case errors.As(err, &verrs):
			res.Invalid = append(res.Invalid, fmt.Errorf("line %d: %w", i+1, err))
		case errors.As(err, &quota):
			res.Skipped = len(lines) - i
			a.finishImport(res)
			return res, err
		default:
			return res, err
		}
	}
	a.finishImport(res)
	return res, nil
}

// ImportPending imports every statement in the data directory's import
// folder and moves each fully imported file to import/processed.
func (a *App) ImportPending(ctx context.Context, registry *importer.Registry) ([]ImportResult, error) {
	root := a.cfg.Storage.Dir
	files, err := importer.Scan(root)
	if err != nil {
		return nil, err
	}

	var results []ImportResult
	for _, fi := range files {
		res, err := a.Import(ctx, fi.Path, registry)
		results = append(results, res)
		if err != nil {
			return results, err
		}
		if err := importer.MarkProcessed(root, fi.Name); err != nil {
			return results, err
		}
	}
	return results, nil
}

func (a *App) finishImport(res ImportResult) {
	a.record(activity.ActionImport, fmt.Sprintf("%s: %d added, %d skipped, %d invalid", res.File, res.Added, res.Skipped, len(res.Invalid)), "")
	a.log.Info().Str("file", res.File).Int("added", res.Added).Int("skipped", res.Skipped).Msg("statement imported")
}
