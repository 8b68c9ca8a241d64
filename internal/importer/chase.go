package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ChaseParser reads Chase CSV downloads. Checking and credit card exports
// use different columns; the header row decides which layout applies.
type ChaseParser struct{}

const chaseDateFormat = "01/02/2006"

// chaseLayout locates the columns a Line needs.
type chaseLayout struct {
	date, desc, amount, kind int
}

var (
	// Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #
	chaseChecking = chaseLayout{date: 1, desc: 2, amount: 3, kind: 4}
	// Transaction Date,Post Date,Description,Category,Type,Amount,Memo
	chaseCard = chaseLayout{date: 0, desc: 2, amount: 5, kind: 4}
)

var errChaseHeader = errors.New("unrecognized Chase CSV header")

func (p *ChaseParser) Format() string { return "chase" }

// Parse reads a Chase CSV. Rows may be ragged; only the columns of the
// detected layout are required.
func (p *ChaseParser) Parse(r io.Reader) ([]Line, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chase CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	layout, err := detectChaseLayout(records[0])
	if err != nil {
		return nil, err
	}

	var lines []Line
	for i, rec := range records[1:] {
		line, err := layout.parse(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func detectChaseLayout(header []string) (chaseLayout, error) {
	if len(header) == 0 {
		return chaseLayout{}, errChaseHeader
	}
	switch strings.TrimSpace(strings.TrimPrefix(header[0], "\ufeff")) {
	case "Details":
		return chaseChecking, nil
	case "Transaction Date":
		return chaseCard, nil
	}
	return chaseLayout{}, fmt.Errorf("%w: %q", errChaseHeader, strings.Join(header, ","))
}

func (l chaseLayout) parse(rec []string) (Line, error) {
	if need := max(l.date, l.desc, l.amount, l.kind) + 1; len(rec) < need {
		return Line{}, fmt.Errorf("expected at least %d fields, got %d", need, len(rec))
	}

	date, err := time.Parse(chaseDateFormat, strings.TrimSpace(rec[l.date]))
	if err != nil {
		return Line{}, fmt.Errorf("parsing date %q: %w", rec[l.date], err)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(rec[l.amount]))
	if err != nil {
		return Line{}, fmt.Errorf("parsing amount %q: %w", rec[l.amount], err)
	}

	desc := strings.TrimSpace(rec[l.desc])
	return Line{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Reference:   makeRef("chase", date, desc),
		Type:        rec[l.kind],
	}, nil
}

// makeRef builds a reference such as chase_20250103_GITHUBPRO from the
// first ten alphanumerics of the description.
func makeRef(source string, date time.Time, desc string) string {
	prefix := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, desc)
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	return fmt.Sprintf("%s_%s_%s", source, date.Format("20060102"), prefix)
}
