// Package activity keeps an append-only CSV audit trail of user actions.
package activity

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Actions recorded by the application.
const (
	ActionSignup        = "signup"
	ActionLogin         = "login"
	ActionLogout        = "logout"
	ActionActivate      = "activate_plan"
	ActionAddTx         = "add_transaction"
	ActionDeleteTx      = "delete_transaction"
	ActionImport        = "import_statement"
	ActionExport        = "export_report"
	ActionQuotaExceeded = "quota_exceeded"
	ActionDenied        = "upgrade_required"
)

// Entry is one row in the activity log.
type Entry struct {
	Timestamp     time.Time
	UserID        string
	Action        string
	Details       string
	TransactionID string
}

// Header is the CSV header for activity-log.csv.
const Header = "timestamp,user_id,action,details,transaction_id"

const (
	FileName   = "activity-log.csv"
	numFields  = 5
	colTime    = 0
	colUserID  = 1
	colAction  = 2
	colDetails = 3
	colTxID    = 4
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTime] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colUserID] = e.UserID
	row[colAction] = e.Action
	row[colDetails] = e.Details
	row[colTxID] = e.TransactionID
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTime])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTime], err)
	}

	return Entry{
		Timestamp:     ts,
		UserID:        record[colUserID],
		Action:        record[colAction],
		Details:       record[colDetails],
		TransactionID: record[colTxID],
	}, nil
}

// Log appends entries to <dir>/activity-log.csv.
type Log struct {
	dir string
}

func New(dir string) *Log {
	return &Log{dir: dir}
}

func (l *Log) Path() string {
	return filepath.Join(l.dir, FileName)
}

// Append writes entries, creating the file and header if needed.
func (l *Log) Append(entries ...Entry) error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	path := l.Path()
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries. A missing file yields no entries.
func (l *Log) Read() ([]Entry, error) {
	f, err := os.Open(l.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

// ForUser filters Read to one user's entries.
func (l *Log) ForUser(userID string) ([]Entry, error) {
	all, err := l.Read()
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, e := range all {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading activity log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
