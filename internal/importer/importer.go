package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bizledger/internal/ledger"
	"github.com/cleared-dev/bizledger/internal/model"
)

// Line is one statement row. Amount is signed: negative is money out.
type Line struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Reference   string
	Type        string
}

// Kind maps the amount sign to a transaction kind.
func (l Line) Kind() model.Kind {
	if l.Amount.IsNegative() {
		return model.KindExpense
	}
	return model.KindIncome
}

// Input turns the line into a transaction submission under category.
func (l Line) Input(category string) ledger.Input {
	return ledger.Input{
		Amount:      l.Amount.Abs().StringFixed(2),
		Category:    category,
		Description: l.Description,
		Date:        l.Date.Format(model.DateFormat),
		Kind:        string(l.Kind()),
	}
}

// Parser converts a statement file into Lines.
type Parser interface {
	Parse(r io.Reader) ([]Line, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a statement file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// ForFile picks a parser from the file extension: .ofx and .qfx are OFX,
// .csv is a Chase export.
func (r *Registry) ForFile(name string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ofx", ".qfx":
		return r.Get("ofx"), nil
	case ".csv":
		return r.Get("chase"), nil
	}
	return nil, fmt.Errorf("no parser for %s", name)
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	r.Register(&OFXParser{})
	return r
}

// importDir is the subdirectory for statement files.
const importDir = "import"

// processedDir is the subdirectory for imported files.
const processedDir = "import/processed"

// Dir is the import directory under root.
func Dir(root string) string {
	return filepath.Join(root, importDir)
}

// Scan returns statement files in <root>/import/.
func Scan(root string) ([]FileInfo, error) {
	dir := Dir(root)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".csv", ".ofx", ".qfx":
		default:
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(root, fileName string) error {
	src := filepath.Join(root, importDir, fileName)
	dstDir := filepath.Join(root, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
