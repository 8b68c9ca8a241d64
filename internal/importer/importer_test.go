package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/bizledger/internal/model"
)

const chaseHeader = "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\n"

const chaseSample = chaseHeader +
	"DEBIT,01/03/2025,GITHUB *PRO SUBSCRIPTION,-4.00,ACH_DEBIT,9996.00,\n" +
	"DEBIT,01/05/2025,STAPLES #1182,-62.18,DEBIT_CARD,9933.82,\n" +
	"CREDIT,01/10/2025,ACME CONSULTING INVOICE 1042,3500.00,ACH_CREDIT,13433.82,\n" +
	"DEBIT,01/22/2025,DELTA AIR LINES,-412.40,DEBIT_CARD,13021.42,\n"

func TestChaseParser_Parse(t *testing.T) {
	p := &ChaseParser{}
	lines, err := p.Parse(strings.NewReader(chaseSample))
	require.NoError(t, err)
	require.Len(t, lines, 4)

	assert.Equal(t, "GITHUB *PRO SUBSCRIPTION", lines[0].Description)
	assert.Equal(t, "-4.00", lines[0].Amount.StringFixed(2))
	assert.Equal(t, "ACH_DEBIT", lines[0].Type)
	assert.Equal(t, 2025, lines[0].Date.Year())
	assert.Equal(t, 3, lines[0].Date.Day())

	assert.True(t, lines[2].Amount.IsPositive())
	assert.Equal(t, model.KindIncome, lines[2].Kind())
	assert.Equal(t, model.KindExpense, lines[3].Kind())
}

func TestChaseParser_EmptyFile(t *testing.T) {
	p := &ChaseParser{}
	lines, err := p.Parse(strings.NewReader(chaseHeader))
	require.NoError(t, err)
	assert.Nil(t, lines)
}

func TestChaseParser_BadDate(t *testing.T) {
	csv := chaseHeader + "DEBIT,NOTADATE,desc,-4.00,ACH_DEBIT,100.00,\n"
	p := &ChaseParser{}
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing date")
}

func TestChaseParser_BadAmount(t *testing.T) {
	csv := chaseHeader + "DEBIT,01/03/2025,desc,NOTANUMBER,ACH_DEBIT,100.00,\n"
	p := &ChaseParser{}
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestChaseParser_CreditCard(t *testing.T) {
	csv := "Transaction Date,Post Date,Description,Category,Type,Amount,Memo\n" +
		"02/11/2025,02/12/2025,STARBUCKS STORE 112,Food & Drink,Sale,-6.45,\n" +
		"02/14/2025,02/14/2025,AUTOMATIC PAYMENT - THANK,,Payment,250.00,\n"
	p := &ChaseParser{}
	lines, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, "STARBUCKS STORE 112", lines[0].Description)
	assert.Equal(t, "-6.45", lines[0].Amount.StringFixed(2))
	assert.Equal(t, "Sale", lines[0].Type)
	assert.Equal(t, 11, lines[0].Date.Day())
	assert.Equal(t, "Meals", Categorize(lines[0]))
	assert.Equal(t, model.KindIncome, lines[1].Kind())
}

func TestChaseParser_ByteOrderMark(t *testing.T) {
	lines, err := (&ChaseParser{}).Parse(strings.NewReader("\ufeff" + chaseSample))
	require.NoError(t, err)
	assert.Len(t, lines, 4)
}

func TestChaseParser_UnknownHeader(t *testing.T) {
	_, err := (&ChaseParser{}).Parse(strings.NewReader("Date,Amount\n01/01/2025,1.00\n"))
	require.ErrorIs(t, err, errChaseHeader)
}

func TestChaseParser_ShortRow(t *testing.T) {
	_, err := (&ChaseParser{}).Parse(strings.NewReader(chaseHeader + "DEBIT,01/03/2025\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestChaseParser_Reference(t *testing.T) {
	p := &ChaseParser{}
	lines, err := p.Parse(strings.NewReader(chaseSample))
	require.NoError(t, err)

	// Reference format: chase_YYYYMMDD_<prefix>
	assert.Equal(t, "chase_20250103_GITHUBPROS", lines[0].Reference)
}

func TestLine_Input(t *testing.T) {
	p := &ChaseParser{}
	lines, err := p.Parse(strings.NewReader(chaseSample))
	require.NoError(t, err)

	in := lines[1].Input("Office Supplies")
	assert.Equal(t, "62.18", in.Amount)
	assert.Equal(t, "expense", in.Kind)
	assert.Equal(t, "2025-01-05", in.Date)
	assert.Equal(t, "STAPLES #1182", in.Description)
}

func TestCategorize(t *testing.T) {
	p := &ChaseParser{}
	lines, err := p.Parse(strings.NewReader(chaseSample))
	require.NoError(t, err)

	got := make([]string, len(lines))
	for i, l := range lines {
		got[i] = Categorize(l)
	}
	assert.Equal(t, []string{"Software", "Office Supplies", "Consulting", "Travel"}, got)

	assert.Equal(t, "Other", Categorize(Line{Description: "MYSTERY", Amount: dec("-1")}))
	assert.Equal(t, "Sales", Categorize(Line{Description: "DEPOSIT", Amount: dec("1")}))
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	assert.NotNil(t, r.Get("Chase"))
	assert.NotNil(t, r.Get("CHASE"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	assert.Panics(t, func() { r.Register(&ChaseParser{}) })
}

func TestRegistry_ForFile(t *testing.T) {
	r := DefaultRegistry()

	p, err := r.ForFile("statement.QFX")
	require.NoError(t, err)
	assert.Equal(t, "ofx", p.Format())

	p, err = r.ForFile("bank.csv")
	require.NoError(t, err)
	assert.Equal(t, "chase", p.Format())

	_, err = r.ForFile("notes.txt")
	assert.Error(t, err)
}

func TestScan_FindsStatements(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "bank.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "card.ofx"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "other.txt"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "bank.csv", files[0].Name)
	assert.Equal(t, "card.ofx", files[1].Name)
}

func TestScan_IgnoresProcessedDir(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	processedDir := filepath.Join(importDir, "processed")
	require.NoError(t, os.MkdirAll(processedDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "new.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(processedDir, "old.csv"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "new.csv", files[0].Name)
}

func TestScan_EmptyDir(t *testing.T) {
	files, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "bank.csv"), []byte("data"), 0o644))

	err := MarkProcessed(dir, "bank.csv")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(importDir, "bank.csv"))
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(filepath.Join(dir, "import", "processed", "bank.csv"))
	assert.NoError(t, err)
}
