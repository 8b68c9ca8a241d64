package activity

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 3, 13, 10, 30, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp:     testTime,
		UserID:        "u1",
		Action:        ActionAddTx,
		Details:       "expense 12.50 Meals, lunch",
		TransactionID: "1710325800000",
	}
}

func TestAppend_NewFile(t *testing.T) {
	log := New(t.TempDir())
	require.NoError(t, log.Append(testEntry()))

	entries, err := log.Read()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, ActionAddTx, entries[0].Action)
}

func TestAppend_ExistingFile(t *testing.T) {
	log := New(t.TempDir())
	require.NoError(t, log.Append(testEntry()))

	e2 := testEntry()
	e2.UserID = "u2"
	e2.Action = ActionImport
	require.NoError(t, log.Append(e2))

	entries, err := log.Read()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ActionAddTx, entries[0].Action)
	assert.Equal(t, ActionImport, entries[1].Action)

	mine, err := log.ForUser("u2")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, ActionImport, mine[0].Action)
}

func TestRead_RoundTrip(t *testing.T) {
	log := New(t.TempDir())
	original := testEntry()
	require.NoError(t, log.Append(original))

	entries, err := log.Read()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.True(t, original.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, original.UserID, got.UserID)
	assert.Equal(t, original.Details, got.Details)
	assert.Equal(t, original.TransactionID, got.TransactionID)
}

func TestRead_NotFound(t *testing.T) {
	entries, err := New(t.TempDir()).Read()
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(Header+"\n"), 0o644))

	entries, err := New(dir).Read()
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestUnmarshalEntry_BadFieldCount(t *testing.T) {
	_, err := UnmarshalEntry([]string{"one", "two"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expected 5 fields")
}

func TestTimestampFormat(t *testing.T) {
	e := testEntry()
	e.Timestamp = time.Date(2024, 3, 13, 11, 30, 0, 0, time.FixedZone("CET", 3600))
	row := MarshalEntry(e)
	assert.Equal(t, "2024-03-13T10:30:00Z", row[0])
}

func TestAppend_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	require.NoError(t, New(dir).Append(testEntry()))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
