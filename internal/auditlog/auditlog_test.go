package auditlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 10, 20, 9, 15, 0, 0, time.UTC)

func runEntry() Entry {
	return Entry{
		Timestamp: testTime,
		Action:    ActionRun,
		Period:    "2025-10-06_2025-10-19",
		Reference: "reports/payroll-2025-10-06_2025-10-19.pdf",
		Amount:    "4210.55",
		Details:   "12 employees",
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, runEntry()))

	data, err := os.ReadFile(filepath.Join(dir, Path))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "timestamp,action,period,employee_id,reference,amount,details\n"))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, runEntry(), entries[0])
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, runEntry()))

	add := Entry{
		Timestamp:  testTime.Add(time.Hour),
		Action:     ActionAdjustmentAdd,
		EmployeeID: "SP-2",
		Reference:  "0b7e",
		Amount:     "50.00",
		Details:    "bonus, referral",
	}
	require.NoError(t, Append(dir, add))

	data, err := os.ReadFile(filepath.Join(dir, Path))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "timestamp,action"), "header is written once")

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ActionRun, entries[0].Action)
	assert.Equal(t, "bonus, referral", entries[1].Details)
}

func TestAppend_Nothing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir))
	_, err := os.Stat(filepath.Join(dir, Path))
	assert.True(t, os.IsNotExist(err))
}

func TestRead_Missing(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRead_BadTimestamp(t *testing.T) {
	_, err := readEntries(strings.NewReader("timestamp,action,period,employee_id,reference,amount,details\nyesterday,run,,,,,\n"))
	assert.ErrorContains(t, err, "row 2")
}
