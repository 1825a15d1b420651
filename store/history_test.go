package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinichq/frontdesk/model"
)

func newTestHistory(t *testing.T) *HistoryStore {
	t.Helper()
	return NewHistoryStore(filepath.Join(t.TempDir(), "checkin_history.txt"))
}

func historyRecord(id int64, checkedInAt string) HistoryRecord {
	return HistoryRecord{
		CheckInID:     id,
		AppointmentID: id + 100,
		PatientID:     1,
		DoctorID:      2,
		Status:        model.CheckInStatusCompleted,
		WalkIn:        true,
		Priority:      3,
		Desk:          "Desk 1",
		Notes:         "notes",
		CheckedInAt:   checkedInAt,
		CompletedAt:   "10-09-2026 10:00:00",
		UpdatedAt:     "10-09-2026 10:00:00",
		CreatedAt:     "10-09-2026 09:00:00",
	}
}

func TestHistoryAppendAndLoad(t *testing.T) {
	h := newTestHistory(t)

	require.NoError(t, h.Append(historyRecord(1, "10-09-2026 09:00:00")))
	require.NoError(t, h.Append(historyRecord(2, "10-09-2026 11:00:00")))
	require.NoError(t, h.Append(historyRecord(3, "10-09-2026 10:00:00")))

	records := h.LoadAll()
	require.Len(t, records, 3)
	// most recent check-in first
	assert.Equal(t, int64(2), records[0].CheckInID)
	assert.Equal(t, int64(3), records[1].CheckInID)
	assert.Equal(t, int64(1), records[2].CheckInID)

	got := records[2]
	assert.Equal(t, int64(101), got.AppointmentID)
	assert.Equal(t, int64(2), got.DoctorID)
	assert.True(t, got.WalkIn)
	assert.Equal(t, 3, got.Priority)
	assert.Equal(t, "Desk 1", got.Desk)
}

func TestHistorySanitizesFields(t *testing.T) {
	h := newTestHistory(t)

	r := historyRecord(1, "10-09-2026 09:00:00")
	r.Notes = "left | right\nsecond line"
	require.NoError(t, h.Append(r))

	records := h.LoadAll()
	require.Len(t, records, 1)
	assert.Equal(t, "left / right second line", records[0].Notes)
}

func TestHistorySkipsMalformedLines(t *testing.T) {
	h := newTestHistory(t)
	require.NoError(t, h.Append(historyRecord(1, "10-09-2026 09:00:00")))

	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("not|a|record\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	records := h.LoadAll()
	require.Len(t, records, 1)
	assert.Equal(t, int64(1), records[0].CheckInID)
}

func TestHistoryParsesLegacyRecords(t *testing.T) {
	h := newTestHistory(t)

	// old layout carried calledAt/startedAt and cancelledAt/noShowAt columns
	legacy := "7|107|1|2|Completed|1|4|Desk 2|old notes|10-09-2026 09:00:00|10-09-2026 09:05:00|10-09-2026 09:10:00|10-09-2026 09:30:00|||10-09-2026 09:30:00|10-09-2026 08:55:00\n"
	require.NoError(t, os.WriteFile(h.path, []byte(legacy), 0o644))

	records := h.LoadAll()
	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, int64(7), r.CheckInID)
	assert.Equal(t, int64(107), r.AppointmentID)
	assert.Equal(t, model.CheckInStatusCompleted, r.Status)
	assert.True(t, r.WalkIn)
	assert.Equal(t, 4, r.Priority)
	assert.Equal(t, "10-09-2026 09:00:00", r.CheckedInAt)
	assert.Equal(t, "10-09-2026 09:30:00", r.CompletedAt)
	assert.Equal(t, "10-09-2026 09:30:00", r.UpdatedAt)
	assert.Equal(t, "10-09-2026 08:55:00", r.CreatedAt)
}

func TestHistoryUnparseableCheckInTimeSortsLast(t *testing.T) {
	h := newTestHistory(t)
	require.NoError(t, h.Append(historyRecord(1, "garbage")))
	require.NoError(t, h.Append(historyRecord(2, "10-09-2026 09:00:00")))

	records := h.LoadAll()
	require.Len(t, records, 2)
	assert.Equal(t, int64(2), records[0].CheckInID)
	assert.Equal(t, int64(1), records[1].CheckInID)
}

func TestHistoryClearAll(t *testing.T) {
	h := newTestHistory(t)
	require.NoError(t, h.Append(historyRecord(1, "10-09-2026 09:00:00")))
	require.NoError(t, h.ClearAll())
	assert.Empty(t, h.LoadAll())

	// clearing a missing file is fine
	require.NoError(t, h.ClearAll())
}
