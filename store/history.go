/*
Copyright 2025 Clinic Frontdesk Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package store

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/clinichq/frontdesk/internal/timeutil"
	"github.com/clinichq/frontdesk/model"
)

const (
	historyFieldCount       = 13
	legacyHistoryFieldCount = 17
)

// HistoryRecord is one archived check-in. DoctorID is resolved from the
// appointment at archive time so history stays meaningful after the
// appointment itself is gone; 0 means the doctor could not be resolved.
type HistoryRecord struct {
	CheckInID     int64
	AppointmentID int64
	PatientID     int64
	DoctorID      int64
	Status        string
	WalkIn        bool
	Priority      int
	Desk          string
	Notes         string
	CheckedInAt   string
	CompletedAt   string
	UpdatedAt     string
	CreatedAt     string
}

// HistoryRecordFrom captures a check-in into an archive record.
func HistoryRecordFrom(c *model.CheckIn, doctorID int64) HistoryRecord {
	return HistoryRecord{
		CheckInID:     c.ID,
		AppointmentID: c.AppointmentID,
		PatientID:     c.PatientID,
		DoctorID:      doctorID,
		Status:        c.Status,
		WalkIn:        c.WalkIn,
		Priority:      c.Priority,
		Desk:          c.Desk,
		Notes:         c.Notes,
		CheckedInAt:   c.CheckedInAt,
		CompletedAt:   c.CompletedAt,
		UpdatedAt:     c.UpdatedAt,
		CreatedAt:     c.CreatedAt,
	}
}

// sanitizeHistoryField keeps the record one line and one field.
func sanitizeHistoryField(s string) string {
	s = strings.ReplaceAll(s, fieldSep, "/")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(s)
}

func serializeHistoryRecord(r HistoryRecord) string {
	walkIn := "0"
	if r.WalkIn {
		walkIn = "1"
	}
	fields := []string{
		strconv.FormatInt(r.CheckInID, 10),
		strconv.FormatInt(r.AppointmentID, 10),
		strconv.FormatInt(r.PatientID, 10),
		strconv.FormatInt(r.DoctorID, 10),
		sanitizeHistoryField(r.Status),
		walkIn,
		strconv.Itoa(r.Priority),
		sanitizeHistoryField(r.Desk),
		sanitizeHistoryField(r.Notes),
		sanitizeHistoryField(r.CheckedInAt),
		sanitizeHistoryField(r.CompletedAt),
		sanitizeHistoryField(r.UpdatedAt),
		sanitizeHistoryField(r.CreatedAt),
	}
	return strings.Join(fields, fieldSep)
}

// parseHistoryRecord accepts the current 13-field schema and the legacy
// 17-field one, which carried per-transition timestamps that are now folded
// into UpdatedAt.
func parseHistoryRecord(line string) (HistoryRecord, error) {
	parts := strings.Split(line, fieldSep)
	var r HistoryRecord
	var err error

	switch len(parts) {
	case historyFieldCount:
		// checkedInAt..createdAt occupy 9..12.
	case legacyHistoryFieldCount:
		// Legacy layout inserted calledAt/startedAt after checkedInAt and
		// cancelledAt/noShowAt after completedAt. Collapse to the current
		// layout before decoding.
		parts = []string{
			parts[0], parts[1], parts[2], parts[3], parts[4], parts[5],
			parts[6], parts[7], parts[8],
			parts[9],  // checkedInAt
			parts[12], // completedAt
			parts[15], parts[16],
		}
	default:
		return r, fmt.Errorf("expected %d or %d fields, got %d", historyFieldCount, legacyHistoryFieldCount, len(parts))
	}

	if r.CheckInID, err = parsePositiveInt64(parts[0], "check-in id"); err != nil {
		return r, err
	}
	if r.AppointmentID, err = parsePositiveInt64(parts[1], "appointment id"); err != nil {
		return r, err
	}
	if r.PatientID, err = parsePositiveInt64(parts[2], "patient id"); err != nil {
		return r, err
	}
	r.DoctorID, err = strconv.ParseInt(strings.TrimSpace(parts[3]), 10, 64)
	if err != nil || r.DoctorID < 0 {
		return r, fmt.Errorf("invalid doctor id %q", parts[3])
	}
	r.Status = model.CanonicalCheckInStatus(parts[4])
	if r.Status == "" {
		return r, fmt.Errorf("invalid status %q", parts[4])
	}
	r.WalkIn = strings.TrimSpace(parts[5]) == "1"
	priority, err := strconv.Atoi(strings.TrimSpace(parts[6]))
	if err != nil || priority < 0 {
		return r, fmt.Errorf("invalid priority %q", parts[6])
	}
	r.Priority = priority
	r.Desk = strings.TrimSpace(parts[7])
	r.Notes = strings.TrimSpace(parts[8])
	r.CheckedInAt = strings.TrimSpace(parts[9])
	r.CompletedAt = strings.TrimSpace(parts[10])
	r.UpdatedAt = strings.TrimSpace(parts[11])
	r.CreatedAt = strings.TrimSpace(parts[12])
	return r, nil
}

// HistoryStore is the append-only archive of completed and deleted
// check-ins, one pipe-delimited record per line.
type HistoryStore struct {
	path string
}

// NewHistoryStore creates a history store writing to the given path.
func NewHistoryStore(path string) *HistoryStore {
	return &HistoryStore{path: path}
}

// Append adds one record to the end of the archive.
func (h *HistoryStore) Append(r HistoryRecord) error {
	if err := ensureParentDir(h.path); err != nil {
		return err
	}
	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteString(serializeHistoryRecord(r) + "\n"); err != nil {
		return err
	}
	return nil
}

// LoadAll reads every record, skipping unparseable lines with a warning,
// and returns them most recent first by check-in time. Records whose
// check-in time does not parse sort after those that do.
func (h *HistoryStore) LoadAll() []HistoryRecord {
	lines, ok := readLines(h.path)
	if !ok {
		return nil
	}
	var records []HistoryRecord
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		r, err := parseHistoryRecord(line)
		if err != nil {
			logrus.Warnf("skipping malformed history record at line %d: %v", i+1, err)
			continue
		}
		records = append(records, r)
	}
	sort.SliceStable(records, func(i, j int) bool {
		ti, errI := timeutil.ParseDateTime(records[i].CheckedInAt)
		tj, errJ := timeutil.ParseDateTime(records[j].CheckedInAt)
		if errI != nil || errJ != nil {
			return errJ != nil && errI == nil
		}
		return ti.After(tj)
	})
	return records
}

// ClearAll removes the archive file entirely.
func (h *HistoryStore) ClearAll() error {
	err := os.Remove(h.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
