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

package model

import (
	"fmt"
	"strings"

	"github.com/clinichq/frontdesk/internal/timeutil"
)

// Check-in statuses. The set is closed: a check-in is either waiting
// (CheckedIn) or terminal (Completed).
const (
	CheckInStatusCheckedIn = "CheckedIn"
	CheckInStatusCompleted = "Completed"
)

var checkInStatuses = []string{CheckInStatusCheckedIn, CheckInStatusCompleted}

// CanonicalCheckInStatus maps a status string onto its canonical casing.
// Unknown values are returned trimmed so that validation can report them.
func CanonicalCheckInStatus(s string) string {
	trimmed := strings.TrimSpace(s)
	for _, status := range checkInStatuses {
		if strings.EqualFold(status, trimmed) {
			return status
		}
	}
	return trimmed
}

// IsValidCheckInStatus reports whether s names a known check-in status.
func IsValidCheckInStatus(s string) bool {
	trimmed := strings.TrimSpace(s)
	for _, status := range checkInStatuses {
		if strings.EqualFold(status, trimmed) {
			return true
		}
	}
	return false
}

// CheckIn records a patient's physical arrival, linked to exactly one
// appointment. While active it is owned exclusively by the check-in engine;
// on completion it is archived and removed from live state.
type CheckIn struct {
	Entity
	AppointmentID int64  `json:"appointment_id"`
	PatientID     int64  `json:"patient_id"`
	Status        string `json:"status"`
	Desk          string `json:"desk"`
	Notes         string `json:"notes"`
	WalkIn        bool   `json:"walk_in"`
	Priority      int    `json:"priority"`
	CheckedInAt   string `json:"checked_in_at"`
	CompletedAt   string `json:"completed_at"`
}

// NewCheckIn builds a check-in stamped with the current time. WalkIn is
// immutable after construction.
func NewCheckIn(id, appointmentID, patientID int64, status, desk, notes string, walkIn bool, priority int) (*CheckIn, error) {
	base, err := newEntity(id)
	if err != nil {
		return nil, err
	}
	c := &CheckIn{Entity: base, WalkIn: walkIn}
	if appointmentID <= 0 {
		return nil, fmt.Errorf("appointment ID must be positive, got %d", appointmentID)
	}
	c.AppointmentID = appointmentID
	if patientID <= 0 {
		return nil, fmt.Errorf("patient ID must be positive, got %d", patientID)
	}
	c.PatientID = patientID
	if err := c.setPriority(priority); err != nil {
		return nil, err
	}
	c.SetDesk(desk)
	c.SetNotes(notes)
	if err := c.SetStatus(status); err != nil {
		return nil, err
	}
	c.CheckedInAt = timeutil.NowString()
	c.Touch()
	return c, nil
}

// SetStatus assigns a canonicalized status without touching the audit stamp.
func (c *CheckIn) SetStatus(status string) error {
	if strings.TrimSpace(status) == "" {
		return fmt.Errorf("status cannot be blank")
	}
	canonical := CanonicalCheckInStatus(status)
	if !IsValidCheckInStatus(canonical) {
		return fmt.Errorf("invalid check-in status: %s", status)
	}
	c.Status = canonical
	return nil
}

// SetStatusAndTouch assigns a status and refreshes the audit stamp.
func (c *CheckIn) SetStatusAndTouch(status string) error {
	if err := c.SetStatus(status); err != nil {
		return err
	}
	c.Touch()
	return nil
}

func (c *CheckIn) setPriority(priority int) error {
	if priority < 0 {
		return fmt.Errorf("priority must be >= 0, got %d", priority)
	}
	c.Priority = priority
	return nil
}

// SetPriorityAndTouch assigns a priority and refreshes the audit stamp.
// Queue-level preconditions (walk-in, still waiting) are the engine's job.
func (c *CheckIn) SetPriorityAndTouch(priority int) error {
	if err := c.setPriority(priority); err != nil {
		return err
	}
	c.Touch()
	return nil
}

func (c *CheckIn) SetDesk(desk string) {
	c.Desk = strings.TrimSpace(desk)
}

func (c *CheckIn) SetNotes(notes string) {
	c.Notes = strings.TrimSpace(notes)
}

// IsTerminal reports whether the check-in has reached its terminal status.
func (c *CheckIn) IsTerminal() bool {
	return c.Status == CheckInStatusCompleted
}

func (c *CheckIn) String() string {
	return fmt.Sprintf("CheckIn{id=%d, appt=%d, patient=%d, status=%s, walkIn=%t, priority=%d, checkedInAt=%s}",
		c.ID, c.AppointmentID, c.PatientID, c.Status, c.WalkIn, c.Priority, c.CheckedInAt)
}
