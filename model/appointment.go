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
	"time"

	"github.com/clinichq/frontdesk/internal/timeutil"
)

// Appointment statuses, canonical casing.
const (
	AppointmentScheduled  = "Scheduled"
	AppointmentCheckedIn  = "Checked In"
	AppointmentInProgress = "In Progress"
	AppointmentCompleted  = "Completed"
	AppointmentCancelled  = "Cancelled"
	AppointmentNoShow     = "No Show"
)

var appointmentStatuses = []string{
	AppointmentScheduled,
	AppointmentCheckedIn,
	AppointmentInProgress,
	AppointmentCompleted,
	AppointmentCancelled,
	AppointmentNoShow,
}

// CanonicalAppointmentStatus maps a status string onto its canonical casing.
// Unknown values are returned trimmed so that validation can report them.
func CanonicalAppointmentStatus(s string) string {
	trimmed := strings.TrimSpace(s)
	for _, status := range appointmentStatuses {
		if strings.EqualFold(status, trimmed) {
			return status
		}
	}
	return trimmed
}

// IsValidAppointmentStatus reports whether s names a known status, ignoring
// case and surrounding whitespace.
func IsValidAppointmentStatus(s string) bool {
	trimmed := strings.TrimSpace(s)
	for _, status := range appointmentStatuses {
		if strings.EqualFold(status, trimmed) {
			return true
		}
	}
	return false
}

// AppointmentStatuses returns the closed set of legal statuses.
func AppointmentStatuses() []string {
	out := make([]string, len(appointmentStatuses))
	copy(out, appointmentStatuses)
	return out
}

// Appointment connects a patient with a doctor at a specific date and time.
type Appointment struct {
	Entity
	PatientID       int64  `json:"patient_id"`
	DoctorID        int64  `json:"doctor_id"`
	AppointmentDate string `json:"appointment_date"` // dd-MM-yyyy
	AppointmentTime string `json:"appointment_time"` // HH:mm
	Duration        string `json:"duration"`         // HH:mm
	Status          string `json:"status"`
	Location        string `json:"location"`
	FollowUpDate    string `json:"follow_up_date"` // dd-MM-yyyy, optional
	Reason          string `json:"reason"`
	Notes           string `json:"notes"`
}

// NewAppointment builds an appointment with fresh audit stamps.
func NewAppointment(id, patientID, doctorID int64, date, tm, duration, status, location, followUpDate, reason, notes string) (*Appointment, error) {
	base, err := newEntity(id)
	if err != nil {
		return nil, err
	}
	a := &Appointment{Entity: base}
	if err := a.populate(patientID, doctorID, date, tm, duration, status, location, followUpDate, reason, notes); err != nil {
		return nil, err
	}
	return a, nil
}

// RehydrateAppointment rebuilds an appointment from storage, preserving the
// imported audit stamps.
func RehydrateAppointment(id, patientID, doctorID int64, date, tm, duration, status, location, followUpDate, reason, notes, createdAt, updatedAt string) (*Appointment, error) {
	base, err := rehydrateEntity(id, createdAt, updatedAt)
	if err != nil {
		return nil, err
	}
	a := &Appointment{Entity: base}
	if err := a.populate(patientID, doctorID, date, tm, duration, status, location, followUpDate, reason, notes); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Appointment) populate(patientID, doctorID int64, date, tm, duration, status, location, followUpDate, reason, notes string) error {
	if err := a.SetPatientID(patientID); err != nil {
		return err
	}
	if err := a.SetDoctorID(doctorID); err != nil {
		return err
	}
	if err := a.SetAppointmentDate(date); err != nil {
		return err
	}
	if err := a.SetAppointmentTime(tm); err != nil {
		return err
	}
	if err := a.SetDuration(duration); err != nil {
		return err
	}
	if err := a.SetStatus(status); err != nil {
		return err
	}
	a.SetLocation(location)
	if err := a.SetFollowUpDate(followUpDate); err != nil {
		return err
	}
	a.SetReason(reason)
	a.SetNotes(notes)
	return nil
}

func (a *Appointment) SetPatientID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("patient ID must be positive, got %d", id)
	}
	a.PatientID = id
	return nil
}

func (a *Appointment) SetDoctorID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("doctor ID must be positive, got %d", id)
	}
	a.DoctorID = id
	return nil
}

func (a *Appointment) SetAppointmentDate(date string) error {
	normalized, err := timeutil.NormalizeDate(date)
	if err != nil {
		return err
	}
	a.AppointmentDate = normalized
	return nil
}

// SetAppointmentTime accepts HH:mm or HH:mm:ss but stores only HH:mm.
func (a *Appointment) SetAppointmentTime(tm string) error {
	parsed, err := timeutil.ParseTime(tm)
	if err != nil {
		return err
	}
	a.AppointmentTime = timeutil.FormatTime(parsed)
	return nil
}

func (a *Appointment) SetDuration(duration string) error {
	minutes, err := timeutil.ParseDurationToMinutes(duration)
	if err != nil {
		return err
	}
	canonical, err := timeutil.FormatDurationFromMinutes(minutes)
	if err != nil {
		return err
	}
	a.Duration = canonical
	return nil
}

func (a *Appointment) SetStatus(status string) error {
	if strings.TrimSpace(status) == "" {
		return fmt.Errorf("status cannot be blank")
	}
	canonical := CanonicalAppointmentStatus(status)
	if !IsValidAppointmentStatus(canonical) {
		return fmt.Errorf("invalid appointment status: %s", status)
	}
	a.Status = canonical
	return nil
}

func (a *Appointment) SetLocation(location string) {
	a.Location = strings.TrimSpace(location)
}

func (a *Appointment) SetFollowUpDate(date string) error {
	if strings.TrimSpace(date) == "" {
		a.FollowUpDate = ""
		return nil
	}
	normalized, err := timeutil.NormalizeDate(date)
	if err != nil {
		return err
	}
	a.FollowUpDate = normalized
	return nil
}

func (a *Appointment) SetReason(reason string) {
	a.Reason = strings.TrimSpace(reason)
}

func (a *Appointment) SetNotes(notes string) {
	a.Notes = strings.TrimSpace(notes)
}

// Start combines the appointment date and time into a single time value.
func (a *Appointment) Start() (time.Time, error) {
	return timeutil.Combine(a.AppointmentDate, a.AppointmentTime)
}
