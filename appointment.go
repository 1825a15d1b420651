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

package frontdesk

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/clinichq/frontdesk/internal/apierror"
	"github.com/clinichq/frontdesk/internal/timeutil"
	"github.com/clinichq/frontdesk/model"
	"github.com/clinichq/frontdesk/store"
)

// checkNoDelimiter rejects free-text values that would corrupt the
// pipe-delimited entity files.
func checkNoDelimiter(value, field string) error {
	if strings.Contains(value, "|") {
		return apierror.NewAPIError(apierror.ErrInvalidInput,
			fmt.Sprintf("%s must not contain the '|' character", field), nil)
	}
	return nil
}

func (f *FrontDesk) persistAppointment(a *model.Appointment) error {
	if err := store.UpsertAppointmentLine(a, f.config.Files.Appointments); err != nil {
		logrus.Errorf("failed to persist appointment %d: %v", a.ID, err)
		return apierror.NewAPIError(apierror.ErrPersistence, "failed to persist appointment", err.Error())
	}
	return nil
}

// CreateAppointment creates a new appointment between an existing patient
// and doctor. A blank status defaults to Scheduled.
func (f *FrontDesk) CreateAppointment(patientID, doctorID int64, date, tm, duration, status, location, followUpDate, reason, notes string) (*model.Appointment, error) {
	if err := f.requirePatientExists(patientID); err != nil {
		return nil, err
	}
	if err := f.requireDoctorExists(doctorID); err != nil {
		return nil, err
	}
	for _, check := range []struct{ value, field string }{
		{location, "location"}, {reason, "reason"}, {notes, "notes"},
	} {
		if err := checkNoDelimiter(check.value, check.field); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(status) == "" {
		status = model.AppointmentScheduled
	}
	a, err := model.NewAppointment(f.store.NextAppointmentID(), patientID, doctorID,
		date, tm, duration, status, location, followUpDate, reason, notes)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
	}
	if err := f.store.SaveAppointment(a); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
	}
	if err := f.persistAppointment(a); err != nil {
		return nil, err
	}
	return a, nil
}

// GetAppointment returns the appointment with the given id.
func (f *FrontDesk) GetAppointment(id int64) (*model.Appointment, error) {
	if id <= 0 {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "appointment id must be positive", nil)
	}
	a := f.store.Appointment(id)
	if a == nil {
		return nil, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("appointment %d not found", id), nil)
	}
	return a, nil
}

// HasAppointment reports whether an appointment with the given id exists.
func (f *FrontDesk) HasAppointment(id int64) bool {
	return f.store.HasAppointment(id)
}

// ListAppointments returns all appointments ordered by id.
func (f *FrontDesk) ListAppointments() []*model.Appointment {
	return f.store.AllAppointments()
}

// UpdateAppointmentStatus sets the status of an appointment. The status must
// belong to the closed set of legal statuses; casing is canonicalized.
func (f *FrontDesk) UpdateAppointmentStatus(id int64, status string) (*model.Appointment, error) {
	a, err := f.GetAppointment(id)
	if err != nil {
		return nil, err
	}
	if err := a.SetStatus(status); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
	}
	a.Touch()
	if err := f.persistAppointment(a); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAppointmentDateTime reschedules an appointment.
func (f *FrontDesk) UpdateAppointmentDateTime(id int64, date, tm string) (*model.Appointment, error) {
	a, err := f.GetAppointment(id)
	if err != nil {
		return nil, err
	}
	if err := a.SetAppointmentDate(date); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
	}
	if err := a.SetAppointmentTime(tm); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
	}
	a.Touch()
	if err := f.persistAppointment(a); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAppointmentDuration sets the duration, canonicalized to HH:mm.
func (f *FrontDesk) UpdateAppointmentDuration(id int64, duration string) (*model.Appointment, error) {
	a, err := f.GetAppointment(id)
	if err != nil {
		return nil, err
	}
	if err := a.SetDuration(duration); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
	}
	a.Touch()
	if err := f.persistAppointment(a); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAppointmentLocation sets the location field.
func (f *FrontDesk) UpdateAppointmentLocation(id int64, location string) (*model.Appointment, error) {
	a, err := f.GetAppointment(id)
	if err != nil {
		return nil, err
	}
	if err := checkNoDelimiter(location, "location"); err != nil {
		return nil, err
	}
	a.SetLocation(location)
	a.Touch()
	if err := f.persistAppointment(a); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAppointmentNotes sets the notes field.
func (f *FrontDesk) UpdateAppointmentNotes(id int64, notes string) (*model.Appointment, error) {
	a, err := f.GetAppointment(id)
	if err != nil {
		return nil, err
	}
	if err := checkNoDelimiter(notes, "notes"); err != nil {
		return nil, err
	}
	a.SetNotes(notes)
	a.Touch()
	if err := f.persistAppointment(a); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAppointmentFollowUpDate sets or clears the follow-up date.
func (f *FrontDesk) UpdateAppointmentFollowUpDate(id int64, followUpDate string) (*model.Appointment, error) {
	a, err := f.GetAppointment(id)
	if err != nil {
		return nil, err
	}
	if err := a.SetFollowUpDate(followUpDate); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
	}
	a.Touch()
	if err := f.persistAppointment(a); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAppointment applies a partial update: blank fields keep their
// current value.
func (f *FrontDesk) UpdateAppointment(id int64, date, tm, duration, status, location, followUpDate, reason, notes string) (*model.Appointment, error) {
	a, err := f.GetAppointment(id)
	if err != nil {
		return nil, err
	}
	apply := func(value string, set func(string) error) error {
		if strings.TrimSpace(value) == "" {
			return nil
		}
		if err := set(value); err != nil {
			return apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
		}
		return nil
	}
	if err := apply(date, a.SetAppointmentDate); err != nil {
		return nil, err
	}
	if err := apply(tm, a.SetAppointmentTime); err != nil {
		return nil, err
	}
	if err := apply(duration, a.SetDuration); err != nil {
		return nil, err
	}
	if err := apply(status, a.SetStatus); err != nil {
		return nil, err
	}
	if err := apply(followUpDate, a.SetFollowUpDate); err != nil {
		return nil, err
	}
	if strings.TrimSpace(location) != "" {
		if err := checkNoDelimiter(location, "location"); err != nil {
			return nil, err
		}
		a.SetLocation(location)
	}
	if strings.TrimSpace(reason) != "" {
		if err := checkNoDelimiter(reason, "reason"); err != nil {
			return nil, err
		}
		a.SetReason(reason)
	}
	if strings.TrimSpace(notes) != "" {
		if err := checkNoDelimiter(notes, "notes"); err != nil {
			return nil, err
		}
		a.SetNotes(notes)
	}
	a.Touch()
	if err := f.persistAppointment(a); err != nil {
		return nil, err
	}
	return a, nil
}

// CancelAppointment sets the appointment status to Cancelled.
func (f *FrontDesk) CancelAppointment(id int64) (*model.Appointment, error) {
	return f.UpdateAppointmentStatus(id, model.AppointmentCancelled)
}

// DeleteAppointment removes an appointment from the store and its file.
// Returns false when the id was not present.
func (f *FrontDesk) DeleteAppointment(id int64) (bool, error) {
	if !f.store.RemoveAppointment(id) {
		return false, nil
	}
	if err := store.DeleteAppointmentLine(id, f.config.Files.Appointments); err != nil {
		logrus.Errorf("failed to remove appointment %d from file: %v", id, err)
		return false, apierror.NewAPIError(apierror.ErrPersistence, "failed to remove appointment from file", err.Error())
	}
	return true, nil
}

// FindAppointmentsByPatient returns all appointments of a patient.
func (f *FrontDesk) FindAppointmentsByPatient(patientID int64) ([]*model.Appointment, error) {
	if err := f.requirePatientExists(patientID); err != nil {
		return nil, err
	}
	return f.store.AppointmentsOfPatient(patientID)
}

// FindAppointmentsByDoctor returns all appointments of a doctor.
func (f *FrontDesk) FindAppointmentsByDoctor(doctorID int64) ([]*model.Appointment, error) {
	if err := f.requireDoctorExists(doctorID); err != nil {
		return nil, err
	}
	return f.store.AppointmentsOfDoctor(doctorID)
}

// FindAppointmentsByStatus returns all appointments with the given status.
func (f *FrontDesk) FindAppointmentsByStatus(status string) ([]*model.Appointment, error) {
	canonical := model.CanonicalAppointmentStatus(status)
	if !model.IsValidAppointmentStatus(canonical) {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput,
			fmt.Sprintf("invalid status %q, allowed: %s", status, strings.Join(model.AppointmentStatuses(), ", ")), nil)
	}
	out := []*model.Appointment{}
	for _, a := range f.store.AllAppointments() {
		if a.Status == canonical {
			out = append(out, a)
		}
	}
	return out, nil
}

// FindAppointmentsByDateRange returns appointments whose date falls in the
// inclusive range. Appointments with unparseable dates are skipped with a
// warning.
func (f *FrontDesk) FindAppointmentsByDateRange(startDate, endDate string) ([]*model.Appointment, error) {
	start, err := timeutil.ParseDate(startDate)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, fmt.Sprintf("invalid start date: %v", err), nil)
	}
	end, err := timeutil.ParseDate(endDate)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, fmt.Sprintf("invalid end date: %v", err), nil)
	}
	if end.Before(start) {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "end date cannot be before start date", nil)
	}
	out := []*model.Appointment{}
	for _, a := range f.store.AllAppointments() {
		d, err := timeutil.ParseDate(a.AppointmentDate)
		if err != nil {
			logrus.Warnf("appointment %d has invalid date %q", a.ID, a.AppointmentDate)
			continue
		}
		if !d.Before(start) && !d.After(end) {
			out = append(out, a)
		}
	}
	return out, nil
}

// FindAppointmentsByCreatedAtRange returns appointments created in the
// inclusive date-time range.
func (f *FrontDesk) FindAppointmentsByCreatedAtRange(startDateTime, endDateTime string) ([]*model.Appointment, error) {
	start, err := timeutil.ParseDateTime(startDateTime)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, fmt.Sprintf("invalid start date/time: %v", err), nil)
	}
	end, err := timeutil.ParseDateTime(endDateTime)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, fmt.Sprintf("invalid end date/time: %v", err), nil)
	}
	if end.Before(start) {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "end date/time cannot be before start date/time", nil)
	}
	out := []*model.Appointment{}
	for _, a := range f.store.AllAppointments() {
		if strings.TrimSpace(a.CreatedAt) == "" {
			continue
		}
		created, err := timeutil.ParseDateTime(a.CreatedAt)
		if err != nil {
			logrus.Warnf("appointment %d has invalid createdAt %q", a.ID, a.CreatedAt)
			continue
		}
		if !created.Before(start) && !created.After(end) {
			out = append(out, a)
		}
	}
	return out, nil
}

// FindDoctorScheduleConflicts returns pairs of a doctor's appointments whose
// time windows overlap, ignoring cancelled and no-show entries.
func (f *FrontDesk) FindDoctorScheduleConflicts(doctorID int64) ([][2]*model.Appointment, error) {
	appts, err := f.FindAppointmentsByDoctor(doctorID)
	if err != nil {
		return nil, err
	}
	active := []*model.Appointment{}
	for _, a := range appts {
		if a.Status == model.AppointmentCancelled || a.Status == model.AppointmentNoShow {
			continue
		}
		active = append(active, a)
	}
	conflicts := [][2]*model.Appointment{}
	for i := 0; i < len(active); i++ {
		aStart, aEnd, err := appointmentWindow(active[i])
		if err != nil {
			logrus.Warnf("appointment %d has an unresolvable time window: %v", active[i].ID, err)
			continue
		}
		for j := i + 1; j < len(active); j++ {
			bStart, bEnd, err := appointmentWindow(active[j])
			if err != nil {
				continue
			}
			overlap, err := timeutil.Overlaps(aStart, aEnd, bStart, bEnd)
			if err != nil {
				continue
			}
			if overlap {
				conflicts = append(conflicts, [2]*model.Appointment{active[i], active[j]})
			}
		}
	}
	return conflicts, nil
}

func appointmentWindow(a *model.Appointment) (time.Time, time.Time, error) {
	start, err := a.Start()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	minutes, err := timeutil.ParseDurationToMinutes(a.Duration)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := timeutil.ComputeEnd(start, minutes)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// AppointmentSortField selects the key used by SortAppointments.
type AppointmentSortField string

const (
	AppointmentSortByID        AppointmentSortField = "id"
	AppointmentSortByPatientID AppointmentSortField = "patient_id"
	AppointmentSortByDoctorID  AppointmentSortField = "doctor_id"
	AppointmentSortByStart     AppointmentSortField = "start"
	AppointmentSortByDuration  AppointmentSortField = "duration"
	AppointmentSortByStatus    AppointmentSortField = "status"
	AppointmentSortByCreatedAt AppointmentSortField = "created_at"
	AppointmentSortByUpdatedAt AppointmentSortField = "updated_at"
)

// SortAppointments sorts in place and returns the slice. Entries with an
// unparseable key sort last in ascending order.
func SortAppointments(list []*model.Appointment, field AppointmentSortField, desc bool) []*model.Appointment {
	if len(list) < 2 {
		return list
	}
	var less func(a, b *model.Appointment) bool
	switch field {
	case AppointmentSortByPatientID:
		less = func(a, b *model.Appointment) bool { return a.PatientID < b.PatientID }
	case AppointmentSortByDoctorID:
		less = func(a, b *model.Appointment) bool { return a.DoctorID < b.DoctorID }
	case AppointmentSortByStart:
		less = func(a, b *model.Appointment) bool { return safeStart(a).Before(safeStart(b)) }
	case AppointmentSortByDuration:
		less = func(a, b *model.Appointment) bool { return safeDurationMinutes(a) < safeDurationMinutes(b) }
	case AppointmentSortByStatus:
		less = func(a, b *model.Appointment) bool {
			return strings.ToLower(a.Status) < strings.ToLower(b.Status)
		}
	case AppointmentSortByCreatedAt:
		less = func(a, b *model.Appointment) bool {
			return safeDateTime(a.CreatedAt).Before(safeDateTime(b.CreatedAt))
		}
	case AppointmentSortByUpdatedAt:
		less = func(a, b *model.Appointment) bool {
			return safeDateTime(a.UpdatedAt).Before(safeDateTime(b.UpdatedAt))
		}
	default:
		less = func(a, b *model.Appointment) bool { return a.ID < b.ID }
	}
	sort.SliceStable(list, func(i, j int) bool {
		if desc {
			return less(list[j], list[i])
		}
		return less(list[i], list[j])
	})
	return list
}

var farFuture = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

func safeStart(a *model.Appointment) time.Time {
	start, err := a.Start()
	if err != nil {
		return farFuture
	}
	return start
}

func safeDurationMinutes(a *model.Appointment) int {
	minutes, err := timeutil.ParseDurationToMinutes(a.Duration)
	if err != nil {
		return math.MaxInt32
	}
	return minutes
}

func safeDateTime(s string) time.Time {
	t, err := timeutil.ParseDateTime(s)
	if err != nil {
		return farFuture
	}
	return t
}
