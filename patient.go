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
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/clinichq/frontdesk/internal/apierror"
	"github.com/clinichq/frontdesk/internal/timeutil"
	"github.com/clinichq/frontdesk/model"
	"github.com/clinichq/frontdesk/store"
)

func (f *FrontDesk) persistPatient(p *model.Patient) error {
	if err := store.UpsertPatientLine(p, f.config.Files.Patients); err != nil {
		logrus.Errorf("failed to persist patient %d: %v", p.ID, err)
		return apierror.NewAPIError(apierror.ErrPersistence, "failed to persist patient", err.Error())
	}
	return nil
}

func (f *FrontDesk) requirePatientExists(id int64) error {
	if id <= 0 {
		return apierror.NewAPIError(apierror.ErrInvalidInput, "patient id must be positive", nil)
	}
	if !f.store.HasPatient(id) {
		return apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("patient %d does not exist", id), nil)
	}
	return nil
}

// CreatePatient registers a new patient.
func (f *FrontDesk) CreatePatient(firstName, lastName string, age int, phoneNumber string) (*model.Patient, error) {
	for _, check := range []struct{ value, field string }{
		{firstName, "first name"}, {lastName, "last name"},
	} {
		if err := checkNoDelimiter(check.value, check.field); err != nil {
			return nil, err
		}
	}
	p, err := model.NewPatient(f.store.NextPatientID(), firstName, lastName, age, phoneNumber)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
	}
	if err := f.store.SavePatient(p); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
	}
	if err := f.persistPatient(p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetPatient returns the patient with the given id.
func (f *FrontDesk) GetPatient(id int64) (*model.Patient, error) {
	if id <= 0 {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "patient id must be positive", nil)
	}
	p := f.store.Patient(id)
	if p == nil {
		return nil, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("patient %d not found", id), nil)
	}
	return p, nil
}

// HasPatient reports whether a patient with the given id exists.
func (f *FrontDesk) HasPatient(id int64) bool {
	return f.store.HasPatient(id)
}

// ListPatients returns all patients ordered by id.
func (f *FrontDesk) ListPatients() []*model.Patient {
	out := f.store.AllPatients()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UpdatePatientName changes a patient's first and/or last name. Blank values
// keep the current name.
func (f *FrontDesk) UpdatePatientName(id int64, firstName, lastName string) (*model.Patient, error) {
	p, err := f.GetPatient(id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(firstName) != "" {
		if err := checkNoDelimiter(firstName, "first name"); err != nil {
			return nil, err
		}
		if err := p.SetFirstName(firstName); err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
		}
	}
	if strings.TrimSpace(lastName) != "" {
		if err := checkNoDelimiter(lastName, "last name"); err != nil {
			return nil, err
		}
		if err := p.SetLastName(lastName); err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
		}
	}
	p.Touch()
	if err := f.persistPatient(p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePatientAge sets a patient's age.
func (f *FrontDesk) UpdatePatientAge(id int64, age int) (*model.Patient, error) {
	p, err := f.GetPatient(id)
	if err != nil {
		return nil, err
	}
	if err := p.SetAge(age); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
	}
	p.Touch()
	if err := f.persistPatient(p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePatientPhone sets a patient's phone number.
func (f *FrontDesk) UpdatePatientPhone(id int64, phoneNumber string) (*model.Patient, error) {
	p, err := f.GetPatient(id)
	if err != nil {
		return nil, err
	}
	if err := p.SetPhoneNumber(phoneNumber); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
	}
	p.Touch()
	if err := f.persistPatient(p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePatient removes a patient. A patient with existing appointments
// cannot be deleted; remove or cancel the appointments first.
func (f *FrontDesk) DeletePatient(id int64) (bool, error) {
	if f.store.Patient(id) == nil {
		return false, nil
	}
	if f.store.PatientHasAppointments(id) {
		return false, apierror.NewAPIError(apierror.ErrConflict,
			"cannot delete patient with existing appointments, cancel them first", nil)
	}
	if !f.store.RemovePatient(id) {
		return false, nil
	}
	if err := store.DeletePatientLine(id, f.config.Files.Patients); err != nil {
		logrus.Errorf("failed to remove patient %d from file: %v", id, err)
		return false, apierror.NewAPIError(apierror.ErrPersistence, "failed to remove patient from file", err.Error())
	}
	return true, nil
}

// PatientAppointmentCount returns the number of appointments of a patient.
func (f *FrontDesk) PatientAppointmentCount(patientID int64) (int, error) {
	if err := f.requirePatientExists(patientID); err != nil {
		return 0, err
	}
	appts, err := f.store.AppointmentsOfPatient(patientID)
	if err != nil {
		return 0, err
	}
	return len(appts), nil
}

// ListActivePatientAppointments returns the patient's appointments that are
// still actionable, excluding Completed, No Show and Checked In entries.
func (f *FrontDesk) ListActivePatientAppointments(patientID int64) ([]*model.Appointment, error) {
	if err := f.requirePatientExists(patientID); err != nil {
		return nil, err
	}
	appts, err := f.store.AppointmentsOfPatient(patientID)
	if err != nil {
		return nil, err
	}
	out := []*model.Appointment{}
	for _, a := range appts {
		switch a.Status {
		case model.AppointmentCompleted, model.AppointmentNoShow, model.AppointmentCheckedIn:
		default:
			out = append(out, a)
		}
	}
	return out, nil
}

// RemoveAllPatientAppointments deletes every appointment of a patient from
// the store and the appointment file, returning how many were removed.
func (f *FrontDesk) RemoveAllPatientAppointments(patientID int64) (int, error) {
	if err := f.requirePatientExists(patientID); err != nil {
		return 0, err
	}
	appts, err := f.store.AppointmentsOfPatient(patientID)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, a := range appts {
		ok, err := f.DeleteAppointment(a.ID)
		if err != nil {
			return removed, err
		}
		if ok {
			removed++
		} else {
			logrus.Warnf("failed to remove appointment %d", a.ID)
		}
	}
	return removed, nil
}

// FindPatientsByFirstNamePrefix returns patients whose first name starts
// with the prefix, case-insensitively.
func (f *FrontDesk) FindPatientsByFirstNamePrefix(prefix string) []*model.Patient {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	out := []*model.Patient{}
	for _, p := range f.ListPatients() {
		if prefix != "" && strings.HasPrefix(strings.ToLower(p.FirstName), prefix) {
			out = append(out, p)
		}
	}
	return out
}

// FindPatientsByLastNamePrefix returns patients whose last name starts with
// the prefix, case-insensitively.
func (f *FrontDesk) FindPatientsByLastNamePrefix(prefix string) []*model.Patient {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	out := []*model.Patient{}
	for _, p := range f.ListPatients() {
		if prefix != "" && strings.HasPrefix(strings.ToLower(p.LastName), prefix) {
			out = append(out, p)
		}
	}
	return out
}

// FindPatientsByPhone returns patients with the exact phone number.
func (f *FrontDesk) FindPatientsByPhone(phoneNumber string) []*model.Patient {
	phoneNumber = strings.TrimSpace(phoneNumber)
	out := []*model.Patient{}
	for _, p := range f.ListPatients() {
		if phoneNumber != "" && p.PhoneNumber == phoneNumber {
			out = append(out, p)
		}
	}
	return out
}

// FilterPatientsByAgeRange returns patients whose age falls in the inclusive
// range.
func (f *FrontDesk) FilterPatientsByAgeRange(minAge, maxAge int) ([]*model.Patient, error) {
	if minAge < 0 || maxAge < minAge {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "invalid age range", nil)
	}
	out := []*model.Patient{}
	for _, p := range f.ListPatients() {
		if p.Age >= minAge && p.Age <= maxAge {
			out = append(out, p)
		}
	}
	return out, nil
}

// FilterPatientsByCreatedAtRange returns patients created in the inclusive
// date-time range.
func (f *FrontDesk) FilterPatientsByCreatedAtRange(startDateTime, endDateTime string) ([]*model.Patient, error) {
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
	out := []*model.Patient{}
	for _, p := range f.ListPatients() {
		created, err := timeutil.ParseDateTime(p.CreatedAt)
		if err != nil {
			logrus.Warnf("patient %d has invalid createdAt %q", p.ID, p.CreatedAt)
			continue
		}
		if !created.Before(start) && !created.After(end) {
			out = append(out, p)
		}
	}
	return out, nil
}

// PatientSortField selects the key used by SortPatients.
type PatientSortField string

const (
	PatientSortByID        PatientSortField = "id"
	PatientSortByFirstName PatientSortField = "first_name"
	PatientSortByLastName  PatientSortField = "last_name"
	PatientSortByFullName  PatientSortField = "full_name"
	PatientSortByAge       PatientSortField = "age"
	PatientSortByPhone     PatientSortField = "phone"
	PatientSortByCreatedAt PatientSortField = "created_at"
	PatientSortByUpdatedAt PatientSortField = "updated_at"
)

// SortPatients sorts in place and returns the slice.
func SortPatients(list []*model.Patient, field PatientSortField, desc bool) []*model.Patient {
	if len(list) < 2 {
		return list
	}
	var less func(a, b *model.Patient) bool
	switch field {
	case PatientSortByFirstName:
		less = func(a, b *model.Patient) bool {
			return strings.ToLower(a.FirstName) < strings.ToLower(b.FirstName)
		}
	case PatientSortByLastName:
		less = func(a, b *model.Patient) bool {
			return strings.ToLower(a.LastName) < strings.ToLower(b.LastName)
		}
	case PatientSortByFullName:
		less = func(a, b *model.Patient) bool {
			aName := strings.ToLower(a.LastName + " " + a.FirstName)
			bName := strings.ToLower(b.LastName + " " + b.FirstName)
			return aName < bName
		}
	case PatientSortByAge:
		less = func(a, b *model.Patient) bool { return a.Age < b.Age }
	case PatientSortByPhone:
		less = func(a, b *model.Patient) bool { return a.PhoneNumber < b.PhoneNumber }
	case PatientSortByCreatedAt:
		less = func(a, b *model.Patient) bool {
			return safeDateTime(a.CreatedAt).Before(safeDateTime(b.CreatedAt))
		}
	case PatientSortByUpdatedAt:
		less = func(a, b *model.Patient) bool {
			return safeDateTime(a.UpdatedAt).Before(safeDateTime(b.UpdatedAt))
		}
	default:
		less = func(a, b *model.Patient) bool { return a.ID < b.ID }
	}
	sort.SliceStable(list, func(i, j int) bool {
		if desc {
			return less(list[j], list[i])
		}
		return less(list[i], list[j])
	})
	return list
}
