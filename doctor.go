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

func (f *FrontDesk) persistDoctor(d *model.Doctor) error {
	if err := store.UpsertDoctorLine(d, f.config.Files.Doctors); err != nil {
		logrus.Errorf("failed to persist doctor %d: %v", d.ID, err)
		return apierror.NewAPIError(apierror.ErrPersistence, "failed to persist doctor", err.Error())
	}
	return nil
}

func (f *FrontDesk) requireDoctorExists(id int64) error {
	if id <= 0 {
		return apierror.NewAPIError(apierror.ErrInvalidInput, "doctor id must be positive", nil)
	}
	if !f.store.HasDoctor(id) {
		return apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("doctor %d does not exist", id), nil)
	}
	return nil
}

// CreateDoctor registers a new doctor.
func (f *FrontDesk) CreateDoctor(firstName, lastName, specialty, phoneNumber string) (*model.Doctor, error) {
	for _, check := range []struct{ value, field string }{
		{firstName, "first name"}, {lastName, "last name"}, {specialty, "specialty"},
	} {
		if err := checkNoDelimiter(check.value, check.field); err != nil {
			return nil, err
		}
	}
	d, err := model.NewDoctor(f.store.NextDoctorID(), firstName, lastName, specialty, phoneNumber)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
	}
	if err := f.store.SaveDoctor(d); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
	}
	if err := f.persistDoctor(d); err != nil {
		return nil, err
	}
	return d, nil
}

// GetDoctor returns the doctor with the given id.
func (f *FrontDesk) GetDoctor(id int64) (*model.Doctor, error) {
	if id <= 0 {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "doctor id must be positive", nil)
	}
	d := f.store.Doctor(id)
	if d == nil {
		return nil, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("doctor %d not found", id), nil)
	}
	return d, nil
}

// HasDoctor reports whether a doctor with the given id exists.
func (f *FrontDesk) HasDoctor(id int64) bool {
	return f.store.HasDoctor(id)
}

// ListDoctors returns all doctors ordered by id.
func (f *FrontDesk) ListDoctors() []*model.Doctor {
	out := f.store.AllDoctors()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UpdateDoctorName changes a doctor's first and/or last name. Blank values
// keep the current name.
func (f *FrontDesk) UpdateDoctorName(id int64, firstName, lastName string) (*model.Doctor, error) {
	d, err := f.GetDoctor(id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(firstName) != "" {
		if err := checkNoDelimiter(firstName, "first name"); err != nil {
			return nil, err
		}
		if err := d.SetFirstName(firstName); err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
		}
	}
	if strings.TrimSpace(lastName) != "" {
		if err := checkNoDelimiter(lastName, "last name"); err != nil {
			return nil, err
		}
		if err := d.SetLastName(lastName); err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
		}
	}
	d.Touch()
	if err := f.persistDoctor(d); err != nil {
		return nil, err
	}
	return d, nil
}

// UpdateDoctorSpecialty sets a doctor's specialty.
func (f *FrontDesk) UpdateDoctorSpecialty(id int64, specialty string) (*model.Doctor, error) {
	d, err := f.GetDoctor(id)
	if err != nil {
		return nil, err
	}
	if err := checkNoDelimiter(specialty, "specialty"); err != nil {
		return nil, err
	}
	if err := d.SetSpecialty(specialty); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
	}
	d.Touch()
	if err := f.persistDoctor(d); err != nil {
		return nil, err
	}
	return d, nil
}

// UpdateDoctorPhone sets a doctor's phone number.
func (f *FrontDesk) UpdateDoctorPhone(id int64, phoneNumber string) (*model.Doctor, error) {
	d, err := f.GetDoctor(id)
	if err != nil {
		return nil, err
	}
	if err := d.SetPhoneNumber(phoneNumber); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
	}
	d.Touch()
	if err := f.persistDoctor(d); err != nil {
		return nil, err
	}
	return d, nil
}

// DeleteDoctor removes a doctor. A doctor with existing appointments cannot
// be deleted; remove or cancel the appointments first.
func (f *FrontDesk) DeleteDoctor(id int64) (bool, error) {
	if f.store.Doctor(id) == nil {
		return false, nil
	}
	if f.store.DoctorHasAppointments(id) {
		return false, apierror.NewAPIError(apierror.ErrConflict,
			"cannot delete doctor with existing appointments, cancel them first", nil)
	}
	if !f.store.RemoveDoctor(id) {
		return false, nil
	}
	if err := store.DeleteDoctorLine(id, f.config.Files.Doctors); err != nil {
		logrus.Errorf("failed to remove doctor %d from file: %v", id, err)
		return false, apierror.NewAPIError(apierror.ErrPersistence, "failed to remove doctor from file", err.Error())
	}
	return true, nil
}

// DoctorAppointmentCount returns the number of appointments of a doctor.
func (f *FrontDesk) DoctorAppointmentCount(doctorID int64) (int, error) {
	if err := f.requireDoctorExists(doctorID); err != nil {
		return 0, err
	}
	appts, err := f.store.AppointmentsOfDoctor(doctorID)
	if err != nil {
		return 0, err
	}
	return len(appts), nil
}

// FindDoctorsByFirstNamePrefix returns doctors whose first name starts with
// the prefix, case-insensitively.
func (f *FrontDesk) FindDoctorsByFirstNamePrefix(prefix string) []*model.Doctor {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	out := []*model.Doctor{}
	for _, d := range f.ListDoctors() {
		if prefix != "" && strings.HasPrefix(strings.ToLower(d.FirstName), prefix) {
			out = append(out, d)
		}
	}
	return out
}

// FindDoctorsByLastNamePrefix returns doctors whose last name starts with
// the prefix, case-insensitively.
func (f *FrontDesk) FindDoctorsByLastNamePrefix(prefix string) []*model.Doctor {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	out := []*model.Doctor{}
	for _, d := range f.ListDoctors() {
		if prefix != "" && strings.HasPrefix(strings.ToLower(d.LastName), prefix) {
			out = append(out, d)
		}
	}
	return out
}

// FindDoctorsByPhone returns doctors with the exact phone number.
func (f *FrontDesk) FindDoctorsByPhone(phoneNumber string) []*model.Doctor {
	phoneNumber = strings.TrimSpace(phoneNumber)
	out := []*model.Doctor{}
	for _, d := range f.ListDoctors() {
		if phoneNumber != "" && d.PhoneNumber == phoneNumber {
			out = append(out, d)
		}
	}
	return out
}

// FindDoctorsBySpecialty returns doctors whose specialty contains the
// fragment, case-insensitively.
func (f *FrontDesk) FindDoctorsBySpecialty(fragment string) []*model.Doctor {
	fragment = strings.ToLower(strings.TrimSpace(fragment))
	out := []*model.Doctor{}
	for _, d := range f.ListDoctors() {
		if fragment != "" && strings.Contains(strings.ToLower(d.Specialty), fragment) {
			out = append(out, d)
		}
	}
	return out
}

// FilterDoctorsByCreatedAtRange returns doctors created in the inclusive
// date-time range.
func (f *FrontDesk) FilterDoctorsByCreatedAtRange(startDateTime, endDateTime string) ([]*model.Doctor, error) {
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
	out := []*model.Doctor{}
	for _, d := range f.ListDoctors() {
		created, err := timeutil.ParseDateTime(d.CreatedAt)
		if err != nil {
			logrus.Warnf("doctor %d has invalid createdAt %q", d.ID, d.CreatedAt)
			continue
		}
		if !created.Before(start) && !created.After(end) {
			out = append(out, d)
		}
	}
	return out, nil
}

// DoctorSortField selects the key used by SortDoctors.
type DoctorSortField string

const (
	DoctorSortByID        DoctorSortField = "id"
	DoctorSortByFirstName DoctorSortField = "first_name"
	DoctorSortByLastName  DoctorSortField = "last_name"
	DoctorSortBySpecialty DoctorSortField = "specialty"
	DoctorSortByPhone     DoctorSortField = "phone"
	DoctorSortByCreatedAt DoctorSortField = "created_at"
	DoctorSortByUpdatedAt DoctorSortField = "updated_at"
)

// SortDoctors sorts in place and returns the slice.
func SortDoctors(list []*model.Doctor, field DoctorSortField, desc bool) []*model.Doctor {
	if len(list) < 2 {
		return list
	}
	var less func(a, b *model.Doctor) bool
	switch field {
	case DoctorSortByFirstName:
		less = func(a, b *model.Doctor) bool {
			return strings.ToLower(a.FirstName) < strings.ToLower(b.FirstName)
		}
	case DoctorSortByLastName:
		less = func(a, b *model.Doctor) bool {
			return strings.ToLower(a.LastName) < strings.ToLower(b.LastName)
		}
	case DoctorSortBySpecialty:
		less = func(a, b *model.Doctor) bool {
			return strings.ToLower(a.Specialty) < strings.ToLower(b.Specialty)
		}
	case DoctorSortByPhone:
		less = func(a, b *model.Doctor) bool { return a.PhoneNumber < b.PhoneNumber }
	case DoctorSortByCreatedAt:
		less = func(a, b *model.Doctor) bool {
			return safeDateTime(a.CreatedAt).Before(safeDateTime(b.CreatedAt))
		}
	case DoctorSortByUpdatedAt:
		less = func(a, b *model.Doctor) bool {
			return safeDateTime(a.UpdatedAt).Before(safeDateTime(b.UpdatedAt))
		}
	default:
		less = func(a, b *model.Doctor) bool { return a.ID < b.ID }
	}
	sort.SliceStable(list, func(i, j int) bool {
		if desc {
			return less(list[j], list[i])
		}
		return less(list[i], list[j])
	})
	return list
}
