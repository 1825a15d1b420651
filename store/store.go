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

	"github.com/sirupsen/logrus"

	"github.com/clinichq/frontdesk/model"
)

// Store is the in-memory home of patients, doctors and appointments. It owns
// the id counters and keeps patient->appointments and doctor->appointments
// indexes consistent on every save and remove. Referential integrity is
// enforced: an appointment cannot reference a missing patient or doctor.
//
// The store is not safe for concurrent use; callers serialize access.
type Store struct {
	nextPatientID     int64
	nextDoctorID      int64
	nextAppointmentID int64

	patients     map[int64]*model.Patient
	doctors      map[int64]*model.Doctor
	appointments map[int64]*model.Appointment

	patientAppointments map[int64][]int64
	doctorAppointments  map[int64][]int64
}

// New creates an empty store with id sequences starting at 1.
func New() *Store {
	return &Store{
		nextPatientID:       1,
		nextDoctorID:        1,
		nextAppointmentID:   1,
		patients:            make(map[int64]*model.Patient),
		doctors:             make(map[int64]*model.Doctor),
		appointments:        make(map[int64]*model.Appointment),
		patientAppointments: make(map[int64][]int64),
		doctorAppointments:  make(map[int64][]int64),
	}
}

// NextPatientID allocates a fresh patient id.
func (s *Store) NextPatientID() int64 {
	id := s.nextPatientID
	s.nextPatientID++
	return id
}

// NextDoctorID allocates a fresh doctor id.
func (s *Store) NextDoctorID() int64 {
	id := s.nextDoctorID
	s.nextDoctorID++
	return id
}

// NextAppointmentID allocates a fresh appointment id.
func (s *Store) NextAppointmentID() int64 {
	id := s.nextAppointmentID
	s.nextAppointmentID++
	return id
}

// EnsureNextPatientIDAbove advances the patient counter past id. Used when
// importing records so fresh ids never collide.
func (s *Store) EnsureNextPatientIDAbove(id int64) {
	if s.nextPatientID <= id {
		s.nextPatientID = id + 1
	}
}

// EnsureNextDoctorIDAbove advances the doctor counter past id.
func (s *Store) EnsureNextDoctorIDAbove(id int64) {
	if s.nextDoctorID <= id {
		s.nextDoctorID = id + 1
	}
}

// EnsureNextAppointmentIDAbove advances the appointment counter past id.
func (s *Store) EnsureNextAppointmentIDAbove(id int64) {
	if s.nextAppointmentID <= id {
		s.nextAppointmentID = id + 1
	}
}

// SavePatient stores (or replaces) a patient.
func (s *Store) SavePatient(p *model.Patient) error {
	if p == nil {
		return fmt.Errorf("patient cannot be nil")
	}
	if p.ID <= 0 {
		return fmt.Errorf("patient ID must be positive, got %d", p.ID)
	}
	s.patients[p.ID] = p
	return nil
}

// Patient returns a patient by id, or nil when absent.
func (s *Store) Patient(id int64) *model.Patient {
	return s.patients[id]
}

// HasPatient reports whether a patient with the given id exists.
func (s *Store) HasPatient(id int64) bool {
	_, ok := s.patients[id]
	return ok
}

// AllPatients returns every patient in the store.
func (s *Store) AllPatients() []*model.Patient {
	out := make([]*model.Patient, 0, len(s.patients))
	for _, p := range s.patients {
		out = append(out, p)
	}
	return out
}

// RemovePatient deletes a patient by id, reporting whether it existed.
func (s *Store) RemovePatient(id int64) bool {
	if _, ok := s.patients[id]; !ok {
		return false
	}
	delete(s.patients, id)
	return true
}

// SaveDoctor stores (or replaces) a doctor.
func (s *Store) SaveDoctor(d *model.Doctor) error {
	if d == nil {
		return fmt.Errorf("doctor cannot be nil")
	}
	if d.ID <= 0 {
		return fmt.Errorf("doctor ID must be positive, got %d", d.ID)
	}
	s.doctors[d.ID] = d
	return nil
}

// Doctor returns a doctor by id, or nil when absent.
func (s *Store) Doctor(id int64) *model.Doctor {
	return s.doctors[id]
}

// HasDoctor reports whether a doctor with the given id exists.
func (s *Store) HasDoctor(id int64) bool {
	_, ok := s.doctors[id]
	return ok
}

// AllDoctors returns every doctor in the store.
func (s *Store) AllDoctors() []*model.Doctor {
	out := make([]*model.Doctor, 0, len(s.doctors))
	for _, d := range s.doctors {
		out = append(out, d)
	}
	return out
}

// RemoveDoctor deletes a doctor by id, reporting whether it existed.
func (s *Store) RemoveDoctor(id int64) bool {
	if _, ok := s.doctors[id]; !ok {
		return false
	}
	delete(s.doctors, id)
	return true
}

// SaveAppointment stores an appointment and maintains both relationship
// indexes. When a save reassigns an appointment to a different patient or
// doctor, the stale index entry is removed first.
func (s *Store) SaveAppointment(a *model.Appointment) error {
	if a == nil {
		return fmt.Errorf("appointment cannot be nil")
	}
	if a.ID <= 0 {
		return fmt.Errorf("appointment ID must be positive, got %d", a.ID)
	}
	if !s.HasPatient(a.PatientID) {
		return fmt.Errorf("referenced patient with ID %d does not exist", a.PatientID)
	}
	if !s.HasDoctor(a.DoctorID) {
		return fmt.Errorf("referenced doctor with ID %d does not exist", a.DoctorID)
	}

	s.appointments[a.ID] = a

	// Callers may mutate the stored appointment in place, so the map entry
	// cannot tell us who owned it before. Drop the id from every other
	// owner's list before relinking.
	for pid := range s.patientAppointments {
		if pid != a.PatientID {
			s.unlink(s.patientAppointments, pid, a.ID)
		}
	}
	for did := range s.doctorAppointments {
		if did != a.DoctorID {
			s.unlink(s.doctorAppointments, did, a.ID)
		}
	}
	s.link(s.patientAppointments, a.PatientID, a.ID)
	s.link(s.doctorAppointments, a.DoctorID, a.ID)
	return nil
}

// Appointment returns an appointment by id, or nil when absent.
func (s *Store) Appointment(id int64) *model.Appointment {
	return s.appointments[id]
}

// HasAppointment reports whether an appointment with the given id exists.
func (s *Store) HasAppointment(id int64) bool {
	_, ok := s.appointments[id]
	return ok
}

// AllAppointments returns every appointment in the store.
func (s *Store) AllAppointments() []*model.Appointment {
	out := make([]*model.Appointment, 0, len(s.appointments))
	for _, a := range s.appointments {
		out = append(out, a)
	}
	return out
}

// RemoveAppointment deletes an appointment and cleans both indexes.
func (s *Store) RemoveAppointment(id int64) bool {
	a, ok := s.appointments[id]
	if !ok {
		return false
	}
	delete(s.appointments, id)
	s.unlink(s.patientAppointments, a.PatientID, id)
	s.unlink(s.doctorAppointments, a.DoctorID, id)
	return true
}

// AppointmentsOfPatient returns a patient's appointments via the index.
// Dangling index entries are logged and skipped.
func (s *Store) AppointmentsOfPatient(patientID int64) ([]*model.Appointment, error) {
	if !s.HasPatient(patientID) {
		return nil, fmt.Errorf("patient with ID %d does not exist", patientID)
	}
	return s.resolve(s.patientAppointments[patientID], "patient", patientID), nil
}

// AppointmentsOfDoctor returns a doctor's appointments via the index.
func (s *Store) AppointmentsOfDoctor(doctorID int64) ([]*model.Appointment, error) {
	if !s.HasDoctor(doctorID) {
		return nil, fmt.Errorf("doctor with ID %d does not exist", doctorID)
	}
	return s.resolve(s.doctorAppointments[doctorID], "doctor", doctorID), nil
}

// PatientHasAppointments reports whether any appointment references the patient.
func (s *Store) PatientHasAppointments(patientID int64) bool {
	return len(s.patientAppointments[patientID]) > 0
}

// DoctorHasAppointments reports whether any appointment references the doctor.
func (s *Store) DoctorHasAppointments(doctorID int64) bool {
	return len(s.doctorAppointments[doctorID]) > 0
}

func (s *Store) resolve(ids []int64, owner string, ownerID int64) []*model.Appointment {
	out := make([]*model.Appointment, 0, len(ids))
	for _, id := range ids {
		a := s.appointments[id]
		if a == nil {
			logrus.Warnf("appointment %d referenced for %s %d but not found", id, owner, ownerID)
			continue
		}
		out = append(out, a)
	}
	return out
}

func (s *Store) link(index map[int64][]int64, ownerID, apptID int64) {
	for _, existing := range index[ownerID] {
		if existing == apptID {
			return
		}
	}
	index[ownerID] = append(index[ownerID], apptID)
}

func (s *Store) unlink(index map[int64][]int64, ownerID, apptID int64) {
	ids := index[ownerID]
	for i, existing := range ids {
		if existing == apptID {
			index[ownerID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(index[ownerID]) == 0 {
		delete(index, ownerID)
	}
}
