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
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/clinichq/frontdesk/model"
	"github.com/clinichq/frontdesk/internal/timeutil"
)

// Flat-file persistence for clinic entities. One pipe-delimited line per
// record:
//
//	patient:     id|firstname|lastname|age|phonenumber|updatedAt|createdAt
//	doctor:      id|firstname|lastname|specialty|phonenumber|updatedAt|createdAt
//	appointment: id|patientId|doctorId|date|time|duration|status|location|followUpDate|reason|notes|updatedAt|createdAt
//
// Loads tolerate malformed lines (skip and warn); saves rewrite the file.

const (
	fieldSep              = "|"
	patientFieldCount     = 7
	doctorFieldCount      = 7
	appointmentFieldCount = 13
)

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func readLines(path string) ([]string, bool) {
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.Warnf("error reading %s: %v", path, err)
		}
		return nil, false
	}
	defer f.Close()
	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		logrus.Warnf("error reading %s: %v", path, err)
	}
	return lines, true
}

func writeLines(path string, lines []string) error {
	if err := ensureParentDir(path); err != nil {
		return err
	}
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func parsePositiveInt64(s, field string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", field, s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", field, v)
	}
	return v, nil
}

func splitFields(line string, want int) ([]string, bool) {
	parts := strings.Split(line, fieldSep)
	if len(parts) != want {
		return nil, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, true
}

// idOfLine extracts the leading id field of a serialized line, or 0.
func idOfLine(line string) int64 {
	first, _, _ := strings.Cut(line, fieldSep)
	id, err := strconv.ParseInt(strings.TrimSpace(first), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// upsertLine replaces the line whose id matches, or appends a new one.
func upsertLine(path, serialized string, id int64) error {
	lines, _ := readLines(path)
	replaced := false
	for i, line := range lines {
		if idOfLine(line) == id {
			lines[i] = serialized
			replaced = true
			break
		}
	}
	if !replaced {
		lines = append(lines, serialized)
	}
	return writeLines(path, lines)
}

// deleteLine removes the line whose id matches, if present.
func deleteLine(path string, id int64) error {
	lines, ok := readLines(path)
	if !ok {
		return nil
	}
	kept := lines[:0]
	for _, line := range lines {
		if idOfLine(line) != id {
			kept = append(kept, line)
		}
	}
	return writeLines(path, kept)
}

// ---------- Patients ----------

func serializePatient(p *model.Patient) string {
	return strings.Join([]string{
		strconv.FormatInt(p.ID, 10),
		p.FirstName,
		p.LastName,
		strconv.Itoa(p.Age),
		p.PhoneNumber,
		p.UpdatedAt,
		p.CreatedAt,
	}, fieldSep)
}

// LoadPatients reads the patient file, skipping malformed lines with a
// warning. When a store is supplied its id counter is advanced past every
// loaded id.
func LoadPatients(path string, s *Store) []*model.Patient {
	lines, ok := readLines(path)
	if !ok {
		return nil
	}
	var patients []*model.Patient
	for n, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts, ok := splitFields(line, patientFieldCount)
		if !ok {
			logrus.Warnf("patient line %d: bad field count", n+1)
			continue
		}
		p, err := parsePatientFields(parts)
		if err != nil {
			logrus.Warnf("skipping malformed patient line %d: %v", n+1, err)
			continue
		}
		patients = append(patients, p)
		if s != nil {
			if err := s.SavePatient(p); err != nil {
				logrus.Warnf("skipping patient line %d: %v", n+1, err)
				continue
			}
			s.EnsureNextPatientIDAbove(p.ID)
		}
	}
	return patients
}

func parsePatientFields(parts []string) (*model.Patient, error) {
	id, err := parsePositiveInt64(parts[0], "id")
	if err != nil {
		return nil, err
	}
	age, err := strconv.Atoi(parts[3])
	if err != nil {
		return nil, fmt.Errorf("invalid age: %q", parts[3])
	}
	updatedAt, err := timeutil.NormalizeDateTime(parts[5])
	if err != nil {
		return nil, err
	}
	createdAt, err := timeutil.NormalizeDateTime(parts[6])
	if err != nil {
		return nil, err
	}
	return model.RehydratePatient(id, parts[1], parts[2], age, parts[4], createdAt, updatedAt)
}

// SavePatients overwrites the patient file with the full list.
func SavePatients(patients []*model.Patient, path string) error {
	lines := make([]string, 0, len(patients))
	for _, p := range patients {
		lines = append(lines, serializePatient(p))
	}
	return writeLines(path, lines)
}

// UpsertPatientLine creates or replaces a single patient's line.
func UpsertPatientLine(p *model.Patient, path string) error {
	return upsertLine(path, serializePatient(p), p.ID)
}

// DeletePatientLine removes a single patient's line by id.
func DeletePatientLine(id int64, path string) error {
	return deleteLine(path, id)
}

// ---------- Doctors ----------

func serializeDoctor(d *model.Doctor) string {
	return strings.Join([]string{
		strconv.FormatInt(d.ID, 10),
		d.FirstName,
		d.LastName,
		d.Specialty,
		d.PhoneNumber,
		d.UpdatedAt,
		d.CreatedAt,
	}, fieldSep)
}

// LoadDoctors reads the doctor file, skipping malformed lines with a warning.
func LoadDoctors(path string, s *Store) []*model.Doctor {
	lines, ok := readLines(path)
	if !ok {
		return nil
	}
	var doctors []*model.Doctor
	for n, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts, ok := splitFields(line, doctorFieldCount)
		if !ok {
			logrus.Warnf("doctor line %d: bad field count", n+1)
			continue
		}
		d, err := parseDoctorFields(parts)
		if err != nil {
			logrus.Warnf("skipping malformed doctor line %d: %v", n+1, err)
			continue
		}
		doctors = append(doctors, d)
		if s != nil {
			if err := s.SaveDoctor(d); err != nil {
				logrus.Warnf("skipping doctor line %d: %v", n+1, err)
				continue
			}
			s.EnsureNextDoctorIDAbove(d.ID)
		}
	}
	return doctors
}

func parseDoctorFields(parts []string) (*model.Doctor, error) {
	id, err := parsePositiveInt64(parts[0], "id")
	if err != nil {
		return nil, err
	}
	updatedAt, err := timeutil.NormalizeDateTime(parts[5])
	if err != nil {
		return nil, err
	}
	createdAt, err := timeutil.NormalizeDateTime(parts[6])
	if err != nil {
		return nil, err
	}
	return model.RehydrateDoctor(id, parts[1], parts[2], parts[3], parts[4], createdAt, updatedAt)
}

// SaveDoctors overwrites the doctor file with the full list.
func SaveDoctors(doctors []*model.Doctor, path string) error {
	lines := make([]string, 0, len(doctors))
	for _, d := range doctors {
		lines = append(lines, serializeDoctor(d))
	}
	return writeLines(path, lines)
}

// UpsertDoctorLine creates or replaces a single doctor's line.
func UpsertDoctorLine(d *model.Doctor, path string) error {
	return upsertLine(path, serializeDoctor(d), d.ID)
}

// DeleteDoctorLine removes a single doctor's line by id.
func DeleteDoctorLine(id int64, path string) error {
	return deleteLine(path, id)
}

// ---------- Appointments ----------

func serializeAppointment(a *model.Appointment) string {
	return strings.Join([]string{
		strconv.FormatInt(a.ID, 10),
		strconv.FormatInt(a.PatientID, 10),
		strconv.FormatInt(a.DoctorID, 10),
		a.AppointmentDate,
		a.AppointmentTime,
		a.Duration,
		a.Status,
		a.Location,
		a.FollowUpDate,
		a.Reason,
		a.Notes,
		a.UpdatedAt,
		a.CreatedAt,
	}, fieldSep)
}

// LoadAppointments reads the appointment file, skipping malformed lines with
// a warning.
func LoadAppointments(path string, s *Store) []*model.Appointment {
	lines, ok := readLines(path)
	if !ok {
		return nil
	}
	var appointments []*model.Appointment
	for n, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts, ok := splitFields(line, appointmentFieldCount)
		if !ok {
			logrus.Warnf("appointment line %d: bad field count", n+1)
			continue
		}
		a, err := parseAppointmentFields(parts)
		if err != nil {
			logrus.Warnf("skipping malformed appointment line %d: %v", n+1, err)
			continue
		}
		appointments = append(appointments, a)
		if s != nil {
			if err := s.SaveAppointment(a); err != nil {
				logrus.Warnf("skipping appointment line %d: %v", n+1, err)
				continue
			}
			s.EnsureNextAppointmentIDAbove(a.ID)
		}
	}
	return appointments
}

func parseAppointmentFields(parts []string) (*model.Appointment, error) {
	id, err := parsePositiveInt64(parts[0], "id")
	if err != nil {
		return nil, err
	}
	patientID, err := parsePositiveInt64(parts[1], "patientId")
	if err != nil {
		return nil, err
	}
	doctorID, err := parsePositiveInt64(parts[2], "doctorId")
	if err != nil {
		return nil, err
	}
	return model.RehydrateAppointment(id, patientID, doctorID,
		parts[3], parts[4], parts[5],
		parts[6], parts[7], parts[8],
		parts[9], parts[10], parts[12], parts[11])
}

// SaveAppointments overwrites the appointment file with the full list.
func SaveAppointments(appointments []*model.Appointment, path string) error {
	lines := make([]string, 0, len(appointments))
	for _, a := range appointments {
		lines = append(lines, serializeAppointment(a))
	}
	return writeLines(path, lines)
}

// UpsertAppointmentLine creates or replaces a single appointment's line.
func UpsertAppointmentLine(a *model.Appointment, path string) error {
	return upsertLine(path, serializeAppointment(a), a.ID)
}

// DeleteAppointmentLine removes a single appointment's line by id.
func DeleteAppointmentLine(id int64, path string) error {
	return deleteLine(path, id)
}
