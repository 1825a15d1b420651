package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinichq/frontdesk/model"
)

func testPatient(t *testing.T, id int64, first, last string) *model.Patient {
	t.Helper()
	p, err := model.NewPatient(id, first, last, 30, "08031234567")
	require.NoError(t, err)
	return p
}

func testDoctor(t *testing.T, id int64) *model.Doctor {
	t.Helper()
	d, err := model.NewDoctor(id, "Ngozi", "Eze", "Cardiology", "08059876543")
	require.NoError(t, err)
	return d
}

func testAppointment(t *testing.T, id, patientID, doctorID int64) *model.Appointment {
	t.Helper()
	a, err := model.NewAppointment(id, patientID, doctorID, "10-09-2026", "09:00", "00:30",
		model.AppointmentScheduled, "Room 1", "", "checkup", "")
	require.NoError(t, err)
	return a
}

func TestPatientFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patients.txt")
	ada := testPatient(t, 1, "Ada", "Obi")
	bola := testPatient(t, 2, "Bola", "Ade")

	require.NoError(t, SavePatients([]*model.Patient{ada, bola}, path))

	s := New()
	loaded := LoadPatients(path, s)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Ada", loaded[0].FirstName)
	assert.Equal(t, ada.CreatedAt, loaded[0].CreatedAt)

	assert.True(t, s.HasPatient(1))
	assert.True(t, s.HasPatient(2))
	assert.Equal(t, int64(3), s.NextPatientID())
}

func TestLoadPatientsSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patients.txt")
	good := serializePatient(testPatient(t, 1, "Ada", "Obi"))
	content := strings.Join([]string{
		good,
		"",
		"too|few|fields",
		"x|Ada|Obi|30|08031234567|10-09-2026 09:00:00|10-09-2026 09:00:00",
		"2|Ada|Obi|abc|08031234567|10-09-2026 09:00:00|10-09-2026 09:00:00",
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	loaded := LoadPatients(path, New())
	require.Len(t, loaded, 1)
	assert.Equal(t, int64(1), loaded[0].ID)
}

func TestUpsertAndDeletePatientLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patients.txt")
	ada := testPatient(t, 1, "Ada", "Obi")
	bola := testPatient(t, 2, "Bola", "Ade")

	require.NoError(t, UpsertPatientLine(ada, path))
	require.NoError(t, UpsertPatientLine(bola, path))

	require.NoError(t, ada.SetFirstName("Amaka"))
	require.NoError(t, UpsertPatientLine(ada, path))

	loaded := LoadPatients(path, nil)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Amaka", loaded[0].FirstName)

	require.NoError(t, DeletePatientLine(1, path))
	loaded = LoadPatients(path, nil)
	require.Len(t, loaded, 1)
	assert.Equal(t, int64(2), loaded[0].ID)
}

func TestDoctorFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doctors.txt")
	d := testDoctor(t, 1)

	require.NoError(t, UpsertDoctorLine(d, path))

	s := New()
	loaded := LoadDoctors(path, s)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Cardiology", loaded[0].Specialty)
	assert.True(t, s.HasDoctor(1))
}

func TestAppointmentFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := New()
	require.NoError(t, s.SavePatient(testPatient(t, 1, "Ada", "Obi")))
	require.NoError(t, s.SaveDoctor(testDoctor(t, 2)))

	path := filepath.Join(dir, "appointments.txt")
	a := testAppointment(t, 1, 1, 2)
	require.NoError(t, UpsertAppointmentLine(a, path))

	loaded := LoadAppointments(path, s)
	require.Len(t, loaded, 1)
	got := loaded[0]
	assert.Equal(t, a.AppointmentDate, got.AppointmentDate)
	assert.Equal(t, a.AppointmentTime, got.AppointmentTime)
	assert.Equal(t, a.Duration, got.Duration)
	assert.Equal(t, model.AppointmentScheduled, got.Status)
	assert.Equal(t, "Room 1", got.Location)
	assert.NotNil(t, s.Appointment(1))
}

func TestLoadAppointmentsSkipsOrphans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appointments.txt")
	orphan := testAppointment(t, 1, 7, 8)
	require.NoError(t, UpsertAppointmentLine(orphan, path))

	// referenced patient and doctor are absent from the store
	s := New()
	LoadAppointments(path, s)
	assert.Nil(t, s.Appointment(1))
}

func TestIDOfLine(t *testing.T) {
	assert.Equal(t, int64(12), idOfLine("12|rest|of|line"))
	assert.Equal(t, int64(0), idOfLine("abc|rest"))
	assert.Equal(t, int64(0), idOfLine(""))
}
