package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCreatePatient(t *testing.T) {
	valid := CreatePatient{FirstName: "Ada", LastName: "Obi", Age: 34, PhoneNumber: "08031234567"}
	require.NoError(t, valid.ValidateCreatePatient())

	tests := []struct {
		name string
		req  CreatePatient
	}{
		{name: "missing first name", req: CreatePatient{LastName: "Obi", Age: 34, PhoneNumber: "08031234567"}},
		{name: "age above limit", req: CreatePatient{FirstName: "Ada", LastName: "Obi", Age: 121, PhoneNumber: "08031234567"}},
		{name: "short phone", req: CreatePatient{FirstName: "Ada", LastName: "Obi", Age: 34, PhoneNumber: "12345"}},
		{name: "phone with letters", req: CreatePatient{FirstName: "Ada", LastName: "Obi", Age: 34, PhoneNumber: "0803abc4567"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.req.ValidateCreatePatient())
		})
	}
}

func TestValidateUpdatePatientSkipsUnsetFields(t *testing.T) {
	req := UpdatePatient{ID: 1}
	require.NoError(t, req.ValidateUpdatePatient())

	req = UpdatePatient{ID: 1, Age: 200}
	require.Error(t, req.ValidateUpdatePatient())

	req = UpdatePatient{PhoneNumber: "08031234567"}
	require.Error(t, req.ValidateUpdatePatient(), "id is required")
}

func TestValidateCreateAppointment(t *testing.T) {
	valid := CreateAppointment{
		PatientID:       1,
		DoctorID:        2,
		AppointmentDate: "10-09-2026",
		AppointmentTime: "09:30",
		Duration:        "00:30",
	}
	require.NoError(t, valid.ValidateCreateAppointment())

	bad := valid
	bad.AppointmentDate = "2026-09-10"
	assert.Error(t, bad.ValidateCreateAppointment())

	bad = valid
	bad.Duration = "30 minutes"
	assert.Error(t, bad.ValidateCreateAppointment())

	bad = valid
	bad.FollowUpDate = "next week"
	assert.Error(t, bad.ValidateCreateAppointment())
}

func TestValidateUpdateAppointmentStatus(t *testing.T) {
	req := UpdateAppointmentStatus{ID: 1, Status: "no show"}
	require.NoError(t, req.ValidateUpdateAppointmentStatus())

	req = UpdateAppointmentStatus{ID: 1, Status: "Pending"}
	require.Error(t, req.ValidateUpdateAppointmentStatus())
}

func TestValidateWalkInCheckIn(t *testing.T) {
	valid := WalkInCheckIn{
		PatientID:       1,
		DoctorID:        2,
		AppointmentDate: "10-09-2026",
		AppointmentTime: "09:30",
		Duration:        "00:30",
		Priority:        5,
	}
	require.NoError(t, valid.ValidateWalkInCheckIn())

	bad := valid
	bad.PatientID = 0
	assert.Error(t, bad.ValidateWalkInCheckIn())

	bad = valid
	bad.AppointmentTime = "25:99"
	assert.Error(t, bad.ValidateWalkInCheckIn())
}

func TestValidateScheduledCheckIn(t *testing.T) {
	req := ScheduledCheckIn{AppointmentID: 3, Desk: "Desk 1"}
	require.NoError(t, req.ValidateScheduledCheckIn())

	req = ScheduledCheckIn{}
	require.Error(t, req.ValidateScheduledCheckIn())
}

func TestValidateUpdateWalkInPriority(t *testing.T) {
	req := UpdateWalkInPriority{CheckInID: 4, Priority: 0}
	require.NoError(t, req.ValidateUpdateWalkInPriority())

	req = UpdateWalkInPriority{Priority: 3}
	require.Error(t, req.ValidateUpdateWalkInPriority())
}

func TestValidateUpdateCheckInDeskAndNotes(t *testing.T) {
	deskReq := UpdateCheckInDesk{CheckInID: 2, Desk: "Desk 3"}
	require.NoError(t, deskReq.ValidateUpdateCheckInDesk())

	deskReq = UpdateCheckInDesk{Desk: "Desk 3"}
	require.Error(t, deskReq.ValidateUpdateCheckInDesk())

	notesReq := UpdateCheckInNotes{CheckInID: 2, Notes: "needs interpreter"}
	require.NoError(t, notesReq.ValidateUpdateCheckInNotes())

	notesReq = UpdateCheckInNotes{Notes: "needs interpreter"}
	require.Error(t, notesReq.ValidateUpdateCheckInNotes())
}
