package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppointment(t *testing.T) {
	a, err := NewAppointment(1, 2, 3, "10-09-2026", "09:30:00", "01:30", "scheduled", " Room 1 ", "", "checkup", "")
	require.NoError(t, err)

	assert.Equal(t, int64(2), a.PatientID)
	assert.Equal(t, int64(3), a.DoctorID)
	assert.Equal(t, "10-09-2026", a.AppointmentDate)
	// seconds are dropped, duration is re-rendered canonically
	assert.Equal(t, "09:30", a.AppointmentTime)
	assert.Equal(t, "01:30", a.Duration)
	assert.Equal(t, AppointmentScheduled, a.Status)
	assert.Equal(t, "Room 1", a.Location)
	assert.NotEmpty(t, a.CreatedAt)
	assert.NotEmpty(t, a.UpdatedAt)
}

func TestNewAppointmentValidation(t *testing.T) {
	tests := []struct {
		name string
		run  func() error
	}{
		{name: "zero id", run: func() error {
			_, err := NewAppointment(0, 2, 3, "10-09-2026", "09:30", "00:30", AppointmentScheduled, "", "", "", "")
			return err
		}},
		{name: "zero patient", run: func() error {
			_, err := NewAppointment(1, 0, 3, "10-09-2026", "09:30", "00:30", AppointmentScheduled, "", "", "", "")
			return err
		}},
		{name: "bad date", run: func() error {
			_, err := NewAppointment(1, 2, 3, "2026-09-10", "09:30", "00:30", AppointmentScheduled, "", "", "", "")
			return err
		}},
		{name: "bad time", run: func() error {
			_, err := NewAppointment(1, 2, 3, "10-09-2026", "25:00", "00:30", AppointmentScheduled, "", "", "", "")
			return err
		}},
		{name: "duration with seconds", run: func() error {
			_, err := NewAppointment(1, 2, 3, "10-09-2026", "09:30", "00:30:00", AppointmentScheduled, "", "", "", "")
			return err
		}},
		{name: "unknown status", run: func() error {
			_, err := NewAppointment(1, 2, 3, "10-09-2026", "09:30", "00:30", "Pending", "", "", "", "")
			return err
		}},
		{name: "bad follow-up date", run: func() error {
			_, err := NewAppointment(1, 2, 3, "10-09-2026", "09:30", "00:30", AppointmentScheduled, "", "next week", "", "")
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.run())
		})
	}
}

func TestRehydrateAppointmentKeepsStamps(t *testing.T) {
	a, err := RehydrateAppointment(5, 2, 3, "10-09-2026", "09:30", "00:30", AppointmentScheduled,
		"", "", "", "", "01-09-2026 08:00:00", "02-09-2026 08:00:00")
	require.NoError(t, err)
	assert.Equal(t, "01-09-2026 08:00:00", a.CreatedAt)
	assert.Equal(t, "02-09-2026 08:00:00", a.UpdatedAt)
}

func TestAppointmentStart(t *testing.T) {
	a, err := NewAppointment(1, 2, 3, "10-09-2026", "09:30", "00:30", AppointmentScheduled, "", "", "", "")
	require.NoError(t, err)

	start, err := a.Start()
	require.NoError(t, err)
	assert.Equal(t, 9, start.Hour())
	assert.Equal(t, 10, start.Day())
}

func TestCanonicalAppointmentStatus(t *testing.T) {
	assert.Equal(t, AppointmentNoShow, CanonicalAppointmentStatus("no show"))
	assert.Equal(t, AppointmentCheckedIn, CanonicalAppointmentStatus(" CHECKED IN "))
	assert.Equal(t, "Pending", CanonicalAppointmentStatus(" Pending "))

	assert.True(t, IsValidAppointmentStatus("cancelled"))
	assert.False(t, IsValidAppointmentStatus("Pending"))
	assert.Len(t, AppointmentStatuses(), 6)
}
