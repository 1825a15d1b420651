package frontdesk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinichq/frontdesk/internal/apierror"
	"github.com/clinichq/frontdesk/model"
)

func TestCheckInScheduled(t *testing.T) {
	fd := newTestFrontDesk(t)
	p := seedPatient(t, fd)
	d := seedDoctor(t, fd)
	appt := seedAppointment(t, fd, p.ID, d.ID, "10-09-2026", "09:00")

	res, err := fd.CheckInScheduled(appt.ID, "Desk 2", "arrived early")
	require.NoError(t, err)
	require.NotNil(t, res.CheckIn)
	assert.Nil(t, res.SyncWarning)
	assert.Equal(t, appt.ID, res.CheckIn.AppointmentID)
	assert.Equal(t, p.ID, res.CheckIn.PatientID)
	assert.Equal(t, model.CheckInStatusCheckedIn, res.CheckIn.Status)
	assert.False(t, res.CheckIn.WalkIn)
	assert.Equal(t, "Desk 2", res.CheckIn.Desk)
	assert.NotEmpty(t, res.CheckIn.CheckedInAt)

	updated, err := fd.GetAppointment(appt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentCheckedIn, updated.Status)

	queue := fd.ListScheduledQueue()
	require.Len(t, queue, 1)
	assert.Equal(t, res.CheckIn.ID, queue[0].ID)
	assert.Empty(t, fd.ListWalkInQueue())
}

func TestCheckInScheduledRejectsNonScheduledStatus(t *testing.T) {
	fd := newTestFrontDesk(t)
	p := seedPatient(t, fd)
	d := seedDoctor(t, fd)
	appt := seedAppointment(t, fd, p.ID, d.ID, "10-09-2026", "09:00")

	_, err := fd.CancelAppointment(appt.ID)
	require.NoError(t, err)

	_, err = fd.CheckInScheduled(appt.ID, "Desk 1", "")
	require.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.ErrConflict))
}

func TestCheckInScheduledUnknownAppointment(t *testing.T) {
	fd := newTestFrontDesk(t)

	_, err := fd.CheckInScheduled(99, "Desk 1", "")
	require.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.ErrNotFound))
}

func TestCheckInScheduledRejectsDoubleCheckIn(t *testing.T) {
	fd := newTestFrontDesk(t)
	p := seedPatient(t, fd)
	d := seedDoctor(t, fd)
	appt := seedAppointment(t, fd, p.ID, d.ID, "10-09-2026", "09:00")

	_, err := fd.CheckInScheduled(appt.ID, "Desk 1", "")
	require.NoError(t, err)

	_, err = fd.CheckInScheduled(appt.ID, "Desk 1", "")
	require.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.ErrConflict))
}

func TestCheckInWalkInCreatesAppointment(t *testing.T) {
	fd := newTestFrontDesk(t)
	p := seedPatient(t, fd)
	d := seedDoctor(t, fd)

	res, err := fd.CheckInWalkIn(p.ID, d.ID, "10-09-2026", "11:00", "00:20", 3, "Desk 1", "sore throat", "walked in")
	require.NoError(t, err)
	require.NotNil(t, res.CheckIn)
	assert.True(t, res.CheckIn.WalkIn)
	assert.Equal(t, 3, res.CheckIn.Priority)

	appt, err := fd.GetAppointment(res.CheckIn.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentCheckedIn, appt.Status)
	assert.Equal(t, "sore throat", appt.Reason)
	assert.Equal(t, d.ID, appt.DoctorID)

	adHoc, err := fd.IsWalkInAppointment(appt.ID)
	require.NoError(t, err)
	assert.True(t, adHoc)
}

func TestCheckInWalkInUnknownPatient(t *testing.T) {
	fd := newTestFrontDesk(t)
	d := seedDoctor(t, fd)

	_, err := fd.CheckInWalkIn(42, d.ID, "10-09-2026", "11:00", "00:20", 0, "", "", "")
	require.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.ErrNotFound))
}

func TestWalkInQueueOrdering(t *testing.T) {
	fd := newTestFrontDesk(t)
	p := seedPatient(t, fd)
	d := seedDoctor(t, fd)

	first, err := fd.CheckInWalkIn(p.ID, d.ID, "10-09-2026", "09:00", "00:30", 5, "", "cough", "")
	require.NoError(t, err)
	urgent, err := fd.CheckInWalkIn(p.ID, d.ID, "10-09-2026", "09:30", "00:30", 9, "", "chest pain", "")
	require.NoError(t, err)
	second, err := fd.CheckInWalkIn(p.ID, d.ID, "10-09-2026", "10:00", "00:30", 5, "", "rash", "")
	require.NoError(t, err)

	queue := fd.ListWalkInQueue()
	require.Len(t, queue, 3)
	assert.Equal(t, urgent.CheckIn.ID, queue[0].ID)
	assert.Equal(t, first.CheckIn.ID, queue[1].ID)
	assert.Equal(t, second.CheckIn.ID, queue[2].ID)
}

func TestScheduledQueueOrdersByAppointmentStart(t *testing.T) {
	fd := newTestFrontDesk(t)
	p := seedPatient(t, fd)
	d := seedDoctor(t, fd)
	late := seedAppointment(t, fd, p.ID, d.ID, "10-09-2026", "14:00")
	early := seedAppointment(t, fd, p.ID, d.ID, "10-09-2026", "08:00")

	lateRes, err := fd.CheckInScheduled(late.ID, "", "")
	require.NoError(t, err)
	earlyRes, err := fd.CheckInScheduled(early.ID, "", "")
	require.NoError(t, err)

	queue := fd.ListScheduledQueue()
	require.Len(t, queue, 2)
	assert.Equal(t, earlyRes.CheckIn.ID, queue[0].ID)
	assert.Equal(t, lateRes.CheckIn.ID, queue[1].ID)
}

func TestCallNextWalkIn(t *testing.T) {
	fd := newTestFrontDesk(t)
	p := seedPatient(t, fd)
	d := seedDoctor(t, fd)

	_, err := fd.CheckInWalkIn(p.ID, d.ID, "10-09-2026", "09:00", "00:30", 2, "", "cough", "")
	require.NoError(t, err)
	urgent, err := fd.CheckInWalkIn(p.ID, d.ID, "10-09-2026", "09:30", "00:30", 8, "", "chest pain", "")
	require.NoError(t, err)

	res, err := fd.CallNextWalkIn()
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, urgent.CheckIn.ID, res.CheckIn.ID)
	assert.Equal(t, model.CheckInStatusCompleted, res.CheckIn.Status)
	assert.NotEmpty(t, res.CheckIn.CompletedAt)

	appt, err := fd.GetAppointment(urgent.CheckIn.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentCompleted, appt.Status)

	_, err = fd.GetCheckIn(urgent.CheckIn.ID)
	require.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.ErrNotFound))

	history := fd.ListCheckInHistory()
	require.Len(t, history, 1)
	assert.Equal(t, urgent.CheckIn.ID, history[0].CheckInID)
	assert.Equal(t, d.ID, history[0].DoctorID)

	require.Len(t, fd.ListWalkInQueue(), 1)
}

func TestCallNextOnEmptyQueues(t *testing.T) {
	fd := newTestFrontDesk(t)

	res, err := fd.CallNextWalkIn()
	require.NoError(t, err)
	assert.Nil(t, res)

	res, err = fd.CallNextScheduled()
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestCallNextScheduled(t *testing.T) {
	fd := newTestFrontDesk(t)
	p := seedPatient(t, fd)
	d := seedDoctor(t, fd)
	appt := seedAppointment(t, fd, p.ID, d.ID, "10-09-2026", "09:00")

	checked, err := fd.CheckInScheduled(appt.ID, "", "")
	require.NoError(t, err)

	res, err := fd.CallNextScheduled()
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, checked.CheckIn.ID, res.CheckIn.ID)
	assert.Empty(t, fd.ListScheduledQueue())
}

func TestMarkCompletedArchives(t *testing.T) {
	fd := newTestFrontDesk(t)
	p := seedPatient(t, fd)
	d := seedDoctor(t, fd)

	res, err := fd.CheckInWalkIn(p.ID, d.ID, "10-09-2026", "09:00", "00:30", 1, "", "cough", "")
	require.NoError(t, err)

	done, err := fd.MarkCompleted(res.CheckIn.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CheckInStatusCompleted, done.CheckIn.Status)
	assert.Empty(t, fd.ListWalkInQueue())
	require.Len(t, fd.ListCheckInHistory(), 1)

	// archived records are gone from live state
	_, err = fd.MarkCompleted(res.CheckIn.ID)
	require.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.ErrNotFound))
}

func TestMarkCompletedWithMissingAppointmentWarns(t *testing.T) {
	fd := newTestFrontDesk(t)
	p := seedPatient(t, fd)
	d := seedDoctor(t, fd)

	res, err := fd.CheckInWalkIn(p.ID, d.ID, "10-09-2026", "09:00", "00:30", 1, "", "cough", "")
	require.NoError(t, err)

	removed, err := fd.DeleteAppointment(res.CheckIn.AppointmentID)
	require.NoError(t, err)
	require.True(t, removed)

	done, err := fd.MarkCompleted(res.CheckIn.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CheckInStatusCompleted, done.CheckIn.Status)
	require.NotNil(t, done.SyncWarning)
	assert.Equal(t, res.CheckIn.AppointmentID, done.SyncWarning.AppointmentID)
	assert.NotEmpty(t, done.SyncWarning.Reason)
}

func TestUpdateWalkInPriorityReorders(t *testing.T) {
	fd := newTestFrontDesk(t)
	p := seedPatient(t, fd)
	d := seedDoctor(t, fd)

	first, err := fd.CheckInWalkIn(p.ID, d.ID, "10-09-2026", "09:00", "00:30", 1, "", "cough", "")
	require.NoError(t, err)
	second, err := fd.CheckInWalkIn(p.ID, d.ID, "10-09-2026", "09:30", "00:30", 1, "", "rash", "")
	require.NoError(t, err)

	bumped, err := fd.UpdateWalkInPriority(second.CheckIn.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, 9, bumped.Priority)

	queue := fd.ListWalkInQueue()
	require.Len(t, queue, 2)
	assert.Equal(t, second.CheckIn.ID, queue[0].ID)
	assert.Equal(t, first.CheckIn.ID, queue[1].ID)
}

func TestUpdateWalkInPriorityRejectsScheduled(t *testing.T) {
	fd := newTestFrontDesk(t)
	p := seedPatient(t, fd)
	d := seedDoctor(t, fd)
	appt := seedAppointment(t, fd, p.ID, d.ID, "10-09-2026", "09:00")

	res, err := fd.CheckInScheduled(appt.ID, "", "")
	require.NoError(t, err)

	_, err = fd.UpdateWalkInPriority(res.CheckIn.ID, 5)
	require.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.ErrConflict))
}

func TestUpdateCheckInDeskAndNotes(t *testing.T) {
	fd := newTestFrontDesk(t)
	p := seedPatient(t, fd)
	d := seedDoctor(t, fd)

	res, err := fd.CheckInWalkIn(p.ID, d.ID, "10-09-2026", "09:00", "00:30", 0, "Desk 1", "", "")
	require.NoError(t, err)

	c, err := fd.UpdateCheckInDesk(res.CheckIn.ID, "Desk 4")
	require.NoError(t, err)
	assert.Equal(t, "Desk 4", c.Desk)

	c, err = fd.UpdateCheckInNotes(res.CheckIn.ID, "  needs wheelchair  ")
	require.NoError(t, err)
	assert.Equal(t, "needs wheelchair", c.Notes)
}

func TestDeleteCheckInCleansState(t *testing.T) {
	fd := newTestFrontDesk(t)
	p := seedPatient(t, fd)
	d := seedDoctor(t, fd)

	res, err := fd.CheckInWalkIn(p.ID, d.ID, "10-09-2026", "09:00", "00:30", 2, "", "cough", "")
	require.NoError(t, err)

	ok, err := fd.DeleteCheckIn(res.CheckIn.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	found, err := fd.FindCheckInByAppointment(res.CheckIn.AppointmentID)
	require.NoError(t, err)
	assert.Nil(t, found)

	byPatient, err := fd.ListCheckInsByPatient(p.ID)
	require.NoError(t, err)
	assert.Empty(t, byPatient)

	adHoc, err := fd.IsWalkInAppointment(res.CheckIn.AppointmentID)
	require.NoError(t, err)
	assert.False(t, adHoc)

	assert.Empty(t, fd.ListWalkInQueue())
	assert.Empty(t, fd.ListCheckInHistory())

	ok, err = fd.DeleteCheckIn(res.CheckIn.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFindCheckInByAppointment(t *testing.T) {
	fd := newTestFrontDesk(t)
	p := seedPatient(t, fd)
	d := seedDoctor(t, fd)
	appt := seedAppointment(t, fd, p.ID, d.ID, "10-09-2026", "09:00")

	found, err := fd.FindCheckInByAppointment(appt.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	res, err := fd.CheckInScheduled(appt.ID, "", "")
	require.NoError(t, err)

	found, err = fd.FindCheckInByAppointment(appt.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, res.CheckIn.ID, found.ID)
}

func TestListCheckInsByPatient(t *testing.T) {
	fd := newTestFrontDesk(t)
	p := seedPatient(t, fd)
	other, err := fd.CreatePatient("Bola", "Ade", 41, "07011122233")
	require.NoError(t, err)
	d := seedDoctor(t, fd)

	_, err = fd.CheckInWalkIn(p.ID, d.ID, "10-09-2026", "09:00", "00:30", 0, "", "cough", "")
	require.NoError(t, err)
	appt := seedAppointment(t, fd, p.ID, d.ID, "10-09-2026", "12:00")
	_, err = fd.CheckInScheduled(appt.ID, "", "")
	require.NoError(t, err)

	mine, err := fd.ListCheckInsByPatient(p.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	walkIns, err := fd.ListWalkInsByPatient(p.ID)
	require.NoError(t, err)
	assert.Len(t, walkIns, 1)

	theirs, err := fd.ListCheckInsByPatient(other.ID)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestStaleQueueEntriesPurgedOnReload(t *testing.T) {
	fd := newTestFrontDesk(t)
	p := seedPatient(t, fd)
	d := seedDoctor(t, fd)

	res, err := fd.CheckInWalkIn(p.ID, d.ID, "10-09-2026", "09:00", "00:30", 2, "", "cough", "")
	require.NoError(t, err)

	// simulate a snapshot polluted by stale ids and duplicates
	fd.state.WalkInQueue = append(fd.state.WalkInQueue, 999, res.CheckIn.ID)
	fd.state.ScheduledQueue = append(fd.state.ScheduledQueue, res.CheckIn.ID)
	require.NoError(t, fd.SaveCheckInSnapshot())

	fd.ReloadCheckIns()

	queue := fd.ListWalkInQueue()
	require.Len(t, queue, 1)
	assert.Equal(t, res.CheckIn.ID, queue[0].ID)
	assert.Empty(t, fd.ListScheduledQueue())
}

func TestClearCheckInHistory(t *testing.T) {
	fd := newTestFrontDesk(t)
	p := seedPatient(t, fd)
	d := seedDoctor(t, fd)

	res, err := fd.CheckInWalkIn(p.ID, d.ID, "10-09-2026", "09:00", "00:30", 1, "", "cough", "")
	require.NoError(t, err)
	_, err = fd.MarkCompleted(res.CheckIn.ID)
	require.NoError(t, err)
	require.Len(t, fd.ListCheckInHistory(), 1)

	require.NoError(t, fd.ClearCheckInHistory())
	assert.Empty(t, fd.ListCheckInHistory())
}

func TestWalkInLess(t *testing.T) {
	mk := func(priority int, checkedInAt string) *model.CheckIn {
		c, err := model.NewCheckIn(1, 1, 1, model.CheckInStatusCheckedIn, "", "", true, priority)
		require.NoError(t, err)
		c.CheckedInAt = checkedInAt
		return c
	}

	tests := []struct {
		name string
		a, b *model.CheckIn
		want bool
	}{
		{name: "higher priority wins", a: mk(9, "10-09-2026 09:30:00"), b: mk(5, "10-09-2026 09:00:00"), want: true},
		{name: "lower priority loses", a: mk(2, "10-09-2026 09:00:00"), b: mk(5, "10-09-2026 09:30:00"), want: false},
		{name: "equal priority earlier arrival wins", a: mk(5, "10-09-2026 09:00:00"), b: mk(5, "10-09-2026 09:30:00"), want: true},
		{name: "equal priority same arrival keeps order", a: mk(5, "10-09-2026 09:00:00"), b: mk(5, "10-09-2026 09:00:00"), want: false},
		{name: "unparseable arrival gives no preference", a: mk(5, "garbage"), b: mk(5, "10-09-2026 09:00:00"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, walkInLess(tt.a, tt.b))
		})
	}
}

func TestReindex(t *testing.T) {
	a, err := model.NewCheckIn(1, 10, 100, model.CheckInStatusCheckedIn, "", "", true, 0)
	require.NoError(t, err)
	b, err := model.NewCheckIn(2, 20, 100, model.CheckInStatusCheckedIn, "", "", false, 0)
	require.NoError(t, err)

	apptIndex, patientIndex := reindex(map[int64]*model.CheckIn{1: a, 2: b})

	assert.Equal(t, map[int64]int64{10: 1, 20: 2}, apptIndex)
	assert.Equal(t, map[int64][]int64{100: {1, 2}}, patientIndex)
}
