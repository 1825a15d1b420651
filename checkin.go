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

	"github.com/sirupsen/logrus"

	"github.com/clinichq/frontdesk/internal/apierror"
	"github.com/clinichq/frontdesk/internal/timeutil"
	"github.com/clinichq/frontdesk/model"
	"github.com/clinichq/frontdesk/store"
)

// SyncWarning reports that the best-effort appointment status update attached
// to a check-in operation failed. The check-in itself succeeded.
type SyncWarning struct {
	AppointmentID int64  `json:"appointment_id"`
	Status        string `json:"status"`
	Reason        string `json:"reason"`
}

// CheckInResult is returned by check-in operations that also touch the
// linked appointment. SyncWarning is nil when the appointment update
// succeeded.
type CheckInResult struct {
	CheckIn     *model.CheckIn `json:"check_in"`
	SyncWarning *SyncWarning   `json:"sync_warning,omitempty"`
}

// walkInLess orders the walk-in queue: priority descending, then check-in
// time ascending. An unparseable timestamp means no preference.
func walkInLess(a, b *model.CheckIn) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	at, errA := timeutil.ParseDateTime(a.CheckedInAt)
	bt, errB := timeutil.ParseDateTime(b.CheckedInAt)
	if errA != nil || errB != nil {
		return false
	}
	return at.Before(bt)
}

// scheduledLess orders the scheduled queue: appointment start ascending,
// then check-in time ascending. An unresolvable appointment means no
// preference.
func (f *FrontDesk) scheduledLess(a, b *model.CheckIn) bool {
	apptA := f.store.Appointment(a.AppointmentID)
	apptB := f.store.Appointment(b.AppointmentID)
	if apptA == nil || apptB == nil {
		return false
	}
	startA, errA := apptA.Start()
	startB, errB := apptB.Start()
	if errA != nil || errB != nil {
		return false
	}
	if !startA.Equal(startB) {
		return startA.Before(startB)
	}
	at, errA := timeutil.ParseDateTime(a.CheckedInAt)
	bt, errB := timeutil.ParseDateTime(b.CheckedInAt)
	if errA != nil || errB != nil {
		return false
	}
	return at.Before(bt)
}

// orderedInsert places c into the queue by linear scan from the front,
// inserting before the first entry it strictly precedes. Stale ids are
// pruned along the way.
func (f *FrontDesk) orderedInsert(queue []int64, c *model.CheckIn, less func(a, b *model.CheckIn) bool) []int64 {
	out := make([]int64, 0, len(queue)+1)
	inserted := false
	for _, id := range queue {
		ex := f.state.CheckIns[id]
		if ex == nil {
			continue
		}
		if !inserted && less(c, ex) {
			out = append(out, c.ID)
			inserted = true
		}
		out = append(out, id)
	}
	if !inserted {
		out = append(out, c.ID)
	}
	return out
}

func (f *FrontDesk) nextCheckInID() int64 {
	id := f.state.NextCheckInID
	f.state.NextCheckInID++
	return id
}

func (f *FrontDesk) requireCheckIn(id int64) (*model.CheckIn, error) {
	if id <= 0 {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "check-in id must be positive", nil)
	}
	c, ok := f.state.CheckIns[id]
	if !ok {
		return nil, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("check-in %d not found", id), nil)
	}
	return c, nil
}

// ensureSingleActiveCheckIn rejects a second active check-in for the same
// appointment. The index is consulted first; when it has no entry the live
// map is scanned as well, in case the index was left stale.
func (f *FrontDesk) ensureSingleActiveCheckIn(appointmentID int64) error {
	if cid, ok := f.state.ApptIndex[appointmentID]; ok {
		if existing := f.state.CheckIns[cid]; existing != nil && !existing.IsTerminal() {
			return apierror.NewAPIError(apierror.ErrConflict,
				fmt.Sprintf("active check-in already exists for appointment %d", appointmentID), nil)
		}
		return nil
	}
	for _, c := range f.state.CheckIns {
		if c.AppointmentID == appointmentID && !c.IsTerminal() {
			return apierror.NewAPIError(apierror.ErrConflict,
				fmt.Sprintf("active check-in already exists for appointment %d", appointmentID), nil)
		}
	}
	return nil
}

func (f *FrontDesk) indexCheckIn(c *model.CheckIn) {
	f.state.ApptIndex[c.AppointmentID] = c.ID
	f.state.PatientIndex[c.PatientID] = append(f.state.PatientIndex[c.PatientID], c.ID)
}

// syncAppointmentStatus flips the linked appointment's status. Failure is
// logged and surfaced as a warning, never as an operation error.
func (f *FrontDesk) syncAppointmentStatus(appointmentID int64, status string) *SyncWarning {
	if _, err := f.UpdateAppointmentStatus(appointmentID, status); err != nil {
		logrus.Warnf("failed to update appointment %d status to %q: %v", appointmentID, status, err)
		return &SyncWarning{AppointmentID: appointmentID, Status: status, Reason: err.Error()}
	}
	return nil
}

// CheckInScheduled checks in a patient for an existing appointment. The
// appointment must be in Scheduled status and must not already have an
// active check-in.
func (f *FrontDesk) CheckInScheduled(appointmentID int64, desk, notes string) (*CheckInResult, error) {
	if appointmentID <= 0 {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "appointment id must be positive", nil)
	}
	appt := f.store.Appointment(appointmentID)
	if appt == nil {
		return nil, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("appointment %d does not exist", appointmentID), nil)
	}
	if appt.Status != model.AppointmentScheduled {
		return nil, apierror.NewAPIError(apierror.ErrConflict,
			fmt.Sprintf("cannot check in: appointment status must be %q, found %q", model.AppointmentScheduled, appt.Status), nil)
	}
	if err := f.ensureSingleActiveCheckIn(appointmentID); err != nil {
		return nil, err
	}

	c, err := model.NewCheckIn(f.nextCheckInID(), appointmentID, appt.PatientID,
		model.CheckInStatusCheckedIn, desk, notes, false, 0)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
	}
	f.state.CheckIns[c.ID] = c
	f.indexCheckIn(c)
	warning := f.syncAppointmentStatus(appointmentID, model.AppointmentCheckedIn)
	f.state.ScheduledQueue = f.orderedInsert(f.state.ScheduledQueue, c, f.scheduledLess)
	if err := f.saveState(); err != nil {
		return nil, err
	}
	return &CheckInResult{CheckIn: c, SyncWarning: warning}, nil
}

// CheckInWalkIn creates a fresh appointment for a walk-in patient and checks
// them in with the given priority. The appointment id is recorded so
// reporting can tell ad hoc appointments from pre-scheduled ones.
func (f *FrontDesk) CheckInWalkIn(patientID, doctorID int64, date, tm, duration string, priority int, desk, reason, notes string) (*CheckInResult, error) {
	if patientID <= 0 {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "patient id must be positive", nil)
	}
	if doctorID <= 0 {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "doctor id must be positive", nil)
	}
	if !f.store.HasPatient(patientID) {
		return nil, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("patient %d does not exist", patientID), nil)
	}
	if !f.store.HasDoctor(doctorID) {
		return nil, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("doctor %d does not exist", doctorID), nil)
	}
	if priority < 0 {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "priority must be >= 0", nil)
	}

	appt, err := f.CreateAppointment(patientID, doctorID, date, tm, duration,
		model.AppointmentScheduled, "", "", reason, notes)
	if err != nil {
		return nil, err
	}
	if err := f.ensureSingleActiveCheckIn(appt.ID); err != nil {
		return nil, err
	}

	c, err := model.NewCheckIn(f.nextCheckInID(), appt.ID, patientID,
		model.CheckInStatusCheckedIn, desk, notes, true, priority)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
	}
	f.state.CheckIns[c.ID] = c
	f.state.WalkInAppointmentIDs[appt.ID] = true
	f.indexCheckIn(c)
	warning := f.syncAppointmentStatus(appt.ID, model.AppointmentCheckedIn)
	f.state.WalkInQueue = f.orderedInsert(f.state.WalkInQueue, c, walkInLess)
	if err := f.saveState(); err != nil {
		return nil, err
	}
	return &CheckInResult{CheckIn: c, SyncWarning: warning}, nil
}

// CallNextWalkIn pops the next waiting walk-in, completes and archives it.
// Returns (nil, nil) when no waiting walk-in remains.
func (f *FrontDesk) CallNextWalkIn() (*CheckInResult, error) {
	for len(f.state.WalkInQueue) > 0 {
		id := f.state.WalkInQueue[0]
		f.state.WalkInQueue = f.state.WalkInQueue[1:]
		c := f.state.CheckIns[id]
		if c == nil || !c.WalkIn || c.Status != model.CheckInStatusCheckedIn {
			continue
		}
		warning, err := f.completeAndArchive(c)
		if err != nil {
			return nil, err
		}
		return &CheckInResult{CheckIn: c, SyncWarning: warning}, nil
	}
	return nil, nil
}

// CallNextScheduled pops the next waiting scheduled check-in, completes and
// archives it. Returns (nil, nil) when no waiting entry remains.
func (f *FrontDesk) CallNextScheduled() (*CheckInResult, error) {
	for len(f.state.ScheduledQueue) > 0 {
		id := f.state.ScheduledQueue[0]
		f.state.ScheduledQueue = f.state.ScheduledQueue[1:]
		c := f.state.CheckIns[id]
		if c == nil || c.WalkIn || c.Status != model.CheckInStatusCheckedIn {
			continue
		}
		warning, err := f.completeAndArchive(c)
		if err != nil {
			return nil, err
		}
		return &CheckInResult{CheckIn: c, SyncWarning: warning}, nil
	}
	return nil, nil
}

// MarkCompleted completes a check-in, flips its appointment and archives the
// record. Completing an already completed check-in is a no-op.
func (f *FrontDesk) MarkCompleted(checkInID int64) (*CheckInResult, error) {
	c, err := f.requireCheckIn(checkInID)
	if err != nil {
		return nil, err
	}
	if c.IsTerminal() {
		return &CheckInResult{CheckIn: c}, nil
	}
	warning, err := f.completeAndArchive(c)
	if err != nil {
		return nil, err
	}
	return &CheckInResult{CheckIn: c, SyncWarning: warning}, nil
}

// MarkCalled records that the patient was called to see the doctor. There is
// no intermediate called state; calling completes the check-in.
func (f *FrontDesk) MarkCalled(checkInID int64) (*CheckInResult, error) {
	return f.MarkCompleted(checkInID)
}

// UpdateWalkInPriority changes a waiting walk-in's priority and re-inserts
// it into the queue by the ordering rule.
func (f *FrontDesk) UpdateWalkInPriority(checkInID int64, newPriority int) (*model.CheckIn, error) {
	c, err := f.requireCheckIn(checkInID)
	if err != nil {
		return nil, err
	}
	if !c.WalkIn {
		return nil, apierror.NewAPIError(apierror.ErrConflict, "not a walk-in check-in", nil)
	}
	if c.Status != model.CheckInStatusCheckedIn {
		return nil, apierror.NewAPIError(apierror.ErrConflict,
			fmt.Sprintf("priority can only be changed while status is %s", model.CheckInStatusCheckedIn), nil)
	}
	if newPriority < 0 {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "priority must be >= 0", nil)
	}
	f.removeFromQueues(checkInID)
	if err := c.SetPriorityAndTouch(newPriority); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
	}
	f.state.WalkInQueue = f.orderedInsert(f.state.WalkInQueue, c, walkInLess)
	if err := f.saveState(); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCheckInDesk sets the desk field of a check-in.
func (f *FrontDesk) UpdateCheckInDesk(checkInID int64, desk string) (*model.CheckIn, error) {
	c, err := f.requireCheckIn(checkInID)
	if err != nil {
		return nil, err
	}
	c.SetDesk(desk)
	c.Touch()
	if err := f.saveState(); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCheckInNotes sets the notes field of a check-in.
func (f *FrontDesk) UpdateCheckInNotes(checkInID int64, notes string) (*model.CheckIn, error) {
	c, err := f.requireCheckIn(checkInID)
	if err != nil {
		return nil, err
	}
	c.SetNotes(notes)
	c.Touch()
	if err := f.saveState(); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCheckIn removes a check-in from the live state, both queues, both
// indexes and the walk-in appointment set. No history record is written.
// Returns false when the id was not present.
func (f *FrontDesk) DeleteCheckIn(id int64) (bool, error) {
	c, ok := f.state.CheckIns[id]
	if !ok {
		return false, nil
	}
	delete(f.state.CheckIns, id)
	f.removeFromQueues(id)
	if mapped, ok := f.state.ApptIndex[c.AppointmentID]; ok && mapped == id {
		delete(f.state.ApptIndex, c.AppointmentID)
	}
	ids := f.state.PatientIndex[c.PatientID]
	for i, cid := range ids {
		if cid == id {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(f.state.PatientIndex, c.PatientID)
	} else {
		f.state.PatientIndex[c.PatientID] = ids
	}
	if c.WalkIn {
		delete(f.state.WalkInAppointmentIDs, c.AppointmentID)
	}
	if err := f.saveState(); err != nil {
		return false, err
	}
	return true, nil
}

// GetCheckIn returns the active check-in with the given id.
func (f *FrontDesk) GetCheckIn(id int64) (*model.CheckIn, error) {
	return f.requireCheckIn(id)
}

// FindCheckInByAppointment returns the check-in referencing the appointment,
// or nil when there is none.
func (f *FrontDesk) FindCheckInByAppointment(appointmentID int64) (*model.CheckIn, error) {
	if appointmentID <= 0 {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "appointment id must be positive", nil)
	}
	cid, ok := f.state.ApptIndex[appointmentID]
	if !ok {
		return nil, nil
	}
	return f.state.CheckIns[cid], nil
}

// ListCheckInsByPatient returns all active check-ins for a patient.
func (f *FrontDesk) ListCheckInsByPatient(patientID int64) ([]*model.CheckIn, error) {
	if patientID <= 0 {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "patient id must be positive", nil)
	}
	out := []*model.CheckIn{}
	for _, id := range f.state.PatientIndex[patientID] {
		if c := f.state.CheckIns[id]; c != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

// ListWalkInsByPatient returns only the walk-in check-ins for a patient.
func (f *FrontDesk) ListWalkInsByPatient(patientID int64) ([]*model.CheckIn, error) {
	base, err := f.ListCheckInsByPatient(patientID)
	if err != nil {
		return nil, err
	}
	out := []*model.CheckIn{}
	for _, c := range base {
		if c.WalkIn {
			out = append(out, c)
		}
	}
	return out, nil
}

// ListWalkInQueue returns the walk-in queue front to back.
func (f *FrontDesk) ListWalkInQueue() []*model.CheckIn {
	return f.resolveQueue(f.state.WalkInQueue)
}

// ListScheduledQueue returns the scheduled queue front to back.
func (f *FrontDesk) ListScheduledQueue() []*model.CheckIn {
	return f.resolveQueue(f.state.ScheduledQueue)
}

func (f *FrontDesk) resolveQueue(queue []int64) []*model.CheckIn {
	out := []*model.CheckIn{}
	for _, id := range queue {
		if c := f.state.CheckIns[id]; c != nil {
			out = append(out, c)
		}
	}
	return out
}

// ListCheckIns returns every active check-in, ordered by id.
func (f *FrontDesk) ListCheckIns() []*model.CheckIn {
	out := make([]*model.CheckIn, 0, len(f.state.CheckIns))
	for _, c := range f.state.CheckIns {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListAllWalkIns returns every active walk-in check-in, ordered by id.
func (f *FrontDesk) ListAllWalkIns() []*model.CheckIn {
	out := []*model.CheckIn{}
	for _, c := range f.ListCheckIns() {
		if c.WalkIn {
			out = append(out, c)
		}
	}
	return out
}

// ListAllScheduled returns every active scheduled check-in, ordered by id.
func (f *FrontDesk) ListAllScheduled() []*model.CheckIn {
	out := []*model.CheckIn{}
	for _, c := range f.ListCheckIns() {
		if !c.WalkIn {
			out = append(out, c)
		}
	}
	return out
}

// IsWalkInAppointment reports whether the appointment was created on the
// spot by the walk-in path.
func (f *FrontDesk) IsWalkInAppointment(appointmentID int64) (bool, error) {
	if appointmentID <= 0 {
		return false, apierror.NewAPIError(apierror.ErrInvalidInput, "appointment id must be positive", nil)
	}
	return f.state.WalkInAppointmentIDs[appointmentID], nil
}

// ListCheckInHistory returns all archived check-ins, most recent first.
func (f *FrontDesk) ListCheckInHistory() []store.HistoryRecord {
	return f.history.LoadAll()
}

// ClearCheckInHistory deletes the history archive.
func (f *FrontDesk) ClearCheckInHistory() error {
	return f.history.ClearAll()
}

// completeAndArchive is the single completion path: dequeue, flip statuses,
// persist, then move the record to history.
func (f *FrontDesk) completeAndArchive(c *model.CheckIn) (*SyncWarning, error) {
	f.removeFromQueues(c.ID)
	var warning *SyncWarning
	if !c.IsTerminal() {
		if err := c.SetStatusAndTouch(model.CheckInStatusCompleted); err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
		}
		c.CompletedAt = timeutil.NowString()
		warning = f.syncAppointmentStatus(c.AppointmentID, model.AppointmentCompleted)
		if err := f.saveState(); err != nil {
			return warning, err
		}
	}
	if err := f.archiveAndDelete(c); err != nil {
		return warning, err
	}
	return warning, nil
}

// archiveAndDelete appends the check-in to history, resolving the doctor
// from the appointment when it still exists, then removes the live record.
// A failed history append is logged, not fatal.
func (f *FrontDesk) archiveAndDelete(c *model.CheckIn) error {
	var doctorID int64
	if appt := f.store.Appointment(c.AppointmentID); appt != nil {
		doctorID = appt.DoctorID
	}
	if err := f.history.Append(store.HistoryRecordFrom(c, doctorID)); err != nil {
		logrus.Errorf("failed to append check-in %d to history: %v", c.ID, err)
	}
	_, err := f.DeleteCheckIn(c.ID)
	return err
}

func (f *FrontDesk) removeFromQueues(checkInID int64) {
	f.state.WalkInQueue = removeID(f.state.WalkInQueue, checkInID)
	f.state.ScheduledQueue = removeID(f.state.ScheduledQueue, checkInID)
}

func removeID(queue []int64, id int64) []int64 {
	for i, qid := range queue {
		if qid == id {
			return append(queue[:i:i], queue[i+1:]...)
		}
	}
	return queue
}

// reindex derives both lookup indexes from the live check-in map. Patient
// entries are ordered by check-in id so rebuilds are deterministic.
func reindex(checkIns map[int64]*model.CheckIn) (map[int64]int64, map[int64][]int64) {
	apptIndex := make(map[int64]int64)
	patientIndex := make(map[int64][]int64)
	for id, c := range checkIns {
		apptIndex[c.AppointmentID] = id
		patientIndex[c.PatientID] = append(patientIndex[c.PatientID], id)
	}
	for _, ids := range patientIndex {
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}
	return apptIndex, patientIndex
}

func (f *FrontDesk) reindexCheckIns() {
	f.state.ApptIndex, f.state.PatientIndex = reindex(f.state.CheckIns)
}

// sanitizeQueues purges each queue of entries that do not belong in it,
// drops duplicates and restores the queue's ordering rule.
func (f *FrontDesk) sanitizeQueues() {
	f.state.WalkInQueue = f.sanitizeQueue(f.state.WalkInQueue, true, walkInLess)
	f.state.ScheduledQueue = f.sanitizeQueue(f.state.ScheduledQueue, false, f.scheduledLess)
}

func (f *FrontDesk) sanitizeQueue(queue []int64, walkIn bool, less func(a, b *model.CheckIn) bool) []int64 {
	seen := make(map[int64]bool)
	var kept []*model.CheckIn
	for _, id := range queue {
		c := f.state.CheckIns[id]
		if c == nil || c.WalkIn != walkIn || c.Status != model.CheckInStatusCheckedIn || seen[id] {
			continue
		}
		seen[id] = true
		kept = append(kept, c)
	}
	sort.SliceStable(kept, func(i, j int) bool { return less(kept[i], kept[j]) })
	out := make([]int64, 0, len(kept))
	for _, c := range kept {
		out = append(out, c.ID)
	}
	return out
}
