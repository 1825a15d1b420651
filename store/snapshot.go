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
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/clinichq/frontdesk/model"
)

// QueueState is the complete check-in aggregate, persisted as one atomic
// unit: every active check-in, both queues, the walk-in appointment set, the
// id counter and both lookup indexes. The indexes are persisted for
// inspection but never trusted on load; the engine rebuilds them from
// CheckIns.
type QueueState struct {
	CheckIns             map[int64]*model.CheckIn `json:"check_ins"`
	WalkInQueue          []int64                  `json:"walk_in_queue"`
	ScheduledQueue       []int64                  `json:"scheduled_queue"`
	WalkInAppointmentIDs map[int64]bool           `json:"walk_in_appointment_ids"`
	NextCheckInID        int64                    `json:"next_check_in_id"`
	ApptIndex            map[int64]int64          `json:"appt_index"`
	PatientIndex         map[int64][]int64        `json:"patient_index"`
}

// NewQueueState returns an empty state with the id counter at 1.
func NewQueueState() *QueueState {
	return &QueueState{
		CheckIns:             make(map[int64]*model.CheckIn),
		WalkInAppointmentIDs: make(map[int64]bool),
		NextCheckInID:        1,
		ApptIndex:            make(map[int64]int64),
		PatientIndex:         make(map[int64][]int64),
	}
}

// normalize repairs nil maps after JSON decoding and a zero counter from an
// older snapshot.
func (q *QueueState) normalize() {
	if q.CheckIns == nil {
		q.CheckIns = make(map[int64]*model.CheckIn)
	}
	if q.WalkInAppointmentIDs == nil {
		q.WalkInAppointmentIDs = make(map[int64]bool)
	}
	if q.ApptIndex == nil {
		q.ApptIndex = make(map[int64]int64)
	}
	if q.PatientIndex == nil {
		q.PatientIndex = make(map[int64][]int64)
	}
	if q.NextCheckInID < 1 {
		q.NextCheckInID = 1
	}
}

// SnapshotStore persists the QueueState as a single JSON file. Loads are
// best-effort: a missing or corrupt file yields a fresh state, never an
// error, so the system can always start. Saves go through a temp file and an
// atomic rename, and failures propagate — a failed save is real data loss
// risk the caller must see.
type SnapshotStore struct {
	path string
}

// NewSnapshotStore creates a snapshot store writing to the given path.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Load reads the snapshot, falling back to an empty state on any failure.
func (s *SnapshotStore) Load() *QueueState {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return NewQueueState()
	}
	state := &QueueState{}
	if err := json.Unmarshal(data, state); err != nil {
		// Corrupt or incompatible snapshot: start fresh.
		return NewQueueState()
	}
	state.normalize()
	return state
}

// Save writes the full state to a temp file beside the target, then
// atomically replaces the target. A reader never observes a partial write.
func (s *SnapshotStore) Save(state *QueueState) error {
	if state == nil {
		return errors.New("queue state cannot be nil")
	}
	if err := ensureParentDir(s.path); err != nil {
		return errors.Wrap(err, "failed to create snapshot directory")
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode queue state")
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write queue state snapshot")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "failed to replace queue state snapshot")
	}
	return nil
}
