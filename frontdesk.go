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
	"github.com/sirupsen/logrus"

	"github.com/clinichq/frontdesk/config"
	"github.com/clinichq/frontdesk/internal/apierror"
	"github.com/clinichq/frontdesk/store"
)

// FrontDesk is the main struct for the front-desk application. It owns the
// entity store, the live queue state and the persistence stores. Operations
// are single-threaded; callers that need concurrent access must serialize.
type FrontDesk struct {
	config    *config.Configuration
	store     *store.Store
	state     *store.QueueState
	snapshots *store.SnapshotStore
	history   *store.HistoryStore
}

// NewFrontDesk initializes a new instance from the current configuration.
// Entity files and the queue snapshot are loaded eagerly; queue indexes are
// rebuilt from scratch and both queues are sanitized before the instance is
// returned.
func NewFrontDesk() (*FrontDesk, error) {
	configuration, err := config.Fetch()
	if err != nil {
		return nil, err
	}

	s := store.New()
	store.LoadPatients(configuration.Files.Patients, s)
	store.LoadDoctors(configuration.Files.Doctors, s)
	store.LoadAppointments(configuration.Files.Appointments, s)

	f := &FrontDesk{
		config:    configuration,
		store:     s,
		snapshots: store.NewSnapshotStore(configuration.Files.CheckIns),
		history:   store.NewHistoryStore(configuration.Files.CheckInHistory),
	}
	f.state = f.snapshots.Load()
	f.reindexCheckIns()
	f.sanitizeQueues()
	return f, nil
}

// saveState persists the full queue state. A failed save is fatal to the
// operation that triggered it.
func (f *FrontDesk) saveState() error {
	if err := f.snapshots.Save(f.state); err != nil {
		logrus.Errorf("failed to save check-in state: %v", err)
		return apierror.NewAPIError(apierror.ErrPersistence, "failed to save check-in state", err.Error())
	}
	return nil
}

// SaveCheckInSnapshot forces a persist of the current queue state.
func (f *FrontDesk) SaveCheckInSnapshot() error {
	return f.saveState()
}

// ReloadCheckIns discards the in-memory queue state and reloads it from the
// snapshot file, rebuilding indexes and sanitizing both queues.
func (f *FrontDesk) ReloadCheckIns() {
	f.state = f.snapshots.Load()
	f.reindexCheckIns()
	f.sanitizeQueues()
}
