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

package model

import (
	"fmt"
	"strings"

	"github.com/clinichq/frontdesk/internal/timeutil"
)

// Entity carries the identity and audit stamps shared by every record in the
// system. Timestamps are strings in "dd-MM-yyyy HH:mm:ss" form.
type Entity struct {
	ID        int64  `json:"id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// newEntity builds an entity with both audit stamps set to now.
func newEntity(id int64) (Entity, error) {
	if id <= 0 {
		return Entity{}, fmt.Errorf("entity ID must be positive, got %d", id)
	}
	now := timeutil.NowString()
	return Entity{ID: id, CreatedAt: now, UpdatedAt: now}, nil
}

// rehydrateEntity rebuilds an entity from storage, preserving the imported
// audit stamps. A blank updatedAt falls back to createdAt.
func rehydrateEntity(id int64, createdAt, updatedAt string) (Entity, error) {
	if id <= 0 {
		return Entity{}, fmt.Errorf("entity ID must be positive, got %d", id)
	}
	created, err := timeutil.NormalizeDateTime(createdAt)
	if err != nil {
		return Entity{}, err
	}
	updated := created
	if strings.TrimSpace(updatedAt) != "" {
		updated, err = timeutil.NormalizeDateTime(updatedAt)
		if err != nil {
			return Entity{}, err
		}
	}
	return Entity{ID: id, CreatedAt: created, UpdatedAt: updated}, nil
}

// Touch refreshes the updatedAt stamp. Every mutating setter path must end
// with a Touch.
func (e *Entity) Touch() {
	e.UpdatedAt = timeutil.NowString()
}
