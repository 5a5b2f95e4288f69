/*
 * Copyright 2026 Airtone HQ
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package registry owns the device records for a provider instance. The
// store is lifecycle-scoped: it is created with the provider and torn down
// on unload, never shared process-wide.
package registry

import (
	"strings"
	"sync"

	"github.com/airtonehq/airtone/pkg/models"
)

// DeviceRegistry maps stable device IDs to device records. All reads return
// clones; all writes are applied under the registry lock so read-modify-write
// of a single record never interleaves with another writer.
type DeviceRegistry struct {
	mu      sync.RWMutex
	devices map[string]*models.DeviceRecord
}

func NewDeviceRegistry() *DeviceRegistry {
	return &DeviceRegistry{
		devices: make(map[string]*models.DeviceRecord),
	}
}

// Upsert inserts or replaces the record for a device.
func (r *DeviceRegistry) Upsert(record *models.DeviceRecord) {
	if record == nil || strings.TrimSpace(record.DeviceID) == "" {
		return
	}

	input := cloneDeviceRecord(record)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.devices[input.DeviceID] = input
}

// Get retrieves a clone of a device record by ID.
func (r *DeviceRegistry) Get(deviceID string) (*models.DeviceRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.devices[deviceID]
	if !ok {
		return nil, false
	}

	return cloneDeviceRecord(record), true
}

// List returns clones of all registered device records.
func (r *DeviceRegistry) List() []*models.DeviceRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*models.DeviceRecord, 0, len(r.devices))
	for _, record := range r.devices {
		records = append(records, cloneDeviceRecord(record))
	}

	return records
}

// Delete removes a device from the registry.
func (r *DeviceRegistry) Delete(deviceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.devices, deviceID)
}

// Update applies mutate to the stored record under the registry lock and
// reports whether the device exists. The callback must not block.
func (r *DeviceRegistry) Update(deviceID string, mutate func(*models.DeviceRecord)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.devices[deviceID]
	if !ok {
		return false
	}

	mutate(record)

	return true
}

// UpdateAddress rewrites the address of an existing record in place,
// preserving its identity key.
func (r *DeviceRegistry) UpdateAddress(deviceID, address string) bool {
	return r.Update(deviceID, func(record *models.DeviceRecord) {
		record.Address = address
	})
}

// Len reports the number of registered devices.
func (r *DeviceRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.devices)
}

func cloneDeviceRecord(record *models.DeviceRecord) *models.DeviceRecord {
	clone := *record

	if record.GroupMemberIDs != nil {
		clone.GroupMemberIDs = make([]string, len(record.GroupMemberIDs))
		copy(clone.GroupMemberIDs, record.GroupMemberIDs)
	}

	return &clone
}
