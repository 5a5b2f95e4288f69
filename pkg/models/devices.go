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

// Package models defines the shared data model for device integrations.
package models

import "time"

// PlaybackState is the coarse playback state reported for a device.
type PlaybackState string

const (
	PlaybackIdle    PlaybackState = "idle"
	PlaybackPlaying PlaybackState = "playing"
	PlaybackPaused  PlaybackState = "paused"
)

// DeviceIdentity is the stable identity of a discovered device. DeviceID is
// derived from the vendor-reported UUID and never changes once established;
// name, model and firmware may be refreshed on re-discovery.
type DeviceIdentity struct {
	DeviceID string `json:"device_id"`
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	Model    string `json:"model"`
	Firmware string `json:"firmware"`
}

// DeviceRecord joins a device's identity, its current (volatile) network
// address and the latest runtime snapshot. Records are owned by the device
// registry; components read clones and request mutations through it.
type DeviceRecord struct {
	DeviceID string `json:"device_id"`
	UUID     string `json:"uuid"`
	Address  string `json:"address"`
	Name     string `json:"name"`
	Model    string `json:"model"`
	Firmware string `json:"firmware"`

	Available     bool          `json:"available"`
	Playback      PlaybackState `json:"playback"`
	Volume        int           `json:"volume"`
	Muted         bool          `json:"muted"`
	MediaURI      string        `json:"media_uri,omitempty"`
	LastPlayStart time.Time     `json:"last_play_start,omitempty"`

	// GroupMemberIDs tracks multiroom slaves when this device is a group master.
	GroupMemberIDs []string `json:"group_member_ids,omitempty"`

	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

// NewDeviceRecord builds a record for a freshly discovered device. Playback
// starts idle and the device is considered available until a poll says
// otherwise.
func NewDeviceRecord(identity DeviceIdentity, address string, now time.Time) *DeviceRecord {
	return &DeviceRecord{
		DeviceID:  identity.DeviceID,
		UUID:      identity.UUID,
		Address:   address,
		Name:      identity.Name,
		Model:     identity.Model,
		Firmware:  identity.Firmware,
		Available: true,
		Playback:  PlaybackIdle,
		Volume:    defaultVolume,
		FirstSeen: now,
		LastSeen:  now,
	}
}

const defaultVolume = 50
