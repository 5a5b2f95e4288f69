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

// Package poller keeps per-device runtime state fresh by polling each
// registered device on a fixed interval and publishing the resulting
// snapshot to the device registry.
package poller

import (
	"context"
	"time"

	"github.com/airtonehq/airtone/pkg/linkplay"
	"github.com/airtonehq/airtone/pkg/logger"
	"github.com/airtonehq/airtone/pkg/models"
	"github.com/airtonehq/airtone/pkg/registry"
)

const (
	// DefaultInterval is the gap between polls of a single device.
	DefaultInterval = 5 * time.Second
	// DefaultGraceWindow suppresses a Playing-to-Idle transition right
	// after a play command, while the firmware is still buffering and
	// reports "stop".
	DefaultGraceWindow = 15 * time.Second
)

// DevicePoller polls one device. Each tick it refreshes liveness via
// getStatusEx, then playback state via getPlayerStatus, and always writes
// the resulting snapshot back to the registry, even when nothing changed.
type DevicePoller struct {
	deviceID    string
	vendor      models.Vendor
	devices     *registry.DeviceRegistry
	clock       Clock
	interval    time.Duration
	graceWindow time.Duration
	logger      logger.Logger
}

// NewDevicePoller creates a poller for deviceID. Zero interval and grace
// window select the defaults.
func NewDevicePoller(
	deviceID string,
	vendor models.Vendor,
	devices *registry.DeviceRegistry,
	clock Clock,
	interval time.Duration,
	log logger.Logger,
) *DevicePoller {
	if clock == nil {
		clock = realClock{}
	}

	if interval == 0 {
		interval = DefaultInterval
	}

	return &DevicePoller{
		deviceID:    deviceID,
		vendor:      vendor,
		devices:     devices,
		clock:       clock,
		interval:    interval,
		graceWindow: DefaultGraceWindow,
		logger:      log,
	}
}

// Run polls until ctx is cancelled. The first poll happens on the first
// tick, not immediately: discovery has just probed the device, so its
// snapshot is at most one interval old.
func (p *DevicePoller) Run(ctx context.Context) {
	ticker := p.clock.Ticker(p.interval)
	defer ticker.Stop()

	p.logger.Debug().Str("device_id", p.deviceID).Dur("interval", p.interval).Msg("Starting device poller")

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug().Str("device_id", p.deviceID).Msg("Stopping device poller")
			return
		case <-ticker.Chan():
			p.pollOnce(ctx)
		}
	}
}

// pollOnce performs a single poll cycle and publishes the snapshot.
func (p *DevicePoller) pollOnce(ctx context.Context) {
	record, ok := p.devices.Get(p.deviceID)
	if !ok {
		// Unregistered since the last tick; the manager will stop us.
		return
	}

	status, err := p.vendor.SendCommand(ctx, record.Address, linkplay.CommandStatusEx)
	if err != nil {
		return
	}

	if status == nil {
		p.devices.Update(p.deviceID, func(r *models.DeviceRecord) {
			r.Available = false
		})

		return
	}

	now := p.clock.Now()

	playerStatus, err := p.vendor.SendCommand(ctx, record.Address, linkplay.CommandPlayerStatus)
	if err != nil {
		return
	}

	// A live device with no playback snapshot reads as idle; volume and
	// mute keep their last known values in that case.
	hasSnapshot := playerStatus != nil
	if hasSnapshot {
		if _, isRaw := playerStatus.Raw(); isRaw {
			hasSnapshot = false
		}
	}

	playback := models.PlaybackIdle
	if hasSnapshot {
		playback = p.vendor.ParseStatus(playerStatus)
	}

	// Right after a play command the firmware reports "stop" while it
	// buffers the stream; trust the optimistic Playing state until the
	// grace window expires.
	if playback == models.PlaybackIdle &&
		record.Playback == models.PlaybackPlaying &&
		now.Sub(record.LastPlayStart) < p.graceWindow {
		playback = models.PlaybackPlaying
	}

	volume, volumeOK := linkplay.ParseVolume(playerStatus)

	p.devices.Update(p.deviceID, func(r *models.DeviceRecord) {
		r.Available = true
		r.LastSeen = now
		r.Playback = playback

		if hasSnapshot {
			r.Muted = linkplay.ParseMute(playerStatus)
		}

		if volumeOK {
			r.Volume = volume
		}
	})
}
