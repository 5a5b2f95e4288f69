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

package linkplay

import (
	"context"
	"strings"
	"time"

	"github.com/airtonehq/airtone/pkg/logger"
	"github.com/airtonehq/airtone/pkg/models"
	"github.com/airtonehq/airtone/pkg/registry"
)

const (
	// commandSettleDelay lets the firmware finish one command before the
	// next; issuing play immediately after stop truncates the stop.
	commandSettleDelay = 500 * time.Millisecond
	// groupSettleDelay is how long the firmware needs to form a
	// multiroom group before it accepts playback commands.
	groupSettleDelay = 2 * time.Second
)

// Player drives playback on one registered LinkPlay device. It resolves the
// device's current address from the registry on every command, so address
// changes from re-discovery take effect immediately.
type Player struct {
	deviceID string
	client   *Client
	devices  *registry.DeviceRegistry
	logger   logger.Logger
}

func NewPlayer(deviceID string, client *Client, devices *registry.DeviceRegistry, log logger.Logger) *Player {
	return &Player{
		deviceID: deviceID,
		client:   client,
		devices:  devices,
		logger:   log,
	}
}

func (p *Player) DeviceID() string {
	return p.deviceID
}

// Play resumes playback.
func (p *Player) Play(ctx context.Context) error {
	if err := p.send(ctx, CommandResume); err != nil {
		return err
	}

	p.devices.Update(p.deviceID, func(record *models.DeviceRecord) {
		record.Playback = models.PlaybackPlaying
	})

	return nil
}

// Pause pauses playback.
func (p *Player) Pause(ctx context.Context) error {
	if err := p.send(ctx, CommandPause); err != nil {
		return err
	}

	p.devices.Update(p.deviceID, func(record *models.DeviceRecord) {
		record.Playback = models.PlaybackPaused
	})

	return nil
}

// Stop halts playback and clears the current media reference.
func (p *Player) Stop(ctx context.Context) error {
	if err := p.send(ctx, CommandStop); err != nil {
		return err
	}

	p.devices.Update(p.deviceID, func(record *models.DeviceRecord) {
		record.Playback = models.PlaybackIdle
		record.MediaURI = ""
	})

	return nil
}

// SetVolume sets the output level (0-100).
func (p *Player) SetVolume(ctx context.Context, level int) error {
	if level < 0 || level > 100 {
		return ErrVolumeOutOfRange
	}

	if err := p.send(ctx, VolumeCommand(level)); err != nil {
		return err
	}

	p.devices.Update(p.deviceID, func(record *models.DeviceRecord) {
		record.Volume = level
	})

	return nil
}

// SetMute toggles output muting.
func (p *Player) SetMute(ctx context.Context, muted bool) error {
	if err := p.send(ctx, MuteCommand(muted)); err != nil {
		return err
	}

	p.devices.Update(p.deviceID, func(record *models.DeviceRecord) {
		record.Muted = muted
	})

	return nil
}

// PlayMedia starts playback of a stream URI. The firmware needs a defensive
// sequence: stop whatever is playing, settle, switch to wifi streaming
// mode, settle, then play. URIs without a query string get a dummy query
// appended because the firmware treats the dot of a trailing file extension
// as a command delimiter.
func (p *Player) PlayMedia(ctx context.Context, uri string) error {
	addr, err := p.address()
	if err != nil {
		return err
	}

	p.logger.Info().Str("device_id", p.deviceID).Str("uri", uri).Msg("Starting media playback")

	if _, err := p.client.SendCommand(ctx, addr, CommandStop); err != nil {
		return err
	}

	if err := sleepCtx(ctx, commandSettleDelay); err != nil {
		return err
	}

	if _, err := p.client.SendCommand(ctx, addr, CommandSwitchModeWifi); err != nil {
		return err
	}

	if err := sleepCtx(ctx, commandSettleDelay); err != nil {
		return err
	}

	playURI := uri
	if !strings.Contains(playURI, "?") {
		playURI += "?linkplay=1"
	}

	resp, err := p.client.SendCommand(ctx, addr, PlayCommand(playURI))
	if err != nil {
		return err
	}

	if resp == nil {
		p.logger.Warn().Str("device_id", p.deviceID).Msg("Play command got no response")
		return ErrCommandUnanswered
	}

	now := time.Now()

	p.devices.Update(p.deviceID, func(record *models.DeviceRecord) {
		record.Playback = models.PlaybackPlaying
		record.MediaURI = uri
		record.LastPlayStart = now
	})

	return nil
}

// JoinGroup adds a slave device to this player's multiroom group. The join
// command is sent to the slave, naming this player as master.
func (p *Player) JoinGroup(ctx context.Context, slaveID string) error {
	master, ok := p.devices.Get(p.deviceID)
	if !ok {
		return ErrDeviceNotRegistered
	}

	for _, id := range master.GroupMemberIDs {
		if id == slaveID {
			return nil
		}
	}

	slave, ok := p.devices.Get(slaveID)
	if !ok {
		return ErrDeviceNotRegistered
	}

	p.logger.Info().
		Str("master", p.deviceID).
		Str("slave", slaveID).
		Msg("Joining device to multiroom group")

	resp, err := p.client.SendCommand(ctx, slave.Address, JoinGroupCommand(master.Address, slave.Address))
	if err != nil {
		return err
	}

	if resp == nil {
		return ErrCommandUnanswered
	}

	p.devices.Update(p.deviceID, func(record *models.DeviceRecord) {
		record.GroupMemberIDs = append(record.GroupMemberIDs, slaveID)
	})

	return sleepCtx(ctx, groupSettleDelay)
}

// KickoutGroup removes a slave from this player's multiroom group. The
// kickout command is sent to the master.
func (p *Player) KickoutGroup(ctx context.Context, slaveID string) error {
	addr, err := p.address()
	if err != nil {
		return err
	}

	slave, ok := p.devices.Get(slaveID)
	if !ok {
		return ErrDeviceNotRegistered
	}

	p.logger.Info().
		Str("master", p.deviceID).
		Str("slave", slaveID).
		Msg("Kicking device from multiroom group")

	resp, err := p.client.SendCommand(ctx, addr, KickoutCommand(slave.Address))
	if err != nil {
		return err
	}

	if resp == nil {
		return ErrCommandUnanswered
	}

	removed := false

	p.devices.Update(p.deviceID, func(record *models.DeviceRecord) {
		for i, id := range record.GroupMemberIDs {
			if id == slaveID {
				record.GroupMemberIDs = append(record.GroupMemberIDs[:i], record.GroupMemberIDs[i+1:]...)
				removed = true

				return
			}
		}
	})

	if !removed {
		return nil
	}

	return sleepCtx(ctx, groupSettleDelay)
}

// send dispatches a command to the device's current address and requires an
// answer.
func (p *Player) send(ctx context.Context, command string) error {
	addr, err := p.address()
	if err != nil {
		return err
	}

	resp, err := p.client.SendCommand(ctx, addr, command)
	if err != nil {
		return err
	}

	if resp == nil {
		return ErrCommandUnanswered
	}

	return nil
}

func (p *Player) address() (string, error) {
	record, ok := p.devices.Get(p.deviceID)
	if !ok {
		return "", ErrDeviceNotRegistered
	}

	return record.Address, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
