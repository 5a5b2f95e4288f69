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
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airtonehq/airtone/pkg/logger"
	"github.com/airtonehq/airtone/pkg/models"
	"github.com/airtonehq/airtone/pkg/registry"
)

// commandRecorder captures every command a fake device receives, in order.
type commandRecorder struct {
	mu       sync.Mutex
	commands []string
}

func (c *commandRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	c.commands = append(c.commands, strings.TrimPrefix(r.URL.RawQuery, "command="))
	c.mu.Unlock()

	_, _ = w.Write([]byte("OK"))
}

func (c *commandRecorder) received() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.commands...)
}

func newTestPlayer(t *testing.T, handler http.Handler) (*Player, *registry.DeviceRegistry) {
	t.Helper()

	client, addr := newTestClient(t, handler)

	devices := registry.NewDeviceRegistry()
	devices.Upsert(models.NewDeviceRecord(models.DeviceIdentity{
		DeviceID: "linkplay_test-device",
		UUID:     "test-device",
		Name:     "Test Speaker",
	}, addr, time.Now()))

	return NewPlayer("linkplay_test-device", client, devices, logger.NewTestLogger()), devices
}

func TestPlayPauseStopUpdateRegistry(t *testing.T) {
	recorder := &commandRecorder{}
	player, devices := newTestPlayer(t, recorder)

	ctx := context.Background()

	require.NoError(t, player.Play(ctx))

	record, ok := devices.Get(player.DeviceID())
	require.True(t, ok)
	assert.Equal(t, models.PlaybackPlaying, record.Playback)

	require.NoError(t, player.Pause(ctx))

	record, _ = devices.Get(player.DeviceID())
	assert.Equal(t, models.PlaybackPaused, record.Playback)

	require.NoError(t, player.Stop(ctx))

	record, _ = devices.Get(player.DeviceID())
	assert.Equal(t, models.PlaybackIdle, record.Playback)
	assert.Empty(t, record.MediaURI)

	assert.Equal(t, []string{CommandResume, CommandPause, CommandStop}, recorder.received())
}

func TestSetVolume(t *testing.T) {
	recorder := &commandRecorder{}
	player, devices := newTestPlayer(t, recorder)

	require.NoError(t, player.SetVolume(context.Background(), 75))

	record, _ := devices.Get(player.DeviceID())
	assert.Equal(t, 75, record.Volume)
	assert.Equal(t, []string{"setPlayerCmd:vol:75"}, recorder.received())
}

func TestSetVolumeRejectsOutOfRange(t *testing.T) {
	recorder := &commandRecorder{}
	player, devices := newTestPlayer(t, recorder)

	require.ErrorIs(t, player.SetVolume(context.Background(), 101), ErrVolumeOutOfRange)
	require.ErrorIs(t, player.SetVolume(context.Background(), -1), ErrVolumeOutOfRange)

	// No command reached the device and the stored level is untouched.
	assert.Empty(t, recorder.received())

	record, _ := devices.Get(player.DeviceID())
	assert.Equal(t, 50, record.Volume)
}

func TestSetMute(t *testing.T) {
	recorder := &commandRecorder{}
	player, devices := newTestPlayer(t, recorder)

	require.NoError(t, player.SetMute(context.Background(), true))

	record, _ := devices.Get(player.DeviceID())
	assert.True(t, record.Muted)
	assert.Equal(t, []string{"setPlayerCmd:mute:1"}, recorder.received())
}

func TestPlayMediaSequence(t *testing.T) {
	recorder := &commandRecorder{}
	player, devices := newTestPlayer(t, recorder)

	before := time.Now()
	require.NoError(t, player.PlayMedia(context.Background(), "http://stream.example/radio.mp3"))

	assert.Equal(t, []string{
		CommandStop,
		CommandSwitchModeWifi,
		"setPlayerCmd:play:http://stream.example/radio.mp3?linkplay=1",
	}, recorder.received())

	record, _ := devices.Get(player.DeviceID())
	assert.Equal(t, models.PlaybackPlaying, record.Playback)
	assert.Equal(t, "http://stream.example/radio.mp3", record.MediaURI)
	assert.False(t, record.LastPlayStart.Before(before))
}

func TestPlayMediaKeepsExistingQuery(t *testing.T) {
	recorder := &commandRecorder{}
	player, _ := newTestPlayer(t, recorder)

	require.NoError(t, player.PlayMedia(context.Background(), "http://stream.example/play?id=9"))

	commands := recorder.received()
	require.Len(t, commands, 3)
	assert.Equal(t, "setPlayerCmd:play:http://stream.example/play?id=9", commands[2])
}

func TestPlayerUsesCurrentRegistryAddress(t *testing.T) {
	recorder := &commandRecorder{}
	player, devices := newTestPlayer(t, recorder)

	// Point the record at a dead address, as re-discovery would after a
	// DHCP move; commands must follow the registry.
	host, _ := unusedAddr(t)
	devices.UpdateAddress(player.DeviceID(), host)

	err := player.Play(context.Background())
	require.ErrorIs(t, err, ErrCommandUnanswered)
}

func TestPlayerUnregisteredDevice(t *testing.T) {
	client := NewClient(DefaultPort, time.Second, logger.NewTestLogger())
	devices := registry.NewDeviceRegistry()
	player := NewPlayer("linkplay_missing", client, devices, logger.NewTestLogger())

	require.ErrorIs(t, player.Play(context.Background()), ErrDeviceNotRegistered)
}

func TestJoinAndKickoutGroup(t *testing.T) {
	recorder := &commandRecorder{}
	player, devices := newTestPlayer(t, recorder)

	master, _ := devices.Get(player.DeviceID())
	devices.Upsert(models.NewDeviceRecord(models.DeviceIdentity{
		DeviceID: "linkplay_slave",
		UUID:     "slave",
		Name:     "Slave Speaker",
	}, master.Address, time.Now()))

	ctx := context.Background()

	require.NoError(t, player.JoinGroup(ctx, "linkplay_slave"))

	record, _ := devices.Get(player.DeviceID())
	assert.Equal(t, []string{"linkplay_slave"}, record.GroupMemberIDs)

	commands := recorder.received()
	require.Len(t, commands, 1)
	assert.Equal(t, JoinGroupCommand(master.Address, master.Address), commands[0])

	// Joining an existing member is a no-op.
	require.NoError(t, player.JoinGroup(ctx, "linkplay_slave"))
	assert.Len(t, recorder.received(), 1)

	require.NoError(t, player.KickoutGroup(ctx, "linkplay_slave"))

	record, _ = devices.Get(player.DeviceID())
	assert.Empty(t, record.GroupMemberIDs)

	commands = recorder.received()
	require.Len(t, commands, 2)
	assert.Equal(t, KickoutCommand(master.Address), commands[1])
}

func TestKickoutUnknownSlave(t *testing.T) {
	recorder := &commandRecorder{}
	player, _ := newTestPlayer(t, recorder)

	require.ErrorIs(t, player.KickoutGroup(context.Background(), "linkplay_ghost"), ErrDeviceNotRegistered)
	assert.Empty(t, recorder.received())
}
