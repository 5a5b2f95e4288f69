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

import "fmt"

const (
	// DefaultPort is the fixed HTTP API port on LinkPlay firmware.
	DefaultPort = 80
	// DefaultTimeout bounds each command round trip.
	DefaultTimeout = 5 // seconds

	// CommandStatusEx returns device identity and always answers when the
	// device is online, which makes it double as a liveness check.
	CommandStatusEx = "getStatusEx"
	// CommandPlayerStatus returns the current playback snapshot.
	CommandPlayerStatus = "getPlayerStatus"

	CommandResume         = "setPlayerCmd:resume"
	CommandPause          = "setPlayerCmd:pause"
	CommandStop           = "setPlayerCmd:stop"
	CommandSwitchModeWifi = "setPlayerCmd:switchmode:wifi"
)

// VolumeCommand builds the volume command for a level in [0, 100].
func VolumeCommand(level int) string {
	return fmt.Sprintf("setPlayerCmd:vol:%d", level)
}

// MuteCommand builds the mute toggle command.
func MuteCommand(muted bool) string {
	if muted {
		return "setPlayerCmd:mute:1"
	}

	return "setPlayerCmd:mute:0"
}

// PlayCommand builds the play command for a stream URI. The URI is embedded
// raw: the firmware rejects percent-encoded colons and slashes.
func PlayCommand(uri string) string {
	return fmt.Sprintf("setPlayerCmd:play:%s", uri)
}

// JoinGroupCommand builds the command a slave receives to join a master's
// multiroom group.
func JoinGroupCommand(masterAddr, slaveAddr string) string {
	return fmt.Sprintf("ConnectMasterAp:JoinGroupMaster:eth%s:wifi%s", masterAddr, slaveAddr)
}

// KickoutCommand builds the command a master sends to expel a slave from
// its multiroom group.
func KickoutCommand(slaveAddr string) string {
	return fmt.Sprintf("multiroom:SlaveKickout:%s", slaveAddr)
}
