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
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/airtonehq/airtone/pkg/models"
)

// deviceIDPrefix namespaces LinkPlay identity keys within the platform-wide
// player registry.
const deviceIDPrefix = "linkplay_"

// addressNamespace seeds deterministic fallback UUIDs for devices whose
// firmware omits the uuid field, so the same address maps to the same
// identity across discovery cycles.
var addressNamespace = uuid.MustParse("f2f8744e-6f74-4b57-a882-0b7071ab7c50")

// vendor status fields of interest
const (
	fieldUUID       = "uuid"
	fieldDeviceName = "DeviceName"
	fieldHardware   = "hardware"
	fieldFirmware   = "firmware"
	fieldStatus     = "status"
	fieldVolume     = "vol"
	fieldMute       = "mute"
)

// DescribeIdentity derives a stable identity from a getStatusEx payload.
// The identity key comes from the vendor UUID when present, otherwise from
// a deterministic UUID of the address.
func (c *Client) DescribeIdentity(resp models.CommandResponse, addr string) models.DeviceIdentity {
	id := stringField(resp, fieldUUID)
	if id == "" {
		id = uuid.NewSHA1(addressNamespace, []byte(addr)).String()
	} else if parsed, err := uuid.Parse(id); err == nil {
		// Firmware reports UUIDs in several shapes (dashed, bare hex);
		// normalize the parseable ones.
		id = parsed.String()
	}

	name := stringField(resp, fieldDeviceName)
	if name == "" {
		name = fmt.Sprintf("LinkPlay %s", addr)
	}

	model := stringField(resp, fieldHardware)
	if model == "" {
		model = "Unknown"
	}

	firmware := stringField(resp, fieldFirmware)
	if firmware == "" {
		firmware = "Unknown"
	}

	return models.DeviceIdentity{
		DeviceID: deviceIDPrefix + id,
		UUID:     id,
		Name:     name,
		Model:    model,
		Firmware: firmware,
	}
}

// ParseStatus maps the getPlayerStatus "status" field onto a playback
// state. Anything other than play/pause reads as idle; the poller decides
// whether a grace window suppresses that transition.
func (c *Client) ParseStatus(resp models.CommandResponse) models.PlaybackState {
	switch stringField(resp, fieldStatus) {
	case "play":
		return models.PlaybackPlaying
	case "pause":
		return models.PlaybackPaused
	default:
		return models.PlaybackIdle
	}
}

// ParseVolume extracts the volume level with best-effort numeric coercion.
// Non-numeric values report ok=false so callers retain the previous level.
func ParseVolume(resp models.CommandResponse) (level int, ok bool) {
	raw, present := resp[fieldVolume]
	if !present {
		return 0, false
	}

	switch v := raw.(type) {
	case float64:
		return int(v), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}

		return parsed, true
	default:
		return 0, false
	}
}

// ParseMute coerces the numeric/string mute flag to a boolean. Missing or
// unrecognized values read as unmuted.
func ParseMute(resp models.CommandResponse) bool {
	raw, present := resp[fieldMute]
	if !present {
		return false
	}

	switch v := raw.(type) {
	case float64:
		return v != 0
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return false
		}

		return parsed != 0
	case bool:
		return v
	default:
		return false
	}
}

func stringField(resp models.CommandResponse, key string) string {
	raw, ok := resp[key]
	if !ok {
		return ""
	}

	s, ok := raw.(string)
	if !ok {
		return ""
	}

	return strings.TrimSpace(s)
}
