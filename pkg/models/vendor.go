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

package models

import "context"

// CommandResponse is the decoded body of a vendor command reply. Well-formed
// replies are JSON objects; plaintext replies are wrapped by the transport
// under the "response" key.
type CommandResponse map[string]interface{}

// Raw returns the wrapped plaintext body for non-JSON replies, if any.
func (r CommandResponse) Raw() (string, bool) {
	if r == nil {
		return "", false
	}

	raw, ok := r["response"].(string)

	return raw, ok
}

// Vendor is the capability surface a vendor family integration implements.
// SendCommand returns (nil, nil) when the device does not answer: absence of
// a reply is a liveness signal for callers, not a command failure.
type Vendor interface {
	// SendCommand dispatches one vendor command to the device at addr.
	SendCommand(ctx context.Context, addr, command string) (CommandResponse, error)
	// ParseStatus maps a vendor status payload onto a playback state.
	ParseStatus(resp CommandResponse) PlaybackState
	// DescribeIdentity derives a stable identity from a vendor status
	// payload, falling back to an address-derived identity when the
	// vendor omits its UUID.
	DescribeIdentity(resp CommandResponse, addr string) DeviceIdentity
}
