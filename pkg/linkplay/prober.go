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

	"github.com/airtonehq/airtone/pkg/logger"
	"github.com/airtonehq/airtone/pkg/models"
	"github.com/airtonehq/airtone/pkg/scan"
)

// Prober classifies a single address as a LinkPlay device or not. Absence
// is the normal outcome for most addresses in a subnet scan and is never
// reported as an error.
type Prober struct {
	client *Client
	logger logger.Logger
}

var _ scan.Prober = (*Prober)(nil)

func NewProber(client *Client, log logger.Logger) *Prober {
	return &Prober{client: client, logger: log}
}

// Probe issues one getStatusEx request against addr. Only an HTTP 200 with
// a parseable JSON status body counts as a device.
func (p *Prober) Probe(ctx context.Context, addr string) (models.DeviceIdentity, bool) {
	resp, err := p.client.SendCommand(ctx, addr, CommandStatusEx)
	if err != nil || resp == nil {
		return models.DeviceIdentity{}, false
	}

	// A plaintext reply is not a valid status payload.
	if _, isRaw := resp.Raw(); isRaw {
		return models.DeviceIdentity{}, false
	}

	identity := p.client.DescribeIdentity(resp, addr)

	p.logger.Debug().
		Str("addr", addr).
		Str("device_id", identity.DeviceID).
		Str("name", identity.Name).
		Msg("Found LinkPlay device")

	return identity, true
}
