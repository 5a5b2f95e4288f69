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

//go:generate mockgen -destination=mock_scan.go -package=scan github.com/airtonehq/airtone/pkg/scan Prober,Scanner

package scan

import (
	"context"

	"github.com/airtonehq/airtone/pkg/models"
)

// Prober performs one availability probe against a single address. A false
// return means the address does not host a recognizable device; probes never
// fail for ordinary network reasons.
type Prober interface {
	Probe(ctx context.Context, addr string) (models.DeviceIdentity, bool)
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context, addr string) (models.DeviceIdentity, bool)

func (f ProberFunc) Probe(ctx context.Context, addr string) (models.DeviceIdentity, bool) {
	return f(ctx, addr)
}

// Scanner discovers devices on one or more subnets.
type Scanner interface {
	Scan(ctx context.Context, subnet string) (map[string]models.DeviceIdentity, error)
}
