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

package discovery

import (
	"fmt"
	"net"
	"time"

	"github.com/airtonehq/airtone/pkg/logger"
	"github.com/airtonehq/airtone/pkg/models"
)

const (
	// DefaultScanInterval is the gap between periodic discovery cycles.
	DefaultScanInterval = 60 * time.Second
	// DefaultPollInterval is the per-device status poll interval.
	DefaultPollInterval = 5 * time.Second
)

// Config holds the provider configuration.
type Config struct {
	// Subnet is the CIDR to scan. Empty means derive subnets from the
	// local interfaces.
	Subnet       string          `json:"subnet,omitempty"`
	ScanInterval models.Duration `json:"scan_interval,omitempty"`
	PollInterval models.Duration `json:"poll_interval,omitempty"`
	Logging      *logger.Config  `json:"logging,omitempty"`
}

// Validate checks the configuration and fills in defaults.
func (c *Config) Validate() error {
	if c.Subnet != "" {
		if _, _, err := net.ParseCIDR(c.Subnet); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidSubnet, c.Subnet)
		}
	}

	if c.ScanInterval == 0 {
		c.ScanInterval = models.Duration(DefaultScanInterval)
	}

	if c.PollInterval == 0 {
		c.PollInterval = models.Duration(DefaultPollInterval)
	}

	if c.ScanInterval < 0 || c.PollInterval < 0 {
		return ErrNegativeInterval
	}

	return nil
}
