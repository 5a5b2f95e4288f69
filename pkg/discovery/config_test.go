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
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airtonehq/airtone/pkg/models"
)

func TestConfigValidateDefaults(t *testing.T) {
	cfg := &Config{}

	require.NoError(t, cfg.Validate())
	assert.Equal(t, models.Duration(DefaultScanInterval), cfg.ScanInterval)
	assert.Equal(t, models.Duration(DefaultPollInterval), cfg.PollInterval)
	assert.Empty(t, cfg.Subnet)
}

func TestConfigValidateSubnet(t *testing.T) {
	cfg := &Config{Subnet: "192.168.1.0/24"}
	require.NoError(t, cfg.Validate())

	cfg = &Config{Subnet: "not-a-cidr"}
	require.ErrorIs(t, cfg.Validate(), ErrInvalidSubnet)
}

func TestConfigNumericIntervalsAreSeconds(t *testing.T) {
	// Interval knobs are second-valued; a nanosecond reading of a bare 60
	// would turn the discovery loop into a hot loop.
	var cfg Config

	require.NoError(t, json.Unmarshal([]byte(`{"scan_interval": 60, "poll_interval": 5}`), &cfg))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 60*time.Second, time.Duration(cfg.ScanInterval))
	assert.Equal(t, 5*time.Second, time.Duration(cfg.PollInterval))
}

func TestConfigValidateRejectsNegativeIntervals(t *testing.T) {
	cfg := &Config{ScanInterval: models.Duration(-time.Second)}
	require.ErrorIs(t, cfg.Validate(), ErrNegativeInterval)
}
