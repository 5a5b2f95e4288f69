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

package registry

import (
	"context"

	"github.com/airtonehq/airtone/pkg/logger"
	"github.com/airtonehq/airtone/pkg/models"
)

// LoggingPlayerRegistry is the stand-in platform registry used when the
// provider runs as a standalone daemon rather than embedded in a host
// platform. It records registrations in the log and nothing else.
type LoggingPlayerRegistry struct {
	logger logger.Logger
}

var _ PlayerRegistry = (*LoggingPlayerRegistry)(nil)

func NewLoggingPlayerRegistry(log logger.Logger) *LoggingPlayerRegistry {
	return &LoggingPlayerRegistry{logger: log}
}

func (l *LoggingPlayerRegistry) RegisterOrUpdate(_ context.Context, record *models.DeviceRecord) error {
	l.logger.Info().
		Str("device_id", record.DeviceID).
		Str("name", record.Name).
		Str("addr", record.Address).
		Str("model", record.Model).
		Msg("Player registered")

	return nil
}

func (l *LoggingPlayerRegistry) Unregister(_ context.Context, deviceID string, permanent bool) error {
	l.logger.Info().
		Str("device_id", deviceID).
		Bool("permanent", permanent).
		Msg("Player unregistered")

	return nil
}
