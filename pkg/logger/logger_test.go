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

package logger

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otellog "go.opentelemetry.io/otel/log"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:   "nil config uses defaults",
			config: nil,
		},
		{
			name:   "debug overrides level",
			config: &Config{Level: "error", Debug: true},
		},
		{
			name:   "stderr output",
			config: &Config{Level: "warn", Output: "stderr"},
		},
		{
			name:    "invalid level",
			config:  &Config{Level: "verbose"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(context.Background(), tt.config)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, log)
		})
	}
}

func TestNewTestLoggerDiscards(t *testing.T) {
	log := NewTestLogger()
	// Must not panic and must accept the full event chain.
	log.Info().Str("key", "value").Msg("discarded")
	log.Error().Msg("also discarded")
}

func TestMultiWriter(t *testing.T) {
	var a, b strings.Builder

	mw := NewMultiWriter(&a, &b)

	n, err := mw.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", a.String())
	assert.Equal(t, "hello", b.String())
}

func TestMapZerologLevelToOTel(t *testing.T) {
	assert.Equal(t, otellog.SeverityDebug, mapZerologLevelToOTel("debug"))
	assert.Equal(t, otellog.SeverityWarn, mapZerologLevelToOTel("warning"))
	assert.Equal(t, otellog.SeverityFatal, mapZerologLevelToOTel("panic"))
	assert.Equal(t, otellog.SeverityInfo, mapZerologLevelToOTel("unknown"))
}
