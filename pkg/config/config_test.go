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

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airtonehq/airtone/pkg/logger"
)

var errPortRequired = errors.New("port is required")

type testConfig struct {
	Name string `json:"name"`
	Port int    `json:"port"`
}

type validatedConfig struct {
	testConfig
}

func (c *validatedConfig) Validate() error {
	if c.Port == 0 {
		return errPortRequired
	}

	return nil
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadAndValidate(t *testing.T) {
	loader := NewConfig(logger.NewTestLogger())

	t.Run("valid file", func(t *testing.T) {
		path := writeConfigFile(t, `{"name": "linkplay", "port": 80}`)

		var cfg testConfig

		require.NoError(t, loader.LoadAndValidate(context.Background(), path, &cfg))
		assert.Equal(t, "linkplay", cfg.Name)
		assert.Equal(t, 80, cfg.Port)
	})

	t.Run("missing file", func(t *testing.T) {
		var cfg testConfig

		err := loader.LoadAndValidate(context.Background(), "/nonexistent/config.json", &cfg)
		require.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := writeConfigFile(t, `{"name": `)

		var cfg testConfig

		err := loader.LoadAndValidate(context.Background(), path, &cfg)
		require.Error(t, err)
	})

	t.Run("validator rejects", func(t *testing.T) {
		path := writeConfigFile(t, `{"name": "linkplay"}`)

		var cfg validatedConfig

		err := loader.LoadAndValidate(context.Background(), path, &cfg)
		require.ErrorIs(t, err, errPortRequired)
	})

	t.Run("validator accepts", func(t *testing.T) {
		path := writeConfigFile(t, `{"name": "linkplay", "port": 80}`)

		var cfg validatedConfig

		require.NoError(t, loader.LoadAndValidate(context.Background(), path, &cfg))
	})
}

func TestValidateConfigNonValidator(t *testing.T) {
	var cfg testConfig

	assert.NoError(t, ValidateConfig(&cfg))
}
