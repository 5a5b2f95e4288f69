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

// Package linkplay implements the vendor integration for LinkPlay-family
// audio devices (WiiM, Arylic, Audio Pro and other LinkPlay firmware).
package linkplay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/airtonehq/airtone/pkg/logger"
	"github.com/airtonehq/airtone/pkg/models"
)

// Client speaks the LinkPlay plaintext-over-HTTP command API. A single
// client is shared by the prober, the pollers and the players; it holds no
// per-device state.
type Client struct {
	httpClient *http.Client
	port       int
	logger     logger.Logger
}

var _ models.Vendor = (*Client)(nil)

// NewClient creates a client with the given command timeout and device
// port. Zero values select the firmware defaults.
func NewClient(port int, timeout time.Duration, log logger.Logger) *Client {
	if port == 0 {
		port = DefaultPort
	}

	if timeout == 0 {
		timeout = DefaultTimeout * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		port:       port,
		logger:     log,
	}
}

// CommandURL builds the request URL for a command. The command string is
// embedded unescaped: LinkPlay firmware parses the query literally and
// rejects percent-encoded colons and slashes.
func (c *Client) CommandURL(addr, command string) string {
	return fmt.Sprintf("http://%s/httpapi.asp?command=%s",
		net.JoinHostPort(addr, strconv.Itoa(c.port)), command)
}

// SendCommand sends one command to the device at addr and decodes the
// reply. A device that does not answer yields (nil, nil): absence of a
// response is a liveness signal for the caller, not a command failure.
// Retry policy belongs to callers; this never retries.
func (c *Client) SendCommand(ctx context.Context, addr, command string) (models.CommandResponse, error) {
	url := c.CommandURL(addr, command)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build command request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		c.logger.Debug().Err(err).Str("addr", addr).Str("command", command).Msg("Device did not respond")

		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug().Int("status", resp.StatusCode).Str("addr", addr).Msg("Device returned non-OK status")
		return nil, nil
	}

	// The firmware declares text/html but the body is JSON for most
	// commands, so decode from the raw bytes.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Debug().Err(err).Str("addr", addr).Msg("Failed to read device response")
		return nil, nil
	}

	decoded := make(models.CommandResponse)
	if err := json.Unmarshal(body, &decoded); err != nil {
		// Some commands answer with bare text such as "OK".
		return models.CommandResponse{"response": string(body)}, nil
	}

	return decoded, nil
}
