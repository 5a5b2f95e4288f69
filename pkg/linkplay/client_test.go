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
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airtonehq/airtone/pkg/logger"
)

// newTestClient starts a fake device server and returns a client configured
// for its port plus the server's address.
func newTestClient(t *testing.T, handler http.Handler) (*Client, string) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	return NewClient(port, time.Second, logger.NewTestLogger()), u.Hostname()
}

// unusedAddr returns an address with a port nothing listens on.
func unusedAddr(t *testing.T) (host string, port int) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := listener.Addr().(*net.TCPAddr)
	require.NoError(t, listener.Close())

	return addr.IP.String(), addr.Port
}

func TestSendCommandDecodesJSON(t *testing.T) {
	client, addr := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/httpapi.asp", r.URL.Path)
		assert.Equal(t, "command="+CommandPlayerStatus, r.URL.RawQuery)

		// Firmware declares text/html even for JSON bodies.
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`{"status": "play", "vol": "42", "mute": "0"}`))
	}))

	resp, err := client.SendCommand(context.Background(), addr, CommandPlayerStatus)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "play", resp["status"])
}

func TestSendCommandWrapsPlaintext(t *testing.T) {
	client, addr := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("OK"))
	}))

	resp, err := client.SendCommand(context.Background(), addr, CommandStop)
	require.NoError(t, err)
	require.NotNil(t, resp)

	raw, ok := resp.Raw()
	require.True(t, ok)
	assert.Equal(t, "OK", raw)
}

func TestSendCommandNonOKStatusIsNoResponse(t *testing.T) {
	client, addr := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	resp, err := client.SendCommand(context.Background(), addr, CommandStatusEx)
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestSendCommandConnectionRefusedIsNoResponse(t *testing.T) {
	host, port := unusedAddr(t)

	client := NewClient(port, time.Second, logger.NewTestLogger())

	resp, err := client.SendCommand(context.Background(), host, CommandStatusEx)
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestSendCommandTimeoutIsNoResponse(t *testing.T) {
	client, addr := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte("{}"))
	}))

	client.httpClient.Timeout = 50 * time.Millisecond

	resp, err := client.SendCommand(context.Background(), addr, CommandStatusEx)
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestSendCommandCancelledContext(t *testing.T) {
	client, addr := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte("{}"))
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.SendCommand(ctx, addr, CommandStatusEx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCommandURLEmbedsCommandRaw(t *testing.T) {
	client := NewClient(0, 0, logger.NewTestLogger())

	got := client.CommandURL("192.168.1.10", PlayCommand("http://host/track.flac?linkplay=1"))
	assert.Equal(t,
		"http://192.168.1.10:80/httpapi.asp?command=setPlayerCmd:play:http://host/track.flac?linkplay=1",
		got)
}
