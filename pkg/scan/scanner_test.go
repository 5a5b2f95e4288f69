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

package scan

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airtonehq/airtone/pkg/logger"
	"github.com/airtonehq/airtone/pkg/models"
)

// concurrencyTracker records the peak number of simultaneous probe calls.
type concurrencyTracker struct {
	current atomic.Int64
	peak    atomic.Int64
}

func (c *concurrencyTracker) enter() {
	n := c.current.Add(1)

	for {
		peak := c.peak.Load()
		if n <= peak || c.peak.CompareAndSwap(peak, n) {
			return
		}
	}
}

func (c *concurrencyTracker) exit() {
	c.current.Add(-1)
}

func TestBatchScannerFindsDevices(t *testing.T) {
	answering := map[string]models.DeviceIdentity{
		"192.168.1.10": {DeviceID: "linkplay_a", UUID: "a", Name: "Kitchen"},
		"192.168.1.20": {DeviceID: "linkplay_b", UUID: "b", Name: "Bedroom"},
	}

	prober := ProberFunc(func(_ context.Context, addr string) (models.DeviceIdentity, bool) {
		identity, ok := answering[addr]
		return identity, ok
	})

	scanner := NewBatchScanner(prober, logger.NewTestLogger())

	discovered, err := scanner.Scan(context.Background(), "192.168.1.0/24")
	require.NoError(t, err)

	require.Len(t, discovered, 2)
	assert.Equal(t, "Kitchen", discovered["192.168.1.10"].Name)
	assert.Equal(t, "Bedroom", discovered["192.168.1.20"].Name)
}

func TestBatchScannerBoundsConcurrency(t *testing.T) {
	tracker := &concurrencyTracker{}

	prober := ProberFunc(func(_ context.Context, _ string) (models.DeviceIdentity, bool) {
		tracker.enter()
		defer tracker.exit()

		time.Sleep(time.Millisecond)

		return models.DeviceIdentity{}, false
	})

	scanner := NewBatchScanner(prober, logger.NewTestLogger())

	_, err := scanner.Scan(context.Background(), "10.0.0.0/24")
	require.NoError(t, err)

	assert.LessOrEqual(t, tracker.peak.Load(), int64(defaultBatchSize))
}

func TestBatchScannerBatchesAreSequential(t *testing.T) {
	var mu sync.Mutex

	inFlight := 0
	batchOverlap := false

	prober := ProberFunc(func(_ context.Context, _ string) (models.DeviceIdentity, bool) {
		mu.Lock()
		inFlight++
		if inFlight > defaultBatchSize {
			batchOverlap = true
		}
		mu.Unlock()

		time.Sleep(time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()

		return models.DeviceIdentity{}, false
	})

	scanner := NewBatchScanner(prober, logger.NewTestLogger())

	_, err := scanner.Scan(context.Background(), "10.1.0.0/24")
	require.NoError(t, err)
	assert.False(t, batchOverlap, "probes from different batches ran concurrently")
}

func TestBatchScannerInvalidSubnetYieldsEmptyResult(t *testing.T) {
	var probed atomic.Bool

	prober := ProberFunc(func(_ context.Context, _ string) (models.DeviceIdentity, bool) {
		probed.Store(true)
		return models.DeviceIdentity{}, false
	})

	scanner := NewBatchScanner(prober, logger.NewTestLogger())

	discovered, err := scanner.Scan(context.Background(), "not-a-subnet")
	require.NoError(t, err)
	assert.Empty(t, discovered)
	assert.False(t, probed.Load(), "prober must not be called for an invalid subnet")
}

func TestBatchScannerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	prober := ProberFunc(func(_ context.Context, _ string) (models.DeviceIdentity, bool) {
		return models.DeviceIdentity{}, false
	})

	scanner := NewBatchScanner(prober, logger.NewTestLogger())

	_, err := scanner.Scan(ctx, "192.168.1.0/24")
	require.ErrorIs(t, err, context.Canceled)
}

func TestBatchScannerHostCap(t *testing.T) {
	var probed atomic.Int64

	prober := ProberFunc(func(_ context.Context, _ string) (models.DeviceIdentity, bool) {
		probed.Add(1)
		return models.DeviceIdentity{}, false
	})

	scanner := NewBatchScanner(prober, logger.NewTestLogger())

	_, err := scanner.Scan(context.Background(), "10.0.0.0/16")
	require.NoError(t, err)
	assert.Equal(t, int64(defaultMaxHosts), probed.Load())
}
