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

package poller

import (
	"context"
	"sync"
	"time"

	"github.com/airtonehq/airtone/pkg/logger"
	"github.com/airtonehq/airtone/pkg/models"
	"github.com/airtonehq/airtone/pkg/registry"
)

// Manager owns one DevicePoller goroutine per registered device and tears
// them down on unload. Starting an already-polled device is a no-op, which
// lets discovery call Start unconditionally on every cycle.
type Manager struct {
	vendor   models.Vendor
	devices  *registry.DeviceRegistry
	clock    Clock
	interval time.Duration
	logger   logger.Logger

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
	wg      sync.WaitGroup
}

func NewManager(
	vendor models.Vendor,
	devices *registry.DeviceRegistry,
	clock Clock,
	interval time.Duration,
	log logger.Logger,
) *Manager {
	if clock == nil {
		clock = realClock{}
	}

	if interval == 0 {
		interval = DefaultInterval
	}

	return &Manager{
		vendor:   vendor,
		devices:  devices,
		clock:    clock,
		interval: interval,
		logger:   log,
		cancels:  make(map[string]context.CancelFunc),
	}
}

// Start launches a poller for deviceID unless one is already running.
func (m *Manager) Start(ctx context.Context, deviceID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, running := m.cancels[deviceID]; running {
		return
	}

	pollCtx, cancel := context.WithCancel(ctx)
	m.cancels[deviceID] = cancel

	poller := NewDevicePoller(deviceID, m.vendor, m.devices, m.clock, m.interval, m.logger)

	m.wg.Add(1)

	go func() {
		defer m.wg.Done()
		poller.Run(pollCtx)
	}()
}

// Stop cancels the poller for deviceID, if any.
func (m *Manager) Stop(deviceID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cancel, ok := m.cancels[deviceID]; ok {
		cancel()
		delete(m.cancels, deviceID)
	}
}

// StopAll cancels every poller and waits for the goroutines to exit.
func (m *Manager) StopAll() {
	m.mu.Lock()

	for id, cancel := range m.cancels {
		cancel()
		delete(m.cancels, id)
	}

	m.mu.Unlock()

	m.wg.Wait()
}

// Running reports whether a poller is active for deviceID.
func (m *Manager) Running(deviceID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, running := m.cancels[deviceID]

	return running
}
