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

// Package discovery runs the LinkPlay provider: it finds devices on the
// network, reconciles them against the device registry, announces them to
// the host platform's player registry and keeps a status poller alive for
// each one.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/airtonehq/airtone/pkg/linkplay"
	"github.com/airtonehq/airtone/pkg/logger"
	"github.com/airtonehq/airtone/pkg/models"
	"github.com/airtonehq/airtone/pkg/poller"
	"github.com/airtonehq/airtone/pkg/registry"
	"github.com/airtonehq/airtone/pkg/scan"
)

// Provider ties together the scanner, the registries and the pollers.
type Provider struct {
	cfg     *Config
	scanner scan.Scanner
	client  *linkplay.Client
	devices *registry.DeviceRegistry
	players registry.PlayerRegistry
	pollers *poller.Manager
	logger  logger.Logger

	mu          sync.Mutex
	playerCache map[string]*linkplay.Player
	cancel      context.CancelFunc
	done        chan struct{}
}

func NewProvider(
	cfg *Config,
	scanner scan.Scanner,
	client *linkplay.Client,
	devices *registry.DeviceRegistry,
	players registry.PlayerRegistry,
	pollers *poller.Manager,
	log logger.Logger,
) *Provider {
	// Interval defaults normally come from Config.Validate; guard here
	// too so an unvalidated config cannot produce a zero-period ticker.
	if cfg.ScanInterval <= 0 {
		cfg.ScanInterval = models.Duration(DefaultScanInterval)
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = models.Duration(DefaultPollInterval)
	}

	return &Provider{
		cfg:         cfg,
		scanner:     scanner,
		client:      client,
		devices:     devices,
		players:     players,
		pollers:     pollers,
		logger:      log,
		playerCache: make(map[string]*linkplay.Player),
	}
}

// Discover runs a single discovery cycle: scan the configured subnet and
// reconcile every found device against the registry.
func (p *Provider) Discover(ctx context.Context) error {
	found, err := p.scanner.Scan(ctx, p.cfg.Subnet)
	if err != nil {
		return fmt.Errorf("subnet scan failed: %w", err)
	}

	p.logger.Info().Int("found", len(found)).Str("subnet", p.cfg.Subnet).Msg("Discovery cycle complete")

	for addr, identity := range found {
		if err := p.reconcile(ctx, addr, identity); err != nil {
			// One misbehaving device must not block the rest.
			p.logger.Error().Err(err).Str("device_id", identity.DeviceID).Msg("Failed to reconcile device")
		}
	}

	return nil
}

// reconcile folds one scan result into the registry. A known device at a
// new address is updated in place; identity, playback state and group
// membership survive the address change.
func (p *Provider) reconcile(ctx context.Context, addr string, identity models.DeviceIdentity) error {
	existing, known := p.devices.Get(identity.DeviceID)
	if !known {
		record := models.NewDeviceRecord(identity, addr, time.Now())
		p.devices.Upsert(record)

		p.logger.Info().
			Str("device_id", identity.DeviceID).
			Str("name", identity.Name).
			Str("addr", addr).
			Msg("Registering new device")

		if err := p.players.RegisterOrUpdate(ctx, record); err != nil {
			return fmt.Errorf("platform registration failed: %w", err)
		}

		p.pollers.Start(ctx, identity.DeviceID)

		return nil
	}

	if existing.Address != addr {
		p.logger.Info().
			Str("device_id", identity.DeviceID).
			Str("old_addr", existing.Address).
			Str("new_addr", addr).
			Msg("Device moved to a new address")

		p.devices.UpdateAddress(identity.DeviceID, addr)
	}

	// Name and firmware may change between cycles (renames, updates).
	p.devices.Update(identity.DeviceID, func(r *models.DeviceRecord) {
		r.Name = identity.Name
		r.Model = identity.Model
		r.Firmware = identity.Firmware
		r.LastSeen = time.Now()
	})

	// Re-announce so the platform sees the refreshed record, and make
	// sure a poller is running even if an earlier start was lost.
	record, _ := p.devices.Get(identity.DeviceID)
	if err := p.players.RegisterOrUpdate(ctx, record); err != nil {
		return fmt.Errorf("platform update failed: %w", err)
	}

	p.pollers.Start(ctx, identity.DeviceID)

	return nil
}

// Start runs an immediate discovery cycle and then keeps discovering on the
// configured interval until Stop is called. Cycle failures are logged, not
// fatal: a transient network problem must not kill the provider.
func (p *Provider) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)

	p.mu.Lock()
	p.cancel = cancel
	p.done = make(chan struct{})
	done := p.done
	p.mu.Unlock()

	if err := p.Discover(runCtx); err != nil {
		p.logger.Error().Err(err).Msg("Initial discovery failed")
	}

	go func() {
		defer close(done)

		ticker := time.NewTicker(time.Duration(p.cfg.ScanInterval))
		defer ticker.Stop()

		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				if err := p.Discover(runCtx); err != nil {
					p.logger.Error().Err(err).Msg("Discovery cycle failed")
				}
			}
		}
	}()

	return nil
}

// Stop unloads the provider: discovery and pollers halt, and every device
// is unregistered non-permanently so the platform keeps its configuration.
// Unregister failures are collected, not short-circuited; one bad device
// must not leak the others' pollers.
func (p *Provider) Stop(ctx context.Context) error {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}

	done := p.done
	p.done = nil
	p.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	p.pollers.StopAll()

	var errs []error

	for _, record := range p.devices.List() {
		if err := p.players.Unregister(ctx, record.DeviceID, false); err != nil {
			errs = append(errs, fmt.Errorf("unregister %s: %w", record.DeviceID, err))
		}
	}

	p.logger.Info().Int("devices", p.devices.Len()).Msg("Provider unloaded")

	return errors.Join(errs...)
}

// Player returns the command surface for a registered device. Instances
// are cached per device; they resolve addresses from the registry on every
// command, so a cached player survives address changes.
func (p *Provider) Player(deviceID string) (*linkplay.Player, bool) {
	if _, ok := p.devices.Get(deviceID); !ok {
		return nil, false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if player, ok := p.playerCache[deviceID]; ok {
		return player, true
	}

	player := linkplay.NewPlayer(deviceID, p.client, p.devices, p.logger)
	p.playerCache[deviceID] = player

	return player, true
}
