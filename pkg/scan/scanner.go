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

// Package scan provides subnet expansion and bounded-concurrency device
// probing.
package scan

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/airtonehq/airtone/pkg/logger"
	"github.com/airtonehq/airtone/pkg/models"
)

const (
	// defaultBatchSize bounds peak in-flight probes for a single scan.
	defaultBatchSize = 50
	// defaultMaxHosts caps expansion of oversized subnets.
	defaultMaxHosts = 1024
)

// BatchScanner expands a subnet into candidate addresses and probes them in
// strictly sequential batches: batch N+1 does not start until every probe in
// batch N has resolved.
type BatchScanner struct {
	prober    Prober
	batchSize int
	maxHosts  int
	logger    logger.Logger
}

var _ Scanner = (*BatchScanner)(nil)

// NewBatchScanner creates a scanner with the default batch size and host cap.
func NewBatchScanner(prober Prober, log logger.Logger) *BatchScanner {
	return &BatchScanner{
		prober:    prober,
		batchSize: defaultBatchSize,
		maxHosts:  defaultMaxHosts,
		logger:    log,
	}
}

// Scan probes every host address in the given subnet. An empty subnet means
// "derive from local interfaces". The result maps address to identity for
// only the addresses that answered positively.
func (s *BatchScanner) Scan(ctx context.Context, subnet string) (map[string]models.DeviceIdentity, error) {
	subnets := []string{subnet}
	if subnet == "" || subnet == "192.168.0.0/16" {
		subnets = LocalSubnets(s.logger)
	}

	discovered := make(map[string]models.DeviceIdentity)

	for _, cidr := range subnets {
		s.logger.Debug().Str("subnet", cidr).Msg("Scanning subnet")

		hosts := s.hosts(cidr)

		if err := s.scanHosts(ctx, hosts, discovered); err != nil {
			return nil, err
		}
	}

	return discovered, nil
}

// hosts expands a CIDR, capping oversized subnets. An invalid subnet is a
// configuration error and yields an empty candidate list rather than a
// failed scan.
func (s *BatchScanner) hosts(cidr string) []string {
	ips, truncated, err := ExpandCIDRLimit(cidr, s.maxHosts)
	if err != nil {
		s.logger.Error().Err(err).Str("subnet", cidr).Msg("Invalid subnet")
		return nil
	}

	if truncated {
		s.logger.Warn().
			Str("subnet", cidr).
			Int("limit", s.maxHosts).
			Msg("Subnet too large, limiting scan to first hosts")
	}

	return ips
}

func (s *BatchScanner) scanHosts(ctx context.Context, hosts []string, discovered map[string]models.DeviceIdentity) error {
	var mu sync.Mutex

	for i := 0; i < len(hosts); i += s.batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := i + s.batchSize
		if end > len(hosts) {
			end = len(hosts)
		}

		g := new(errgroup.Group)

		for _, addr := range hosts[i:end] {
			g.Go(func() error {
				identity, found := s.prober.Probe(ctx, addr)
				if !found {
					return nil
				}

				mu.Lock()
				discovered[addr] = identity
				mu.Unlock()

				return nil
			})
		}

		// Probes report absence instead of errors, so Wait only
		// serves as the batch barrier.
		_ = g.Wait()
	}

	return nil
}
