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

//go:generate mockgen -destination=mock_registry.go -package=registry github.com/airtonehq/airtone/pkg/registry PlayerRegistry

package registry

import (
	"context"

	"github.com/airtonehq/airtone/pkg/models"
)

// PlayerRegistry is the host-platform collaborator that tracks players
// across all providers. The provider reports registrations and removals to
// it but does not define its internals.
type PlayerRegistry interface {
	// RegisterOrUpdate announces a new or changed player to the platform.
	RegisterOrUpdate(ctx context.Context, record *models.DeviceRecord) error
	// Unregister removes a player; a non-permanent unregister keeps its
	// configuration for future restarts.
	Unregister(ctx context.Context, deviceID string, permanent bool) error
}
