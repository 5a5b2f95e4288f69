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
	"fmt"
	"net"
	"strings"

	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/airtonehq/airtone/pkg/logger"
)

// fallbackSubnets are scanned when no usable local interface is found.
var fallbackSubnets = []string{"192.168.1.0/24", "192.168.0.0/24"}

// LocalSubnets derives /24 subnets from the host's non-loopback IPv4
// interfaces, falling back to common home subnets when nothing usable is
// found.
func LocalSubnets(log logger.Logger) []string {
	ifaces, err := psnet.Interfaces()
	if err != nil {
		log.Debug().Err(err).Msg("Failed to enumerate network interfaces, using fallback subnets")
		return fallbackSubnets
	}

	var subnets []string

	for _, iface := range ifaces {
		if !ifaceUsable(iface) {
			continue
		}

		for _, addr := range iface.Addrs {
			ip, _, err := net.ParseCIDR(addr.Addr)
			if err != nil || ip.To4() == nil {
				continue
			}

			_, network, err := net.ParseCIDR(fmt.Sprintf("%s/24", ip.String()))
			if err != nil {
				continue
			}

			subnets = appendUnique(subnets, network.String())
		}
	}

	if len(subnets) == 0 {
		log.Debug().Msg("No usable local interfaces found, using fallback subnets")
		return fallbackSubnets
	}

	return subnets
}

func ifaceUsable(iface psnet.InterfaceStat) bool {
	var up bool

	for _, flag := range iface.Flags {
		switch strings.ToLower(flag) {
		case "loopback":
			return false
		case "up":
			up = true
		}
	}

	return up
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}

	return append(list, value)
}
