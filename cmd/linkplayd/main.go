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

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/airtonehq/airtone/pkg/config"
	"github.com/airtonehq/airtone/pkg/discovery"
	"github.com/airtonehq/airtone/pkg/lifecycle"
	"github.com/airtonehq/airtone/pkg/linkplay"
	"github.com/airtonehq/airtone/pkg/logger"
	"github.com/airtonehq/airtone/pkg/poller"
	"github.com/airtonehq/airtone/pkg/registry"
	"github.com/airtonehq/airtone/pkg/scan"
)

var errFailedToLoadConfig = fmt.Errorf("failed to load config")

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/airtone/linkplayd.json", "Path to linkplayd config file")
	flag.Parse()

	ctx := context.Background()

	cfgLoader := config.NewConfig(nil)

	var cfg discovery.Config

	if err := cfgLoader.LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	logConfig := cfg.Logging
	if logConfig == nil {
		logConfig = &logger.Config{
			Level:  "info",
			Output: "stdout",
		}
	}

	mainLogger, err := lifecycle.CreateComponentLogger(ctx, "linkplayd", logConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	client := linkplay.NewClient(linkplay.DefaultPort, linkplay.DefaultTimeout*time.Second, mainLogger)
	devices := registry.NewDeviceRegistry()
	players := registry.NewLoggingPlayerRegistry(mainLogger)
	prober := linkplay.NewProber(client, mainLogger)
	scanner := scan.NewBatchScanner(prober, mainLogger)
	pollers := poller.NewManager(client, devices, nil, time.Duration(cfg.PollInterval), mainLogger)

	provider := discovery.NewProvider(&cfg, scanner, client, devices, players, pollers, mainLogger)

	return lifecycle.Run(ctx, provider, mainLogger)
}
