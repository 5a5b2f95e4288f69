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

package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/airtonehq/airtone/pkg/logger"
)

const defaultShutdownTimeout = 30 * time.Second

// Service is a long-running component managed by Run. Start may return once
// background work is launched; Stop tears it down.
type Service interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Run starts the service and blocks until SIGINT/SIGTERM or startup failure,
// then stops it with a bounded shutdown timeout. Stop runs on every exit
// path except a failed Start, so background work is always torn down.
func Run(ctx context.Context, svc Service, log logger.Logger) error {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		errCh <- svc.Start(sigCtx)
	}()

	select {
	case <-sigCtx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("service failed: %w", err)
		}

		// Start finished launching; stay up until a shutdown signal.
		<-sigCtx.Done()
	}

	log.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultShutdownTimeout)
	defer cancel()

	if err := svc.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	if err := ShutdownLogger(); err != nil {
		log.Warn().Err(err).Msg("Failed to flush logs on shutdown")
	}

	return nil
}
