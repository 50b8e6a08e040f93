// go-aino
// Copyright (c) 2025 The go-aino Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-aino.
//
// go-aino is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-aino is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-aino; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

// Command ainod serves an Aino EDC terminal over HTTP.
package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/edcbridge/go-aino"
	"github.com/edcbridge/go-aino/internal/api"
	cfgpkg "github.com/edcbridge/go-aino/internal/config"
	"github.com/edcbridge/go-aino/internal/httpserver"
	"github.com/edcbridge/go-aino/internal/logging"
	"github.com/edcbridge/go-aino/internal/metrics"
	redisstore "github.com/edcbridge/go-aino/internal/storage/redis"
	"github.com/edcbridge/go-aino/transport/uart"
)

func main() {
	// 1) config
	cfg, err := cfgpkg.Load("")
	if err != nil {
		panic(err)
	}

	// 2) logging
	logger, err := logging.InitLogger(cfg.Logging)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)
	log := zap.L()

	// 3) metrics
	reg := metrics.NewRegistry()
	termMetrics := metrics.NewTerminalMetrics(reg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 4) bank table and result store
	banks := aino.DefaultBankTable()
	if cfg.Terminal.BankTable != "" {
		if banks, err = aino.LoadBankTable(cfg.Terminal.BankTable); err != nil {
			log.Fatal("load bank table", zap.String("path", cfg.Terminal.BankTable), zap.Error(err))
		}
	}

	var store aino.ResultStore = aino.NewMemoryStore()
	if cfg.Redis.Enabled {
		client, err := redisstore.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("redis connect", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		defer func() { _ = client.Close() }()
		store = redisstore.NewLastResultStore(client, cfg.Redis.KeyPrefix, cfg.Redis.TTL)
		log.Info("last debit stored in redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 5) serial session and terminal
	session, err := newSession(cfg.Terminal, logger, termMetrics)
	if err != nil {
		log.Fatal("session setup", zap.Error(err))
	}
	if cfg.Terminal.ConnectOnStart {
		if _, err := session.Open(ctx); err != nil {
			log.Warn("terminal not connected at start", zap.String("port", cfg.Terminal.Port), zap.Error(err))
		}
	}

	terminal, err := aino.NewTerminal(session,
		aino.WithPOSID(cfg.Terminal.PosID),
		aino.WithBankTable(banks),
		aino.WithResultStore(store),
		aino.WithTerminalLogger(logger),
		aino.WithTerminalObserver(termMetrics))
	if err != nil {
		log.Fatal("terminal setup", zap.Error(err))
	}

	// 6) HTTP
	metricsHandler := metrics.Handler(reg)
	if !cfg.Metrics.Enable {
		metricsHandler = nil
	}
	httpSrv := httpserver.New(cfg.HTTP, cfg.Metrics.Path, metricsHandler,
		func() bool { return session.State() != aino.StateDisconnected },
		api.RequestID(),
		api.CORS(cfg.HTTP.CORS.AllowOrigins),
		api.AccessLog(logger),
		api.RequestCounter(termMetrics.ObserveRequest))

	limit := api.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	if !cfg.RateLimit.Enabled {
		limit = nil
	}
	api.RegisterRoutes(httpSrv.Engine(), api.NewHandler(terminal, session, logger), limit)

	go func() {
		log.Info("http listening", zap.String("addr", cfg.HTTP.Addr))
		if err := httpSrv.Start(); err != nil {
			log.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		log.Error("http shutdown", zap.Error(err))
	}
	if _, err := session.Close(); err != nil {
		log.Warn("close serial port", zap.Error(err))
	}
}

func newSession(cfg cfgpkg.TerminalConfig, logger *zap.Logger, observer aino.Observer) (*aino.Session, error) {
	sc := aino.DefaultSessionConfig()
	sc.Port = cfg.Port
	sc.BaudRate = cfg.BaudRate
	sc.ReadTimeout = cfg.ReadTimeout
	sc.ResponseTimeout = cfg.ResponseTimeout
	sc.ReopenDelay = cfg.ReopenDelay
	sc.IgnorePaths = cfg.IgnorePaths
	if len(cfg.Blocklist) > 0 {
		sc.Blocklist = cfg.Blocklist
	}

	return aino.NewSession(uart.Factory,
		aino.WithSessionConfig(sc),
		aino.WithLogger(logger),
		aino.WithObserver(observer))
}
