/*
 *  Copyright (c) 2025 TDR Ledger API contributors.
 *
 *  SPDX-License-Identifier: Apache-2.0
 */

package main

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vivekNinjatech/Fabric-2.5-MVP/config"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/server"
)

func main() {
	cfg := config.GetConfig()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logger.Sync()

	srv, err := server.StartTDRAPIServer(cfg, logger.Sugar())
	if err != nil {
		log.Fatal("Failed to create server:", err)
	}

	if err := srv.Start(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zcfg.Build()
}
