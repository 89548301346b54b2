/*
 *  Copyright (c) 2025 TDR Ledger API contributors.
 *
 *  SPDX-License-Identifier: Apache-2.0
 */

package server

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vivekNinjatech/Fabric-2.5-MVP/config"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/handler"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/identity"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/ledger"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/middleware"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/token"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/wallet"
)

type Server struct {
	router *gin.Engine
	log    *zap.SugaredLogger
}

// StartTDRAPIServer creates a server instance with all dependencies wired:
// organization registry, wallet store, CA lifecycle manager, ledger executor,
// token service, and the HTTP surface on top of them.
func StartTDRAPIServer(cfg *config.Server, log *zap.SugaredLogger) (*Server, error) {
	registry, err := config.LoadOrgRegistry(cfg.OrgProfilesPath)
	if err != nil {
		return nil, fmt.Errorf("loading organization profiles: %w", err)
	}

	walletPaths := make(map[string]string)
	for _, name := range registry.Names() {
		p, err := registry.Lookup(name)
		if err != nil {
			return nil, err
		}
		walletPaths[p.Name] = p.WalletPath
	}
	store := wallet.NewStore(wallet.FileSystemOpener(walletPaths))

	tokens := token.New(token.Config{Secret: cfg.JWT.Secret, Expiry: cfg.JWT.Expiry()})
	identities := identity.NewManager(registry, store, log)
	executor := ledger.NewExecutor(cfg.Fabric, log)

	authHandler := handler.NewAuthHandler(identities, tokens, log)
	tdrHandler := handler.NewTDRHandler(executor, log)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	auth := middleware.Auth(tokens)
	authHandler.RegisterRoutes(router, auth)
	tdrHandler.RegisterRoutes(router, auth)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	log.Infow("server wired", "organizations", registry.Names(), "channel", cfg.Fabric.ChannelName, "chaincode", cfg.Fabric.ChaincodeName)

	return &Server{router: router, log: log}, nil
}

// Start serves HTTP on the given port and blocks.
func (s *Server) Start(port string) error {
	if port == "" {
		return fmt.Errorf("port cannot be empty")
	}
	s.log.Infof("Starting server on port %s", port)
	return s.router.Run(fmt.Sprintf(":%s", port))
}

// GetRouter returns the gin router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
