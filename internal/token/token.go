/*
 *  Copyright (c) 2025 TDR Ledger API contributors.
 *
 *  SPDX-License-Identifier: Apache-2.0
 */

// Package token issues and verifies the short-lived bearer tokens that gate
// every protected endpoint. Tokens are stateless: nothing is persisted and
// there is no revocation, a token stays valid for its full window.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/constants"
)

// Claims is the signed claim set carried by a session token.
type Claims struct {
	Username string `json:"username"`
	OrgName  string `json:"orgName"`
	jwt.RegisteredClaims
}

// Config holds the signing secret and token lifetime. It is constructed at
// startup and handed to New, never read from package state, so tests can
// inject deterministic secrets.
type Config struct {
	Secret string
	Expiry time.Duration
}

// Service signs and verifies session tokens. Verification is synchronous and
// pure: it depends only on the secret and the clock.
type Service struct {
	cfg Config
	now func() time.Time
}

// New creates a Service with the wall clock.
func New(cfg Config) *Service {
	return NewWithClock(cfg, time.Now)
}

// NewWithClock creates a Service with an injected clock for tests.
func NewWithClock(cfg Config, now func() time.Time) *Service {
	if cfg.Expiry <= 0 {
		cfg.Expiry = 24 * time.Hour
	}
	return &Service{cfg: cfg, now: now}
}

// Issue signs a token for the given user and organization.
func (s *Service) Issue(username, orgName string) (string, error) {
	issued := s.now()
	claims := Claims{
		Username: username,
		OrgName:  orgName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(s.cfg.Expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
}

// Verify validates a bearer token and returns its claims. Outcomes:
// constants.ErrTokenMissing for an empty token, constants.ErrTokenExpired
// past the expiry instant, constants.ErrTokenInvalid for anything else.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, constants.ErrTokenMissing
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(s.cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, constants.ErrTokenExpired
		}
		return nil, constants.ErrTokenInvalid
	}
	if !parsed.Valid {
		return nil, constants.ErrTokenInvalid
	}
	return claims, nil
}
