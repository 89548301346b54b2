/*
 *  Copyright (c) 2025 TDR Ledger API contributors.
 *
 *  SPDX-License-Identifier: Apache-2.0
 */

// Package identity runs the credential lifecycle: bootstrapping the per-org
// admin, registering and enrolling users against the org's CA, and answering
// who holds credentials. The wallet is the source of truth for "registered";
// the CA is only contacted when the wallet has no entry.
package identity

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vivekNinjatech/Fabric-2.5-MVP/config"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/ca"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/constants"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/wallet"
)

// CAClient is the slice of the CA client the manager needs. Satisfied by
// *ca.Client; tests substitute a fake.
type CAClient interface {
	Register(ctx context.Context, req ca.RegisterRequest, registrar *wallet.Identity) (string, error)
	Enroll(ctx context.Context, enrollmentID, secret string) (*ca.Enrollment, error)
}

// CAFactory builds a CA client for one organization's profile.
type CAFactory func(p config.OrgProfile) (CAClient, error)

// Result reports the outcome of a registration. AlreadyExists distinguishes
// the idempotent no-op from a fresh registration carrying a secret.
type Result struct {
	Secret        string
	AlreadyExists bool
}

// Manager drives the credential lifecycle for all configured organizations.
type Manager struct {
	registry *config.OrgRegistry
	store    *wallet.Store
	newCA    CAFactory
	log      *zap.SugaredLogger

	mu  sync.Mutex
	cas map[string]CAClient
}

// Option adjusts manager construction.
type Option func(*Manager)

// WithCAFactory overrides how per-organization CA clients are built.
func WithCAFactory(f CAFactory) Option {
	return func(m *Manager) { m.newCA = f }
}

// NewManager creates a lifecycle manager over the organization registry and
// the credential store.
func NewManager(registry *config.OrgRegistry, store *wallet.Store, log *zap.SugaredLogger, opts ...Option) *Manager {
	m := &Manager{
		registry: registry,
		store:    store,
		newCA: func(p config.OrgProfile) (CAClient, error) {
			return ca.New(ca.Config{URL: p.CAURL, CAName: p.CAName, TLSCertPath: p.CATLSCertPath})
		},
		log: log,
		cas: make(map[string]CAClient),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// caFor returns the organization's CA client, building it on first use.
func (m *Manager) caFor(p config.OrgProfile) (CAClient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.cas[p.Name]; ok {
		return c, nil
	}
	c, err := m.newCA(p)
	if err != nil {
		return nil, errors.Wrapf(err, "building CA client for %s", p.Name)
	}
	m.cas[p.Name] = c
	return c, nil
}

// EnsureAdminEnrolled enrolls the organization's bootstrap admin if the
// wallet does not already hold it. The admin identity signs every subsequent
// registration, so this runs before any user registration.
func (m *Manager) EnsureAdminEnrolled(ctx context.Context, org string) error {
	p, err := m.registry.Lookup(org)
	if err != nil {
		return err
	}
	if m.store.Exists(p.Name, constants.AdminLabel) {
		return nil
	}

	client, err := m.caFor(p)
	if err != nil {
		return err
	}
	enrollment, err := client.Enroll(ctx, constants.AdminLabel, constants.AdminSecret)
	if err != nil {
		return errors.Wrapf(constants.ErrAdminEnrollment, "%s: %v", p.Name, err)
	}
	if err := m.store.Put(p.Name, constants.AdminLabel, wallet.Identity{
		MSPID:       p.MSPID,
		Certificate: string(enrollment.CertPEM),
		PrivateKey:  string(enrollment.KeyPEM),
	}); err != nil {
		return errors.Wrapf(constants.ErrAdminEnrollment, "%s: %v", p.Name, err)
	}
	m.log.Infow("enrolled bootstrap admin", "org", p.Name)
	return nil
}

// RegisterAndEnroll registers username with the organization's CA, enrolls
// it, and stores the resulting credentials in the wallet. A username that
// already holds wallet credentials is a successful no-op.
//
// There is no lock between the wallet check and the CA call, so two
// concurrent registrations of the same name can both pass the check; the CA
// rejects the second as a duplicate and that rejection surfaces as a
// registration error. The same error also covers a name registered at the
// CA whose enrollment never reached the wallet: its one-time secret is gone,
// so the registration cannot be replayed and pretending otherwise would
// leave login failing forever.
func (m *Manager) RegisterAndEnroll(ctx context.Context, org, username string) (Result, error) {
	p, err := m.registry.Lookup(org)
	if err != nil {
		return Result{}, err
	}
	if m.store.Exists(p.Name, username) {
		m.log.Debugw("registration no-op, identity exists", "org", p.Name, "user", username)
		return Result{AlreadyExists: true}, nil
	}

	if err := m.EnsureAdminEnrolled(ctx, org); err != nil {
		return Result{}, err
	}
	registrar, err := m.store.Get(p.Name, constants.AdminLabel)
	if err != nil {
		return Result{}, errors.Wrapf(constants.ErrRegistration, "loading registrar for %s: %v", p.Name, err)
	}

	client, err := m.caFor(p)
	if err != nil {
		return Result{}, err
	}
	secret, err := client.Register(ctx, ca.RegisterRequest{
		Name:        username,
		Affiliation: p.Affiliation,
		Type:        constants.IdentityTypeClient,
	}, registrar)
	if err != nil {
		return Result{}, errors.Wrapf(constants.ErrRegistration, "registering %s with %s CA: %v", username, p.Name, err)
	}

	enrollment, err := client.Enroll(ctx, username, secret)
	if err != nil {
		return Result{}, errors.Wrapf(constants.ErrRegistration, "enrolling %s with %s CA: %v", username, p.Name, err)
	}
	if err := m.store.Put(p.Name, username, wallet.Identity{
		MSPID:       p.MSPID,
		Certificate: string(enrollment.CertPEM),
		PrivateKey:  string(enrollment.KeyPEM),
	}); err != nil {
		return Result{}, errors.Wrapf(constants.ErrRegistration, "storing credentials for %s: %v", username, err)
	}

	m.log.Infow("registered and enrolled user", "org", p.Name, "user", username)
	return Result{Secret: secret}, nil
}

// IsRegistered reports whether username holds credentials in the
// organization's wallet.
func (m *Manager) IsRegistered(org, username string) (bool, error) {
	p, err := m.registry.Lookup(org)
	if err != nil {
		return false, err
	}
	return m.store.Exists(p.Name, username), nil
}

// ListRegistered returns the labels holding credentials in the
// organization's wallet, sorted.
func (m *Manager) ListRegistered(org string) ([]string, error) {
	p, err := m.registry.Lookup(org)
	if err != nil {
		return nil, err
	}
	labels, err := m.store.List(p.Name)
	if err != nil {
		return nil, err
	}
	sort.Strings(labels)
	return labels, nil
}
