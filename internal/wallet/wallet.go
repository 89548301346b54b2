/*
 *  Copyright (c) 2025 TDR Ledger API contributors.
 *
 *  SPDX-License-Identifier: Apache-2.0
 */

// Package wallet is the organization-scoped credential store: one durable
// identity collection per organization, at most one identity per label.
package wallet

import (
	"sync"

	"github.com/hyperledger/fabric-sdk-go/pkg/gateway"
	"github.com/pkg/errors"

	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/constants"
)

// Identity is a signed identity as stored in an organization's wallet.
// Certificate and PrivateKey are PEM; MSPID names the issuing organization.
type Identity struct {
	Label       string
	MSPID       string
	Certificate string
	PrivateKey  string
}

// Opener resolves an organization name to its wallet. Unknown organizations
// return constants.ErrUnknownOrganization.
type Opener func(org string) (*gateway.Wallet, error)

// FileSystemOpener opens file-system wallets at the per-organization paths.
func FileSystemOpener(paths map[string]string) Opener {
	return func(org string) (*gateway.Wallet, error) {
		path, ok := paths[org]
		if !ok {
			return nil, constants.ErrUnknownOrganization
		}
		return gateway.NewFileSystemWallet(path)
	}
}

// InMemoryOpener backs every organization with a fresh in-memory wallet.
// Used by tests; nothing survives the process.
func InMemoryOpener() Opener {
	return func(string) (*gateway.Wallet, error) {
		return gateway.NewInMemoryWallet(), nil
	}
}

// Store is the credential store. Wallets open lazily on first access and are
// cached for the life of the process; the store itself is never torn down.
type Store struct {
	open Opener

	mu      sync.Mutex
	wallets map[string]*gateway.Wallet
}

// NewStore creates a credential store over the given opener.
func NewStore(open Opener) *Store {
	return &Store{open: open, wallets: make(map[string]*gateway.Wallet)}
}

func (s *Store) wallet(org string) (*gateway.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.wallets[org]; ok {
		return w, nil
	}
	w, err := s.open(org)
	if err != nil {
		return nil, err
	}
	s.wallets[org] = w
	return w, nil
}

// Get returns the identity stored under label in the organization's wallet,
// or constants.ErrIdentityNotFound.
func (s *Store) Get(org, label string) (*Identity, error) {
	w, err := s.wallet(org)
	if err != nil {
		return nil, err
	}
	if !w.Exists(label) {
		return nil, constants.ErrIdentityNotFound
	}
	id, err := w.Get(label)
	if err != nil {
		return nil, errors.Wrapf(err, "reading identity %q from %s wallet", label, org)
	}
	x509id, ok := id.(*gateway.X509Identity)
	if !ok {
		return nil, errors.Errorf("identity %q in %s wallet has unsupported type", label, org)
	}
	return &Identity{
		Label:       label,
		MSPID:       x509id.MspID,
		Certificate: x509id.Certificate(),
		PrivateKey:  x509id.Key(),
	}, nil
}

// Put durably stores an identity under label. It does not guard against
// overwrite; callers check Exists first (see the registration flow).
func (s *Store) Put(org, label string, id Identity) error {
	w, err := s.wallet(org)
	if err != nil {
		return err
	}
	x509id := gateway.NewX509Identity(id.MSPID, id.Certificate, id.PrivateKey)
	if err := w.Put(label, x509id); err != nil {
		return errors.Wrapf(err, "storing identity %q in %s wallet", label, org)
	}
	return nil
}

// Exists reports whether an identity is stored under label.
func (s *Store) Exists(org, label string) bool {
	w, err := s.wallet(org)
	if err != nil {
		return false
	}
	return w.Exists(label)
}

// List returns the labels present in the organization's wallet.
func (s *Store) List(org string) ([]string, error) {
	w, err := s.wallet(org)
	if err != nil {
		return nil, err
	}
	labels, err := w.List()
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s wallet", org)
	}
	return labels, nil
}
