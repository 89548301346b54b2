/*
 *  Copyright (c) 2025 TDR Ledger API contributors.
 *
 *  SPDX-License-Identifier: Apache-2.0
 */

package config

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/constants"
)

// OrgProfile is the static per-organization record: which MSP the org's
// identities carry, how to reach its CA, and where its wallet lives.
// Adding an organization is a data entry in the profiles file, not a code
// change.
type OrgProfile struct {
	Name          string `json:"name"`
	MSPID         string `json:"mspId"`
	CAURL         string `json:"caUrl"`
	CAName        string `json:"caName"`
	CATLSCertPath string `json:"caTlsCertPath"`
	Affiliation   string `json:"affiliation"`
	WalletPath    string `json:"walletPath"`
}

// OrgRegistry resolves organization names to their profiles. Lookup is
// case-insensitive because org names arrive from request bodies.
type OrgRegistry struct {
	profiles map[string]OrgProfile
}

// LoadOrgRegistry reads the organization profiles file.
func LoadOrgRegistry(path string) (*OrgRegistry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var profiles []OrgProfile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, err
	}
	return NewOrgRegistry(profiles), nil
}

// NewOrgRegistry builds a registry from profile records.
func NewOrgRegistry(profiles []OrgProfile) *OrgRegistry {
	m := make(map[string]OrgProfile, len(profiles))
	for _, p := range profiles {
		m[strings.ToLower(p.Name)] = p
	}
	return &OrgRegistry{profiles: m}
}

// Lookup returns the profile for an organization name.
func (r *OrgRegistry) Lookup(org string) (OrgProfile, error) {
	p, ok := r.profiles[strings.ToLower(org)]
	if !ok {
		return OrgProfile{}, constants.ErrUnknownOrganization
	}
	return p, nil
}

// Names lists the configured organization names.
func (r *OrgRegistry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for _, p := range r.profiles {
		names = append(names, p.Name)
	}
	return names
}
