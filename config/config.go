/*
 *  Copyright (c) 2025 TDR Ledger API contributors.
 *
 *  SPDX-License-Identifier: Apache-2.0
 */

package config

import (
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Server holds the configuration parameters for the application.
type Server struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"debug"`

	// Server configurations
	Port string `envconfig:"PORT" default:"3000"`

	// JWT Authentication configurations
	JWT JWT `envconfig:"JWT"`

	// Fabric gateway configurations (peer transport + contract naming)
	Fabric Fabric `envconfig:"FABRIC"`

	// Organization profile registry (CA + wallet per organization)
	OrgProfilesPath string `envconfig:"ORG_PROFILES_PATH" default:"./config/organizations.json"`
}

// JWT holds the session-token signing configuration. The secret has no
// default: starting without one is a deployment error.
type JWT struct {
	Secret        string `envconfig:"SECRET" required:"true"`
	ExpirySeconds int    `envconfig:"EXPIRY" default:"86400"`
}

// Expiry returns the configured token lifetime as a duration.
func (j JWT) Expiry() time.Duration {
	return time.Duration(j.ExpirySeconds) * time.Second
}

// Fabric holds the peer transport and contract configuration consumed by the
// transaction executor. KeyDir and CertDir must each contain exactly one file.
type Fabric struct {
	ChannelName   string `envconfig:"CHANNEL_NAME" default:"mychannel"`
	ChaincodeName string `envconfig:"CHAINCODE_NAME" default:"tdr"`
	MSPID         string `envconfig:"MSP_ID" default:"Org1MSP"`

	PeerEndpoint string `envconfig:"PEER_ENDPOINT" default:"localhost:7051"`
	GatewayPeer  string `envconfig:"PEER_HOST_ALIAS" default:"peer0.org1.example.com"`
	TLSCertPath  string `envconfig:"TLS_CERT_PATH" default:"./organizations/peerOrganizations/org1.example.com/peers/peer0.org1.example.com/tls/ca.crt"`

	KeyDir  string `envconfig:"KEY_DIRECTORY_PATH" default:"./organizations/peerOrganizations/org1.example.com/users/User1@org1.example.com/msp/keystore"`
	CertDir string `envconfig:"CERT_DIRECTORY_PATH" default:"./organizations/peerOrganizations/org1.example.com/users/User1@org1.example.com/msp/signcerts"`

	// Per-call deadlines applied when the caller supplies none.
	EvaluateTimeoutSeconds int `envconfig:"EVALUATE_TIMEOUT" default:"5"`
	EndorseTimeoutSeconds  int `envconfig:"ENDORSE_TIMEOUT" default:"15"`
	SubmitTimeoutSeconds   int `envconfig:"SUBMIT_TIMEOUT" default:"5"`
	CommitTimeoutSeconds   int `envconfig:"COMMIT_TIMEOUT" default:"60"`
}

// package-level variable and mutex for thread safety
var (
	processOnce     sync.Once
	settingInstance *Server
)

// GetConfig initializes and returns a singleton instance of the Server
// configuration from environment variables. It uses sync.Once so the
// initialization logic runs only once, making it safe for concurrent use.
// If there is an error during initialization, the function will panic.
func GetConfig() *Server {
	var err error
	processOnce.Do(func() {
		settingInstance = &Server{}
		err = envconfig.Process("", settingInstance)
	})
	if err != nil {
		panic(err)
	}
	return settingInstance
}
