/*
 *  Copyright (c) 2025 TDR Ledger API contributors.
 *
 *  SPDX-License-Identifier: Apache-2.0
 */

package ledger

import (
	"context"
	"crypto/x509"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hyperledger/fabric-gateway/pkg/client"
	"github.com/hyperledger/fabric-gateway/pkg/identity"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	"github.com/vivekNinjatech/Fabric-2.5-MVP/config"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/constants"
)

// Contract is the slice of the gateway contract the executor uses.
// *client.Contract satisfies it.
type Contract interface {
	EvaluateTransaction(name string, args ...string) ([]byte, error)
	SubmitTransaction(name string, args ...string) ([]byte, error)
}

// Session is one connected gateway scope. Close releases the gateway and its
// transport; calling it more than once is safe.
type Session interface {
	Contract() Contract
	Close()
}

// ConnectFunc opens a fresh session. The executor opens one per call and
// always closes it.
type ConnectFunc func(ctx context.Context) (Session, error)

type grpcSession struct {
	conn     *grpc.ClientConn
	gw       *client.Gateway
	contract *client.Contract

	once sync.Once
}

func (s *grpcSession) Contract() Contract { return s.contract }

func (s *grpcSession) Close() {
	s.once.Do(func() {
		s.gw.Close()
		s.conn.Close()
	})
}

// GatewayConnect builds the production ConnectFunc: a TLS gRPC channel to the
// peer and a gateway signing with the MSP credentials on disk.
func GatewayConnect(cfg config.Fabric) ConnectFunc {
	return func(ctx context.Context) (Session, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		id, err := newIdentity(cfg)
		if err != nil {
			return nil, err
		}
		sign, err := newSign(cfg)
		if err != nil {
			return nil, err
		}
		conn, err := newPeerConnection(cfg)
		if err != nil {
			return nil, err
		}

		gw, err := client.Connect(id,
			client.WithSign(sign),
			client.WithClientConnection(conn),
			client.WithEvaluateTimeout(time.Duration(cfg.EvaluateTimeoutSeconds)*time.Second),
			client.WithEndorseTimeout(time.Duration(cfg.EndorseTimeoutSeconds)*time.Second),
			client.WithSubmitTimeout(time.Duration(cfg.SubmitTimeoutSeconds)*time.Second),
			client.WithCommitStatusTimeout(time.Duration(cfg.CommitTimeoutSeconds)*time.Second),
		)
		if err != nil {
			conn.Close()
			return nil, errors.Wrapf(constants.ErrLedgerGateway, "connecting gateway: %v", err)
		}

		contract := gw.GetNetwork(cfg.ChannelName).GetContract(cfg.ChaincodeName)
		return &grpcSession{conn: conn, gw: gw, contract: contract}, nil
	}
}

func newPeerConnection(cfg config.Fabric) (*grpc.ClientConn, error) {
	pemBytes, err := os.ReadFile(cfg.TLSCertPath)
	if err != nil {
		return nil, errors.Wrap(err, "reading peer TLS certificate")
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pemBytes) {
		return nil, errors.New("peer TLS certificate contains no certificates")
	}
	creds := credentials.NewClientTLSFromCert(pool, cfg.GatewayPeer)

	conn, err := grpc.NewClient(cfg.PeerEndpoint, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, errors.Wrapf(constants.ErrLedgerGateway, "creating peer channel: %v", err)
	}
	return conn, nil
}

func newIdentity(cfg config.Fabric) (*identity.X509Identity, error) {
	certPath, err := singleFileInDir(cfg.CertDir)
	if err != nil {
		return nil, err
	}
	pemBytes, err := os.ReadFile(certPath)
	if err != nil {
		return nil, errors.Wrap(err, "reading signing certificate")
	}
	cert, err := identity.CertificateFromPEM(pemBytes)
	if err != nil {
		return nil, errors.Wrap(err, "parsing signing certificate")
	}
	return identity.NewX509Identity(cfg.MSPID, cert)
}

func newSign(cfg config.Fabric) (identity.Sign, error) {
	keyPath, err := singleFileInDir(cfg.KeyDir)
	if err != nil {
		return nil, err
	}
	pemBytes, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, errors.Wrap(err, "reading signing key")
	}
	key, err := identity.PrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, errors.Wrap(err, "parsing signing key")
	}
	return identity.NewPrivateKeySign(key)
}

// singleFileInDir resolves an MSP credential directory, which holds exactly
// one file. Anything else is a layout error, not a lookup miss.
func singleFileInDir(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", errors.Wrapf(constants.ErrCredentialLayout, "reading %s: %v", dir, err)
	}
	if len(entries) != 1 {
		return "", errors.Wrapf(constants.ErrCredentialLayout, "%s holds %d entries, want exactly 1", dir, len(entries))
	}
	return filepath.Join(dir, entries[0].Name()), nil
}
