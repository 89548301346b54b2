/*
 *  Copyright (c) 2025 TDR Ledger API contributors.
 *
 *  SPDX-License-Identifier: Apache-2.0
 */

// Package ledger executes TDR chaincode transactions through the Fabric
// gateway. Every operation opens its own gateway session and releases it
// before returning; nothing is pooled. Reads that list records degrade to an
// empty result on failure, single-record reads and writes report the error.
package ledger

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vivekNinjatech/Fabric-2.5-MVP/config"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/constants"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/model"
)

// Executor runs TDR transactions. Safe for concurrent use; each call works
// on its own session.
type Executor struct {
	connect ConnectFunc
	log     *zap.SugaredLogger
}

// NewExecutor creates an executor over the configured peer gateway.
func NewExecutor(cfg config.Fabric, log *zap.SugaredLogger) *Executor {
	return &Executor{connect: GatewayConnect(cfg), log: log}
}

// NewExecutorWithConnect creates an executor over a caller-supplied session
// source. Tests use this to run against a fake contract.
func NewExecutorWithConnect(connect ConnectFunc, log *zap.SugaredLogger) *Executor {
	return &Executor{connect: connect, log: log}
}

// withContract opens a session, hands its contract to fn, and closes the
// session on every path out.
func (e *Executor) withContract(ctx context.Context, fn func(Contract) error) error {
	session, err := e.connect(ctx)
	if err != nil {
		return err
	}
	defer session.Close()
	return fn(session.Contract())
}

func (e *Executor) submit(ctx context.Context, name string, args ...string) error {
	return e.withContract(ctx, func(c Contract) error {
		if _, err := c.SubmitTransaction(name, args...); err != nil {
			return errors.Wrapf(err, "submitting %s", name)
		}
		return nil
	})
}

// IssueTDR records a new TDR on the ledger.
func (e *Executor) IssueTDR(ctx context.Context, id, issuer, owner string, amount float64, validTill, ipfsDocumentLink string) error {
	return e.submit(ctx, constants.TxIssueTDR, id, issuer, owner, formatAmount(amount), validTill, ipfsDocumentLink)
}

// TransferTDR moves a TDR to a new owner.
func (e *Executor) TransferTDR(ctx context.Context, id, newOwner string) error {
	return e.submit(ctx, constants.TxTransferTDR, id, newOwner)
}

// VerifyTDR marks a TDR as verified.
func (e *Executor) VerifyTDR(ctx context.Context, id string) error {
	return e.submit(ctx, constants.TxVerifyTDR, id)
}

// DestroyTDR deactivates a TDR.
func (e *Executor) DestroyTDR(ctx context.Context, id string) error {
	return e.submit(ctx, constants.TxDestroyTDR, id)
}

// UpdateTDR replaces a TDR's amount and validity date.
func (e *Executor) UpdateTDR(ctx context.Context, id string, amount float64, validTill string) error {
	return e.submit(ctx, constants.TxUpdateTDR, id, formatAmount(amount), validTill)
}

// TDRDetails reads one TDR. A record the chaincode does not hold maps to
// constants.ErrTDRNotFound.
func (e *Executor) TDRDetails(ctx context.Context, id string) (*model.TDR, error) {
	var tdr model.TDR
	err := e.withContract(ctx, func(c Contract) error {
		payload, err := c.EvaluateTransaction(constants.TxGetTDRDetails, id)
		if err != nil {
			if strings.Contains(err.Error(), "does not exist") {
				return errors.Wrapf(constants.ErrTDRNotFound, "TDR %s", id)
			}
			return errors.Wrapf(err, "evaluating %s", constants.TxGetTDRDetails)
		}
		if err := json.Unmarshal(payload, &tdr); err != nil {
			return errors.Wrap(err, "decoding TDR record")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tdr, nil
}

// AllTDRs lists every TDR. Failures log and return an empty list.
func (e *Executor) AllTDRs(ctx context.Context) []model.TDR {
	return e.list(ctx, constants.TxGetAllTDRs)
}

// UserTDRs lists the TDRs held by owner. Failures log and return an empty
// list.
func (e *Executor) UserTDRs(ctx context.Context, owner string) []model.TDR {
	return e.list(ctx, constants.TxGetAllUserTDRs, owner)
}

func (e *Executor) list(ctx context.Context, name string, args ...string) []model.TDR {
	tdrs := []model.TDR{}
	err := e.withContract(ctx, func(c Contract) error {
		payload, err := c.EvaluateTransaction(name, args...)
		if err != nil {
			return err
		}
		return decodeList(payload, &tdrs)
	})
	if err != nil {
		e.log.Warnw("ledger listing failed, returning empty result", "tx", name, "error", err)
		return []model.TDR{}
	}
	return tdrs
}

// TDRHistory lists the modification history of one TDR. Failures log and
// return an empty list.
func (e *Executor) TDRHistory(ctx context.Context, id string) []model.TDRHistoryEntry {
	entries := []model.TDRHistoryEntry{}
	err := e.withContract(ctx, func(c Contract) error {
		payload, err := c.EvaluateTransaction(constants.TxGetTDRHistory, id)
		if err != nil {
			return err
		}
		return decodeList(payload, &entries)
	})
	if err != nil {
		e.log.Warnw("ledger history read failed, returning empty result", "tx", constants.TxGetTDRHistory, "id", id, "error", err)
		return []model.TDRHistoryEntry{}
	}
	return entries
}

// decodeList tolerates the chaincode's empty-result encodings: no payload
// and JSON null both mean an empty list.
func decodeList(payload []byte, out interface{}) error {
	trimmed := strings.TrimSpace(string(payload))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return errors.Wrap(err, "decoding ledger listing")
	}
	return nil
}

// formatAmount renders a chaincode float argument without exponent notation.
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
