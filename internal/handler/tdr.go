/*
 *  Copyright (c) 2025 TDR Ledger API contributors.
 *
 *  SPDX-License-Identifier: Apache-2.0
 */

package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/constants"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/dto"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/model"
)

// Ledger is the slice of the transaction executor the asset endpoints use.
// Satisfied by *ledger.Executor.
type Ledger interface {
	IssueTDR(ctx context.Context, id, issuer, owner string, amount float64, validTill, ipfsDocumentLink string) error
	TransferTDR(ctx context.Context, id, newOwner string) error
	VerifyTDR(ctx context.Context, id string) error
	DestroyTDR(ctx context.Context, id string) error
	UpdateTDR(ctx context.Context, id string, amount float64, validTill string) error
	TDRDetails(ctx context.Context, id string) (*model.TDR, error)
	AllTDRs(ctx context.Context) []model.TDR
	UserTDRs(ctx context.Context, owner string) []model.TDR
	TDRHistory(ctx context.Context, id string) []model.TDRHistoryEntry
}

// TDRHandler serves the asset endpoints over the ledger executor. Writes
// answer a fixed message; reads answer the ledger record as-is.
type TDRHandler struct {
	ledger Ledger
	log    *zap.SugaredLogger
}

func NewTDRHandler(ledger Ledger, log *zap.SugaredLogger) *TDRHandler {
	return &TDRHandler{
		ledger: ledger,
		log:    log,
	}
}

func (h *TDRHandler) IssueTDR(c *gin.Context) {
	var req dto.IssueTDRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	err := h.ledger.IssueTDR(c.Request.Context(), req.ID, req.Issuer, req.Owner, req.Amount, req.ValidTill, req.IpfsDocumentLink)
	if err != nil {
		h.log.Errorw("TDR issue failed", "id", req.ID, "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to issue TDR"})
		return
	}

	h.log.Infow("TDR issued", "id", req.ID, "owner", req.Owner)
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "TDR issued successfully"})
}

func (h *TDRHandler) TransferTDR(c *gin.Context) {
	var req dto.TransferTDRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.ledger.TransferTDR(c.Request.Context(), req.ID, req.NewOwner); err != nil {
		h.log.Errorw("TDR transfer failed", "id", req.ID, "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to transfer TDR"})
		return
	}

	h.log.Infow("TDR transferred", "id", req.ID, "newOwner", req.NewOwner)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "TDR transferred successfully"})
}

func (h *TDRHandler) VerifyTDR(c *gin.Context) {
	var req dto.TDRIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.ledger.VerifyTDR(c.Request.Context(), req.ID); err != nil {
		h.log.Errorw("TDR verify failed", "id", req.ID, "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to verify TDR"})
		return
	}

	h.log.Infow("TDR verified", "id", req.ID)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "TDR verified successfully"})
}

func (h *TDRHandler) DestroyTDR(c *gin.Context) {
	var req dto.TDRIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.ledger.DestroyTDR(c.Request.Context(), req.ID); err != nil {
		h.log.Errorw("TDR destroy failed", "id", req.ID, "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to destroy TDR"})
		return
	}

	h.log.Infow("TDR destroyed", "id", req.ID)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "TDR destroyed successfully"})
}

func (h *TDRHandler) UpdateTDR(c *gin.Context) {
	var req dto.UpdateTDRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.ledger.UpdateTDR(c.Request.Context(), req.ID, req.Amount, req.ValidTill); err != nil {
		h.log.Errorw("TDR update failed", "id", req.ID, "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update TDR"})
		return
	}

	h.log.Infow("TDR updated", "id", req.ID)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "TDR updated successfully"})
}

func (h *TDRHandler) GetTDRDetails(c *gin.Context) {
	id := c.Param("id")

	tdr, err := h.ledger.TDRDetails(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, constants.ErrTDRNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "TDR not found"})
			return
		}
		h.log.Errorw("TDR details fetch failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch TDR details"})
		return
	}

	c.JSON(http.StatusOK, tdr)
}

func (h *TDRHandler) GetAllUserTDRs(c *gin.Context) {
	owner := c.Param("owner")

	tdrs := h.ledger.UserTDRs(c.Request.Context(), owner)
	if len(tdrs) == 0 {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "No TDRs found for this owner"})
		return
	}

	c.JSON(http.StatusOK, tdrs)
}

func (h *TDRHandler) GetAllTDRs(c *gin.Context) {
	tdrs := h.ledger.AllTDRs(c.Request.Context())
	if len(tdrs) == 0 {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "No TDRs found"})
		return
	}

	c.JSON(http.StatusOK, tdrs)
}

func (h *TDRHandler) GetTDRHistory(c *gin.Context) {
	id := c.Param("id")

	history := h.ledger.TDRHistory(c.Request.Context(), id)
	if len(history) == 0 {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "No history found for this TDR"})
		return
	}

	c.JSON(http.StatusOK, history)
}

// RegisterRoutes wires the asset endpoints. Every route sits behind the
// session-token middleware.
func (h *TDRHandler) RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	assets := r.Group("/api/assets", auth)
	{
		assets.POST("/issue-tdr", h.IssueTDR)
		assets.POST("/transfer-tdr", h.TransferTDR)
		assets.POST("/verify-tdr", h.VerifyTDR)
		assets.POST("/destroy-tdr", h.DestroyTDR)
		assets.POST("/update-tdr", h.UpdateTDR)
		assets.GET("/details-tdr/:id", h.GetTDRDetails)
		assets.GET("/user-tdrs/:owner", h.GetAllUserTDRs)
		assets.GET("/all-tdrs", h.GetAllTDRs)
		assets.GET("/tdr-history/:id", h.GetTDRHistory)
	}
}
