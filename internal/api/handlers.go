// go-aino
// Copyright (c) 2025 The go-aino Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-aino.
//
// go-aino is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-aino is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-aino; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

// Package api exposes the terminal operations over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/edcbridge/go-aino"
)

// Terminal is the set of payment operations the API serves.
type Terminal interface {
	Debit(ctx context.Context, amount int, code string) (*aino.TransactionResult, error)
	BalanceCheck(ctx context.Context) (*aino.Balance, error)
	LastTransaction(ctx context.Context) (*aino.TransactionResult, error)
	MemberCSN(ctx context.Context) (*aino.MemberCard, error)
	LastDebit(ctx context.Context) (*aino.TransactionResult, error)
}

// Device is the connection lifecycle the API controls.
type Device interface {
	Reopen(ctx context.Context) (aino.DeviceState, error)
	Close() (aino.DeviceState, error)
	State() aino.DeviceState
}

// Response is the JSON envelope of every API answer.
type Response struct {
	Data    any    `json:"data,omitempty"`
	Amount  *int   `json:"amount,omitempty"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Response status values
const (
	StatusSuccess  = "success"
	StatusRejected = "rejected"
	StatusError    = "error"
)

// Handler serves the terminal routes.
type Handler struct {
	terminal Terminal
	device   Device
	logger   *zap.Logger
}

// NewHandler creates a Handler
func NewHandler(terminal Terminal, device Device, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{terminal: terminal, device: device, logger: logger}
}

type debitForm struct {
	Amount          *int   `form:"amount" binding:"required,min=0"`
	TransactionCode string `form:"transaction_code" binding:"required"`
}

// Connect reopens the serial port.
func (h *Handler) Connect(c *gin.Context) {
	state, err := h.device.Reopen(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Status: StatusSuccess, Message: "connected", Data: gin.H{"state": state.String()}})
}

// Disconnect closes the serial port.
func (h *Handler) Disconnect(c *gin.Context) {
	state, err := h.device.Close()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Status: StatusSuccess, Message: "disconnected", Data: gin.H{"state": state.String()}})
}

// Debit charges the card on the terminal.
func (h *Handler) Debit(c *gin.Context) {
	var form debitForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Status: StatusError, Message: err.Error()})
		return
	}

	result, err := h.terminal.Debit(c.Request.Context(), *form.Amount, form.TransactionCode)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Status: StatusSuccess, Message: result.Status, Data: result})
}

// Balance reads the card balance.
func (h *Handler) Balance(c *gin.Context) {
	balance, err := h.terminal.BalanceCheck(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Status: StatusSuccess, Message: balance.Status, Data: balance})
}

// LastTransaction asks the terminal for its last transaction.
func (h *Handler) LastTransaction(c *gin.Context) {
	result, err := h.terminal.LastTransaction(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Status: StatusSuccess, Message: result.Status, Data: result})
}

// LastDebit returns the last successful debit made through this service.
func (h *Handler) LastDebit(c *gin.Context) {
	result, err := h.terminal.LastDebit(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, Response{Status: StatusError, Message: "no debit transaction yet"})
		return
	}
	c.JSON(http.StatusOK, Response{Status: StatusSuccess, Data: result})
}

// MemberCSN reads the card serial number.
func (h *Handler) MemberCSN(c *gin.Context) {
	card, err := h.terminal.MemberCSN(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Status: StatusSuccess, Message: card.Status, Data: card})
}

// fail writes the error response for err.
func (h *Handler) fail(c *gin.Context, err error) {
	code := StatusCode(err)
	resp := Response{Status: StatusError, Message: err.Error()}

	var rejected *aino.RejectedError
	if errors.As(err, &rejected) {
		amount := rejected.Amount
		resp = Response{Status: StatusRejected, Message: rejected.Status, Amount: &amount}
		h.logger.Warn("request rejected by terminal",
			zap.String("request_id", RequestIDFrom(c)),
			zap.String("status", rejected.Status),
			zap.String("response_hex", rejected.ResponseHex))
	} else {
		h.logger.Error("request failed",
			zap.String("request_id", RequestIDFrom(c)),
			zap.String("path", c.FullPath()),
			zap.Int("code", code),
			zap.Error(err))
	}

	_ = c.Error(err)
	c.JSON(code, resp)
}

// StatusCode maps a terminal error to an HTTP status.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, aino.ErrDeviceRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, aino.ErrTransportUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, aino.ErrNotReady):
		return http.StatusConflict
	case errors.Is(err, aino.ErrResponseTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, aino.ErrMalformedResponse):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
