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

package api

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the terminal routes on r. Routes that talk to the card go
// through limit when it is non-nil.
func RegisterRoutes(r gin.IRouter, h *Handler, limit gin.HandlerFunc) {
	r.GET("/connectaino", h.Connect)
	r.GET("/disconnectaino", h.Disconnect)
	r.GET("/lastdebit", h.LastDebit)

	card := r.Group("")
	if limit != nil {
		card.Use(limit)
	}
	card.POST("/debittransaction", h.Debit)
	card.GET("/balance", h.Balance)
	card.GET("/lasttransaction", h.LastTransaction)
	card.GET("/membercsn", h.MemberCSN)
}
