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

package aino

import (
	"context"
	"sync"
)

// ResultStore keeps the most recent successful debit.
type ResultStore interface {
	SaveLastDebit(ctx context.Context, result *TransactionResult) error
	// LastDebit returns nil with a nil error when nothing has been stored.
	LastDebit(ctx context.Context) (*TransactionResult, error)
}

// MemoryStore is an in-process ResultStore.
type MemoryStore struct {
	last *TransactionResult
	mu   sync.RWMutex
}

// NewMemoryStore creates an empty in-process store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SaveLastDebit implements ResultStore
func (m *MemoryStore) SaveLastDebit(_ context.Context, result *TransactionResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = result
	return nil
}

// LastDebit implements ResultStore
func (m *MemoryStore) LastDebit(_ context.Context) (*TransactionResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last, nil
}
