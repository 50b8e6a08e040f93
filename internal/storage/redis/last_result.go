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

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/edcbridge/go-aino"
)

// LastResultStore is an aino.ResultStore backed by one Redis key.
type LastResultStore struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

// NewLastResultStore stores under "<prefix>:last_debit". A zero ttl keeps the
// value until it is overwritten.
func NewLastResultStore(client redis.Cmdable, prefix string, ttl time.Duration) *LastResultStore {
	if prefix == "" {
		prefix = "aino"
	}
	return &LastResultStore{
		client: client,
		key:    prefix + ":last_debit",
		ttl:    ttl,
	}
}

// Key returns the Redis key in use
func (s *LastResultStore) Key() string {
	return s.key
}

// SaveLastDebit implements aino.ResultStore
func (s *LastResultStore) SaveLastDebit(ctx context.Context, result *aino.TransactionResult) error {
	if result == nil {
		return nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal last debit: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save last debit: %w", err)
	}
	return nil
}

// LastDebit implements aino.ResultStore
func (s *LastResultStore) LastDebit(ctx context.Context) (*aino.TransactionResult, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load last debit: %w", err)
	}

	var result aino.TransactionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("unmarshal last debit: %w", err)
	}
	return &result, nil
}
