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
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Placeholders returned for banks missing from the table.
const (
	UnknownTID = "00000000"
	UnknownMID = "000000000000000"
)

// BankTerminal holds the terminal and merchant ids registered for one acquiring bank.
type BankTerminal struct {
	TID string `yaml:"tid" json:"tid"`
	MID string `yaml:"mid" json:"mid"`
}

// BankTable maps the 3-letter bank code of a response to its TID/MID.
type BankTable struct {
	Banks map[string]BankTerminal `yaml:"banks"`
}

// DefaultBankTable returns the built-in registrations.
func DefaultBankTable() *BankTable {
	return &BankTable{
		Banks: map[string]BankTerminal{
			"BRI": {TID: "55550000", MID: "123456789012345"},
			"BCA": {TID: "EBC12359", MID: "000885789012349"},
			"MDR": {TID: "12345678", MID: "000000000011234"},
			"BNI": {TID: "89235999", MID: "123456789012345"},
		},
	}
}

// LoadBankTable reads a YAML bank table and layers it over the defaults.
//
//	banks:
//	  BRI: {tid: "55550000", mid: "123456789012345"}
func LoadBankTable(path string) (*BankTable, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank table: %w", err)
	}

	var loaded BankTable
	if err := yaml.Unmarshal(b, &loaded); err != nil {
		return nil, fmt.Errorf("unmarshal bank table: %w", err)
	}

	table := DefaultBankTable()
	for code, term := range loaded.Banks {
		table.Banks[strings.ToUpper(strings.TrimSpace(code))] = term
	}
	return table, nil
}

// Lookup returns the TID and MID for bank, or the all-zero placeholders.
func (t *BankTable) Lookup(bank string) (tid, mid string) {
	if t == nil || t.Banks == nil {
		return UnknownTID, UnknownMID
	}
	if term, ok := t.Banks[bank]; ok {
		return term.TID, term.MID
	}
	return UnknownTID, UnknownMID
}
