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

// Command ainocli runs a single terminal command from the shell.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/edcbridge/go-aino"
	"github.com/edcbridge/go-aino/detection"
	"github.com/edcbridge/go-aino/transport/uart"
)

type config struct {
	port    *string
	baud    *int
	posID   *string
	command *string
	code    *string
	banks   *string
	amount  *int
	timeout *time.Duration
	debug   *bool
}

func parseFlags() *config {
	cfg := &config{
		port: flag.String("port", aino.AutoDetectPort,
			"Serial device path (e.g., /dev/ttyUSB0 or COM3). Use \"auto\" for auto-detection."),
		baud:    flag.Int("baud", 115200, "Baud rate"),
		posID:   flag.String("pos", aino.DefaultPOSID, "POS identifier sent with debits"),
		command: flag.String("cmd", "balance", "Command: debit, balance, last, csn or ports"),
		amount:  flag.Int("amount", 0, "Amount to debit"),
		code:    flag.String("code", "", "Transaction code for debit"),
		banks:   flag.String("banks", "", "YAML bank table overriding the built-in TID/MID values"),
		timeout: flag.Duration("timeout", 90*time.Second, "Time to wait for the card and the terminal answer"),
		debug:   flag.Bool("debug", false, "Log frames and state changes"),
	}
	flag.Parse()
	return cfg
}

func newLogger(debug bool) *zap.Logger {
	if !debug {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func listPorts() error {
	ports, err := detection.DetectPorts(&detection.Options{SkipProbe: true})
	if err != nil {
		return fmt.Errorf("failed to list ports: %w", err)
	}
	for _, p := range ports {
		_, _ = fmt.Printf("%-20s %-10s %s %s\n", p.Path, p.VIDPID(), p.Product, p.SerialNumber)
	}
	return nil
}

func newTerminal(cfg *config, logger *zap.Logger) (*aino.Terminal, error) {
	session, err := aino.NewSession(uart.Factory,
		aino.WithPort(*cfg.port),
		aino.WithBaudRate(*cfg.baud),
		aino.WithResponseTimeout(*cfg.timeout),
		aino.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	opts := []aino.TerminalOption{aino.WithPOSID(*cfg.posID), aino.WithTerminalLogger(logger)}
	if *cfg.banks != "" {
		banks, err := aino.LoadBankTable(*cfg.banks)
		if err != nil {
			return nil, err
		}
		opts = append(opts, aino.WithBankTable(banks))
	}
	return aino.NewTerminal(session, opts...)
}

func run(ctx context.Context, terminal *aino.Terminal, cfg *config) (any, error) {
	switch *cfg.command {
	case "debit":
		if *cfg.code == "" {
			return nil, errors.New("debit needs -code")
		}
		return terminal.Debit(ctx, *cfg.amount, *cfg.code)
	case "balance":
		return terminal.BalanceCheck(ctx)
	case "last":
		return terminal.LastTransaction(ctx)
	case "csn":
		return terminal.MemberCSN(ctx)
	default:
		return nil, fmt.Errorf("unknown command: %s", *cfg.command)
	}
}

func main() {
	cfg := parseFlags()

	if *cfg.command == "ports" {
		if err := listPorts(); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	logger := newLogger(*cfg.debug)
	defer func() { _ = logger.Sync() }()

	terminal, err := newTerminal(cfg, logger)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to set up terminal: %v\n", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), *cfg.timeout)
	defer cancel()

	session := terminal.Session()
	if _, err := session.Open(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to open %s: %v\n", *cfg.port, err)
		return
	}
	defer func() { _, _ = session.Close() }()
	_, _ = fmt.Printf("Connected on %s\n", session.Port())

	result, err := run(ctx, terminal, cfg)
	if err != nil {
		var rejected *aino.RejectedError
		if errors.As(err, &rejected) {
			_, _ = fmt.Printf("Rejected: %s (amount %d)\n", rejected.Status, rejected.Amount)
			return
		}
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		return
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(result)
}
