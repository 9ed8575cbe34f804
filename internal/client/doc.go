// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It wires the terminal UI and the server adapter into a single process
// lifecycle: login flow, account-management loop, logout and re-login.
package client
