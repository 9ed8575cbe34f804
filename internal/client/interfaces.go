// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

// Client is the minimal lifecycle contract of the portalctl application:
// the binary entry point only needs to construct it and run it.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run() error
}
