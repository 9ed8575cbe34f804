// Package server wires and runs the portal's transport servers.
//
// It orchestrates the HTTP server and the gRPC health server over a shared
// lifecycle: startup, OS signal handling, and graceful shutdown of every
// enabled transport.
package server
