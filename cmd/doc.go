// Package cmd implements the command-line interface for the LBMS library
// book management system. It provides a hierarchical command structure with
// operations for running the server and interacting with it as a client.
//
// The package is organized into several subpackages:
//
//   - serve: Commands for starting and configuring the library server
//   - client: An interactive client for sending protocol commands
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See lbms -help for a list of all commands.
package cmd
