// Package rpc provides the networking layer of the library book management
// system. It acts as the communication layer between clients and the server,
// carrying the semicolon terminated text protocol across network boundaries.
//
// The package is organized into several subpackages:
//
//   - common: Configuration structures and logging utilities used across
//     the networking layer.
//
//   - transport: Network communication abstractions with pluggable
//     implementations (TCP, Unix sockets).
//
//   - client: A protocol client that performs the connect handshake and
//     sends commands on behalf of an assigned client id.
//
//   - server: The server binding the command dispatcher to a transport,
//     with per-command metrics.
package rpc
