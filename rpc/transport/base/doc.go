// Package base provides a foundation for transport layers of the library
// server, implementing core functionality for the request/response protocol
// independent of the specific network protocol (TCP, Unix sockets, etc.).
// It serves as a base layer that can be extended with protocol-specific
// connectors.
//
// The package focuses on:
//   - Protocol-agnostic client and server transport implementations
//   - Semicolon terminated text message framing
//   - Robust error handling with retries and reconnection logic
//
// Key Components:
//
//   - IClientConnector/IServerConnector: Interfaces for protocol-specific
//     operations that allow extending the base transport with different
//     network protocols.
//
//   - clientTransport: Core client implementation that holds one connection
//     and sends requests synchronously. Requests are retried with
//     exponential backoff, reconnecting between attempts.
//
//   - serverTransport: Core server implementation that accepts connections
//     and routes complete messages to the registered handler. Incomplete
//     trailing input is forwarded as-is so the handler can reject it.
//
// Thread Safety:
//
//	All public methods are thread-safe. The client transport serializes
//	request/response round trips with a mutex, while the server creates a
//	dedicated goroutine for each connection.
package base
