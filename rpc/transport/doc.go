// Package transport defines the interfaces and abstractions for network
// communication in the library book management server. It provides a common
// contract that all transport implementations must fulfill, enabling
// protocol-agnostic communication.
//
// The package focuses on:
//   - Defining clear interfaces for client and server transport layers
//   - Enabling multiple transport implementations (TCP, Unix sockets)
//
// Key Components:
//
//   - IClientTransport: Interface for client-side transport implementations
//     that handles connection management and request sending.
//
//   - IServerTransport: Interface for server-side transport implementations
//     that receives requests and routes them to the registered handler.
//
//   - ServerHandleFunc: Function type for request handling callbacks.
package transport
