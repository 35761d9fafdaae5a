// Package client implements a client for the library book management
// protocol. It wraps a client transport, performs the connect handshake
// and prefixes the assigned client id onto every command.
//
// The package focuses on:
//   - Transparent access to the server over any client transport
//   - The connect/disconnect session lifecycle
//
// Key Components:
//
//   - NewClient: Factory function that creates a client for the given
//     configuration and transport.
//
// Usage Example:
//
//	// Configure the client
//	config := common.ClientConfig{
//	  Endpoint:      "localhost:5000",
//	  TimeoutSecond: 5,
//	  RetryCount:    3,
//	}
//
//	// Create and connect the client
//	c := client.NewClient(config, tcp.NewTCPClientTransport())
//	if err := c.Connect(); err != nil {
//	  log.Fatalf("Connect error: %v", err)
//	}
//	defer c.Close()
//
//	// Send commands
//	resp, _ := c.Do("login,root,password")
//	resp, _ = c.Do("search,*")
package client
