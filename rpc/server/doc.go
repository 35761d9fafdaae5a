// Package server implements the network server for the library book
// management system. It binds the command dispatcher to a transport layer
// and instruments every request with prometheus-style metrics.
//
// The package focuses on:
//   - Creating the library aggregate from the server configuration
//   - Routing raw protocol requests to the dispatcher
//   - Per-command request counters and a request duration summary
//   - An optional /metrics HTTP endpoint
//
// Key Components:
//
//   - NewServer: Factory function creating a configured server with the
//     specified transport mechanism.
//
// Usage Example:
//
//	// Create server configuration
//	config := common.ServerConfig{
//	  Endpoint:        "0.0.0.0:8080",
//	  MetricsEndpoint: "0.0.0.0:9100",
//	  OpenHour:        8,
//	  CloseHour:       20,
//	  LoanLimit:       5,
//	  LoanPeriodDays:  7,
//	  LateFee:         10,
//	  FineLimit:       20,
//	  LogLevel:        "info",
//	}
//
//	// Create and start the server
//	s := server.NewServer(
//	  config,
//	  tcp.NewTCPServerTransport(),
//	)
//
//	// Start the server
//	if err := s.Serve(); err != nil {
//	  log.Fatalf("Server error: %v", err)
//	}
//
// Thread Safety:
//
//	The server accepts concurrent connections; the dispatcher serializes
//	command execution internally so the undo history stays globally
//	ordered. The Serve method is not thread-safe and should be called
//	only once.
package server
