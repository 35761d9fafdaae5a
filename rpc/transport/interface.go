package transport

import (
	"github.com/JoeyZhen/Library-BMS/rpc/common"
)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ServerHandleFunc is a function type that handles incoming requests.
// This function is called by a server transport layer when a request is
// received. It takes one raw request (terminator included) and returns
// the response to write back.
type ServerHandleFunc func(req string) (resp string)

// IServerTransport is the interface for the server transport layer
type IServerTransport interface {
	// RegisterHandler registers a handler for the transport layer
	// This handler should be called when a request is received
	RegisterHandler(handler ServerHandleFunc)
	// Listen starts the transport layer and listens for incoming requests
	Listen(config common.ServerConfig) error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IClientTransport is the interface for the client transport
type IClientTransport interface {
	// Connect initializes the transport with the given configuration
	Connect(config common.ClientConfig) error
	// Send sends one request to the server and returns the response
	Send(req string) (resp string, err error)
	// Close closes the transport connection
	Close() error
}
