package base

import (
	"fmt"
	"net"

	"github.com/JoeyZhen/Library-BMS/rpc/common"
	"github.com/JoeyZhen/Library-BMS/rpc/transport"
)

var Logger = common.GetLogger("transport")

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IServerConnector defines the interface for transport-specific server operations
type IServerConnector interface {
	// Listen creates a listener and returns it
	Listen(config common.ServerConfig) (net.Listener, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// serverTransport implements the core server transport functionality
type serverTransport struct {
	connector  IServerConnector
	handler    transport.ServerHandleFunc
	config     common.ServerConfig
	listener   net.Listener
	bufferSize int
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseServerTransport creates a new base server transport with the specified connector
func NewBaseServerTransport(connector IServerConnector, bufferSize int) transport.IServerTransport {
	return &serverTransport{
		connector:  connector,
		bufferSize: bufferSize,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IServerTransport)
// --------------------------------------------------------------------------

func (t *serverTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *serverTransport) Listen(config common.ServerConfig) error {
	t.config = config

	// Create listener using the connector
	listener, err := t.connector.Listen(config)
	if err != nil {
		return fmt.Errorf("failed to create listener: %v", err)
	}
	t.listener = listener

	Logger.Infof("Starting %s server on %s", t.connector.GetName(), config.Endpoint)

	// Accept connections
	for {
		conn, err := listener.Accept()
		if err != nil {
			Logger.Errorf("Accept error: %v", err)
			continue
		}

		// Handle the connection in a goroutine
		go t.handleConnection(conn)
	}
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// handleConnection handles incoming requests for one connection.
// Requests on a single connection are processed in order because the
// protocol interleaves response state (e.g. client ids) with requests.
func (t *serverTransport) handleConnection(conn net.Conn) {
	defer conn.Close()

	Logger.Debugf("Accepted connection from %s", conn.RemoteAddr())

	scanner := newMessageScanner(conn, t.bufferSize)

	for scanner.Scan() {
		req := scanner.Text()

		// Process the request
		resp := t.handler(req)

		// Write the response
		if err := writeMessage(conn, resp); err != nil {
			Logger.Errorf("Failed to write response: %v", err)
			return
		}
	}

	// Case EOF: Connection closed by client
	if err := scanner.Err(); err != nil {
		Logger.Errorf("Error handling request: %v", err)
		return
	}
	Logger.Infof("Connection closed by client")
}
