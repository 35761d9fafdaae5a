package base

import (
	"bufio"
	"fmt"
	"math/rand"
	"net"
	"sync"
	"time"

	"github.com/JoeyZhen/Library-BMS/rpc/common"
	"github.com/JoeyZhen/Library-BMS/rpc/transport"
)

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IClientConnector defines the interface for transport-specific connection operations
type IClientConnector interface {
	// Connect establishes a single connection based on the provided configuration
	Connect(endpoint string) (net.Conn, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an established connection
	UpgradeConnection(conn net.Conn, config common.ClientConfig) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// clientTransport implements the core client transport functionality
// independent of the specific transport medium (unix, tcp, etc.)
type clientTransport struct {
	connector IClientConnector
	config    common.ClientConfig
	conn      net.Conn
	scanner   *bufio.Scanner
	connMu    sync.Mutex // Serializes request/response pairs on the connection
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseClientTransport creates a new base client transport with the specified connector
func NewBaseClientTransport(connector IClientConnector) transport.IClientTransport {
	return &clientTransport{connector: connector}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IClientTransport)
// --------------------------------------------------------------------------

func (t *clientTransport) Connect(config common.ClientConfig) error {
	if config.Endpoint == "" {
		return fmt.Errorf("no endpoint provided")
	}

	// Store the config
	t.config = config

	if err := t.reconnect(); err != nil {
		return err
	}

	Logger.Infof("Connected to %s using %s transport", config.Endpoint, t.connector.GetName())
	return nil
}

func (t *clientTransport) Send(req string) (resp string, err error) {
	// The protocol answers every request in order, so the connection is
	// held for the full request/response round trip
	t.connMu.Lock()
	defer t.connMu.Unlock()

	// Define the send function to be used in retries
	send := func() (string, error) {
		if t.conn == nil {
			return "", fmt.Errorf("connection is closed")
		}

		timeout := time.Duration(t.config.TimeoutSecond) * time.Second

		// Set write timeout
		if timeout > 0 {
			t.conn.SetWriteDeadline(time.Now().Add(timeout))
		}

		if err := writeMessage(t.conn, req); err != nil {
			return "", err
		}

		// Set read timeout
		if timeout > 0 {
			t.conn.SetReadDeadline(time.Now().Add(timeout))
		}

		// Read the response message
		if !t.scanner.Scan() {
			if err := t.scanner.Err(); err != nil {
				return "", fmt.Errorf("error reading response: %v", err)
			}
			return "", fmt.Errorf("connection closed by server")
		}
		return t.scanner.Text(), nil
	}

	// Retry logic with exponential backoff
	var lastErr error

	// We always try at least once, and up to maxRetries times
	maxRetries := t.config.RetryCount
	if maxRetries < 1 {
		maxRetries = 1
	}

	// Initial backoff duration in milliseconds
	backoffMs := 50

	for i := 0; i < maxRetries; i++ {
		resp, err := send()
		if err == nil {
			return resp, nil
		}

		lastErr = err
		Logger.Debugf("Request attempt %d/%d failed: %v", i+1, maxRetries, err)

		if i < maxRetries-1 {
			// Exponential backoff with a small random jitter (+-10%)
			jitter := float64(backoffMs) * (0.9 + 0.2*rand.Float64())
			time.Sleep(time.Duration(jitter) * time.Millisecond)
			backoffMs *= 2

			// Try to restore the connection before the next attempt
			if err := t.reconnect(); err != nil {
				Logger.Warningf("Failed to reconnect to %s: %v", t.config.Endpoint, err)
			}
		}
	}

	// All attempts failed
	return "", fmt.Errorf("failed to send request after %d attempts: %v", maxRetries, lastErr)
}

func (t *clientTransport) Close() error {
	t.connMu.Lock()
	defer t.connMu.Unlock()

	if t.conn != nil {
		err := t.conn.Close()
		t.conn = nil
		t.scanner = nil
		return err
	}
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// reconnect establishes or restores the connection to the endpoint
func (t *clientTransport) reconnect() error {
	// Close the old connection if it exists
	if t.conn != nil {
		t.conn.Close()
		t.conn = nil
	}

	// Connect to the endpoint
	conn, err := t.connector.Connect(t.config.Endpoint)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %v", t.config.Endpoint, err)
	}

	// Upgrade the connection with protocol-specific settings
	if err := t.connector.UpgradeConnection(conn, t.config); err != nil {
		conn.Close()
		return fmt.Errorf("failed to upgrade connection to %s: %v", t.config.Endpoint, err)
	}

	t.conn = conn
	t.scanner = newMessageScanner(conn, 64*1024)
	return nil
}
