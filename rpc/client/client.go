package client

import (
	"fmt"
	"strings"

	"github.com/JoeyZhen/Library-BMS/rpc/common"
	"github.com/JoeyZhen/Library-BMS/rpc/transport"
)

var Logger = common.GetLogger("rpc")

// Client is a convenience wrapper around a client transport. It performs
// the connect handshake once and prefixes the assigned client id onto
// every subsequent command.
type Client struct {
	config    common.ClientConfig
	transport transport.IClientTransport
	clientID  string
}

// NewClient creates a new protocol client
// It takes a config and a transport as parameters
//
// Usage:
//
//	c := client.NewClient(*config, tcp.NewTCPClientTransport())
//
//	if err := c.Connect(); err != nil {
//		panic(err)
//	}
//	defer c.Close()
//
//	resp, err := c.Do("login,root,password")
func NewClient(config common.ClientConfig, transport transport.IClientTransport) *Client {
	return &Client{
		config:    config,
		transport: transport,
	}
}

// Connect establishes the transport connection and performs the connect
// handshake to obtain a client id
func (c *Client) Connect() error {
	if err := c.transport.Connect(c.config); err != nil {
		return err
	}

	resp, err := c.transport.Send("connect;")
	if err != nil {
		return fmt.Errorf("connect handshake failed: %v", err)
	}

	// The server answers connect,<id>;
	resp = strings.TrimSuffix(strings.TrimSpace(resp), ";")
	id, ok := strings.CutPrefix(resp, "connect,")
	if !ok || id == "" {
		return fmt.Errorf("unexpected connect response %q", resp)
	}

	c.clientID = id
	Logger.Infof("Connected as client %s", id)
	return nil
}

// ID returns the client id assigned by the server. It is empty before
// Connect succeeds.
func (c *Client) ID() string {
	return c.clientID
}

// Do sends one command, prefixing the client id and appending the
// terminator if missing. The response is returned verbatim.
func (c *Client) Do(cmd string) (string, error) {
	cmd = strings.TrimSpace(cmd)
	if !strings.HasSuffix(cmd, ";") {
		cmd += ";"
	}
	return c.transport.Send(c.clientID + "," + cmd)
}

// Raw sends a request exactly as given, without the client id prefix
func (c *Client) Raw(req string) (string, error) {
	return c.transport.Send(req)
}

// Close disconnects from the server and closes the transport
func (c *Client) Close() error {
	if c.clientID != "" {
		if _, err := c.Do("disconnect"); err != nil {
			Logger.Warningf("Disconnect failed: %v", err)
		}
		c.clientID = ""
	}
	return c.transport.Close()
}
