package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// RPC server configuration struct
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters for the library server.
type ServerConfig struct {
	// Endpoint is the TCP address the text protocol listens on
	Endpoint string

	// MetricsEndpoint is the optional address of the /metrics HTTP
	// endpoint; empty disables it
	MetricsEndpoint string

	// library policy parameters
	OpenHour       int
	CloseHour      int
	LoanLimit      int
	LoanPeriodDays int
	LateFee        int
	FineLimit      int

	// Logging configuration
	LogLevel string
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// RPC settings
	addSection("RPC Server")
	addField("Endpoint", c.Endpoint)
	if c.MetricsEndpoint != "" {
		addField("Metrics Endpoint", c.MetricsEndpoint)
	}

	// Library policy
	addSection("Library Policy")
	addField("Open Hour", strconv.Itoa(c.OpenHour))
	addField("Close Hour", strconv.Itoa(c.CloseHour))
	addField("Loan Limit", strconv.Itoa(c.LoanLimit))
	addField("Loan Period (days)", strconv.Itoa(c.LoanPeriodDays))
	addField("Late Fee", strconv.Itoa(c.LateFee))
	addField("Fine Limit", strconv.Itoa(c.FineLimit))

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}

// --------------------------------------------------------------------------
// RPC client configuration struct
// --------------------------------------------------------------------------

type ClientConfig struct {
	Endpoint      string
	TimeoutSecond int
	RetryCount    int
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// General Client Settings
	addSection("Client Configuration")
	addField("Endpoint", c.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Retry Count", strconv.Itoa(c.RetryCount))

	return sb.String()
}
