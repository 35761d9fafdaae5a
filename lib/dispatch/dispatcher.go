package dispatch

import (
	"fmt"
	"strings"
	"sync"

	"github.com/JoeyZhen/Library-BMS/lib/library"
)

// Dispatcher executes protocol requests against the library aggregate.
//
// Thread-safety: a single mutex serializes every request end to end, so
// a command's validate-mutate-commit sequence is never interleaved with
// another client's and the undo history stays globally ordered.
type Dispatcher struct {
	mu       sync.Mutex
	lib      *library.Library
	sessions *Sessions
	commands map[string]*command
}

// New creates a dispatcher for the given library.
func New(lib *library.Library) *Dispatcher {
	return &Dispatcher{
		lib:      lib,
		sessions: newSessions(),
		commands: commands(),
	}
}

// Library returns the aggregate the dispatcher operates on.
func (d *Dispatcher) Library() *library.Library {
	return d.lib
}

// CommandOf returns the command name of a raw request, for
// instrumentation. Requests that do not parse map to "invalid" and
// unrecognized command names to "unknown" so the label set stays
// bounded.
func (d *Dispatcher) CommandOf(raw string) string {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), ";")
	req, ok := parseRequest(raw)
	if !ok {
		return "invalid"
	}
	if req.Connect {
		return "connect"
	}
	if _, ok := d.commands[req.Command]; !ok {
		return "unknown"
	}
	return req.Command
}

// Handle executes one raw request and returns the response, terminator
// included. A request without the ';' terminator is answered with
// partial-request and not consumed.
func (d *Dispatcher) Handle(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasSuffix(raw, ";") {
		return "partial-request;"
	}
	raw = strings.TrimSuffix(raw, ";")

	d.mu.Lock()
	defer d.mu.Unlock()

	req, ok := parseRequest(raw)
	if !ok {
		return "invalid-client-id;"
	}

	if req.Connect {
		return fmt.Sprintf("connect,%d;", d.sessions.Connect().ID)
	}

	session, ok := d.sessions.Get(req.ClientID)
	if !ok {
		return "invalid-client-id;"
	}

	cmd, ok := d.commands[req.Command]
	if !ok {
		return fmt.Sprintf("%d,%s,unknown-command;", req.ClientID, req.Command)
	}
	if len(req.Args) < len(cmd.params) {
		return fmt.Sprintf("%d,%s;", req.ClientID, cmd.missingParams(req.Args))
	}
	return fmt.Sprintf("%d,%s;", req.ClientID, cmd.run(d, session, req.Args))
}
