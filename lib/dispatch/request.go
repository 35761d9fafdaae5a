package dispatch

import (
	"strconv"
	"strings"
)

// request is a parsed command line. ClientID is unset for "connect".
type request struct {
	ClientID uint64
	Connect  bool
	Command  string
	Args     []string
}

// parseRequest splits a raw request (terminator already verified and
// stripped) into client id, command name and arguments.
//
// The boolean result is false when the first field is not a numeric
// client id, which the dispatcher answers with invalid-client-id.
func parseRequest(raw string) (request, bool) {
	fields := splitTopLevel(raw)
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}

	if fields[0] == "connect" {
		return request{Connect: true, Command: "connect", Args: fields[1:]}, true
	}

	id, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil || len(fields) < 2 {
		return request{}, false
	}
	return request{ClientID: id, Command: fields[1], Args: fields[2:]}, true
}

// splitTopLevel splits on commas outside brace groups, so a set
// argument like {10,11} stays one field, braces included.
func splitTopLevel(s string) []string {
	var fields []string
	var sb strings.Builder
	depth := 0

	for _, r := range s {
		switch {
		case r == '{':
			depth++
			sb.WriteRune(r)
		case r == '}':
			depth--
			sb.WriteRune(r)
		case r == ',' && depth == 0:
			fields = append(fields, sb.String())
			sb.Reset()
		default:
			sb.WriteRune(r)
		}
	}
	fields = append(fields, sb.String())
	return fields
}

// splitGroup parses a brace-group argument like "{10,11}" into its
// elements. A bare value without braces is a single element, so
// commands accept both "{a}" and "a".
func splitGroup(arg string) []string {
	arg = strings.TrimSpace(arg)
	arg = strings.TrimPrefix(arg, "{")
	arg = strings.TrimSuffix(arg, "}")

	var elems []string
	for _, e := range strings.Split(arg, ",") {
		if e = strings.TrimSpace(e); e != "" {
			elems = append(elems, e)
		}
	}
	return elems
}

// parseIDs converts a list of display id arguments. The failed string
// is returned verbatim for the error response.
func parseIDs(args []string) ([]uint64, string, bool) {
	ids := make([]uint64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseUint(a, 10, 64)
		if err != nil {
			return nil, a, false
		}
		ids = append(ids, id)
	}
	return ids, "", true
}
