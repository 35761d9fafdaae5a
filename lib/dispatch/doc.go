// Package dispatch implements the text command protocol: request
// parsing, client sessions, command descriptors, and the dispatcher
// that executes one request at a time against the library aggregate.
//
// A request is a comma separated line terminated by ';':
//
//	clientId,command,arg1,...,argN;
//
// Arguments are split on top-level commas; a brace group such as
// {10,11} is passed through as one argument. The only request without
// a client id is "connect;". Responses echo the client id, the command
// name and a comma separated body, terminated by ';'.
//
// Commands that mutate state return a history entry which the
// dispatcher commits to the global undo/redo history before the
// response is written.
package dispatch
