package base

import (
	"bufio"
	"bytes"
	"io"
	"net"
)

// scanRequests is a bufio.SplitFunc that splits the stream into
// semicolon terminated messages. The terminator is included in the
// returned token. At EOF any leftover bytes are passed through as a
// final, unterminated token so the handler can reject them.
func scanRequests(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, ';'); i >= 0 {
		return i + 1, data[:i+1], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// newMessageScanner returns a scanner that yields one protocol message
// per call to Scan
func newMessageScanner(r io.Reader, bufferSize int) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufferSize), bufferSize)
	scanner.Split(scanRequests)
	return scanner
}

// writeMessage writes one protocol message to the connection
func writeMessage(conn net.Conn, msg string) error {
	_, err := io.WriteString(conn, msg)
	return err
}
