package base

import (
	"strings"
	"testing"
)

func scanAll(t *testing.T, input string) []string {
	t.Helper()
	scanner := newMessageScanner(strings.NewReader(input), 1024)
	var msgs []string
	for scanner.Scan() {
		msgs = append(msgs, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	return msgs
}

func TestMessageScanner(t *testing.T) {
	t.Run("single message", func(t *testing.T) {
		msgs := scanAll(t, "connect;")
		if len(msgs) != 1 || msgs[0] != "connect;" {
			t.Fatalf("got %q", msgs)
		}
	})

	t.Run("multiple messages keep their terminator", func(t *testing.T) {
		msgs := scanAll(t, "connect;1,datetime;1,disconnect;")
		want := []string{"connect;", "1,datetime;", "1,disconnect;"}
		if len(msgs) != len(want) {
			t.Fatalf("got %d messages, want %d", len(msgs), len(want))
		}
		for i := range want {
			if msgs[i] != want[i] {
				t.Errorf("message %d = %q, want %q", i, msgs[i], want[i])
			}
		}
	})

	t.Run("newlines inside a message are preserved", func(t *testing.T) {
		msgs := scanAll(t, "1,buy,2\nline one\nline two;")
		if len(msgs) != 1 || msgs[0] != "1,buy,2\nline one\nline two;" {
			t.Fatalf("got %q", msgs)
		}
	})

	t.Run("unterminated trailing input is passed through", func(t *testing.T) {
		msgs := scanAll(t, "1,datetime;1,arrive")
		want := []string{"1,datetime;", "1,arrive"}
		if len(msgs) != 2 || msgs[0] != want[0] || msgs[1] != want[1] {
			t.Fatalf("got %q, want %q", msgs, want)
		}
	})

	t.Run("empty input yields nothing", func(t *testing.T) {
		if msgs := scanAll(t, ""); len(msgs) != 0 {
			t.Fatalf("got %q", msgs)
		}
	})
}
