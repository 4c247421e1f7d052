package probe

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"
)

func startProbe(t *testing.T, payload string) (string, context.CancelFunc, <-chan error) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	srv := &Server{Payload: payload}
	go func() { errc <- srv.Serve(ctx, ln) }()

	return ln.Addr().String(), cancel, errc
}

func TestProbe_RawConnectionGetsPayload(t *testing.T) {
	addr, cancel, _ := startProbe(t, "")
	defer cancel()

	conn, err := net.DialTimeout("tcp", addr, time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// no se manda nada: el probe responde igual tras el read timeout
	_ = conn.SetDeadline(time.Now().Add(3 * time.Second))
	b, err := io.ReadAll(conn)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasSuffix(string(b), DefaultPayload) {
		t.Fatalf("expected payload %q, got %q", DefaultPayload, string(b))
	}
}

func TestProbe_AnswersNonHTTPInput(t *testing.T) {
	addr, cancel, _ := startProbe(t, "")
	defer cancel()

	conn, err := net.DialTimeout("tcp", addr, time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("\x00\x01garbage\r\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = conn.SetDeadline(time.Now().Add(3 * time.Second))
	b, err := io.ReadAll(conn)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(b), "HTTP/1.1 200 OK") {
		t.Fatalf("expected status line, got %q", string(b))
	}
}

func TestProbe_HTTPClientReadsPayload(t *testing.T) {
	addr, cancel, _ := startProbe(t, "alive")
	defer cancel()

	client := &http.Client{Timeout: 3 * time.Second}
	res, err := client.Get("http://" + addr + "/anything/at/all")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusOK || string(body) != "alive" {
		t.Fatalf("expected 200 alive, got %d %q", res.StatusCode, string(body))
	}
}

func TestProbe_StopsOnCancel(t *testing.T) {
	addr, cancel, errc := startProbe(t, "")

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("expected nil on cancel, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("Serve did not return after cancel")
	}

	if conn, err := net.DialTimeout("tcp", addr, 500*time.Millisecond); err == nil {
		conn.Close()
		t.Fatalf("listener still accepting after cancel")
	}
}

func TestResponse_ContentLength(t *testing.T) {
	r := string(Response("mini"))
	if !strings.HasPrefix(r, "HTTP/1.1 200 OK\r\n") || !strings.Contains(r, "Content-Length: 4\r\n") {
		t.Fatalf("unexpected response %q", r)
	}
}
