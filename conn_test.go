package mandel

import (
	"bytes"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/coder/websocket"
	"github.com/marben/escape_mandel/render"
)

// echoServer echoes everything it reads on a wsConn, then closes normally.
func echoServer(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols: []string{SubprotocolZstd, SubprotocolRaw},
		})
		if err != nil {
			t.Errorf("Accept: %v", err)
			return
		}
		c.SetReadLimit(1 << 20)
		conn := newWSConn(r.Context(), c)
		defer conn.Close()

		buf := make([]byte, 4096)
		for {
			n, err := conn.Read(buf)
			if err != nil {
				if !errors.Is(err, io.EOF) {
					t.Logf("echo read: %v", err)
				}
				return
			}
			if _, err := conn.Write(buf[:n]); err != nil {
				t.Errorf("echo write: %v", err)
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWSConn_Echo(t *testing.T) {
	f, err := render.Render(128, 96, render.CenteredTransform(128, 96, 0.4))
	if err != nil {
		t.Fatal(err)
	}

	for _, proto := range []string{SubprotocolZstd, SubprotocolRaw} {
		t.Run(proto, func(t *testing.T) {
			url := echoServer(t)
			ctx := testContext(t)

			c, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{Subprotocols: []string{proto}})
			if err != nil {
				t.Fatal(err)
			}
			c.SetReadLimit(1 << 20)
			conn := newWSConn(ctx, c)
			defer conn.Close()

			if got := conn.codec != nil; got != (proto == SubprotocolZstd) {
				t.Errorf("compression = %t on %s", got, proto)
			}

			done := make(chan error, 1)
			go func() {
				_, err := conn.Write(f.Pix)
				done <- err
			}()

			got := make([]byte, len(f.Pix))
			if _, err := io.ReadFull(conn, got); err != nil {
				t.Fatalf("ReadFull: %v", err)
			}
			if err := <-done; err != nil {
				t.Fatalf("Write: %v", err)
			}
			if !bytes.Equal(got, f.Pix) {
				t.Error("echoed bytes differ")
			}
		})
	}
}

func TestWSConn_NormalCloseIsEOF(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		c.Close(websocket.StatusNormalClosure, "")
	}))
	defer srv.Close()

	ctx := testContext(t)
	c, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatal(err)
	}
	conn := newWSConn(ctx, c)
	defer conn.Close()

	if _, err := conn.Read(make([]byte, 8)); !errors.Is(err, io.EOF) {
		t.Errorf("Read after normal close = %v, want io.EOF", err)
	}
}

func TestWSListener(t *testing.T) {
	l := newWSListener("/ws")
	if l.Addr().Network() != "ws" || l.Addr().String() != "/ws" {
		t.Errorf("Addr = %v/%v", l.Addr().Network(), l.Addr())
	}

	accepted := make(chan error, 1)
	go func() {
		_, err := l.Accept()
		accepted <- err
	}()
	l.Close()
	if err := <-accepted; !errors.Is(err, net.ErrClosed) {
		t.Errorf("Accept on a closed listener = %v, want net.ErrClosed", err)
	}
}
