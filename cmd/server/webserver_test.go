package main

import (
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	mandel "github.com/marben/escape_mandel"
	"github.com/marben/escape_mandel/render"
)

func newTestServer(t *testing.T, staticDir string) (*mandel.Service, *httptest.Server) {
	t.Helper()

	d := render.NewDispatcher(2)
	t.Cleanup(d.Close)

	svc, err := mandel.NewService(d)
	if err != nil {
		t.Fatal(err)
	}
	go svc.Serve()
	srv := httptest.NewServer(webServer(0, staticDir, svc, d, mandel.Limits{}).Handler)
	t.Cleanup(func() {
		svc.Close()
		srv.Close()
	})
	return svc, srv
}

func TestWebServer_RenderPNG(t *testing.T) {
	_, srv := newTestServer(t, "")

	resp, err := http.Get(srv.URL + "/render.png?width=10&height=6&region=full")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 6 {
		t.Errorf("bounds %v", b)
	}
}

func TestWebServer_WebsocketAndStatus(t *testing.T) {
	_, srv := newTestServer(t, "")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c, err := mandel.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws")
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, err := c.RenderFrame(ctx, render.NewRequest(8, 8)); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Get(srv.URL + "/status")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var st status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatal(err)
	}
	if st.Frames != 1 {
		t.Errorf("status = %+v", st)
	}
	if len(st.Regions) != len(mandel.Landmarks) {
		t.Errorf("regions = %v", st.Regions)
	}
}

func TestWebServer_RejectsOversized(t *testing.T) {
	_, srv := newTestServer(t, "")

	resp, err := http.Get(srv.URL + "/render.png?width=1073741824&height=1073741824")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("/render.png gigapixel: status %d, want 400", resp.StatusCode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	c, err := mandel.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws")
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	_, err = c.RenderFrame(ctx, render.NewRequest(1<<30, 1<<30))
	var remote *mandel.RemoteError
	if !errors.As(err, &remote) || remote.Code != mandel.CodeInvalidDimensions {
		t.Fatalf("/ws gigapixel: err = %v, want code %q", err, mandel.CodeInvalidDimensions)
	}

	// Both endpoints keep serving.
	if _, err := c.RenderFrame(ctx, render.NewRequest(4, 4)); err != nil {
		t.Errorf("/ws after rejection: %v", err)
	}
	resp, err = http.Get(srv.URL + "/render.png?width=4&height=4")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/render.png after rejection: status %d", resp.StatusCode)
	}
}

func TestWebServer_Static(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<canvas></canvas>"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, srv := newTestServer(t, dir)

	resp, err := http.Get(srv.URL + "/index.html")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status %d", resp.StatusCode)
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := newLogger("debug"); err != nil {
		t.Errorf("newLogger(debug): %v", err)
	}
	if _, err := newLogger("loud"); err == nil {
		t.Error("newLogger(loud) succeeded")
	}
}

func TestRun_RejectsEncoding(t *testing.T) {
	if err := run(context.Background(), options{encoding: "gzip", logLevel: "info"}); err == nil {
		t.Error("run with gzip encoding succeeded")
	}
}
