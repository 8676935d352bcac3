package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	mandel "github.com/marben/escape_mandel"
)

// webServer serves the websocket render service at /ws, single images at
// /render.png, counters at /status and, unless staticDir is empty, the
// files in staticDir at /.
func webServer(port int, staticDir string, svc *mandel.Service, r mandel.Renderer, limits mandel.Limits) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/ws", svc)
	mux.Handle("/render.png", mandel.ImageHandler(r, limits))
	mux.HandleFunc("/status", statusHandler(svc))
	if staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	slog.Info("listening", "url", fmt.Sprintf("http://localhost:%d", port))
	return srv
}

type status struct {
	mandel.Stats
	Regions []string `json:"regions"`
}

// statusHandler reports the service counters and the known landmark names.
func statusHandler(svc *mandel.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status{Stats: svc.Stats(), Regions: mandel.LandmarkNames()}); err != nil {
			slog.Warn("write status", "err", err)
		}
	}
}
