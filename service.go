package mandel

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/coder/websocket"
	"github.com/marben/escape_mandel/render"
	"github.com/marben/irpc"
)

// Service serves a Renderer to irpc clients over websocket connections.
// ServeHTTP upgrades each request and hands the connection to an
// irpc.Server, which runs until Close.
//
// Requests outside the service Limits are refused before they reach the
// renderer. Render failures travel back as RemoteError text.
type Service struct {
	renderer       Renderer
	limits         Limits
	originPatterns []string
	subprotocols   []string

	listener *wsListener
	server   *irpc.Server

	conns    atomic.Int64
	frames   atomic.Uint64
	failures atomic.Uint64
}

// ServiceOption configures a Service.
type ServiceOption func(*Service) error

// WithOriginPatterns allows cross-origin websocket clients whose Origin
// host matches one of patterns.
func WithOriginPatterns(patterns ...string) ServiceOption {
	return func(s *Service) error {
		s.originPatterns = patterns
		return nil
	}
}

// WithEncoding selects the message encoding the service prefers,
// EncodingZstd by default. A zstd service still talks raw to clients that
// do not offer SubprotocolZstd.
func WithEncoding(encoding string) ServiceOption {
	return func(s *Service) error {
		protos, err := subprotocols(encoding)
		if err != nil {
			return err
		}
		s.subprotocols = protos
		return nil
	}
}

// WithLimits bounds the requests the service accepts.
func WithLimits(l Limits) ServiceOption {
	return func(s *Service) error {
		s.limits = l
		return nil
	}
}

func NewService(r Renderer, opts ...ServiceOption) (*Service, error) {
	s := &Service{
		renderer:     r,
		subprotocols: []string{SubprotocolZstd, SubprotocolRaw},
		listener:     newWSListener("/ws"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.server = irpc.NewServer(
		irpc.WithServices(NewRendererIrpcService(serviceRenderer{s})),
		irpc.WithOnConnect(s.onConnect),
	)
	return s, nil
}

// Serve runs the irpc server until Close. It always returns a non-nil
// error, irpc.ErrServerClosed after Close.
func (s *Service) Serve() error {
	return s.server.Serve(s.listener)
}

// Close stops accepting connections and closes the open ones.
func (s *Service) Close() error {
	return s.server.Close()
}

// Stats is a snapshot of the service counters.
type Stats struct {
	Connections int64  `json:"connections"`
	Frames      uint64 `json:"frames"`
	Failures    uint64 `json:"failures"`
}

func (s *Service) Stats() Stats {
	return Stats{
		Connections: s.conns.Load(),
		Frames:      s.frames.Load(),
		Failures:    s.failures.Load(),
	}
}

// ServeHTTP upgrades the request to a websocket and passes it to Serve.
func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.originPatterns,
		Subprotocols:   s.subprotocols,
	})
	if err != nil {
		render.Logger().Warn("websocket accept", "remote", r.RemoteAddr, "err", err)
		return
	}
	c.SetReadLimit(maxRequestSize)

	if err := s.listener.push(r.Context(), c); err != nil {
		render.Logger().Warn("websocket handoff", "remote", r.RemoteAddr, "err", err)
		c.Close(websocket.StatusGoingAway, "server shutting down")
	}
}

// onConnect runs on its own goroutine for every accepted connection and
// returns when the connection is done.
func (s *Service) onConnect(ep *irpc.Endpoint) {
	n := s.conns.Add(1)
	render.Logger().Info("got connection", "remote", ep.RemoteAddr(), "connections", n)

	<-ep.Context().Done()

	n = s.conns.Add(-1)
	render.Logger().Info("connection done", "remote", ep.RemoteAddr(), "connections", n, "cause", context.Cause(ep.Context()))
}

// serviceRenderer is the Renderer irpc calls into. It enforces the limits,
// keeps the counters and turns failures into RemoteError.
type serviceRenderer struct {
	s *Service
}

func (sr serviceRenderer) RenderFrame(ctx context.Context, req render.Request) (*render.Frame, error) {
	s := sr.s
	err := s.limits.Check(req)
	var frame *render.Frame
	if err == nil {
		frame, err = s.renderer.RenderFrame(ctx, req)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, err
		}
		s.failures.Add(1)
		render.Logger().Debug("render failed", "width", req.Width, "height", req.Height, "err", err)
		return nil, newRemoteError(err)
	}
	s.frames.Add(1)
	return frame, nil
}
