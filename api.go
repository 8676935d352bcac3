package mandel

import (
	"context"

	"github.com/marben/escape_mandel/render"
)

//go:generate go run github.com/marben/irpc/cmd/irpc $GOFILE

// Renderer renders whole frames. A call either returns a complete frame
// or an error; there is no partial delivery.
//
// *render.Dispatcher renders locally, *Client forwards to a server.
// RendererIrpcService and RendererIrpcClient in api_irpc.go carry it over
// irpc.
type Renderer interface {
	RenderFrame(ctx context.Context, req render.Request) (*render.Frame, error)
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(ctx context.Context, req render.Request) (*render.Frame, error)

func (f RendererFunc) RenderFrame(ctx context.Context, req render.Request) (*render.Frame, error) {
	return f(ctx, req)
}

var (
	_ Renderer = (*render.Dispatcher)(nil)
	_ Renderer = (*Client)(nil)
	_ Renderer = RendererFunc(nil)
)
