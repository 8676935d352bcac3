package mandel

import (
	"context"
	"fmt"

	"github.com/coder/websocket"
	"github.com/marben/escape_mandel/render"
	"github.com/marben/irpc"
)

// Client renders frames on a remote Service through the generated irpc
// client. Calls may run concurrently; they share one websocket.
type Client struct {
	ep     *irpc.Endpoint
	remote *RendererIrpcClient
}

// Dial connects to the websocket endpoint at url (ws:// or wss://).
// Dialing only uses ctx; the connection lives until Close.
func Dial(ctx context.Context, url string) (*Client, error) {
	c, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{
		Subprotocols: []string{SubprotocolZstd, SubprotocolRaw},
	})
	if err != nil {
		return nil, fmt.Errorf("websocket.Dial %q: %w", url, err)
	}
	c.SetReadLimit(maxMessageSize)

	conn := newWSConn(context.Background(), c)
	ep := irpc.NewEndpoint(conn,
		irpc.WithLocalAddress(conn.LocalAddr()),
		irpc.WithRemoteAddress(conn.RemoteAddr()),
	)
	remote, err := NewRendererIrpcClient(ep)
	if err != nil {
		ep.Close()
		return nil, fmt.Errorf("irpc client: %w", err)
	}
	return &Client{ep: ep, remote: remote}, nil
}

// RenderFrame asks the server for req. Failures the server reports come
// back as *RemoteError. When ctx ends first the server is told to stop and
// ctx's error is returned.
func (c *Client) RenderFrame(ctx context.Context, req render.Request) (*render.Frame, error) {
	frame, err := c.remote.RenderFrame(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, parseRemoteError(err)
	}
	if err := checkFrame(frame, req); err != nil {
		return nil, err
	}
	return frame, nil
}

// checkFrame rejects frames that are not what was asked for.
func checkFrame(f *render.Frame, req render.Request) error {
	if f == nil {
		return fmt.Errorf("server returned no frame for %dx%d", req.Width, req.Height)
	}
	if f.Width != req.Width || f.Height != req.Height {
		return fmt.Errorf("server returned %dx%d frame for %dx%d", f.Width, f.Height, req.Width, req.Height)
	}
	if len(f.Pix) != f.Width*f.Height*4 {
		return fmt.Errorf("frame %dx%d: got %d pixel bytes, want %d", f.Width, f.Height, len(f.Pix), f.Width*f.Height*4)
	}
	return nil
}

// Close closes the connection. Calls in flight fail.
func (c *Client) Close() error {
	return c.ep.Close()
}
