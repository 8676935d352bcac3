package mandel

import (
	"context"
	"net"

	"github.com/coder/websocket"
)

// wsListener implements net.Listener for irpc.Server. Connections do not
// come from a socket: Service.ServeHTTP upgrades them and hands them over.
type wsListener struct {
	ch     chan net.Conn
	ctx    context.Context
	cancel context.CancelFunc
	addr   wsAddr
}

func newWSListener(addr string) *wsListener {
	ctx, cancel := context.WithCancel(context.Background())
	return &wsListener{
		ch:     make(chan net.Conn),
		ctx:    ctx,
		cancel: cancel,
		addr:   wsAddr{addr: addr},
	}
}

// push waits until Accept takes c. It fails with net.ErrClosed once the
// listener is closed, or with ctx's error if the caller gives up first.
func (l *wsListener) push(ctx context.Context, c *websocket.Conn) error {
	conn := newWSConn(l.ctx, c)
	select {
	case l.ch <- conn:
		return nil
	case <-l.ctx.Done():
		return net.ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *wsListener) Accept() (net.Conn, error) {
	select {
	case c := <-l.ch:
		return c, nil
	case <-l.ctx.Done():
		return nil, net.ErrClosed
	}
}

func (l *wsListener) Addr() net.Addr {
	return l.addr
}

// Close stops Accept. Connections already accepted stay open; they belong
// to the irpc server.
func (l *wsListener) Close() error {
	l.cancel()
	return nil
}

// wsAddr implements net.Addr
type wsAddr struct {
	addr string
}

func (a wsAddr) Network() string {
	return "ws"
}

func (a wsAddr) String() string {
	return a.addr
}
