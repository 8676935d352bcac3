package mandel

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/coder/websocket"
)

// wsConn carries an irpc byte stream over websocket binary messages. Every
// Write goes out as one message, zstd compressed when the connection
// negotiated SubprotocolZstd; Read hands out messages in order.
//
// Addresses, deadlines and Close come from websocket.NetConn. irpc reads
// from a single goroutine and serializes its writes, so Read and Write
// need no locking of their own.
type wsConn struct {
	net.Conn
	ctx   context.Context
	ws    *websocket.Conn
	codec *zstdCodec

	buf []byte
}

// newWSConn wraps c. ctx bounds the life of the connection, not a single
// call.
func newWSConn(ctx context.Context, c *websocket.Conn) *wsConn {
	conn := &wsConn{
		Conn: websocket.NetConn(ctx, c, websocket.MessageBinary),
		ctx:  ctx,
		ws:   c,
	}
	if c.Subprotocol() == SubprotocolZstd {
		conn.codec = &messageCodec
	}
	return conn
}

func (c *wsConn) Read(p []byte) (int, error) {
	for len(c.buf) == 0 {
		typ, msg, err := c.ws.Read(c.ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return 0, io.EOF
			}
			return 0, err
		}
		if typ != websocket.MessageBinary {
			return 0, fmt.Errorf("got %v message, want binary", typ)
		}
		if c.codec != nil {
			if msg, err = c.codec.decompress(msg); err != nil {
				return 0, err
			}
		}
		c.buf = msg
	}

	n := copy(p, c.buf)
	c.buf = c.buf[n:]
	return n, nil
}

func (c *wsConn) Write(p []byte) (int, error) {
	msg := p
	if c.codec != nil {
		var err error
		if msg, err = c.codec.compress(p); err != nil {
			return 0, err
		}
	}
	if err := c.ws.Write(c.ctx, websocket.MessageBinary, msg); err != nil {
		return 0, err
	}
	return len(p), nil
}
