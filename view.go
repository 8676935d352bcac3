package mandel

import (
	"context"
	"errors"
	"sync"

	"github.com/marben/escape_mandel/render"
)

// ErrSuperseded is returned by View.Render when a newer render started
// before this one finished. Its frame is dropped.
var ErrSuperseded = errors.New("superseded by a newer view")

// View is the viewport of an interactive client. Zooms and renders may
// come from several goroutines; only the newest render paints, so frames
// never land out of order.
type View struct {
	width, height int

	mu        sync.Mutex
	transform render.Transform
	gen       uint64
	cancel    context.CancelFunc
}

func NewView(width, height int, t render.Transform) *View {
	return &View{width: width, height: height, transform: t}
}

// Transform returns the current viewport.
func (v *View) Transform() render.Transform {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.transform
}

// Zoom scales the view by factor around pixel (x, y).
func (v *View) Zoom(x, y int, factor float64) {
	v.mu.Lock()
	v.transform = v.transform.ZoomAt(x, y, v.width, v.height, factor)
	v.mu.Unlock()
}

// Request describes the current viewport as a render request.
func (v *View) Request() render.Request {
	return v.request(v.Transform())
}

func (v *View) request(t render.Transform) render.Request {
	req := render.NewRequest(v.width, v.height)
	req.Options.OffsetX = t.OffsetX
	req.Options.OffsetY = t.OffsetY
	req.Options.Scale = t.Scale
	req.Options.Convention = t.Convention
	return req
}

// Render renders the current viewport with r and hands the frame to
// paint. Starting a render cancels the one in flight; if that one finishes
// anyway it returns ErrSuperseded without painting.
func (v *View) Render(ctx context.Context, r Renderer, paint func(*render.Frame)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	v.mu.Lock()
	if v.cancel != nil {
		v.cancel()
	}
	v.cancel = cancel
	v.gen++
	gen := v.gen
	req := v.request(v.transform)
	v.mu.Unlock()

	frame, err := r.RenderFrame(ctx, req)

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		return ErrSuperseded
	}
	v.cancel = nil
	if err != nil {
		return err
	}
	paint(frame)
	return nil
}
