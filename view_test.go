package mandel

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/marben/escape_mandel/render"
)

func TestView_Zoom(t *testing.T) {
	start := render.CenteredTransform(40, 30, 0.4)
	v := NewView(40, 30, start)

	v.Zoom(10, 5, 2)
	want := start.ZoomAt(10, 5, 40, 30, 2)
	if got := v.Transform(); got != want {
		t.Errorf("Transform() = %+v, want %+v", got, want)
	}

	req := v.Request()
	if req.Width != 40 || req.Height != 30 || req.Transform() != want {
		t.Errorf("Request() = %+v", req)
	}
}

func TestView_RenderPaints(t *testing.T) {
	v := NewView(6, 4, render.CenteredTransform(6, 4, 0.4))

	var painted *render.Frame
	if err := v.Render(context.Background(), localRenderer(), func(f *render.Frame) { painted = f }); err != nil {
		t.Fatal(err)
	}
	if painted == nil || painted.Width != 6 || painted.Height != 4 {
		t.Fatalf("painted %+v", painted)
	}

	boom := errors.New("boom")
	failing := RendererFunc(func(context.Context, render.Request) (*render.Frame, error) { return nil, boom })
	if err := v.Render(context.Background(), failing, func(*render.Frame) { t.Error("painted a failed render") }); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestView_DropsSupersededFrames(t *testing.T) {
	v := NewView(8, 8, render.CenteredTransform(8, 8, 0.4))

	// The first render is slow and ignores cancellation, so its frame
	// arrives after the second one has been painted.
	slowStarted := make(chan struct{})
	release := make(chan struct{})
	slow := RendererFunc(func(_ context.Context, req render.Request) (*render.Frame, error) {
		close(slowStarted)
		<-release
		return render.RenderRequest(req)
	})

	// paint runs with the view locked.
	var mu sync.Mutex
	var painted []*render.Frame
	paint := func(f *render.Frame) {
		mu.Lock()
		defer mu.Unlock()
		painted = append(painted, f)
	}

	slowErr := make(chan error, 1)
	go func() { slowErr <- v.Render(context.Background(), slow, paint) }()
	<-slowStarted

	v.Zoom(2, 2, 2)
	if err := v.Render(context.Background(), localRenderer(), paint); err != nil {
		t.Fatalf("second Render: %v", err)
	}

	close(release)
	if err := <-slowErr; !errors.Is(err, ErrSuperseded) {
		t.Errorf("first Render = %v, want ErrSuperseded", err)
	}

	want, err := render.RenderRequest(v.Request())
	if err != nil {
		t.Fatal(err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(painted) != 1 {
		t.Fatalf("painted %d frames, want only the zoomed one", len(painted))
	}
	if !bytes.Equal(painted[0].Pix, want.Pix) {
		t.Error("painted frame is not the zoomed view")
	}
}

func TestView_CancelsSupersededRender(t *testing.T) {
	v := NewView(8, 8, render.CenteredTransform(8, 8, 0.4))

	started := make(chan struct{})
	blocking := RendererFunc(func(ctx context.Context, _ render.Request) (*render.Frame, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})

	first := make(chan error, 1)
	go func() {
		first <- v.Render(context.Background(), blocking, func(*render.Frame) { t.Error("painted a canceled render") })
	}()
	<-started

	if err := v.Render(context.Background(), localRenderer(), func(*render.Frame) {}); err != nil {
		t.Fatal(err)
	}
	if err := <-first; !errors.Is(err, ErrSuperseded) {
		t.Errorf("first Render = %v, want ErrSuperseded", err)
	}
}
