package render

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Task is one render request travelling to a dispatcher worker.
type Task struct {
	ID      uint64
	Request Request

	reply chan<- Result
}

// Result carries either a complete frame or the error that prevented it.
type Result struct {
	ID    uint64
	Frame *Frame
	Err   error
}

// Dispatcher renders requests off the caller's goroutine. Tasks travel to
// a fixed set of workers over a task channel; each result comes back on
// the channel returned by Submit. A render is never interrupted: a caller
// that stops waiting simply drops the result.
type Dispatcher struct {
	tasks chan Task
	done  chan struct{}
	opts  []Option

	nextID    atomic.Uint64
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewDispatcher starts workers goroutines (GOMAXPROCS if workers <= 0).
// opts apply to every frame the dispatcher renders.
func NewDispatcher(workers int, opts ...Option) *Dispatcher {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	d := &Dispatcher{
		tasks: make(chan Task),
		done:  make(chan struct{}),
		opts:  opts,
	}

	d.wg.Add(workers)
	for range workers {
		go d.worker()
	}

	Logger().Info("dispatcher started", "workers", workers)
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for {
		select {
		case <-d.done:
			return
		case task := <-d.tasks:
			start := time.Now()
			frame, err := RenderRequest(task.Request, d.opts...)
			Logger().Debug("task finished", "id", task.ID, "elapsed", time.Since(start), "err", err)
			task.reply <- Result{ID: task.ID, Frame: frame, Err: err}
		}
	}
}

// Submit hands req to a worker. The returned channel receives exactly one
// Result. Submit blocks until a worker is free, ctx is done or the
// dispatcher is closed.
func (d *Dispatcher) Submit(ctx context.Context, req Request) (<-chan Result, error) {
	reply := make(chan Result, 1)
	task := Task{ID: d.nextID.Add(1), Request: req, reply: reply}

	select {
	case d.tasks <- task:
		return reply, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-d.done:
		return nil, ErrDispatcherClosed
	}
}

// Do submits req and waits for its frame.
func (d *Dispatcher) Do(ctx context.Context, req Request) (*Frame, error) {
	reply, err := d.Submit(ctx, req)
	if err != nil {
		return nil, err
	}

	select {
	case res := <-reply:
		return res.Frame, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// RenderFrame is Do under the name shared by all frame renderers.
func (d *Dispatcher) RenderFrame(ctx context.Context, req Request) (*Frame, error) {
	return d.Do(ctx, req)
}

// Close stops accepting tasks and waits for running renders to finish.
// It is safe to call more than once.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.done)
		d.wg.Wait()
		Logger().Info("dispatcher closed")
	})
}
