// Package render computes escape-time images of the Mandelbrot set.
//
// A frame is rendered by mapping every pixel through a Transform onto the
// complex plane, measuring how fast the point escapes (Escape) and turning
// that measure into a color (ColorOf). Pixels are independent, so a frame
// is split into row tiles that are rendered on several goroutines, each
// writing its own part of the buffer.
package render

import (
	"image"
	"sync"
	"time"
)

// Frame is a rendered image: Width*Height pixels, 4 bytes each in R, G, B,
// A order, rows top to bottom.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

// Bounds returns the frame rectangle anchored at the origin.
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width, f.Height)
}

// Image returns an *image.RGBA sharing f's pixel buffer.
func (f *Frame) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    f.Pix,
		Stride: 4 * f.Width,
		Rect:   f.Bounds(),
	}
}

// Render renders a width×height frame with the configuration built from
// opts. See Config.Render.
func Render(width, height int, t Transform, opts ...Option) (*Frame, error) {
	return NewConfig(opts...).Render(width, height, t)
}

// Render validates its arguments, then returns a fully rendered frame.
// Nothing is allocated when validation fails.
func (c Config) Render(width, height int, t Transform) (*Frame, error) {
	if err := c.CheckSize(width, height); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	f := &Frame{Width: width, Height: height, Pix: make([]byte, width*height*4)}

	tiles := SplitRect(f.Bounds(), width, c.tileHeight())
	workers := min(c.workers(), len(tiles))

	if workers <= 1 {
		for _, tile := range tiles {
			c.renderTile(f, t, tile)
		}
	} else {
		ch := make(chan image.Rectangle)
		var wg sync.WaitGroup
		wg.Add(workers)
		for range workers {
			go func() {
				defer wg.Done()
				for tile := range ch {
					c.renderTile(f, t, tile)
				}
			}()
		}
		for _, tile := range tiles {
			ch <- tile
		}
		close(ch)
		wg.Wait()
	}

	Logger().Debug("frame rendered",
		"width", width, "height", height,
		"tiles", len(tiles), "workers", workers,
		"elapsed", time.Since(start))
	return f, nil
}

// renderTile writes every pixel of tile. Tiles never overlap, so
// concurrent calls for different tiles touch disjoint parts of f.Pix.
func (c Config) renderTile(f *Frame, t Transform, tile image.Rectangle) {
	policy := c.policy()
	for y := tile.Min.Y; y < tile.Max.Y; y++ {
		i := (y*f.Width + tile.Min.X) * 4
		for x := tile.Min.X; x < tile.Max.X; x++ {
			m := Escape(t.Map(x, y, f.Height), c.MaxIterations, c.Bailout)
			col := ColorOf(m, policy)
			f.Pix[i+0] = col.R
			f.Pix[i+1] = col.G
			f.Pix[i+2] = col.B
			f.Pix[i+3] = col.A
			i += 4
		}
	}
}
