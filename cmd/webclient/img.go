//go:build js && wasm

package main

import (
	"syscall/js"
	"time"

	"github.com/marben/escape_mandel/render"
)

// drawFrame copies the frame's pixels onto the canvas.
func drawFrame(canvas js.Value, f *render.Frame) {
	start := time.Now()
	ctx := canvas.Call("getContext", "2d")

	// ImageData wants a Uint8ClampedArray of width * height * 4 bytes.
	jsData := js.Global().Get("Uint8ClampedArray").New(len(f.Pix))
	js.CopyBytesToJS(jsData, f.Pix)

	imageData := js.Global().Get("ImageData").New(jsData, f.Width, f.Height)
	ctx.Call("putImageData", imageData, 0, 0)
	logScreenf("draw took %s", time.Since(start))
}

// initCanvas sizes the canvas and fills it with color until the first
// frame arrives.
func initCanvas(canvas js.Value, width, height int, color string) {
	canvas.Set("width", width)
	canvas.Set("height", height)

	ctx := canvas.Call("getContext", "2d")
	ctx.Set("fillStyle", color)
	ctx.Call("fillRect", 0, 0, width, height)
}
