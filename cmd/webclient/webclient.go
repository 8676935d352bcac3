//go:build js && wasm

// webclient.go is a WASM web client for the Mandelbrot server.
// It asks the server for frames over a websocket and paints them onto a canvas.
// Click to zoom in at a point, shift-click to zoom out.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"syscall/js"

	mandel "github.com/marben/escape_mandel"
	"github.com/marben/escape_mandel/render"
)

func main() {
	logScreenf("Starting WASM web client...")

	// Step 1: Determine server address for WebSocket connection
	loc := js.Global().Get("window").Get("location")
	proto := "ws"
	if loc.Get("protocol").String() == "https:" {
		proto = "wss"
	}
	websocketURL := proto + "://" + loc.Get("host").String() + "/ws"

	// Step 2: Connect to server
	logScreenf("Connecting to Mandelbrot server at %s...", websocketURL)
	client, err := mandel.Dial(context.Background(), websocketURL)
	if err != nil {
		logFatalf("Failed to connect: %v", err)
	}
	logScreenf("WebSocket connected.")

	// Step 3: Size the canvas to the window and show the whole set
	canvas := js.Global().Get("document").Call("getElementById", "myCanvas")
	width := js.Global().Get("window").Get("innerWidth").Int()
	height := js.Global().Get("window").Get("innerHeight").Int()
	initCanvas(canvas, width, height, "#3a3a6e")

	v := &viewer{
		client: client,
		canvas: canvas,
		view:   mandel.NewView(width, height, render.CenteredTransform(width, height, 0.4)),
	}
	go v.draw()

	// Step 4: Zoom on click
	canvas.Call("addEventListener", "click", js.FuncOf(func(_ js.Value, args []js.Value) any {
		ev := args[0]
		factor := 2.0
		if ev.Get("shiftKey").Bool() {
			factor = 0.5
		}
		v.view.Zoom(ev.Get("offsetX").Int(), ev.Get("offsetY").Int(), factor)
		// Rendering blocks on the network; never do that in a JS callback.
		go v.draw()
		return nil
	}))

	// Step 5: Block main goroutine to keep WASM running
	select {}
}

type viewer struct {
	client *mandel.Client
	canvas js.Value
	view   *mandel.View
}

// draw renders the current view. A click while a frame is on its way
// cancels it, so only the newest view reaches the canvas.
func (v *viewer) draw() {
	logScreenf("Rendering at scale %g...", v.view.Transform().Scale)
	err := v.view.Render(context.Background(), v.client, func(f *render.Frame) {
		drawFrame(v.canvas, f)
	})
	if err != nil && !errors.Is(err, mandel.ErrSuperseded) {
		logScreenf("RenderFrame: %v", err)
	}
}

// logScreenf appends a formatted message to the log element in the DOM,
func logScreenf(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)

	doc := js.Global().Get("document")
	logElem := doc.Call("getElementById", "log")
	logElem.Set("textContent", logElem.Get("textContent").String()+msg+"\n")
}

// logFatalf logs a fatal error to the log window and terminates the program.
func logFatalf(format string, a ...any) {
	logScreenf("FATAL: "+format, a...)
	log.Fatalf(format, a...)
}
