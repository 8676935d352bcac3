package mandel

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/marben/escape_mandel/render"
)

// Default image size for query requests that name none.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// ParseQuery builds a request from URL query parameters: width, height,
// region (a landmark name), offsetX, offsetY, scale, maxIterations,
// bailout, policy and convention. Explicit viewport parameters override the
// ones derived from region.
func ParseQuery(q url.Values) (render.Request, error) {
	req := render.NewRequest(DefaultWidth, DefaultHeight)

	var err error
	intParam := func(name string, dst *int) {
		if s := q.Get(name); s != "" && err == nil {
			var v int
			if v, err = strconv.Atoi(s); err != nil {
				err = fmt.Errorf("query %s: %w", name, err)
				return
			}
			*dst = v
		}
	}
	floatParam := func(name string, dst *float64) {
		if s := q.Get(name); s != "" && err == nil {
			var v float64
			if v, err = strconv.ParseFloat(s, 64); err != nil {
				err = fmt.Errorf("query %s: %w", name, err)
				return
			}
			*dst = v
		}
	}

	intParam("width", &req.Width)
	intParam("height", &req.Height)
	if err != nil {
		return req, err
	}

	if name := q.Get("region"); name != "" {
		region, err := LookupRegion(name)
		if err != nil {
			return req, err
		}
		t := region.Transform(req.Width, req.Height)
		req.Options.OffsetX, req.Options.OffsetY, req.Options.Scale = t.OffsetX, t.OffsetY, t.Scale
	}

	floatParam("offsetX", &req.Options.OffsetX)
	floatParam("offsetY", &req.Options.OffsetY)
	floatParam("scale", &req.Options.Scale)
	intParam("maxIterations", &req.Options.MaxIterations)
	floatParam("bailout", &req.Options.Bailout)
	if err != nil {
		return req, err
	}

	if s := q.Get("policy"); s != "" {
		req.Options.Policy = s
	}
	if s := q.Get("convention"); s != "" {
		c, err := render.ParseConvention(s)
		if err != nil {
			return req, err
		}
		req.Options.Convention = c
	}
	return req, nil
}

// ImageHandler renders the frame described by the query string (see
// ParseQuery) and responds with a PNG, or a TIFF when format=tiff.
// Requests outside limits get 400 without reaching r.
func ImageHandler(r Renderer, limits Limits) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, hr *http.Request) {
		if hr.Method != http.MethodGet && hr.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		q := hr.URL.Query()
		req, err := ParseQuery(q)
		if err == nil {
			err = limits.Check(req)
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		format := q.Get("format")
		if format == "" {
			format = FormatPNG
		}
		if format != FormatPNG && format != FormatTIFF {
			http.Error(w, fmt.Sprintf("unsupported format %q", format), http.StatusBadRequest)
			return
		}

		frame, err := r.RenderFrame(hr.Context(), req)
		if err != nil {
			http.Error(w, err.Error(), statusOf(err))
			return
		}

		w.Header().Set("Content-Type", "image/"+format)
		if err := WriteImage(w, frame.Image(), format); err != nil {
			render.Logger().Warn("write image", "err", err)
		}
	})
}

func statusOf(err error) int {
	var remote *RemoteError
	if errors.As(err, &remote) && remote.Unwrap() == nil {
		return http.StatusBadGateway
	}
	if errorCode(err) != CodeInternal {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
