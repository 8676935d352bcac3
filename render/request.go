package render

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Options are the per-request viewport and iteration settings. Fields
// missing from a decoded request keep their DefaultOptions value.
type Options struct {
	OffsetX       float64    `json:"offsetX"`
	OffsetY       float64    `json:"offsetY"`
	Scale         float64    `json:"scale"`
	MaxIterations int        `json:"maxIterations"`
	Bailout       float64    `json:"bailout"`
	Policy        string     `json:"policy"`
	Convention    Convention `json:"convention"`
}

func DefaultOptions() Options {
	return Options{
		Scale:         1,
		MaxIterations: DefaultMaxIterations,
		Bailout:       DefaultBailout,
		Policy:        PolicyGrowth,
		Convention:    ConventionFixed,
	}
}

// UnmarshalJSON decodes over DefaultOptions, so an omitted scale is 1 but
// an explicit "scale": 0 stays 0 and is rejected at render time.
func (o *Options) UnmarshalJSON(data []byte) error {
	type plain Options
	p := plain(DefaultOptions())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*o = Options(p)
	return nil
}

// Request asks for one width×height frame.
//
// On the wire a request is the tuple [width, height, options]; the object
// form {"width", "height", "options"} is accepted as well.
type Request struct {
	Width   int
	Height  int
	Options Options
}

// NewRequest returns a request with default options.
func NewRequest(width, height int) Request {
	return Request{Width: width, Height: height, Options: DefaultOptions()}
}

func (r Request) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.Width, r.Height, r.Options})
}

func (r *Request) UnmarshalJSON(data []byte) error {
	req := Request{Options: DefaultOptions()}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var tuple []json.RawMessage
		if err := json.Unmarshal(data, &tuple); err != nil {
			return err
		}
		if len(tuple) < 2 || len(tuple) > 3 {
			return fmt.Errorf("render request: want [width, height, options], got %d elements", len(tuple))
		}
		if err := json.Unmarshal(tuple[0], &req.Width); err != nil {
			return fmt.Errorf("render request width: %w", err)
		}
		if err := json.Unmarshal(tuple[1], &req.Height); err != nil {
			return fmt.Errorf("render request height: %w", err)
		}
		if len(tuple) == 3 {
			if err := json.Unmarshal(tuple[2], &req.Options); err != nil {
				return fmt.Errorf("render request options: %w", err)
			}
		}
	} else {
		obj := struct {
			Width   int      `json:"width"`
			Height  int      `json:"height"`
			Options *Options `json:"options"`
		}{Options: &req.Options}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		req.Width, req.Height = obj.Width, obj.Height
		if obj.Options != nil {
			req.Options = *obj.Options
		}
	}

	*r = req
	return nil
}

// Transform returns the viewport described by the request options.
func (r Request) Transform() Transform {
	return Transform{
		OffsetX:    r.Options.OffsetX,
		OffsetY:    r.Options.OffsetY,
		Scale:      r.Options.Scale,
		Convention: r.Options.Convention,
	}
}

// RenderRequest renders req. The request's iteration budget, bailout and
// policy override the corresponding opts.
func RenderRequest(req Request, opts ...Option) (*Frame, error) {
	policy, err := ParsePolicy(req.Options.Policy)
	if err != nil {
		return nil, err
	}

	all := make([]Option, 0, len(opts)+3)
	all = append(all, opts...)
	all = append(all,
		WithMaxIterations(req.Options.MaxIterations),
		WithBailout(req.Options.Bailout),
		WithPolicy(policy),
	)
	return Render(req.Width, req.Height, req.Transform(), all...)
}
