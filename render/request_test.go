package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestRequestUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Request
	}{
		{
			name: "tuple without options",
			in:   `[4, 3]`,
			want: NewRequest(4, 3),
		},
		{
			name: "tuple with partial options",
			in:   `[4, 3, {"scale": 2, "offsetX": 10}]`,
			want: Request{Width: 4, Height: 3, Options: func() Options {
				o := DefaultOptions()
				o.Scale = 2
				o.OffsetX = 10
				return o
			}()},
		},
		{
			name: "object form",
			in:   `{"width": 4, "height": 3, "options": {"scale": 2, "offsetX": 10}}`,
			want: Request{Width: 4, Height: 3, Options: func() Options {
				o := DefaultOptions()
				o.Scale = 2
				o.OffsetX = 10
				return o
			}()},
		},
		{
			name: "object with null options",
			in:   `{"width": 1, "height": 2, "options": null}`,
			want: NewRequest(1, 2),
		},
		{
			name: "explicit zero scale is kept",
			in:   `[5, 5, {"scale": 0}]`,
			want: Request{Width: 5, Height: 5, Options: func() Options {
				o := DefaultOptions()
				o.Scale = 0
				return o
			}()},
		},
		{
			name: "all options",
			in:   `[2, 2, {"offsetY": -1, "maxIterations": 50, "bailout": 4, "policy": "hue", "convention": "height"}]`,
			want: Request{Width: 2, Height: 2, Options: Options{
				OffsetY:       -1,
				Scale:         1,
				MaxIterations: 50,
				Bailout:       4,
				Policy:        PolicyHue,
				Convention:    ConventionHeight,
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Request
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRequestUnmarshal_Errors(t *testing.T) {
	for _, in := range []string{
		`[1]`,
		`[1, 2, {}, 4]`,
		`["wide", 2]`,
		`[1, 2, {"convention": "diagonal"}]`,
		`{"width": "x"}`,
	} {
		var r Request
		if err := json.Unmarshal([]byte(in), &r); err == nil {
			t.Errorf("Unmarshal(%s) succeeded: %+v", in, r)
		}
	}
}

func TestRequestMarshal_Tuple(t *testing.T) {
	b, err := json.Marshal(NewRequest(2, 3))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(b), `[2,3,{`) {
		t.Errorf("Marshal = %s, want tuple form", b)
	}
	var back Request
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back != NewRequest(2, 3) {
		t.Errorf("decoded %+v", back)
	}
}

func TestRenderRequest(t *testing.T) {
	req := NewRequest(20, 10)
	req.Options.OffsetX = 10
	req.Options.OffsetY = 5
	req.Options.Scale = 0.05
	req.Options.MaxIterations = 100
	req.Options.Policy = PolicySaturation

	got, err := RenderRequest(req, WithWorkers(2))
	if err != nil {
		t.Fatal(err)
	}
	want, err := Render(20, 10, Transform{OffsetX: 10, OffsetY: 5, Scale: 0.05},
		WithMaxIterations(100), WithPolicy(SaturationPolicy{}))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Pix, want.Pix) {
		t.Error("RenderRequest differs from Render with the same settings")
	}
}

func TestRenderRequest_Rejects(t *testing.T) {
	req := NewRequest(5, 5)
	req.Options.Scale = 0
	if _, err := RenderRequest(req); !errors.Is(err, ErrInvalidScale) {
		t.Errorf("scale 0: err = %v", err)
	}

	req = NewRequest(0, 5)
	if _, err := RenderRequest(req); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("width 0: err = %v", err)
	}

	req = NewRequest(5, 5)
	req.Options.Policy = "plasma"
	if _, err := RenderRequest(req); !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("policy plasma: err = %v", err)
	}
}
