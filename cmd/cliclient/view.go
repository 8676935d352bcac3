package main

import (
	"fmt"
	"image"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	mandel "github.com/marben/escape_mandel"
	"github.com/marben/escape_mandel/render"
)

// viewFlags are the flags shared by every command that produces an image.
type viewFlags struct {
	width, height int

	region   string
	centered bool
	offsetX  float64
	offsetY  float64
	scale    float64

	maxIterations int
	bailout       float64
	policy        string
	convention    string

	supersample int
	out         string
}

func (v *viewFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.IntVar(&v.width, "width", 1920, "image width in pixels")
	flags.IntVar(&v.height, "height", 1080, "image height in pixels")
	flags.StringVar(&v.region, "region", "full", "landmark to frame (see the regions command)")
	flags.BoolVar(&v.centered, "centered", false, "origin two thirds across and halfway down, scaled by image height")
	flags.Float64Var(&v.offsetX, "offset-x", 0, "pixel column mapped onto re = 0")
	flags.Float64Var(&v.offsetY, "offset-y", 0, "pixel row mapped onto im = 0")
	flags.Float64Var(&v.scale, "scale", 1, "zoom factor")
	flags.IntVar(&v.maxIterations, "max-iterations", render.DefaultMaxIterations, "iteration budget per pixel")
	flags.Float64Var(&v.bailout, "bailout", render.DefaultBailout, "escape radius")
	flags.StringVar(&v.policy, "policy", render.PolicyGrowth, "color policy (growth, saturation, hue)")
	flags.StringVar(&v.convention, "convention", "fixed", "scale reference (fixed or height)")
	flags.IntVar(&v.supersample, "supersample", 1, "render at N times the size and scale down")
	flags.StringVarP(&v.out, "out", "o", "mandel.png", "output file (.png, .tif or .tiff)")
}

// request builds the render request. The viewport comes from --centered or
// --region; explicitly set --offset-x, --offset-y, --scale and
// --convention override it.
func (v *viewFlags) request(cmd *cobra.Command) (render.Request, error) {
	if v.supersample < 1 {
		return render.Request{}, fmt.Errorf("supersample must be at least 1, got %d", v.supersample)
	}

	req := render.NewRequest(v.width, v.height)

	var t render.Transform
	if v.centered {
		t = render.CenteredTransform(v.width, v.height, 0.4)
	} else {
		region, err := mandel.LookupRegion(v.region)
		if err != nil {
			return req, err
		}
		t = region.Transform(v.width, v.height)
	}

	flags := cmd.Flags()
	if flags.Changed("offset-x") {
		t.OffsetX = v.offsetX
	}
	if flags.Changed("offset-y") {
		t.OffsetY = v.offsetY
	}
	if flags.Changed("scale") {
		t.Scale = v.scale
	}
	if flags.Changed("convention") {
		c, err := render.ParseConvention(v.convention)
		if err != nil {
			return req, err
		}
		t.Convention = c
	}

	req.Options.OffsetX = t.OffsetX
	req.Options.OffsetY = t.OffsetY
	req.Options.Scale = t.Scale
	req.Options.Convention = t.Convention
	req.Options.MaxIterations = v.maxIterations
	req.Options.Bailout = v.bailout
	req.Options.Policy = v.policy
	return req, nil
}

// save writes frame, scaled down by the supersampling factor, to v.out.
func (v *viewFlags) save(frame *render.Frame) error {
	format, err := mandel.FormatFromPath(v.out)
	if err != nil {
		return err
	}
	return saveImage(v.out, format, mandel.Downsample(frame, v.supersample))
}

func saveImage(path, format string, img image.Image) error {
	slog.Info("saving rendered image", "path", path, "format", format)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := mandel.WriteImage(f, img, format); err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return f.Close()
}
