package mandel

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/marben/escape_mandel/render"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// Output image formats.
const (
	FormatPNG  = "png"
	FormatTIFF = "tiff"
)

// FormatFromPath picks the output format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return FormatPNG, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("unsupported image extension %q (want .png, .tif or .tiff)", ext)
	}
}

// WriteImage encodes img to w in the given format.
func WriteImage(w io.Writer, img image.Image, format string) error {
	switch format {
	case FormatPNG, "":
		return png.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	return fmt.Errorf("unsupported image format %q", format)
}

// Downsample shrinks a frame rendered at factor times the target size
// back to the target size, smoothing the edges of the set.
func Downsample(f *render.Frame, factor int) *image.RGBA {
	if factor <= 1 {
		return f.Image()
	}
	dst := image.NewRGBA(image.Rect(0, 0, f.Width/factor, f.Height/factor))
	draw.CatmullRom.Scale(dst, dst.Bounds(), f.Image(), f.Bounds(), draw.Src, nil)
	return dst
}

// Supersample returns req scaled up by factor: the frame it describes
// covers the same plane area with factor² as many pixels.
func Supersample(req render.Request, factor int) render.Request {
	if factor <= 1 {
		return req
	}
	k := float64(factor)
	req.Width *= factor
	req.Height *= factor
	req.Options.OffsetX *= k
	req.Options.OffsetY *= k
	if req.Options.Convention == render.ConventionFixed {
		req.Options.Scale *= k
	}
	return req
}
