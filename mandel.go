package mandel

import (
	"fmt"
	"sort"

	"github.com/marben/escape_mandel/render"
)

// Region within the Mandelbrot set
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Center returns the point in the middle of the region.
func (r Region) Center() complex128 {
	return complex((r.Xmin+r.Xmax)/2, (r.Ymin+r.Ymax)/2)
}

// Transform returns a viewport showing r in a width×height image. The
// region's horizontal extent fills the image width; pixels stay square, so
// the vertical extent shown depends on the aspect ratio. The region's
// center lands in the middle of the image.
func (r Region) Transform(width, height int) render.Transform {
	unit := float64(width) / (r.Xmax - r.Xmin) // pixels per plane unit
	c := r.Center()
	return render.Transform{
		OffsetX: float64(width)/2 - real(c)*unit,
		OffsetY: float64(height)/2 - imag(c)*unit,
		Scale:   unit / render.BaseScale,
	}
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Whole set, as framed by the original viewer
	FullSet = Region{
		Xmin: -2.5,
		Xmax: 1,
		Ymin: -1.25,
		Ymax: 1.25,
	}

	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		Xmin: -1.85,
		Xmax: -1.75,
		Ymin: -0.10,
		Ymax: -0.02,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Region{
		Xmin: -1.7390,
		Xmax: -1.7375,
		Ymin: -0.0235,
		Ymax: -0.0220,
	}
)

// Landmarks indexes the regions above by the names the command line tools
// accept.
var Landmarks = map[string]Region{
	"full":                 FullSet,
	"seahorse-valley":      SeahorseValley,
	"elephant-valley":      ElephantValley,
	"spiral-minibrot":      SpiralMinibrot,
	"triple-spiral":        TripleSpiral,
	"dragon-valley":        ValleyOfTheDragon,
	"mini-spiral-minibrot": MinibrotInMiniSpiral,
}

// LookupRegion returns the landmark registered under name.
func LookupRegion(name string) (Region, error) {
	r, ok := Landmarks[name]
	if !ok {
		return Region{}, fmt.Errorf("unknown region %q (known: %v)", name, LandmarkNames())
	}
	return r, nil
}

// LandmarkNames returns the sorted landmark names.
func LandmarkNames() []string {
	names := make([]string, 0, len(Landmarks))
	for name := range Landmarks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
