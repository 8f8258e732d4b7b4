package probe

// The pipeline stages. Each one is a plain function of its inputs, so
// they can be run and tested on their own; Probe.Compute strings them
// together.

import(
	"image"
	"math"

	"github.com/mdouchement/hdr/hdrcolor"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/abworrall/envprobe/pkg/ecolor"
	"github.com/abworrall/envprobe/pkg/sampling"
	"github.com/abworrall/envprobe/pkg/sg"
	"github.com/abworrall/envprobe/pkg/sh"
)

// Generate fills a w*h lat-long image by evaluating f along each pixel's direction.
func Generate(w, h int, f func(dir r3.Vec) hdrcolor.RGB) *Image {
	img := NewImage(w, h)
	img.ForPixels(func(p *Pixel, x, y int) {
		*p = Pixel{RGB: f(img.Direction(x, y)), A: 1.0}
	})
	return img
}

// RasterizeRadiance samples the input along each output pixel's
// direction, with no filtering. This is the reference radiance image.
func RasterizeRadiance(w, h int, radiance RadianceFunc) *Image {
	return Generate(w, h, radiance)
}

// Project fits both bases to the radiance in a single pass over n
// uniform sphere samples. The lobes passed in supply the axes and
// sharpness; a fitted copy is returned.
func Project(radiance RadianceFunc, lobes sg.LobeSet, n int) (sg.LobeSet, sh.L2RGB) {
	fitted := lobes.Copy()
	coeffs := sh.L2RGB{}

	for i:=0; i<n; i++ {
		dir := sampling.UniformSphere(sampling.Hammersley(i, n))
		sample := radiance(dir)

		fitted.AddSample(dir, sample, 1.0 / float64(n))
		sh.AddWeighted(&coeffs, sh.EvaluateL2(dir), ecolor.Scale(sample, sampling.FourPi / float64(n)))
	}

	return fitted, coeffs
}

func ProjectSH(radiance RadianceFunc, n int) sh.L2RGB {
	_, coeffs := Project(radiance, nil, n)
	return coeffs
}

func ProjectSG(radiance RadianceFunc, lobes sg.LobeSet, n int) sg.LobeSet {
	fitted, _ := Project(radiance, lobes, n)
	return fitted
}

// ReconstructSG sums all the lobes along each pixel's direction.
func ReconstructSG(w, h int, lobes sg.LobeSet) *Image {
	return Generate(w, h, lobes.Evaluate)
}

// ReconstructSH evaluates the SH expansion along each pixel's direction.
// Ringing can take it below zero, which has no physical meaning, so clamp.
func ReconstructSH(w, h int, coeffs sh.L2RGB) *Image {
	return Generate(w, h, func(dir r3.Vec) hdrcolor.RGB {
		return ecolor.HDRRGBFloorAt(sh.Dot(coeffs, sh.EvaluateL2(dir)), 0.0)
	})
}

// IrradianceSG convolves the lighting lobes with the BRDF lobe, turned to
// face along each pixel's direction. Divided by pi, so a uniform
// environment of L comes out as L.
func IrradianceSG(w, h int, lobes sg.LobeSet, brdf sg.Lobe) *Image {
	return Generate(w, h, func(dir r3.Vec) hdrcolor.RGB {
		kernel := brdf
		kernel.Axis = dir
		return ecolor.Scale(lobes.Convolve(kernel), 1.0 / math.Pi)
	})
}

// IrradianceSH is the analytic cosine convolution, divided by pi and clamped.
func IrradianceSH(w, h int, coeffs sh.L2RGB) *Image {
	return Generate(w, h, func(dir r3.Vec) hdrcolor.RGB {
		return ecolor.HDRRGBFloorAt(ecolor.Scale(sh.EvaluateDiffuseL2(coeffs, dir), 1.0 / math.Pi), 0.0)
	})
}

// Combine lays tiles out left to right, top to bottom, cols to a row.
// All tiles are assumed to be the size of the first.
func Combine(tiles []*Image, cols int) *Image {
	w, h := tiles[0].Width, tiles[0].Height
	rows := (len(tiles) + cols - 1) / cols

	combined := NewImage(w*cols, h*rows)
	for i, tile := range tiles {
		combined.Paste(tile, image.Point{X: w * (i % cols), Y: h * (i / cols)})
	}
	return combined
}
