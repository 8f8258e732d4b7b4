package probe

import(
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/abworrall/envprobe/pkg/ecolor"
)

// Stats summarises an image. The lat-long layout gives the poles far
// more pixels than their share of the sphere, so we also weight each row
// by sin(theta) to get an estimate of the mean over the sphere.
type Stats struct {
	Mean              float64  // red channel, plain mean over pixels
	StdDev            float64  // red channel, over pixels
	WeightedMean      float64  // red channel, weighted by solid angle
	WeightedLuminance float64  // luminance, weighted by solid angle
}

func (s Stats)String() string {
	return fmt.Sprintf("mean %f (sd %f), solid angle weighted mean %f, luminance %f",
		s.Mean, s.StdDev, s.WeightedMean, s.WeightedLuminance)
}

func ImageStats(img *Image) Stats {
	n := img.PixelCount()
	reds := make([]float64, 0, n)
	lums := make([]float64, 0, n)
	weights := make([]float64, 0, n)

	img.ForPixels(func(p *Pixel, x, y int) {
		reds = append(reds, p.R)
		lums = append(lums, ecolor.Luminance(p.RGB))
		// The last row's texcoord spills just past the pole; don't let it go negative
		weights = append(weights, math.Max(0.0, math.Sin(math.Pi * img.Texcoord(x, y).V)))
	})

	s := Stats{}
	s.Mean, s.StdDev = stat.MeanStdDev(reds, nil)
	s.WeightedMean = stat.Mean(reds, weights)
	s.WeightedLuminance = stat.Mean(lums, weights)

	return s
}
