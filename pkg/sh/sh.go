package sh

// Real spherical harmonics, bands 0..2 (9 coefficients). Projection is a
// plain weighted sum, so partial accumulators can be added together in
// any order.

import(
	"math"

	"github.com/mdouchement/hdr/hdrcolor"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/abworrall/envprobe/pkg/ecolor"
)

const NumCoefficients = 9

// Normalization constants for the real SH basis functions
const(
	y00  = 0.282094791773878  // 1/(2 sqrt(pi))
	y1x  = 0.488602511902920  // sqrt(3/(4pi))
	y2xy = 1.092548430592079  // sqrt(15/(4pi))
	y20  = 0.315391565252520  // sqrt(5/(16pi))
	y22  = 0.546274215296040  // sqrt(15/(16pi))
)

// Per-band convolution weights for the clamped cosine lobe (Ramamoorthi & Hanrahan)
var(
	A0 = math.Pi
	A1 = 2.0 * math.Pi / 3.0
	A2 = math.Pi / 4.0
)

// L2 holds the basis functions evaluated at one direction, or a scalar signal's coefficients.
type L2 [NumCoefficients]float64

// L2RGB holds the coefficients of an RGB signal.
type L2RGB [NumCoefficients]hdrcolor.RGB

// EvaluateL2 evaluates the 9 basis functions at a unit direction.
func EvaluateL2(d r3.Vec) L2 {
	return L2{
		y00,

		-y1x * d.Y,
		 y1x * d.Z,
		-y1x * d.X,

		 y2xy * d.X * d.Y,
		-y2xy * d.Y * d.Z,
		 y20  * (3.0*d.Z*d.Z - 1.0),
		-y2xy * d.X * d.Z,
		 y22  * (d.X*d.X - d.Y*d.Y),
	}
}

func band(i int) int {
	switch {
	case i == 0: return 0
	case i < 4:  return 1
	}
	return 2
}

// AddWeighted accumulates basis*weight into acc. When estimating the
// projection integral, the caller folds the (sphere area / sample count)
// factor into weight.
func AddWeighted(acc *L2RGB, basis L2, weight hdrcolor.RGB) {
	for i:=0; i<NumCoefficients; i++ {
		acc[i] = ecolor.AddScaled(acc[i], weight, basis[i])
	}
}

// Add combines a partial accumulator into acc.
func (acc *L2RGB)Add(other L2RGB) {
	for i:=0; i<NumCoefficients; i++ {
		acc[i] = ecolor.Add(acc[i], other[i])
	}
}

// Dot reconstructs the signal at the direction the basis was evaluated at.
func Dot(coeffs L2RGB, basis L2) hdrcolor.RGB {
	ret := hdrcolor.RGB{}
	for i:=0; i<NumCoefficients; i++ {
		ret = ecolor.AddScaled(ret, coeffs[i], basis[i])
	}
	return ret
}

// EvaluateDiffuseL2 convolves the signal with a clamped cosine lobe around
// the normal, returning irradiance (not yet divided by pi).
func EvaluateDiffuseL2(coeffs L2RGB, normal r3.Vec) hdrcolor.RGB {
	attenuation := [3]float64{A0, A1, A2}
	basis := EvaluateL2(normal)

	ret := hdrcolor.RGB{}
	for i:=0; i<NumCoefficients; i++ {
		ret = ecolor.AddScaled(ret, coeffs[i], basis[i] * attenuation[band(i)])
	}
	return ret
}
