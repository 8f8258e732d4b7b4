package sg

// Spherical Gaussians: G(v) = mu * exp(lambda * (dot(p, v) - 1))
//
// The closed forms below are all variations on one integral,
//   int_sphere exp(d . v) dv = 2pi (e^|d| - e^-|d|) / |d|
// which we always evaluate as e^|d| * (1 - e^-2|d|) / |d|, so nothing
// overflows for sharp lobes and nothing cancels for wide ones.

import(
	"fmt"
	"math"

	"github.com/mdouchement/hdr/hdrcolor"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/abworrall/envprobe/pkg/ecolor"
	"github.com/abworrall/envprobe/pkg/sampling"
)

// A Lobe is a single spherical gaussian.
type Lobe struct {
	Axis   r3.Vec        // p, unit length
	Lambda float64       // sharpness, > 0. Bigger is narrower.
	Mu     hdrcolor.RGB  // amplitude per channel
}

func (l Lobe)String() string {
	return fmt.Sprintf("SG[axis(%6.3f,%6.3f,%6.3f), lambda %.3f, mu %s]",
		l.Axis.X, l.Axis.Y, l.Axis.Z, l.Lambda, ecolor.String(l.Mu))
}

// Evaluate returns the unit amplitude lobe's value in the given
// direction; 1.0 on the axis, falling towards exp(-2*lambda) opposite it.
func Evaluate(axis r3.Vec, lambda float64, dir r3.Vec) float64 {
	if dir == axis {
		return 1.0
	}
	return math.Exp(lambda * (r3.Dot(axis, dir) - 1.0))
}

func (l Lobe)Evaluate(dir r3.Vec) hdrcolor.RGB {
	return ecolor.Scale(l.Mu, Evaluate(l.Axis, l.Lambda, dir))
}

// oneMinusExpOverX is (1 - e^-2x) / x, which heads to 2 as x goes to 0.
func oneMinusExpOverX(x float64) float64 {
	if x < 1e-4 {
		return 2.0 - 2.0*x + 4.0/3.0*x*x
	}
	return -math.Expm1(-2.0*x) / x
}

// Integral of the unit amplitude lobe over the sphere. Tends to 4pi as
// lambda goes to 0, and to 2pi/lambda for sharp lobes.
func Integral(lambda float64) float64 {
	return sampling.TwoPi * oneMinusExpOverX(lambda)
}

// Dot is the integral over the sphere of the product of two lobes. The
// product of two SGs is another SG, with axis along lambdaA.pA + lambdaB.pB.
func Dot(a, b Lobe) hdrcolor.RGB {
	dm := r3.Norm(r3.Add(r3.Scale(a.Lambda, a.Axis), r3.Scale(b.Lambda, b.Axis)))
	integral := sampling.TwoPi * math.Exp(dm - a.Lambda - b.Lambda) * oneMinusExpOverX(dm)

	return ecolor.Scale(ecolor.Mult(a.Mu, b.Mu), integral)
}

// FindMu searches for the amplitude at which a lobe of the given
// sharpness integrates to target over the sphere. The integral grows
// monotonically with mu, so we bracket it and then bisect.
func FindMu(lambda, target float64) float64 {
	if target <= 0.0 {
		return 0.0
	}

	integral := Integral(lambda)
	lo, hi := 0.0, 1.0
	for hi * integral < target {
		lo = hi
		hi *= 2.0
	}

	for i:=0; i<64 && hi-lo > 1e-12*hi; i++ {
		mid := 0.5 * (lo + hi)
		if mid * integral < target {
			lo = mid
		} else {
			hi = mid
		}
	}

	return 0.5 * (lo + hi)
}

// NewDiffuseLobe approximates the clamped cosine BRDF with a single lobe,
// normalized so it integrates to pi. Point it along the surface normal
// before use.
func NewDiffuseLobe(lambda float64) Lobe {
	return Lobe{
		Axis:   r3.Vec{Z: 1},
		Lambda: lambda,
		Mu:     ecolor.Gray(FindMu(lambda, math.Pi)),
	}
}
