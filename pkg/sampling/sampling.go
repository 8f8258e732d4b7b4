package sampling

// Deterministic sample generators, and the maps that turn unit square
// samples into directions. Directions are unit r3.Vecs throughout.

import(
	"math"
	"math/bits"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/abworrall/envprobe/pkg/emath"
)

const(
	TwoPi  = 2.0 * math.Pi
	FourPi = 4.0 * math.Pi
)

var(
	goldenAngle = math.Pi * (3.0 - math.Sqrt(5.0))
)

// A UV is a point in the unit square.
type UV struct {
	U, V float64
}

// RadicalInverse is the base 2 van der Corput sequence: mirror the bits
// of i about the binary point.
func RadicalInverse(i uint32) float64 {
	return float64(bits.Reverse32(i)) / (1 << 32)
}

// Hammersley returns the i'th point of an n point Hammersley set.
// U is exactly i/n.
func Hammersley(i, n int) UV {
	return UV{
		U: float64(i) / float64(n),
		V: RadicalInverse(uint32(i)),
	}
}

// VogelsSphere returns the i'th of n points of a golden angle spiral on
// the sphere. The points are spread evenly in z, so each covers the same
// area, and rotate by the golden angle around z.
func VogelsSphere(i, n int) r3.Vec {
	z := 1.0 - (2.0*float64(i) + 1.0) / float64(n)
	r := math.Sqrt(math.Max(0.0, 1.0 - z*z))
	phi := float64(i) * goldenAngle

	return r3.Vec{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
}

// UniformSphere maps a unit square sample onto the sphere, with uniform
// density (pdf is 1/4pi).
func UniformSphere(s UV) r3.Vec {
	z := 1.0 - 2.0*s.U
	r := math.Sqrt(math.Max(0.0, 1.0 - z*z))
	phi := TwoPi * s.V

	return r3.Vec{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
}

// CosineHemisphere maps a unit square sample into the +z hemisphere,
// with density proportional to cos(theta) (pdf is cos(theta)/pi).
func CosineHemisphere(s UV) r3.Vec {
	r := math.Sqrt(s.U)
	phi := TwoPi * s.V

	return r3.Vec{
		X: r * math.Cos(phi),
		Y: r * math.Sin(phi),
		Z: math.Sqrt(math.Max(0.0, 1.0 - s.U)),
	}
}

// OrthogonalBasis builds a right handed orthonormal frame whose third
// column is the normal. Applying it to a local +z hemisphere sample gives
// a world space direction around the normal.
func OrthogonalBasis(normal r3.Vec) emath.Mat3 {
	// Cross with whichever axis is far from the normal, so the cross product can't vanish
	ref := r3.Vec{Z: 1}
	if math.Abs(normal.Z) > 0.999 {
		ref = r3.Vec{X: 1}
	}

	x := r3.Unit(r3.Cross(ref, normal))
	y := r3.Cross(normal, x)

	return emath.FromColumns(x, y, normal)
}
