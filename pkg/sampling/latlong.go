package sampling

import(
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// The lat-long (equirectangular) layout, with +y up. u runs around the
// horizon starting from +z, v runs from the north pole (+y, v=0) to the
// south pole (-y, v=1). The center of the map (0.5, 0.5) looks down -z.

func CartesianToLatLongTexcoord(dir r3.Vec) UV {
	u := (1.0 + math.Atan2(dir.X, -dir.Z) / math.Pi) * 0.5
	v := math.Acos(clamp(dir.Y, -1.0, 1.0)) / math.Pi

	return UV{U: u, V: v}
}

func LatLongTexcoordToCartesian(uv UV) r3.Vec {
	theta := math.Pi * (uv.U * 2.0 - 1.0)
	phi := math.Pi * uv.V

	return r3.Vec{
		X:  math.Sin(phi) * math.Sin(theta),
		Y:  math.Cos(phi),
		Z: -math.Sin(phi) * math.Cos(theta),
	}
}

func clamp(f, min, max float64) float64 {
	if f < min { return min }
	if f > max { return max }
	return f
}
