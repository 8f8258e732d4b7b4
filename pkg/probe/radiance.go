package probe

import(
	"image"
	"math"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/hdrcolor"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/abworrall/envprobe/pkg/ecolor"
	"github.com/abworrall/envprobe/pkg/sampling"
)

// A RadianceFunc gives the incoming radiance from a direction. The
// Monte Carlo pass calls it from many goroutines, so it must not mutate
// anything.
type RadianceFunc func(dir r3.Vec) hdrcolor.RGB

// The radiance sources that Config.Source can name. "envmap" needs a loaded panorama.
var sources = map[string]func(*EnvMap) RadianceFunc{
	"envmap":   func(em *EnvMap) RadianceFunc { return em.Radiance },
	"constant": func(*EnvMap) RadianceFunc { return ConstantRadiance(ecolor.Gray(1.0)) },
	"sun":      func(*EnvMap) RadianceFunc { return SunRadiance },
}

// ConstantRadiance is a uniform environment; its irradiance is pi*c everywhere.
func ConstantRadiance(c hdrcolor.RGB) RadianceFunc {
	return func(r3.Vec) hdrcolor.RGB { return c }
}

// SunRadiance is a small, very bright spot looking straight down -z.
func SunRadiance(dir r3.Vec) hdrcolor.RGB {
	return ecolor.Gray(10.0 * math.Pow(math.Max(0.0, -dir.Z), 100.0))
}

// An EnvMap is a lat-long panorama, converted to linear float RGB.
type EnvMap struct {
	LoadFilename string
	*Image
}

// NewEnvMap copies any image into float RGB. HDR images keep their
// values; LDR images are mapped from [0,0xFFFF] to [0.0,1.0], and are
// assumed to hold linear values already.
func NewEnvMap(src image.Image) *EnvMap {
	bounds := src.Bounds()
	em := &EnvMap{Image: NewImage(bounds.Dx(), bounds.Dy())}

	hdrSrc, isHDR := src.(hdr.Image)

	for y:=0; y<bounds.Dy(); y++ {
		for x:=0; x<bounds.Dx(); x++ {
			var c hdrcolor.RGB
			if isHDR {
				r, g, b, _ := hdrSrc.HDRAt(bounds.Min.X + x, bounds.Min.Y + y).HDRRGBA()
				c = hdrcolor.RGB{R: r, G: g, B: b}
			} else {
				r, g, b, _ := src.At(bounds.Min.X + x, bounds.Min.Y + y).RGBA()
				c = hdrcolor.RGB{
					R: float64(r) / float64(0xFFFF),
					G: float64(g) / float64(0xFFFF),
					B: float64(b) / float64(0xFFFF),
				}
			}
			em.Set(x, y, c)
		}
	}

	return em
}

// SampleNearest looks up the pixel containing uv. u wraps around the
// horizon, v clamps at the poles.
func (em *EnvMap)SampleNearest(uv sampling.UV) hdrcolor.RGB {
	x := int(math.Floor(uv.U * float64(em.Width))) % em.Width
	if x < 0 {
		x += em.Width
	}

	y := int(math.Floor(uv.V * float64(em.Height)))
	if y < 0 {
		y = 0
	} else if y >= em.Height {
		y = em.Height - 1
	}

	return em.Pix(x, y).RGB
}

func (em *EnvMap)Radiance(dir r3.Vec) hdrcolor.RGB {
	return em.SampleNearest(sampling.CartesianToLatLongTexcoord(dir))
}
