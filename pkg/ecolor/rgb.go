package ecolor

// Arithmetic on linear HDR colors. We use hdr's bundled RGB color
// impl everywhere, so everything can go straight into an hdr.Image.

import(
	"fmt"

	"github.com/mdouchement/hdr/hdrcolor"
)

func Gray(f float64) hdrcolor.RGB { return hdrcolor.RGB{R: f, G: f, B: f} }

func Add(a, b hdrcolor.RGB) hdrcolor.RGB {
	return hdrcolor.RGB{R: a.R + b.R, G: a.G + b.G, B: a.B + b.B}
}

func Scale(c hdrcolor.RGB, f float64) hdrcolor.RGB {
	return hdrcolor.RGB{R: c.R * f, G: c.G * f, B: c.B * f}
}

// Mult is the per-channel product.
func Mult(a, b hdrcolor.RGB) hdrcolor.RGB {
	return hdrcolor.RGB{R: a.R * b.R, G: a.G * b.G, B: a.B * b.B}
}

// AddScaled returns a + b*f.
func AddScaled(a, b hdrcolor.RGB, f float64) hdrcolor.RGB {
	return hdrcolor.RGB{R: a.R + b.R*f, G: a.G + b.G*f, B: a.B + b.B*f}
}

func HDRRGBFloorAt(c1 hdrcolor.RGB, min float64) hdrcolor.RGB {
	c2 := c1
	if c2.R < min { c2.R = min }
	if c2.G < min { c2.G = min }
	if c2.B < min { c2.B = min }
	return c2
}

// Luminance of a linear sRGB color (Rec. 709 weights)
func Luminance(c hdrcolor.RGB) float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

func String(c hdrcolor.RGB) string {
	return fmt.Sprintf("[%12.10f, %12.10f, %12.10f]", c.R, c.G, c.B)
}
