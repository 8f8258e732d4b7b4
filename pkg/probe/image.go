package probe

import(
	"fmt"
	"image"
	"image/color"

	"github.com/mdouchement/hdr/hdrcolor"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/abworrall/envprobe/pkg/sampling"
)

// A Pixel holds linear radiance (or irradiance), not display values.
type Pixel struct {
	hdrcolor.RGB
	A float64
}

// Image is a grid of float RGBA pixels laid out as a lat-long map of the
// sphere. Implements the hdr.Image interface, so it can be fed to hdr's
// codecs and tonemappers.
type Image struct {
	Width, Height int
	Pixels      []Pixel
}

func NewImage(w, h int) *Image {
	return &Image{
		Width:  w,
		Height: h,
		Pixels: make([]Pixel, w*h),
	}
}

// Implement image.Image
func (img *Image)ColorModel() color.Model       { return hdrcolor.RGBModel }
func (img *Image)Bounds() image.Rectangle       { return image.Rect(0, 0, img.Width, img.Height) }
func (img *Image)At(x, y int) color.Color       { return img.HDRAt(x,y) }

// Implement hdr.Image
func (img *Image)HDRAt(x, y int) hdrcolor.Color { return img.Pix(x,y).RGB }
func (img *Image)Size() int                     { return img.Width * img.Height }

// Pixel access
func (img *Image)Pix(x, y int) Pixel            { return img.Pixels[y*img.Width + x] }
func (img *Image)PixRW(x, y int) *Pixel         { return &(img.Pixels[y*img.Width + x]) }
func (img *Image)PixelCount() int               { return len(img.Pixels) }

func (img *Image)Set(x, y int, c hdrcolor.RGB) {
	img.Pixels[y*img.Width + x] = Pixel{RGB: c, A: 1.0}
}

func (img *Image)String() string {
	return fmt.Sprintf("Image[%dx%d]", img.Width, img.Height)
}

// Texcoord is where on the lat-long map the center of a pixel lands.
// The (size-1) divisor means the last column and row spill just past 1.0;
// that matches the reference outputs, and LatLongTexcoordToCartesian
// copes with it.
func (img *Image)Texcoord(x, y int) sampling.UV {
	return sampling.UV{
		U: (float64(x) + 0.5) / float64(img.Width - 1),
		V: (float64(y) + 0.5) / float64(img.Height - 1),
	}
}

// Direction is the unit vector a pixel looks along.
func (img *Image)Direction(x, y int) r3.Vec {
	return sampling.LatLongTexcoordToCartesian(img.Texcoord(x, y))
}

// ForPixels visits every pixel in row order.
func (img *Image)ForPixels(f func(p *Pixel, x, y int)) {
	for y:=0; y<img.Height; y++ {
		for x:=0; x<img.Width; x++ {
			f(img.PixRW(x, y), x, y)
		}
	}
}

// Paste copies src into the image with its top left corner at pos,
// clipping anything that falls outside.
func (img *Image)Paste(src *Image, pos image.Point) {
	r := src.Bounds().Add(pos).Intersect(img.Bounds())
	for y:=r.Min.Y; y<r.Max.Y; y++ {
		for x:=r.Min.X; x<r.Max.X; x++ {
			*img.PixRW(x, y) = src.Pix(x - pos.X, y - pos.Y)
		}
	}
}

// Average is the mean of the red channel over all pixels. It is what we
// print to compare methods; it does not account for the lat-long layout
// oversampling the poles (see ImageStats for that).
func (img *Image)Average() float64 {
	sum := 0.0
	for _, p := range img.Pixels {
		sum += p.R
	}
	return sum / float64(len(img.Pixels))
}
