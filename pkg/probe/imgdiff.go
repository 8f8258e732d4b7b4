package probe

import(
	"fmt"
	"math"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/abworrall/envprobe/pkg/ecolor"
	"github.com/abworrall/envprobe/pkg/emath"
)

// A Diff is the error of a reconstruction against its reference image.
type Diff struct {
	Name         string
	MeanAbsError float64
	RMSError     float64
	MaxError     float64
}

func (d Diff)String() string {
	return fmt.Sprintf("%-12s vs reference: mean abs err %f, rms %f, max %f",
		d.Name, d.MeanAbsError, d.RMSError, d.MaxError)
}

// ImgDiff compares two images of the same size, and returns error
// metrics over the per-pixel difference in luminance. If the config is
// verbose, it also writes the difference out as a greyscale image.
func ImgDiff(cfg Config, ref, img *Image, name string) (Diff, error) {
	if ref.Width != img.Width || ref.Height != img.Height {
		return Diff{}, fmt.Errorf("ImgDiff %s: size mismatch, %s vs %s", name, ref, img)
	}

	diff := emath.NewFloatGrid(img.Width, img.Height)
	img.ForPixels(func(p *Pixel, x, y int) {
		pixErr := math.Abs(ecolor.Luminance(p.RGB) - ecolor.Luminance(ref.Pix(x, y).RGB))
		diff.Set(x, y, pixErr)
	})

	vals := diff.Values()
	d := Diff{
		Name:         name,
		MeanAbsError: stat.Mean(vals, nil),
		RMSError:     floats.Norm(vals, 2) / math.Sqrt(float64(len(vals))),
		MaxError:     floats.Max(vals),
	}

	if cfg.Verbosity > 0 {
		filename := filepath.Join(cfg.OutputDir, fmt.Sprintf("diff-%s.png", name))
		if err := diff.ToImg(d.String(), filename); err != nil {
			return d, fmt.Errorf("ImgDiff %s: %v", name, err)
		}
	}

	return d, nil
}
