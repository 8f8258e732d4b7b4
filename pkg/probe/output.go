package probe

import(
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"

	"github.com/fogleman/gg" // Move to https://pkg.go.dev/golang.org/x/image/font#Drawer sometime
	"github.com/mdouchement/hdr/codec/rgbe"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/abworrall/envprobe/pkg/emath"
)

// Publish converts linear float pixels into 8 bit display pixels. Values
// are clamped to [0,1]; if gammaExpand is set they are then gamma
// expanded to sRGB, else written out as they are.
func Publish(img *Image, gammaExpand bool) *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())

	toU8 := func(f float64) uint8 {
		f = emath.Saturate(f)
		if gammaExpand {
			f = emath.GammaExpand_F64(f)
		}
		return uint8(f * 255.0 + 0.5)
	}

	img.ForPixels(func(p *Pixel, x, y int) {
		out.SetNRGBA(x, y, color.NRGBA{toU8(p.R), toU8(p.G), toU8(p.B), 0xFF})
	})

	return out
}

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}

// WriteHDR outputs a Radiance RGBE image, with the float values intact.
func WriteHDR(img *Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("WriteHDR, open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		err := rgbe.Encode(writer, img)
		if err != nil {
			log.Printf("WriteHDR, encoding RGBE file: %v\n", err)
		}
		return err
	}
}

// Montage lays out display images cols to a row, in cells the size of
// the largest one.
func Montage(tiles []image.Image, cols int) *image.NRGBA {
	cell := image.Point{}
	for _, tile := range tiles {
		if s := tile.Bounds().Size(); s.X > cell.X { cell.X = s.X }
		if s := tile.Bounds().Size(); s.Y > cell.Y { cell.Y = s.Y }
	}
	rows := (len(tiles) + cols - 1) / cols

	out := image.NewNRGBA(image.Rect(0, 0, cell.X * cols, cell.Y * rows))
	for i, tile := range tiles {
		min := image.Point{X: cell.X * (i % cols), Y: cell.Y * (i / cols)}
		r := image.Rectangle{Min: min, Max: min.Add(tile.Bounds().Size())}
		draw.Draw(out, r, tile, tile.Bounds().Min, draw.Src)
	}

	return out
}

// Label draws the title in the top left corner.
func Label(img image.Image, title string) image.Image {
	dc := gg.NewContextForImage(img)
	dc.SetRGB(1,0.2,0.2)
	dc.DrawString(title, 4, 14)
	return dc.Image()
}

// WriteOutputs writes every image as a PNG (and optionally as .hdr), then
// the combined mosaic. The images are finished by now, so the encoders
// all run at once, each reading its own image.
func (p *Probe)WriteOutputs() error {
	var eg errgroup.Group

	for _, out := range p.Outputs() {
		out := out
		eg.Go(func() error {
			return WritePNG(Publish(out.Image, p.Config.GammaExpand), p.outputPath(out.Name + ".png"))
		})
		if p.Config.WriteHDR {
			eg.Go(func() error {
				return WriteHDR(out.Image, p.outputPath(out.Name + ".hdr"))
			})
		}
	}

	eg.Go(func() error {
		if !p.Config.LabelTiles {
			return WritePNG(Publish(p.Combined, p.Config.GammaExpand), p.outputPath("combined.png"))
		}
		tiles := []image.Image{}
		for _, out := range p.combinedOrder() {
			tiles = append(tiles, Label(Publish(out.Image, p.Config.GammaExpand), out.Name))
		}
		return WritePNG(Montage(tiles, 3), p.outputPath("combined.png"))
	})

	if p.Config.WriteHDR {
		eg.Go(func() error {
			return WriteHDR(p.Combined, p.outputPath("combined.hdr"))
		})
	}

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("writing outputs: %v", err)
	}
	log.Printf("Wrote outputs into %s\n", p.Config.OutputDir)
	return nil
}
