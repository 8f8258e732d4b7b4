package probe

import(
	"fmt"
	"image"
	"log"
	"path/filepath"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/tmo"
)

var(
	Tonemappers = []string{"drago03", "durand", "icam06", "linear", "reinhard05"}
)

func ListTonemappers() string {
	return fmt.Sprintf("%v", Tonemappers)
}

func isTonemapper(name string) bool {
	for _, tm := range Tonemappers {
		if tm == name {
			return true
		}
	}
	return false
}

// Tonemap runs the configured operator (or all of them) over the combined
// image, writing a PNG for each. With more than one operator, a montage
// of all the results is written to tmo-all.png.
func (p *Probe)Tonemap() error {
	if p.Config.Tonemapper == "" {
		return nil
	}

	names := []string{p.Config.Tonemapper}
	if p.Config.Tonemapper == "all" {
		log.Printf("Tonemapping (using all operators)")
		names = Tonemappers
	}

	results := []image.Image{}
	for _, name := range names {
		op, err := SetupTonemapper(name, p.Combined)
		if err != nil {
			return err
		}
		img, err := p.ApplyTonemapper(op, name)
		if err != nil {
			return err
		}
		results = append(results, img)
	}

	if len(results) > 1 {
		return WritePNG(Montage(results, 1), p.outputPath("tmo-all.png"))
	}

	return nil
}

func (p *Probe)ApplyTonemapper(op tmo.ToneMappingOperator, name string) (image.Image, error) {
	log.Printf("Tonemapping: %s", name)
	newImg := op.Perform()

	if p.Config.LabelTiles {
		newImg = Label(newImg, name)
	}

	return newImg, WritePNG(newImg, p.outputPath(fmt.Sprintf("tmo-%s.png", name)))
}

// SetupTonemapper builds the named operator over img. The defaults are
// tuned for photos; a probe mosaic has big flat areas next to a few very
// bright lobes, so rein in the operators that blow those out.
func SetupTonemapper(name string, img hdr.Image) (tmo.ToneMappingOperator, error) {
	switch name {
	case "drago03":
		op := tmo.NewDefaultDrago03(img)
		op.Bias = 1.0            // Otherwise the sun overexposes everything around it
		return op, nil

	case "durand":
		return tmo.NewDefaultDurand(img), nil

	case "icam06":
		op := tmo.NewDefaultICam06(img)
		op.Contrast    = 0.65
		op.MaxClipping = 0.99999
		return op, nil

	case "linear":
		return tmo.NewLinear(img), nil

	case "reinhard05":
		op := tmo.NewDefaultReinhard05(img)
		op.Chromatic  = 0.005
		op.Light      = 0.005
		return op, nil
	}

	return nil, fmt.Errorf("ToneMapper %q not recognized, wanted %s", name, ListTonemappers())
}

func (p *Probe)outputPath(filename string) string {
	return filepath.Join(p.Config.OutputDir, filename)
}
