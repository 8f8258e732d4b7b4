package probe

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdouchement/hdr/codec/rgbe"
	"golang.org/x/image/tiff"
)

// LoadFiles takes the command line args: one lat-long panorama, and
// optionally a .yaml file holding the base configuration.
func (p *Probe)LoadFiles(args ...string) error {
	for _, arg := range args {
		if err := p.loadFile(arg); err != nil {
			return err
		}
	}

	return nil
}

func (p *Probe)loadFile(filename string) error {
	ext := filepath.Ext(filename)

	switch strings.ToLower(ext) {

	case ".yaml", ".yml":
		cfg, err := loadConfig(filename)
		if err != nil {
			return fmt.Errorf("Loading %s as config YAML failed: %v", filename, err)
		}
		p.Config = cfg
		log.Printf("Loaded base configuration from %s\n", filename)

	default:
		em, err := LoadEnvMap(filename)
		if err != nil {
			return fmt.Errorf("Failed to read input image from file '%s': %v", filename, err)
		}
		p.EnvMap = em
		log.Printf("Loaded %s\n", em)
	}

	return nil
}

// LoadEnvMap decodes a panorama, picking the decoder from the file
// extension. Radiance .hdr files are the normal case; 16-bit .tif and .png
// work too, but are limited to [0,1].
func LoadEnvMap(filename string) (*EnvMap, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open+r '%s': %v", filename, err)
	}
	defer reader.Close()

	var img image.Image

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".tif", ".tiff":
		img, err = tiff.Decode(reader)
	case ".png":
		img, err = png.Decode(reader)
	default:
		img, err = rgbe.Decode(reader)
	}

	if err != nil {
		return nil, fmt.Errorf("decoding '%s': %v", filename, err)
	} else if b := img.Bounds(); b.Dx() < 1 || b.Dy() < 1 {
		return nil, fmt.Errorf("decoding '%s': empty image %s", filename, b)
	}

	em := NewEnvMap(img)
	em.LoadFilename = filename
	return em, nil
}

func (em *EnvMap)String() string {
	return fmt.Sprintf("EnvMap[%s, %dx%d]", filepath.Base(em.LoadFilename), em.Width, em.Height)
}
