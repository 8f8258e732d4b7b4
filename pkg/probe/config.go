package probe

import(
	"fmt"
	"io/ioutil"
	"log"
	"runtime"

	"gopkg.in/yaml.v2"
)

/* Example config file, passed on the command line next to the panorama ...

outputwidth: 512
outputheight: 256
lobecount: 24
montecarlosamples: 2000
tonemapper: all
writehdr: true

*/

type Config struct {
	Verbosity          int

	Source             string   // Where radiance comes from: "envmap", "constant" or "sun"

	OutputWidth        int      // Size of each output image; the combined image is 3x2 of these
	OutputHeight       int
	OutputDir          string

	LobeCount          int
	LobeLambda         float64  // Sharpness of the lighting lobes; 0 means 0.5*LobeCount
	ProjectionSamples  int      // Uniform sphere samples used to fit both bases
	BRDFLambda         float64  // Sharpness of the lobe standing in for the cosine BRDF
	MonteCarloSamples  int      // Cosine hemisphere samples per pixel, for the reference irradiance
	Workers            int      // Goroutines for the Monte Carlo pass; 0 means one per CPU

	GammaExpand        bool     // sRGB gamma expand the PNGs; off means linear values are clipped straight to 8 bits
	WriteHDR           bool     // Also write each image as a .hdr
	Tonemapper         string   // If set, also tonemap the combined image: see ListTonemappers()
	LabelTiles         bool     // Write the image names onto the combined PNG
}

func NewConfig() Config {
	return Config{
		Source:            "envmap",
		OutputWidth:       256,
		OutputHeight:      128,
		OutputDir:         ".",
		LobeCount:         12,
		ProjectionSamples: 20000,
		BRDFLambda:        6.5, // Chosen arbitrarily through experimentation
		MonteCarloSamples: 5000,
	}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	err := yaml.Unmarshal(b, &c)
	return c, err
}

func loadConfig(filename string) (Config, error) {
	contents, err := ioutil.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %v", filename, err)
	}

	return newConfigFromYaml(contents)
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

// Lambda is the sharpness shared by all the lighting lobes.
func (c Config)Lambda() float64 {
	if c.LobeLambda > 0.0 {
		return c.LobeLambda
	}
	return 0.5 * float64(c.LobeCount)
}

func (c Config)NumWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// Validate does sanity checks, so nothing downstream has to.
func (c Config)Validate() error {
	switch {
	case c.OutputWidth < 2 || c.OutputHeight < 2:
		return fmt.Errorf("output size %dx%d too small, need at least 2x2", c.OutputWidth, c.OutputHeight)
	case c.LobeCount < 1:
		return fmt.Errorf("lobecount %d, need at least one lobe", c.LobeCount)
	case c.LobeLambda < 0.0:
		return fmt.Errorf("lobelambda %f, must be positive", c.LobeLambda)
	case c.BRDFLambda <= 0.0:
		return fmt.Errorf("brdflambda %f, must be positive", c.BRDFLambda)
	case c.ProjectionSamples < 1 || c.MonteCarloSamples < 1:
		return fmt.Errorf("sample counts must be positive (projection %d, montecarlo %d)",
			c.ProjectionSamples, c.MonteCarloSamples)
	}

	if _, exists := sources[c.Source]; !exists {
		return fmt.Errorf("no radiance source named '%s'", c.Source)
	}
	if c.Tonemapper != "" && c.Tonemapper != "all" && !isTonemapper(c.Tonemapper) {
		return fmt.Errorf("no tonemapper named '%s', wanted %s", c.Tonemapper, ListTonemappers())
	}

	return nil
}
