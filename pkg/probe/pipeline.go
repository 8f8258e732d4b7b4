package probe

import(
	"fmt"
	"log"

	"github.com/abworrall/envprobe/pkg/sg"
	"github.com/abworrall/envprobe/pkg/sh"
)

// A Probe is one run of the pipeline: an input radiance function, the
// two fitted bases, and the images derived from them.
type Probe struct {
	Config

	EnvMap      *EnvMap          // nil unless the source is "envmap"
	Radiance     RadianceFunc

	Lobes        sg.LobeSet       // Fitted lighting lobes
	SH           sh.L2RGB         // Fitted SH coefficients
	BRDF         sg.Lobe          // Stands in for the cosine lobe in the SG convolution

	RadianceImg     *Image
	RadianceSG      *Image
	RadianceSH      *Image
	IrradianceSG    *Image
	IrradianceSH    *Image
	IrradianceMC    *Image
	Combined        *Image

	AverageMC     float64        // As reduced by the Monte Carlo workers
	Diffs       []Diff
}

// An Output is one of the named images a probe writes.
type Output struct {
	Name  string
	Image *Image
}

func NewProbe() *Probe {
	return &Probe{Config: NewConfig()}
}

func (p *Probe)String() string {
	return fmt.Sprintf("Probe[src:%s, %dx%d, %d lobes (lambda %.2f), %d proj samples, %d mc samples]",
		p.Config.Source, p.Config.OutputWidth, p.Config.OutputHeight, p.Config.LobeCount,
		p.Config.Lambda(), p.Config.ProjectionSamples, p.Config.MonteCarloSamples)
}

// Outputs lists the images in the order they are written.
func (p *Probe)Outputs() []Output {
	return []Output{
		{"radiance", p.RadianceImg},
		{"radianceSG", p.RadianceSG},
		{"radianceSH", p.RadianceSH},
		{"irradianceSG", p.IrradianceSG},
		{"irradianceSH", p.IrradianceSH},
		{"irradianceMC", p.IrradianceMC},
	}
}

// combinedOrder is the layout of the 3x2 mosaic: radiance on the top
// row, irradiance below, with the reference on the left of each.
func (p *Probe)combinedOrder() []Output {
	return []Output{
		{"radiance", p.RadianceImg},
		{"radianceSH", p.RadianceSH},
		{"radianceSG", p.RadianceSG},
		{"irradianceMC", p.IrradianceMC},
		{"irradianceSH", p.IrradianceSH},
		{"irradianceSG", p.IrradianceSG},
	}
}

// Run does everything after loading: compute, report, write.
func (p *Probe)Run() error {
	if err := p.Config.Validate(); err != nil {
		return fmt.Errorf("bad config: %v", err)
	} else if p.EnvMap == nil && p.Config.Source == "envmap" {
		return fmt.Errorf("source is envmap, but no panorama was loaded")
	}

	if p.Config.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", p.Config.AsYaml())
	}

	p.Compute()

	if err := p.Report(); err != nil {
		return err
	}
	if err := p.WriteOutputs(); err != nil {
		return err
	}
	return p.Tonemap()
}

// Compute runs the pipeline stages in order, printing the average of
// each image as it goes. It does no I/O beyond the console.
func (p *Probe)Compute() {
	w, h := p.Config.OutputWidth, p.Config.OutputHeight

	p.Radiance = sources[p.Config.Source](p.EnvMap)
	log.Printf("%s\n", p)

	p.RadianceImg = RasterizeRadiance(w, h, p.Radiance)
	fmt.Printf("Average radiance: %f\n", p.RadianceImg.Average())

	lobes := sg.NewLobeSet(p.Config.LobeCount, p.Config.Lambda())
	p.Lobes, p.SH = Project(p.Radiance, lobes, p.Config.ProjectionSamples)
	if p.Config.Verbosity > 1 {
		for i, l := range p.Lobes {
			log.Printf("lobe %2d: %s\n", i, l)
		}
	}

	p.RadianceSG = ReconstructSG(w, h, p.Lobes)
	fmt.Printf("Average SG radiance: %f\n", p.RadianceSG.Average())

	p.RadianceSH = ReconstructSH(w, h, p.SH)
	fmt.Printf("Average SH radiance: %f\n", p.RadianceSH.Average())

	p.BRDF = sg.NewDiffuseLobe(p.Config.BRDFLambda)

	p.IrradianceSG = IrradianceSG(w, h, p.Lobes, p.BRDF)
	fmt.Printf("Average SG irradiance: %f\n", p.IrradianceSG.Average())

	p.IrradianceSH = IrradianceSH(w, h, p.SH)
	fmt.Printf("Average SH irradiance: %f\n", p.IrradianceSH.Average())

	log.Printf("Monte Carlo irradiance, %d samples/pixel over %d workers\n",
		p.Config.MonteCarloSamples, p.Config.NumWorkers())
	p.IrradianceMC, p.AverageMC = IrradianceMC(w, h, p.Radiance, p.Config.MonteCarloSamples, p.Config.NumWorkers())
	fmt.Printf("Average MC irradiance: %f\n", p.AverageMC)

	tiles := []*Image{}
	for _, out := range p.combinedOrder() {
		tiles = append(tiles, out.Image)
	}
	p.Combined = Combine(tiles, 3)
}

// Report prints solid angle weighted stats for every image, and how far
// each reconstruction is from its reference.
func (p *Probe)Report() error {
	for _, out := range p.Outputs() {
		log.Printf("%-12s %s\n", out.Name, ImageStats(out.Image))
	}

	comparisons := []struct {
		ref, img *Image
		name     string
	}{
		{p.RadianceImg,  p.RadianceSG,   "radianceSG"},
		{p.RadianceImg,  p.RadianceSH,   "radianceSH"},
		{p.IrradianceMC, p.IrradianceSG, "irradianceSG"},
		{p.IrradianceMC, p.IrradianceSH, "irradianceSH"},
	}

	p.Diffs = nil
	for _, c := range comparisons {
		d, err := ImgDiff(p.Config, c.ref, c.img, c.name)
		if err != nil {
			return err
		}
		p.Diffs = append(p.Diffs, d)
		log.Printf("%s\n", d)
	}

	return nil
}
