package main

import(
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/abworrall/envprobe/pkg/probe"
)

var(
	fVerbosity int
	fOutputWidth int
	fOutputHeight int
	fLobeCount int
	fSource string
	fTonemapper string
	fOutputDir string
	fWriteHDR bool
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: envprobe <LatLongEnvmap.hdr> [config.yaml]\n")
		flag.PrintDefaults()
	}

	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.IntVar(&fOutputWidth, "width", 0, "width of each output image, in pixels")
	flag.IntVar(&fOutputHeight, "height", 0, "height of each output image, in pixels")
	flag.IntVar(&fLobeCount, "lobes", 0, "how many spherical gaussian lobes to fit")
	flag.StringVar(&fSource, "source", "", "where radiance comes from: envmap, constant or sun")
	flag.StringVar(&fTonemapper, "tonemapper", "", "also tonemap the combined image: all, or one of "+probe.ListTonemappers())
	flag.StringVar(&fOutputDir, "o", "", "directory to write output images into")
	flag.BoolVar(&fWriteHDR, "hdr", false, "also write every image as a .hdr")
	flag.Parse()

	log.Printf("envprobe starting\n")
}

func main() {
	p := probe.NewProbe()

	// The source is needed before loading, to know whether a panorama is required
	if fSource != "" { p.Config.Source = fSource }

	if flag.NArg() < 1 && p.Config.Source == "envmap" {
		flag.Usage()
		os.Exit(1)
	}

	if err := p.LoadFiles(flag.Args()...); err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}

	// Override the config file with command line args, if relevant
	if fSource != "" { p.Config.Source = fSource }
	if fVerbosity > 0 { p.Config.Verbosity = fVerbosity }
	if fOutputWidth > 0 { p.Config.OutputWidth = fOutputWidth }
	if fOutputHeight > 0 { p.Config.OutputHeight = fOutputHeight }
	if fLobeCount > 0 { p.Config.LobeCount = fLobeCount }
	if fTonemapper != "" { p.Config.Tonemapper = fTonemapper }
	if fOutputDir != "" { p.Config.OutputDir = fOutputDir }
	if fWriteHDR { p.Config.WriteHDR = true }

	if err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
