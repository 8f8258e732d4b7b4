package probe

import(
	"sync"

	"github.com/mdouchement/hdr/hdrcolor"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/abworrall/envprobe/pkg/ecolor"
	"github.com/abworrall/envprobe/pkg/sampling"
)

// IrradianceMC is the brute force reference: for each pixel, average the
// radiance over n cosine weighted directions around the pixel's normal.
// The cosine pdf cancels the cosine term, so a plain average gives
// irradiance/pi.
//
// Rows are handed out to a pool of nWorkers goroutines. Each pixel is
// written by exactly one worker, and each worker keeps its own running
// sum of the red channel; those are added up once everyone has finished.
// Returns the image, and the average of the red channel.
func IrradianceMC(w, h int, radiance RadianceFunc, n, nWorkers int) (*Image, float64) {
	img := NewImage(w, h)

	// The hemisphere samples are the same for every pixel, only the frame changes
	local := make([]r3.Vec, n)
	for i:=0; i<n; i++ {
		local[i] = sampling.CosineHemisphere(sampling.Hammersley(i, n))
	}

	if nWorkers < 1 {
		nWorkers = 1
	}

	var wg sync.WaitGroup
	rowsChan := make(chan int, h)
	partials := make([]float64, nWorkers)

	// Kick off worker pool
	for i:=0; i<nWorkers; i++ {
		wg.Add(1)

		go func(worker int) {
			defer wg.Done()
			for y := range rowsChan {
				for x:=0; x<w; x++ {
					c := irradianceAt(img.Direction(x, y), radiance, local)
					img.Set(x, y, c)
					partials[worker] += c.R
				}
			}
		}(i)
	}

	// Feed in jobs
	for y:=0; y<h; y++ {
		rowsChan<- y
	}

	close(rowsChan)
	wg.Wait()

	return img, floats.Sum(partials) / float64(img.PixelCount())
}

func irradianceAt(normal r3.Vec, radiance RadianceFunc, local []r3.Vec) hdrcolor.RGB {
	basis := sampling.OrthogonalBasis(normal)

	sum := hdrcolor.RGB{}
	for _, l := range local {
		sum = ecolor.Add(sum, radiance(r3.Unit(basis.Apply(l))))
	}

	return ecolor.Scale(sum, 1.0 / float64(len(local)))
}
