package sg

import(
	"github.com/mdouchement/hdr/hdrcolor"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/abworrall/envprobe/pkg/ecolor"
	"github.com/abworrall/envprobe/pkg/sampling"
)

// A LobeSet approximates a signal on the sphere as a sum of lobes.
type LobeSet []Lobe

// NewLobeSet lays out count lobes on a Vogel spiral, all with the same
// sharpness and zero amplitude. The layout only depends on count.
func NewLobeSet(count int, lambda float64) LobeSet {
	ls := make(LobeSet, count)
	for i:=0; i<count; i++ {
		ls[i] = Lobe{
			Axis:   sampling.VogelsSphere(i, count),
			Lambda: lambda,
		}
	}
	return ls
}

// NormalizationFactor scales a projected lobe amplitude so that a
// uniform signal of 1.0 projects to mu=1.0. It is an empirical choice;
// it is not an unbiased estimator for overlapping lobes in general.
func NormalizationFactor(lambda float64) float64 {
	return sampling.FourPi / Integral(lambda)
}

// AddSample is one step of projecting a signal onto the lobes, using the
// lobes themselves as the weighting kernel. weight is the per-sample
// Monte Carlo weight (1/n for n uniform sphere samples).
func (ls LobeSet)AddSample(dir r3.Vec, sample hdrcolor.RGB, weight float64) {
	for i:=0; i<len(ls); i++ {
		w := Evaluate(ls[i].Axis, ls[i].Lambda, dir)
		ls[i].Mu = ecolor.AddScaled(ls[i].Mu, sample, NormalizationFactor(ls[i].Lambda) * w * weight)
	}
}

// Evaluate sums all the lobes in the given direction.
func (ls LobeSet)Evaluate(dir r3.Vec) hdrcolor.RGB {
	ret := hdrcolor.RGB{}
	for _, l := range ls {
		ret = ecolor.Add(ret, l.Evaluate(dir))
	}
	return ret
}

// Convolve integrates the product of the whole set with another lobe.
func (ls LobeSet)Convolve(kernel Lobe) hdrcolor.RGB {
	ret := hdrcolor.RGB{}
	for _, l := range ls {
		ret = ecolor.Add(ret, Dot(l, kernel))
	}
	return ret
}

func (ls LobeSet)Copy() LobeSet {
	ret := make(LobeSet, len(ls))
	copy(ret, ls)
	return ret
}
