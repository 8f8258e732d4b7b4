package sg

import(
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/mdouchement/hdr/hdrcolor"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/abworrall/envprobe/pkg/ecolor"
	"github.com/abworrall/envprobe/pkg/sampling"
)

func TestEvaluatePeak(t *testing.T) {
	axes := []r3.Vec{{X: 1}, {Y: -1}, sampling.VogelsSphere(5, 12), r3.Unit(r3.Vec{X: 1, Y: 2, Z: 3})}

	for _, axis := range axes {
		for _, lambda := range []float64{0.01, 1, 6, 100} {
			if got := Evaluate(axis, lambda, axis); got != 1.0 {
				t.Errorf("Evaluate(%v, %v, axis) = %v, want exactly 1", axis, lambda, got)
			}
		}
	}
}

func TestEvaluateFallsOff(t *testing.T) {
	axis := r3.Vec{Z: 1}
	prev := 1.0
	for deg:=5; deg<=180; deg+=5 {
		theta := float64(deg) * math.Pi / 180.0
		got := Evaluate(axis, 4.0, r3.Vec{X: math.Sin(theta), Z: math.Cos(theta)})
		if got >= prev {
			t.Errorf("Evaluate at %d deg = %v, not below %v", deg, got, prev)
		}
		prev = got
	}

	if got, want := Evaluate(axis, 4.0, r3.Vec{Z: -1}), math.Exp(-8.0); math.Abs(got - want) > 1e-15 {
		t.Errorf("Evaluate opposite axis = %v, want %v", got, want)
	}
}

func TestLobeEvaluateScalesByMu(t *testing.T) {
	l := Lobe{Axis: r3.Vec{Y: 1}, Lambda: 3, Mu: hdrcolor.RGB{R: 1, G: 2, B: 4}}
	d := r3.Unit(r3.Vec{X: 1, Y: 1})
	w := Evaluate(l.Axis, l.Lambda, d)

	want := hdrcolor.RGB{R: w, G: 2*w, B: 4*w}
	if diff := cmp.Diff(want, l.Evaluate(d), cmpopts.EquateApprox(1e-15, 0)); diff != "" {
		t.Errorf("Lobe.Evaluate (-want +got):\n%s", diff)
	}
}

func TestIntegralLimits(t *testing.T) {
	for _, lambda := range []float64{0, 1e-12, 1e-8, 1e-6} {
		if got := Integral(lambda); math.Abs(got/sampling.FourPi - 1.0) > 2e-6 {
			t.Errorf("Integral(%v) = %v, want ~4pi", lambda, got)
		}
	}

	for _, lambda := range []float64{50, 200, 1e4} {
		want := sampling.TwoPi / lambda
		if got := Integral(lambda); math.Abs(got - want) > 1e-12 * want {
			t.Errorf("Integral(%v) = %v, want %v", lambda, got, want)
		}
	}

	// The series and the closed form should agree where we switch between them
	below, above := Integral(1e-4 * (1 - 1e-9)), Integral(1e-4 * (1 + 1e-9))
	if math.Abs(below - above) > 1e-10 {
		t.Errorf("Integral discontinuous at the series cutoff: %v vs %v", below, above)
	}
}

func TestIntegralMatchesQuadrature(t *testing.T) {
	for _, lambda := range []float64{0.1, 1, 6, 6.5, 30} {
		// Integrate over cos(theta), the azimuth just contributes 2pi
		f := func(c float64) float64 { return math.Exp(lambda * (c - 1.0)) }
		want := sampling.TwoPi * quad.Fixed(f, -1, 1, 128, nil, 0)

		if got := Integral(lambda); math.Abs(got - want) > 1e-8 * want {
			t.Errorf("Integral(%v) = %v, quadrature says %v", lambda, got, want)
		}
	}
}

func TestDotWithSelf(t *testing.T) {
	for _, lambda := range []float64{0.5, 6, 40} {
		l := Lobe{Axis: sampling.VogelsSphere(2, 7), Lambda: lambda, Mu: ecolor.Gray(1.5)}
		want := ecolor.Gray(1.5 * 1.5 * Integral(2*lambda))

		if diff := cmp.Diff(want, Dot(l, l), cmpopts.EquateApprox(1e-9, 0)); diff != "" {
			t.Errorf("Dot(l,l) lambda=%v (-want +got):\n%s", lambda, diff)
		}
	}
}

func TestDotMatchesMonteCarlo(t *testing.T) {
	a := Lobe{Axis: r3.Vec{Z: 1}, Lambda: 4, Mu: hdrcolor.RGB{R: 1, G: 0.5, B: 2}}
	b := Lobe{Axis: r3.Vec{X: math.Sin(math.Pi/3), Z: math.Cos(math.Pi/3)}, Lambda: 6.5, Mu: ecolor.Gray(0.7)}

	n := 40000
	want := hdrcolor.RGB{}
	for i:=0; i<n; i++ {
		d := sampling.UniformSphere(sampling.Hammersley(i, n))
		want = ecolor.AddScaled(want, ecolor.Mult(a.Evaluate(d), b.Evaluate(d)), sampling.FourPi / float64(n))
	}

	if diff := cmp.Diff(want, Dot(a, b), cmpopts.EquateApprox(0.01, 0)); diff != "" {
		t.Errorf("Dot vs Monte Carlo (-mc +got):\n%s", diff)
	}
	if diff := cmp.Diff(Dot(b, a), Dot(a, b), cmpopts.EquateApprox(1e-12, 0)); diff != "" {
		t.Errorf("Dot not symmetric:\n%s", diff)
	}
}

func TestDotOppositeLobes(t *testing.T) {
	// Opposite axes with equal sharpness collapse to a zero length combined axis
	a := Lobe{Axis: r3.Vec{Z: 1}, Lambda: 2, Mu: ecolor.Gray(1)}
	b := Lobe{Axis: r3.Vec{Z: -1}, Lambda: 2, Mu: ecolor.Gray(1)}

	want := sampling.FourPi * math.Exp(-4.0)
	if got := Dot(a, b).R; math.IsNaN(got) || math.Abs(got - want) > 1e-6 * want {
		t.Errorf("Dot of opposite lobes = %v, want %v", got, want)
	}
}

func TestFindMu(t *testing.T) {
	for _, lambda := range []float64{1, 2.5, 6.5, 20} {
		for _, target := range []float64{0.1, 1, math.Pi, 1000} {
			mu := FindMu(lambda, target)
			if got := mu * Integral(lambda); math.Abs(got - target) > 1e-9 * target {
				t.Errorf("FindMu(%v, %v) = %v, which integrates to %v", lambda, target, mu, got)
			}
		}
	}

	if got := FindMu(6.5, 0); got != 0 {
		t.Errorf("FindMu(6.5, 0) = %v, want 0", got)
	}
}

func TestDiffuseLobeIntegratesToPi(t *testing.T) {
	l := NewDiffuseLobe(6.5)
	if got := l.Mu.G * Integral(l.Lambda); math.Abs(got - math.Pi) > 1e-9 {
		t.Errorf("diffuse lobe integrates to %v, want pi", got)
	}
}
