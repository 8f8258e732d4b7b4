package probe

import(
	"image"
	"math"
	"testing"

	"github.com/mdouchement/hdr/hdrcolor"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/abworrall/envprobe/pkg/ecolor"
	"github.com/abworrall/envprobe/pkg/sg"
)

func filled(w, h int, f float64) *Image {
	img := NewImage(w, h)
	img.ForPixels(func(p *Pixel, x, y int) { *p = Pixel{RGB: ecolor.Gray(f), A: 1} })
	return img
}

// A uniform environment of 1 should come back as 1 from every path.
func TestStagesConstant(t *testing.T) {
	w, h := 64, 32
	radiance := ConstantRadiance(ecolor.Gray(1.0))

	lobes, coeffs := Project(radiance, sg.NewLobeSet(12, 6), 20000)
	mc, mcAvg := IrradianceMC(w, h, radiance, 200, 4)

	tests := []struct {
		name string
		img *Image
		tol  float64
	}{
		{"radiance",     RasterizeRadiance(w, h, radiance),           1e-12},
		{"radianceSH",   ReconstructSH(w, h, coeffs),                 0.005},
		{"radianceSG",   ReconstructSG(w, h, lobes),                  0.03},
		{"irradianceSH", IrradianceSH(w, h, coeffs),                  0.005},
		{"irradianceSG", IrradianceSG(w, h, lobes, sg.NewDiffuseLobe(6.5)), 0.02},
		{"irradianceMC", mc,                                          1e-9},
	}

	for _, test := range tests {
		if test.img.Width != w || test.img.Height != h {
			t.Errorf("[%s] got %s, want %dx%d", test.name, test.img, w, h)
		}
		if got := test.img.Average(); math.Abs(got - 1.0) > test.tol {
			t.Errorf("[%s] average = %f, want 1 (within %g)", test.name, got, test.tol)
		}
	}

	if math.Abs(mcAvg - 1.0) > 1e-9 {
		t.Errorf("MC reduction = %f, want 1", mcAvg)
	}
}

func TestProjectSplit(t *testing.T) {
	radiance := SunRadiance
	lobes := sg.NewLobeSet(8, 4)

	fitted, coeffs := Project(radiance, lobes, 5000)

	if got := ProjectSH(radiance, 5000); got != coeffs {
		t.Errorf("ProjectSH differs from the joint projection")
	}
	if got := ProjectSG(radiance, lobes, 5000); got[3] != fitted[3] {
		t.Errorf("ProjectSG differs from the joint projection")
	}
	if lobes[3].Mu != (hdrcolor.RGB{}) {
		t.Errorf("Project modified the lobes passed in")
	}
}

// The sun is straight down -z; irradiance should peak facing it, and be
// zero facing away.
func TestIrradianceFacesSun(t *testing.T) {
	w, h := 32, 16
	mc, _ := IrradianceMC(w, h, SunRadiance, 2000, 2)

	facing := mc.Pix(w/2, h/2).R   // looks down -z
	away := mc.Pix(0, h/2).R       // looks down +z
	if facing <= 0 || away > 1e-9 {
		t.Errorf("facing sun %f, facing away %f", facing, away)
	}

	lobes, coeffs := Project(SunRadiance, sg.NewLobeSet(12, 6), 20000)
	for name, img := range map[string]*Image{
		"sh": IrradianceSH(w, h, coeffs),
		"sg": IrradianceSG(w, h, lobes, sg.NewDiffuseLobe(6.5)),
	} {
		if img.Pix(w/2, h/2).R <= img.Pix(0, h/2).R {
			t.Errorf("[%s] irradiance facing the sun %f, not above facing away %f",
				name, img.Pix(w/2, h/2).R, img.Pix(0, h/2).R)
		}
	}
}

func TestReconstructSHClamps(t *testing.T) {
	_, coeffs := Project(SunRadiance, nil, 5000)
	img := ReconstructSH(32, 16, coeffs)
	img.ForPixels(func(p *Pixel, x, y int) {
		if p.R < 0 || p.G < 0 || p.B < 0 {
			t.Errorf("negative SH radiance at (%d,%d): %v", x, y, p.RGB)
		}
	})
}

func TestIrradianceMCWorkers(t *testing.T) {
	radiance := SunRadiance

	img1, avg1 := IrradianceMC(16, 8, radiance, 300, 1)
	img4, avg4 := IrradianceMC(16, 8, radiance, 300, 4)
	img0, _ := IrradianceMC(16, 8, radiance, 300, 0)

	for i := range img1.Pixels {
		if img1.Pixels[i] != img4.Pixels[i] || img1.Pixels[i] != img0.Pixels[i] {
			t.Fatalf("pixel %d differs with worker count: %v, %v, %v",
				i, img1.Pixels[i], img4.Pixels[i], img0.Pixels[i])
		}
	}

	if math.Abs(avg1 - avg4) > 1e-12 {
		t.Errorf("averages differ with worker count: %.15f vs %.15f", avg1, avg4)
	}
	if math.Abs(avg1 - img1.Average()) > 1e-12 {
		t.Errorf("reduced average %f, image average %f", avg1, img1.Average())
	}
}

func TestGenerate(t *testing.T) {
	img := Generate(8, 4, func(dir r3.Vec) hdrcolor.RGB {
		return hdrcolor.RGB{R: dir.X, G: dir.Y, B: dir.Z}
	})

	img.ForPixels(func(p *Pixel, x, y int) {
		dir := img.Direction(x, y)
		if p.R != dir.X || p.G != dir.Y || p.B != dir.Z || p.A != 1 {
			t.Errorf("pixel (%d,%d) = %v, want %v", x, y, p, dir)
		}
	})
}

func TestCombine(t *testing.T) {
	tiles := []*Image{filled(2, 2, 1), filled(2, 2, 2), filled(2, 2, 3)}
	img := Combine(tiles, 2)

	if img.Width != 4 || img.Height != 4 {
		t.Fatalf("got %s, want 4x4", img)
	}

	tests := []struct {
		x, y int
		want float64
	}{
		{0, 0, 1}, {1, 1, 1},
		{2, 0, 2}, {3, 1, 2},
		{0, 2, 3}, {1, 3, 3},
		{2, 2, 0}, {3, 3, 0},
	}
	for _, test := range tests {
		if got := img.Pix(test.x, test.y).R; got != test.want {
			t.Errorf("pixel (%d,%d) = %f, want %f", test.x, test.y, got, test.want)
		}
	}
}

func TestPasteClips(t *testing.T) {
	img := NewImage(3, 3)
	img.Paste(filled(2, 2, 5), image.Point{X: 2, Y: -1})

	if img.Pix(2, 0).R != 5 {
		t.Errorf("overlapping pixel not pasted")
	}
	if img.Pix(2, 1).R != 0 || img.Pix(1, 0).R != 0 {
		t.Errorf("pasted outside the overlap")
	}
}
