package probe

import(
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewConfigFromYaml(t *testing.T) {
	c, err := newConfigFromYaml([]byte("lobecount: 24\ntonemapper: all\nworkers: 3\n"))
	if err != nil {
		t.Fatalf("newConfigFromYaml: %v", err)
	}

	want := NewConfig()
	want.LobeCount = 24
	want.Tonemapper = "all"
	want.Workers = 3

	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
	if c.Lambda() != 12.0 {
		t.Errorf("Lambda() = %f, want half the lobe count", c.Lambda())
	}
	if c.NumWorkers() != 3 {
		t.Errorf("NumWorkers() = %d, want 3", c.NumWorkers())
	}
}

func TestConfigAsYaml(t *testing.T) {
	c := NewConfig()
	c.Source = "sun"
	c.LobeLambda = 3.5
	c.GammaExpand = true

	c2, err := newConfigFromYaml([]byte(c.AsYaml()))
	if err != nil {
		t.Fatalf("newConfigFromYaml: %v", err)
	}
	if diff := cmp.Diff(c, c2); diff != "" {
		t.Errorf("yaml round trip (-want +got):\n%s", diff)
	}
	if c2.Lambda() != 3.5 {
		t.Errorf("Lambda() = %f, want the explicit 3.5", c2.Lambda())
	}
}

func TestConfigValidate(t *testing.T) {
	if err := NewConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	tests := []struct {
		name string
		edit func(*Config)
	}{
		{"tiny", func(c *Config) { c.OutputWidth = 1 }},
		{"nolobes", func(c *Config) { c.LobeCount = 0 }},
		{"neglambda", func(c *Config) { c.LobeLambda = -1 }},
		{"nobrdf", func(c *Config) { c.BRDFLambda = 0 }},
		{"noproj", func(c *Config) { c.ProjectionSamples = 0 }},
		{"nomc", func(c *Config) { c.MonteCarloSamples = 0 }},
		{"source", func(c *Config) { c.Source = "moon" }},
		{"tonemapper", func(c *Config) { c.Tonemapper = "fattal02" }},
	}

	for _, test := range tests {
		c := NewConfig()
		test.edit(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("[%s] Validate accepted %+v", test.name, c)
		}
	}

	c := NewConfig()
	c.Tonemapper = "all"
	if err := c.Validate(); err != nil {
		t.Errorf("tonemapper 'all' rejected: %v", err)
	}
}

func TestLoadFilesConfig(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "probe.yaml")
	if err := os.WriteFile(filename, []byte("source: constant\noutputwidth: 32\n"), 0644); err != nil {
		t.Fatal(err)
	}

	p := NewProbe()
	if err := p.LoadFiles(filename); err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	if p.Config.Source != "constant" || p.Config.OutputWidth != 32 || p.Config.OutputHeight != 128 {
		t.Errorf("loaded config %+v", p.Config)
	}
}

func TestLoadFilesBadYaml(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "probe.yaml")
	if err := os.WriteFile(filename, []byte("lobecount: [nope\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := NewProbe().LoadFiles(filename)
	if err == nil || !strings.Contains(err.Error(), "probe.yaml") {
		t.Errorf("LoadFiles on bad yaml, got err %v", err)
	}
}
