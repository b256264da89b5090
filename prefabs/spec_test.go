package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/milk9111/jigsaw/puzzle"
	"gopkg.in/yaml.v3"
)

func withDiskRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old := DiskRoot
	DiskRoot = dir
	t.Cleanup(func() { DiskRoot = old })
	return dir
}

func TestLoadPuzzleSpecEmbedded(t *testing.T) {
	withDiskRoot(t)
	spec, err := LoadPuzzleSpec()
	if err != nil {
		t.Fatal(err)
	}
	if spec.Image != "landscape.png" || spec.Grid.Preset != "big" || !spec.Shadow {
		t.Fatalf("unexpected spec %+v", spec)
	}
	cfg := spec.Config()
	if cfg.Padding != 120 || cfg.Width != 960 || cfg.Presets["small"] != (puzzle.GridSize{X: 8, Y: 8}) {
		t.Fatalf("unexpected config %+v", cfg)
	}
	for event, path := range spec.Hooks {
		if _, err := LoadScript(path); err != nil {
			t.Fatalf("hook %s: %v", event, err)
		}
	}
	if diff := cmp.Diff([]string{"big", "medium", "small"}, spec.PresetNames()); diff != "" {
		t.Fatalf("preset order (-want +got):\n%s", diff)
	}
}

func TestDiskOverride(t *testing.T) {
	dir := withDiskRoot(t)
	yml := "image: other.png\ngrid: {x: 3, y: 5}\n"
	if err := os.WriteFile(filepath.Join(dir, SpecFile), []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "scripts"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "scripts", "on_init.tengo"), []byte("x := 1"), 0o644); err != nil {
		t.Fatal(err)
	}

	spec, err := LoadPuzzleSpec()
	if err != nil {
		t.Fatal(err)
	}
	if spec.Image != "other.png" || spec.Grid.Size != (puzzle.GridSize{X: 3, Y: 5}) {
		t.Fatalf("disk copy not used: %+v", spec)
	}
	b, err := LoadScript("prefabs/scripts/on_init.tengo")
	if err != nil || string(b) != "x := 1" {
		t.Fatalf("script = %q, %v", b, err)
	}
	if _, ok := ModTime(SpecFile); !ok {
		t.Fatal("ModTime should see the disk copy")
	}
}

func TestGridSpecYAML(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want puzzle.GridSpec
	}{
		{"preset", "grid: medium", puzzle.GridSpec{Preset: "medium"}},
		{"dims_string", "grid: 6x4", puzzle.GridSpec{Size: puzzle.GridSize{X: 6, Y: 4}}},
		{"mapping", "grid: {x: 7, y: 2}", puzzle.GridSpec{Size: puzzle.GridSize{X: 7, Y: 2}}},
		{"unknown_kept", "grid: huge", puzzle.GridSpec{Preset: "huge"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var spec PuzzleSpec
			if err := yaml.Unmarshal([]byte(c.in), &spec); err != nil {
				t.Fatal(err)
			}
			if spec.Grid.GridSpec != c.want {
				t.Fatalf("grid = %+v, want %+v", spec.Grid.GridSpec, c.want)
			}
		})
	}

	var spec PuzzleSpec
	if err := yaml.Unmarshal([]byte("grid: [1, 2]"), &spec); err == nil {
		t.Fatal("sequence grid should be rejected")
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{`"#102030"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, false},
		{`"#10203040"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, false},
		{`black`, color.RGBA{A: 0xff}, false},
		{`"#12"`, nil, true},
		{`"#zz2030"`, nil, true},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			var got YAMLColor
			err := yaml.Unmarshal([]byte(c.in), &got)
			if c.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.Color != c.want {
				t.Fatalf("color = %#v, want %#v", got.Color, c.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		spec PuzzleSpec
		err  string
	}{
		{"ok", PuzzleSpec{Hooks: map[string]string{"merge": "x.tengo"}}, ""},
		{"negative", PuzzleSpec{Padding: -1}, "negative"},
		{"hook", PuzzleSpec{Hooks: map[string]string{"explode": "x.tengo"}}, "unknown hook"},
		{"audio", PuzzleSpec{Audio: []AudioSpec{{Name: "snap"}}}, "audio"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.spec.Validate()
			if c.err == "" {
				if err != nil {
					t.Fatal(err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), c.err) {
				t.Fatalf("err = %v, want it to mention %q", err, c.err)
			}
		})
	}
}

func TestRasterStyle(t *testing.T) {
	spec := PuzzleSpec{Style: StyleSpec{Paper: &YAMLColor{Color: color.White}, ShadowOffset: 9}}
	style := spec.RasterStyle()
	if style.Paper != color.Color(color.White) || style.ShadowOffset != 9 || style.Stroke == nil {
		t.Fatalf("style = %+v", style)
	}
}
