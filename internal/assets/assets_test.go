package assets

import (
	"image"
	_ "image/png"
	"io/fs"
	"testing"
)

func TestEmbeddedFiles(t *testing.T) {
	data, err := fs.ReadFile(FS(), DefaultLayout)
	if err != nil {
		t.Fatalf("read %s: %v", DefaultLayout, err)
	}
	if len(data) == 0 {
		t.Fatalf("%s is empty", DefaultLayout)
	}

	want := map[string]image.Point{
		"images/steak.png": {X: 100, Y: 90},
		"images/meaty.png": {X: 150, Y: 23},
	}
	for name, size := range want {
		f, err := FS().Open(name)
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		cfg, format, err := image.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", name, err)
		}
		if format != "png" || cfg.Width != size.X || cfg.Height != size.Y {
			t.Fatalf("%s = %s %dx%d, want png %dx%d", name, format, cfg.Width, cfg.Height, size.X, size.Y)
		}
	}
}
