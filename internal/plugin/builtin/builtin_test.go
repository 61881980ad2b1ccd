package builtin

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/jmylchreest/legible/internal/swatch"
	"github.com/jmylchreest/legible/pkg/plugin"
)

func TestPluginExtract(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(2, 4, 8, 6), image.NewUniform(color.Black), image.Point{}, draw.Src)

	for _, alg := range swatch.ValidAlgorithms() {
		t.Run(string(alg), func(t *testing.T) {
			p := &Plugin{Algorithm: alg}
			resp, err := p.Extract(plugin.NewSwatchRequest(img))
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if resp.Background != 0xFFFFFFFF {
				t.Errorf("Background = %#08x, want white", resp.Background)
			}
			if len(resp.Foregrounds) != 1 || resp.Foregrounds[0] != 0xFF000000 {
				t.Errorf("Foregrounds = %#08x, want [black]", resp.Foregrounds)
			}
			if len(resp.Ratios) != 1 || resp.Ratios[0] < 20.9 {
				t.Errorf("Ratios = %v, want [21]", resp.Ratios)
			}
		})
	}
}

func TestPluginExtractRejectsBadRequest(t *testing.T) {
	p := &Plugin{}
	if _, err := p.Extract(plugin.SwatchRequest{Width: 3, Height: 3}); err == nil {
		t.Error("Extract() error = nil for missing pixels")
	}
	if _, err := p.Extract(plugin.SwatchRequest{MinShare: 2}); err == nil {
		t.Error("Extract() error = nil for invalid options")
	}
}

func TestPluginMetadata(t *testing.T) {
	info := (&Plugin{}).GetMetadata()
	if info.Name != "legible-swatch-histogram" {
		t.Errorf("Name = %q", info.Name)
	}
	if info.ProtocolVersion != plugin.ProtocolVersion || info.PluginProtocol != string(plugin.PluginTypeGoPlugin) {
		t.Errorf("GetMetadata() = %+v", info)
	}
}
