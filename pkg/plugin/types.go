package plugin

import (
	"fmt"
	"image"
	"image/draw"
)

// SwatchRequest carries a cropped capture region to a plugin.
type SwatchRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	// Pix holds non-premultiplied RGBA bytes, row by row with no padding.
	Pix []byte `json:"pix"`

	Enhanced       bool    `json:"enhanced,omitempty"`
	MaxForegrounds int     `json:"max_foregrounds,omitempty"`
	MinShare       float64 `json:"min_share,omitempty"`
}

// NewSwatchRequest packs img into a request.
func NewSwatchRequest(img image.Image) SwatchRequest {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return SwatchRequest{Width: b.Dx(), Height: b.Dy(), Pix: dst.Pix}
}

// Image unpacks the request's pixels.
func (r SwatchRequest) Image() (*image.NRGBA, error) {
	if r.Width < 0 || r.Height < 0 || len(r.Pix) != 4*r.Width*r.Height {
		return nil, fmt.Errorf("pixel data of %d bytes does not match %dx%d", len(r.Pix), r.Width, r.Height)
	}
	return &image.NRGBA{Pix: r.Pix, Stride: 4 * r.Width, Rect: image.Rect(0, 0, r.Width, r.Height)}, nil
}

// SwatchResponse is a plugin's answer. Colours are packed 0xAARRGGBB and
// Ratios, when present, parallels Foregrounds.
type SwatchResponse struct {
	Background  uint32    `json:"background"`
	Foregrounds []uint32  `json:"foregrounds"`
	Ratios      []float64 `json:"ratios,omitempty"`
}

// PluginInfo contains metadata about a plugin.
type PluginInfo struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Description     string `json:"description"`
	PluginProtocol  string `json:"plugin_protocol"` // "json-stdio" or "go-plugin"
}
