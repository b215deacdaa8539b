package dashboard

import (
	"image"
	"image/color"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"bfi-dashboard/models"
)

// loadFace opens the dashboard font at size px. An empty path selects the
// bundled Go Regular face; any other path must exist and parse.
func loadFace(path string, size float64) (font.Face, error) {
	data := goregular.TTF
	name := "goregular"
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, &models.FontResourceError{Path: path, Err: err}
		}
		data, name = b, path
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, &models.FontResourceError{Path: name, Err: err}
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, &models.FontResourceError{Path: name, Err: err}
	}
	return face, nil
}

// textBox measures s as drawn with its ascender line at y=0.
type textBox struct {
	Width  int
	Height int
	Bottom int
}

func measure(face font.Face, s string) textBox {
	bounds, _ := font.BoundString(face, s)
	ascent := face.Metrics().Ascent.Ceil()
	return textBox{
		Width:  (bounds.Max.X - bounds.Min.X).Ceil(),
		Height: (bounds.Max.Y - bounds.Min.Y).Ceil(),
		Bottom: ascent + bounds.Max.Y.Ceil(),
	}
}

// drawText draws s with its ascender line at y.
func drawText(dst *image.RGBA, face font.Face, c color.Color, x, y int, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}
