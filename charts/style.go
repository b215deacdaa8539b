package charts

import (
	"image/color"

	"gonum.org/v1/plot/vg"
)

// Output filenames for the four dashboard tiles.
const (
	GenreBarFile          = "films_by_genre.png"
	GenreTrendsFile       = "genre_trends.png"
	RevenueTrendFile      = "box_office_trends.png"
	GrossDistributionFile = "box_office_distribution.png"
)

// DefaultBins is the histogram bin count for the gross distribution.
const DefaultBins = 20

// Style carries every fixed rendering parameter shared by the four charts.
// All tiles use the same Width, Height and DPI so they composite evenly.
type Style struct {
	Width  vg.Length
	Height vg.Length
	DPI    int

	TitleSize  vg.Length
	TitleColor color.Color
	Background color.Color

	Palette   []color.Color
	LineColor color.Color
	HistColor color.Color
	Bins      int
}

// DefaultStyle returns a 10×5 inch, 300 DPI style with red titles and the
// tab20 palette.
func DefaultStyle() Style {
	return Style{
		Width:      10 * vg.Inch,
		Height:     5 * vg.Inch,
		DPI:        300,
		TitleSize:  vg.Points(20),
		TitleColor: color.RGBA{R: 255, A: 255},
		Background: color.White,
		Palette:    Tab20,
		LineColor:  color.RGBA{G: 128, A: 255},
		HistColor:  color.RGBA{R: 128, B: 128, A: 255},
		Bins:       DefaultBins,
	}
}

// WithDPI returns a copy of s rendered at dpi.
func (s Style) WithDPI(dpi int) Style {
	s.DPI = dpi
	return s
}

// PixelSize is the raster size of one tile.
func (s Style) PixelSize() (int, int) {
	w := int(float64(s.Width/vg.Inch)*float64(s.DPI) + 0.5)
	h := int(float64(s.Height/vg.Inch)*float64(s.DPI) + 0.5)
	return w, h
}

func (s Style) color(i int) color.Color {
	if len(s.Palette) == 0 {
		return color.Gray{Y: 128}
	}
	return s.Palette[i%len(s.Palette)]
}

func rgb(hex uint32) color.Color {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 255}
}

// Tab20 is the 20-colour categorical palette used for genres.
var Tab20 = []color.Color{
	rgb(0x1f77b4), rgb(0xaec7e8), rgb(0xff7f0e), rgb(0xffbb78),
	rgb(0x2ca02c), rgb(0x98df8a), rgb(0xd62728), rgb(0xff9896),
	rgb(0x9467bd), rgb(0xc5b0d5), rgb(0x8c564b), rgb(0xc49c94),
	rgb(0xe377c2), rgb(0xf7b6d2), rgb(0x7f7f7f), rgb(0xc7c7c7),
	rgb(0xbcbd22), rgb(0xdbdb8d), rgb(0x17becf), rgb(0x9edae5),
}
