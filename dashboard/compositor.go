package dashboard

import (
	"image"

	"golang.org/x/image/draw"

	"bfi-dashboard/models"
	"bfi-dashboard/utils"
)

// TileCount is the number of charts in the 2×2 grid.
const TileCount = models.ExpectedTiles

// Compositor lays four equal-sized chart tiles out on a single canvas with a
// title, subtitle and caption block.
type Compositor struct {
	layout Layout
	logger *utils.Logger
}

func NewCompositor(layout Layout, logger *utils.Logger) *Compositor {
	return &Compositor{layout: layout, logger: logger}
}

// Compose builds the dashboard canvas. Tiles go top-left, top-right,
// bottom-left, bottom-right. The font is loaded before the tiles are checked.
func (c *Compositor) Compose(tiles []image.Image) (*image.RGBA, error) {
	l := c.layout

	face, err := loadFace(l.FontPath, l.FontSize)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	size, err := tileSize(tiles)
	if err != nil {
		return nil, err
	}

	width, height := l.CanvasSize(size.X, size.Y)
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(l.Background), image.Point{}, draw.Src)

	gridLeft := (width - (2*size.X + l.Spacing)) / 2
	gridTop := l.GridTop()
	for i, tile := range tiles {
		col, row := i%2, i/2
		at := image.Pt(gridLeft+col*(size.X+l.Spacing), gridTop+row*(size.Y+l.Spacing))
		dst := image.Rectangle{Min: at, Max: at.Add(size)}
		draw.Draw(canvas, dst, tile, tile.Bounds().Min, draw.Src)
	}

	title := measure(face, l.Title)
	drawText(canvas, face, l.TextColor, (width-title.Width)/2, l.TitleY, l.Title)

	subtitle := measure(face, l.Subtitle)
	subtitleY := l.TitleY + title.Height + l.SubtitleGap + l.TitleSpacing
	drawText(canvas, face, l.TextColor, (width-subtitle.Width)/2, subtitleY, l.Subtitle)

	y := gridTop + 2*size.Y + l.Spacing + l.CaptionGap
	for _, line := range l.Caption {
		drawText(canvas, face, l.TextColor, l.CaptionX, y, line)
		y += measure(face, line).Bottom + l.LineSpacing
	}
	if y > height {
		c.logger.Warn("[dashboard] Caption overflows canvas by %d px", y-height)
	}

	c.logger.Info("[dashboard] Composed %dx%d canvas from %d tiles of %dx%d",
		width, height, len(tiles), size.X, size.Y)
	return canvas, nil
}

func tileSize(tiles []image.Image) (image.Point, error) {
	if len(tiles) != TileCount {
		return image.Point{}, &models.DimensionMismatchError{Count: len(tiles)}
	}

	want := tiles[0].Bounds().Size()
	for i, t := range tiles[1:] {
		if got := t.Bounds().Size(); got != want {
			return image.Point{}, &models.DimensionMismatchError{Count: len(tiles), Tile: i + 1, Want: want, Got: got}
		}
	}
	return want, nil
}
