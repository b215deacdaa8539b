package charts

import (
	"fmt"
	"image"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"bfi-dashboard/models"
	"bfi-dashboard/utils"
)

// Chart titles.
const (
	GenreBarTitle          = "Total Films Produced by Genre"
	GenreTrendsTitle       = "Genre Trends Over " + models.ColumnPeriod
	RevenueTrendTitle      = "Box Office Revenue Trends"
	GrossDistributionTitle = "Distribution of Box Office Gross"
)

// Chart is one rendered dashboard tile.
type Chart struct {
	Name     string
	Filename string
	Image    image.Image
}

// Renderer draws the four dashboard charts with a shared Style.
type Renderer struct {
	style  Style
	logger *utils.Logger
}

func NewRenderer(style Style, logger *utils.Logger) *Renderer {
	return &Renderer{style: style, logger: logger}
}

// Style returns the style every chart is drawn with.
func (r *Renderer) Style() Style { return r.style }

// RenderAll renders the genre bar, genre trends, revenue trend and gross
// distribution charts, in that order.
func (r *Renderer) RenderAll(report *models.InsightReport) ([]*Chart, error) {
	steps := []func() (*Chart, error){
		func() (*Chart, error) { return r.GenreBar(report.GenreCounts) },
		func() (*Chart, error) { return r.GenreTrends(report.GenreTrend) },
		func() (*Chart, error) { return r.RevenueTrend(report.RevenueTrend) },
		func() (*Chart, error) { return r.GrossDistribution(report.Grosses) },
	}

	charts := make([]*Chart, 0, len(steps))
	for _, step := range steps {
		c, err := step()
		if err != nil {
			return charts, err
		}
		charts = append(charts, c)
	}
	return charts, nil
}

// GenreBar draws one horizontal bar per genre, largest at the top.
func (r *Renderer) GenreBar(counts []models.GenreCount) (*Chart, error) {
	p, err := r.genreBarPlot(counts)
	if err != nil {
		return nil, err
	}
	return r.render(GenreBarTitle, GenreBarFile, p.Draw)
}

func (r *Renderer) genreBarPlot(counts []models.GenreCount) (*plot.Plot, error) {
	if len(counts) == 0 {
		return nil, &models.EmptyDataError{Chart: GenreBarTitle}
	}

	p := r.newPlot(GenreBarTitle, "Count", models.ColumnGenre)

	n := len(counts)
	width := r.style.Height * 0.6 / vg.Length(n)
	if limit := vg.Points(24); width > limit {
		width = limit
	}

	labels := make([]string, n)
	for i, gc := range counts {
		// Position 0 is the bottom of a nominal axis.
		pos := n - 1 - i
		labels[pos] = gc.Genre

		bar, err := plotter.NewBarChart(plotter.Values{float64(gc.Count)}, width)
		if err != nil {
			return nil, fmt.Errorf("charts: %s: %w", GenreBarTitle, err)
		}
		bar.Horizontal = true
		bar.XMin = float64(pos)
		bar.Color = r.style.color(i)
		bar.LineStyle.Width = 0
		p.Add(bar)
	}
	p.NominalY(labels...)
	return p, nil
}

// GenreTrends draws the genre-by-period pivot as stacked areas, one band per
// genre column, with the legend outside the axes at the upper right.
func (r *Renderer) GenreTrends(trend *models.GenreTrend) (*Chart, error) {
	p, legend, err := r.genreTrendsPlot(trend)
	if err != nil {
		return nil, err
	}
	return r.render(GenreTrendsTitle, GenreTrendsFile, func(dc draw.Canvas) {
		axes, side := legendLayout(dc, p, legend)
		p.Draw(axes)
		legend.Draw(side)
	})
}

// legendLayout splits dc into the plot area and a right-hand column for the
// legend. The legend column starts level with the top of the axes.
func legendLayout(dc draw.Canvas, p *plot.Plot, legend *plot.Legend) (axes, side draw.Canvas) {
	box := legend.Rectangle(dc)
	gutter := box.Max.X - box.Min.X + vg.Points(12)

	axes = draw.Crop(dc, 0, -gutter, 0, 0)
	top := p.Title.TextStyle.Rectangle(p.Title.Text).Size().Y + p.Title.Padding
	side = draw.Crop(dc, dc.Max.X-dc.Min.X-gutter+vg.Points(6), 0, 0, -top)
	return axes, side
}

func (r *Renderer) genreTrendsPlot(trend *models.GenreTrend) (*plot.Plot, *plot.Legend, error) {
	if trend.Empty() {
		return nil, nil, &models.EmptyDataError{Chart: GenreTrendsTitle}
	}

	p := r.newPlot(GenreTrendsTitle, models.ColumnPeriod, "Number of Films")
	legend := plot.NewLegend()
	legend.Top = true
	legend.Left = true

	lower := make([]float64, len(trend.Periods))
	for j, genre := range trend.Genres {
		col := trend.Column(j)
		upper := make([]float64, len(col))
		for i := range col {
			upper[i] = lower[i] + col[i]
		}

		band, err := plotter.NewPolygon(stackedBand(trend.Periods, lower, upper))
		if err != nil {
			return nil, nil, fmt.Errorf("charts: %s: %s band: %w", GenreTrendsTitle, genre, err)
		}
		band.Color = r.style.color(j)
		band.LineStyle.Width = 0
		p.Add(band)
		legend.Add(genre, band)

		lower = upper
	}
	return p, &legend, nil
}

// stackedBand traces the upper edge left to right, then the lower edge back.
// A single period is widened so the band stays visible.
func stackedBand(periods, lower, upper []float64) plotter.XYs {
	xs := periods
	if len(periods) == 1 {
		xs = []float64{periods[0] - 0.5, periods[0] + 0.5}
		lower = []float64{lower[0], lower[0]}
		upper = []float64{upper[0], upper[0]}
	}

	pts := make(plotter.XYs, 0, 2*len(xs))
	for i := range xs {
		pts = append(pts, plotter.XY{X: xs[i], Y: upper[i]})
	}
	for i := len(xs) - 1; i >= 0; i-- {
		pts = append(pts, plotter.XY{X: xs[i], Y: lower[i]})
	}
	return pts
}

// RevenueTrend draws summed gross per period as a line with circle markers.
func (r *Renderer) RevenueTrend(points []models.RevenuePoint) (*Chart, error) {
	p, err := r.revenueTrendPlot(points)
	if err != nil {
		return nil, err
	}
	return r.render(RevenueTrendTitle, RevenueTrendFile, p.Draw)
}

func (r *Renderer) revenueTrendPlot(points []models.RevenuePoint) (*plot.Plot, error) {
	if len(points) == 0 {
		return nil, &models.EmptyDataError{Chart: RevenueTrendTitle}
	}

	p := r.newPlot(RevenueTrendTitle, models.ColumnPeriod, "Box Office Revenue (£)")

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: pt.Period, Y: pt.GrossFloat()}
	}

	line, marks, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, fmt.Errorf("charts: %s: %w", RevenueTrendTitle, err)
	}
	line.Color = r.style.LineColor
	line.Width = vg.Points(2)
	marks.Shape = draw.CircleGlyph{}
	marks.Color = r.style.LineColor
	marks.Radius = vg.Points(4)
	p.Add(line, marks)
	return p, nil
}

// GrossDistribution draws a histogram of per-film gross with a KDE curve
// scaled to bin counts.
func (r *Renderer) GrossDistribution(grosses []float64) (*Chart, error) {
	p, err := r.grossDistributionPlot(grosses)
	if err != nil {
		return nil, err
	}
	return r.render(GrossDistributionTitle, GrossDistributionFile, p.Draw)
}

func (r *Renderer) grossDistributionPlot(grosses []float64) (*plot.Plot, error) {
	if len(grosses) == 0 {
		return nil, &models.EmptyDataError{Chart: GrossDistributionTitle}
	}

	p := r.newPlot(GrossDistributionTitle, "Box Office Gross (£ million)", "Frequency")

	bins := r.style.Bins
	if bins <= 0 {
		bins = DefaultBins
	}
	hist, err := plotter.NewHist(plotter.Values(grosses), bins)
	if err != nil {
		return nil, fmt.Errorf("charts: %s: %w", GrossDistributionTitle, err)
	}
	hist.FillColor = r.style.HistColor
	hist.LineStyle.Color = r.style.Background
	p.Add(hist)

	if kde, ok := NewKDE(grosses); ok {
		scale := float64(len(grosses)) * hist.Width
		curve := plotter.NewFunction(func(x float64) float64 {
			return kde.Density(x) * scale
		})
		curve.XMin = hist.Bins[0].Min
		curve.XMax = hist.Bins[len(hist.Bins)-1].Max
		curve.Samples = 200
		curve.Color = r.style.HistColor
		curve.Width = vg.Points(2)
		p.Add(curve)
	} else {
		r.logger.Debug("[charts] %s: fewer than two distinct values, density curve omitted", GrossDistributionTitle)
	}
	return p, nil
}

func (r *Renderer) newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = r.style.TitleSize
	p.Title.TextStyle.Color = r.style.TitleColor
	p.Title.Padding = vg.Points(8)
	p.BackgroundColor = r.style.Background
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

func (r *Renderer) render(name, filename string, drawChart func(draw.Canvas)) (*Chart, error) {
	canvas := vgimg.NewWith(
		vgimg.UseWH(r.style.Width, r.style.Height),
		vgimg.UseDPI(r.style.DPI),
		vgimg.UseBackgroundColor(r.style.Background),
	)
	drawChart(draw.New(canvas))

	img := canvas.Image()
	b := img.Bounds()
	r.logger.Info("[charts] Rendered %q (%dx%d px @ %d dpi)", name, b.Dx(), b.Dy(), r.style.DPI)
	return &Chart{Name: name, Filename: filename, Image: img}, nil
}
