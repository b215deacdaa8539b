package models

import "github.com/shopspring/decimal"

// GenreCount is the number of films in one genre.
type GenreCount struct {
	Genre string
	Count int
}

// GenreTrend is a period × genre pivot of film counts. Counts[i][j] is the
// number of films released in Periods[i] with genre Genres[j]; absent
// combinations are zero.
type GenreTrend struct {
	Periods []float64
	Genres  []string
	Counts  [][]float64
}

// Column returns the per-period series for one genre column.
func (g *GenreTrend) Column(j int) []float64 {
	col := make([]float64, len(g.Periods))
	for i := range g.Periods {
		col[i] = g.Counts[i][j]
	}
	return col
}

// RowTotal sums every genre column for period index i.
func (g *GenreTrend) RowTotal(i int) float64 {
	var total float64
	for _, v := range g.Counts[i] {
		total += v
	}
	return total
}

// Empty reports whether the pivot has no cells.
func (g *GenreTrend) Empty() bool {
	return g == nil || len(g.Periods) == 0 || len(g.Genres) == 0
}

// RevenuePoint is the summed gross for one release period.
type RevenuePoint struct {
	Period float64
	Gross  decimal.Decimal
}

// GrossFloat returns the sum as a float64 for plotting.
func (p RevenuePoint) GrossFloat() float64 {
	f, _ := p.Gross.Float64()
	return f
}

// InsightReport holds the aggregates computed over the cleaned film set.
type InsightReport struct {
	TotalFilms   int
	TotalGross   decimal.Decimal
	GenreCounts  []GenreCount
	GenreTrend   *GenreTrend
	RevenueTrend []RevenuePoint
	Grosses      []float64
}
