package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"bfi-dashboard/models"
	"bfi-dashboard/utils"
)

// InsightService computes the dashboard aggregates over cleaned films.
type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate builds genre counts, the genre-by-period pivot and the revenue
// trend. Empty input yields empty aggregates.
func (s *InsightService) Generate(films []*models.Film) *models.InsightReport {
	report := &models.InsightReport{
		TotalFilms:   len(films),
		TotalGross:   decimal.Zero,
		GenreCounts:  GenreCounts(films),
		GenreTrend:   GenreTrends(films),
		RevenueTrend: RevenueTrend(films),
		Grosses:      make([]float64, 0, len(films)),
	}

	for _, f := range films {
		report.Grosses = append(report.Grosses, f.Gross)
		report.TotalGross = report.TotalGross.Add(decimal.NewFromFloat(f.Gross))
	}

	s.logger.Info("[insights] %d films, %d genres, %d release periods",
		report.TotalFilms, len(report.GenreCounts), len(report.RevenueTrend))
	return report
}

// GenreCounts counts films per genre, descending by count. Genres with equal
// counts keep the order in which they were first seen.
func GenreCounts(films []*models.Film) []models.GenreCount {
	index := make(map[string]int)
	counts := make([]models.GenreCount, 0)
	for _, f := range films {
		i, ok := index[f.Genre]
		if !ok {
			i = len(counts)
			index[f.Genre] = i
			counts = append(counts, models.GenreCount{Genre: f.Genre})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// GenreTrends pivots film counts into one row per period (ascending) and one
// column per genre (alphabetical).
func GenreTrends(films []*models.Film) *models.GenreTrend {
	periodSet := make(map[float64]struct{})
	genreSet := make(map[string]struct{})
	type key struct {
		period float64
		genre  string
	}
	cells := make(map[key]float64)

	for _, f := range films {
		periodSet[f.Period] = struct{}{}
		genreSet[f.Genre] = struct{}{}
		cells[key{f.Period, f.Genre}]++
	}

	trend := &models.GenreTrend{
		Periods: sortedPeriods(periodSet),
		Genres:  make([]string, 0, len(genreSet)),
	}
	for g := range genreSet {
		trend.Genres = append(trend.Genres, g)
	}
	sort.Strings(trend.Genres)

	trend.Counts = make([][]float64, len(trend.Periods))
	for i, p := range trend.Periods {
		row := make([]float64, len(trend.Genres))
		for j, g := range trend.Genres {
			row[j] = cells[key{p, g}]
		}
		trend.Counts[i] = row
	}
	return trend
}

// RevenueTrend sums gross per period, ascending by period.
func RevenueTrend(films []*models.Film) []models.RevenuePoint {
	sums := make(map[float64]decimal.Decimal)
	for _, f := range films {
		sums[f.Period] = sums[f.Period].Add(decimal.NewFromFloat(f.Gross))
	}

	periods := make(map[float64]struct{}, len(sums))
	for p := range sums {
		periods[p] = struct{}{}
	}

	points := make([]models.RevenuePoint, 0, len(sums))
	for _, p := range sortedPeriods(periods) {
		points = append(points, models.RevenuePoint{Period: p, Gross: sums[p]})
	}
	return points
}

func sortedPeriods(set map[float64]struct{}) []float64 {
	out := make([]float64, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Float64s(out)
	return out
}

// Print writes a console summary of the report.
func (s *InsightService) Print(r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🎬 BFI CINEMA TRENDS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Films analysed         : \033[1m%d\033[0m\n", r.TotalFilms)
	fmt.Printf("  Total box office gross : \033[1;32m£%s million\033[0m\n", r.TotalGross.StringFixed(2))
	fmt.Println()

	fmt.Printf("\033[1;33m  Films by Genre\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.GenreCounts) == 0 {
		fmt.Printf("  No genre data\n")
	} else {
		max := r.GenreCounts[0].Count
		for _, gc := range r.GenreCounts {
			bar := strings.Repeat("█", scaleBar(gc.Count, max, 20))
			fmt.Printf("  %-24s %s (%d)\n", truncate(gc.Genre, 22), bar, gc.Count)
		}
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Box Office by Widest Point of Release\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.RevenueTrend) == 0 {
		fmt.Printf("  No revenue data\n")
	} else {
		for _, p := range r.RevenueTrend {
			fmt.Printf("  %-12s £%s m\n", models.FormatNumber(p.Period), p.Gross.StringFixed(2))
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

// scaleBar maps n in [0, max] onto at most width glyphs, never hiding a
// non-zero count.
func scaleBar(n, max, width int) int {
	if max <= 0 || n <= 0 {
		return 0
	}
	w := n * width / max
	if w == 0 {
		w = 1
	}
	return w
}

func truncate(s string, max int) string {
	if len([]rune(s)) <= max {
		return s
	}
	return string([]rune(s)[:max-3]) + "..."
}
