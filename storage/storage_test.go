package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bfi-dashboard/models"
	"bfi-dashboard/services"
	"bfi-dashboard/utils"
)

func sampleFilms() []*models.Film {
	return []*models.Film{
		{Period: 587, Genre: "Action", Gross: 94.3, Title: "Skyfall"},
		{Period: 540, Genre: "Animation", Gross: 22.125, Title: "Brave, the \"Film\""},
		{Period: 551, Genre: "Drama", Gross: 40.8, Title: "Les Misérables"},
	}
}

func TestEncodePNGWritesDPI(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})

	for _, dpi := range []int{72, 96, 300} {
		var buf bytes.Buffer
		require.NoError(t, EncodePNG(&buf, img, dpi))

		got, err := ReadDPI(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, dpi, got)

		decoded, err := png.Decode(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err, "pHYs chunk must keep the file valid")
		assert.Equal(t, img.Bounds(), decoded.Bounds())
	}
}

func TestEncodePNGWithoutDPI(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, image.NewGray(image.Rect(0, 0, 2, 2)), 0))

	got, err := ReadDPI(&buf)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestPNGWriterOverwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w, err := NewPNGWriter(dir, 150, utils.NewDiscardLogger())
	require.NoError(t, err)

	path, err := w.WriteImage("tile.png", image.NewRGBA(image.Rect(0, 0, 10, 10)))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tile.png"), path)

	_, err = w.WriteImage("tile.png", image.NewRGBA(image.Rect(0, 0, 20, 5)))
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Width)
	assert.Equal(t, 5, cfg.Height)
}

func TestCSVWriterRoundTripsThroughCleaner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export", "bfi_yearbook-clean.csv")
	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(sampleFilms()))
	require.NoError(t, w.Close())

	logger := utils.NewDiscardLogger()
	table, err := services.NewLoader(logger).LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, models.RequiredColumns, table.Columns)

	films, err := services.NewCleaner(logger).Clean(table)
	require.NoError(t, err)
	assert.Equal(t, sampleFilms(), films)
}

func TestSQLiteWriterArchivesRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")

	first, err := NewSQLiteWriter(path)
	require.NoError(t, err)
	require.NoError(t, first.Write(sampleFilms()))
	require.NoError(t, first.Close())

	second, err := NewSQLiteWriter(path)
	require.NoError(t, err)
	defer second.Close()
	assert.NotEqual(t, first.RunID(), second.RunID())
	require.NoError(t, second.Write(sampleFilms()[:1]))

	got, err := second.FetchRun(first.RunID())
	require.NoError(t, err)
	assert.Equal(t, sampleFilms(), got)

	got, err = second.FetchRun(second.RunID())
	require.NoError(t, err)
	assert.Len(t, got, 1)

	runs, err := second.Runs()
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first.RunID(), second.RunID()}, runs)

	none, err := second.FetchRun(uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLiteWriterBatchesLargeWrites(t *testing.T) {
	w, err := NewSQLiteWriter(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	defer w.Close()

	films := make([]*models.Film, 0, 123)
	for i := 0; i < 123; i++ {
		films = append(films, &models.Film{Period: float64(i), Genre: "Drama", Gross: 1, Title: "T"})
	}
	require.NoError(t, w.Write(films))
	require.NoError(t, w.Write(nil))

	got, err := w.FetchRun(w.RunID())
	require.NoError(t, err)
	require.Len(t, got, 123)
	assert.Equal(t, 122.0, got[122].Period)
}

func TestXLSXWriterSheets(t *testing.T) {
	report := &models.InsightReport{
		TotalFilms:  3,
		TotalGross:  decimal.RequireFromString("157.225"),
		GenreCounts: []models.GenreCount{{Genre: "Action", Count: 2}, {Genre: "Drama", Count: 1}},
		GenreTrend: &models.GenreTrend{
			Periods: []float64{540, 587},
			Genres:  []string{"Action", "Drama"},
			Counts:  [][]float64{{1, 1}, {1, 0}},
		},
		RevenueTrend: []models.RevenuePoint{
			{Period: 540, Gross: decimal.RequireFromString("62.925")},
			{Period: 587, Gross: decimal.RequireFromString("94.3")},
		},
	}

	path := filepath.Join(t.TempDir(), "summary.xlsx")
	w, err := NewXLSXWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteReport(report))
	require.NoError(t, w.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetGenreCounts, SheetGenreTrends, SheetBoxOffice}, f.GetSheetList())

	counts, err := f.GetRows(SheetGenreCounts)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Genre", "Films"}, {"Action", "2"}, {"Drama", "1"}}, counts)

	trends, err := f.GetRows(SheetGenreTrends)
	require.NoError(t, err)
	require.Len(t, trends, 3)
	assert.Equal(t, []string{models.ColumnPeriod, "Action", "Drama"}, trends[0])
	assert.Equal(t, []string{"587", "1", "0"}, trends[2])

	box, err := f.GetRows(SheetBoxOffice)
	require.NoError(t, err)
	require.Len(t, box, 4)
	assert.Equal(t, "Total", box[3][0])
	assert.Equal(t, "94.3", box[2][1])
}

func TestFilmWritersShareInterface(t *testing.T) {
	dir := t.TempDir()
	csvWriter, err := NewCSVWriter(filepath.Join(dir, "clean.csv"))
	require.NoError(t, err)
	archive, err := NewSQLiteWriter(filepath.Join(dir, "archive.db"))
	require.NoError(t, err)

	for _, w := range []FilmWriter{csvWriter, archive} {
		require.NoError(t, w.Write(sampleFilms()))
		require.NoError(t, w.Close())
	}

	data, err := os.ReadFile(filepath.Join(dir, "clean.csv"))
	require.NoError(t, err)
	assert.Equal(t, 4, bytes.Count(data, []byte("\n")), "header plus three rows")
}

func TestReportAndImageWritersShareInterface(t *testing.T) {
	dir := t.TempDir()
	xw, err := NewXLSXWriter(filepath.Join(dir, "summary.xlsx"))
	require.NoError(t, err)
	var rw ReportWriter = xw
	require.NoError(t, rw.WriteReport(&models.InsightReport{TotalGross: decimal.Zero}))
	require.NoError(t, rw.Close())
	assert.FileExists(t, xw.Path())

	pw, err := NewPNGWriter(dir, 72, utils.NewDiscardLogger())
	require.NoError(t, err)
	var iw ImageWriter = pw
	path, err := iw.WriteImage("x.png", image.NewGray(image.Rect(0, 0, 3, 3)))
	require.NoError(t, err)
	assert.FileExists(t, path)
}
