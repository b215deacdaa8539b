package dashboard

import "image/color"

// OutputFile is the composite dashboard filename.
const OutputFile = "22095071.png"

// Layout fixes the geometry and text of the composite dashboard. All
// distances are in pixels.
type Layout struct {
	Title    string
	Subtitle string
	Caption  []string

	// FontPath selects a TTF/OTF file; empty uses the bundled Go Regular face.
	FontPath string
	FontSize float64

	Spacing         int
	ExtraWidth      int
	CaptionArea     int
	TitleSpacing    int
	SubtitleSpacing int
	HeaderTop       int
	TitleY          int
	SubtitleGap     int
	CaptionX        int
	CaptionGap      int
	LineSpacing     int

	Background color.Color
	TextColor  color.Color
}

func DefaultLayout() Layout {
	return Layout{
		Title:    "British Film Institute - Cinema Trends",
		Subtitle: "Student ID: 22095071",
		Caption: []string{
			"This dashboard analyzes British Film Institute Cinema Trends:",
			"       Action and Drama films dominate the industry, making up over 50% of total production. The least produced genres are Westerns and Musicals.",
			"       The popularity of Action and Comedy films has increased since 2000, while the production of Drama films has seen fluctuations. Sci-fi and Fantasy genres show steady growth.",
			"       Box office revenue saw a significant increase from 2000 to 2010, peaking in 2012. This can be attributed to the release of several high-grossing blockbuster films during this period.",
			"       Most films earn less than £50 million at the box office, but there are a few outliers with exceptionally high earnings, indicating the presence of blockbuster hits.",
		},
		FontSize: 80,

		Spacing:         40,
		ExtraWidth:      600,
		CaptionArea:     800,
		TitleSpacing:    100,
		SubtitleSpacing: 50,
		HeaderTop:       100,
		TitleY:          20,
		SubtitleGap:     10,
		CaptionX:        20,
		CaptionGap:      100,
		LineSpacing:     20,

		Background: color.White,
		TextColor:  color.Black,
	}
}

// ExtraHeight is the vertical space reserved outside the chart grid.
func (l Layout) ExtraHeight() int {
	return l.CaptionArea + l.TitleSpacing + l.SubtitleSpacing
}

// GridTop is the y offset of the first tile row.
func (l Layout) GridTop() int {
	return l.HeaderTop + l.TitleSpacing + l.SubtitleSpacing
}

// CanvasSize returns the composite size for tiles of w×h.
func (l Layout) CanvasSize(w, h int) (int, int) {
	return 2*w + l.Spacing + l.ExtraWidth, 2*h + l.Spacing + l.ExtraHeight()
}
