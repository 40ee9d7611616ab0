// Package chart draws a snapshot's closing prices as a terminal line chart
// and tracks the hover tooltip over it.
package chart

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/lipgloss"

	"stocktracker/pkg/format"
	"stocktracker/pkg/theme"
	"stocktracker/services/market"
)

const (
	xAxisLabel = "Date"
	yAxisLabel = "Closing Price (IDR)"

	// tooltipCurrency is fixed regardless of the quote's currency.
	tooltipCurrency = "IDR"

	minWidth  = 30
	minHeight = 8

	// headerLines sit above the canvas: title and y-axis label.
	headerLines = 2
	// footerLines sit below the canvas: x-axis label and the tooltip box.
	footerLines = 5

	dateLabelWidth = 10
	ySteps         = 4
)

type point struct {
	x     float64 // days since the first close
	date  time.Time
	price float64
}

// Renderer owns the chart surface. It is not safe for concurrent use; the UI
// loop is its only caller.
type Renderer struct {
	styles theme.Styles

	symbol string
	points []point
	first  time.Time

	width  int
	height int

	minX, maxX float64
	minY, maxY float64

	listener *Listener
}

// New creates an empty renderer styled with styles.
func New(styles theme.Styles) *Renderer {
	r := &Renderer{styles: styles, width: minWidth, height: minHeight}
	r.listener = newListener(nil)
	return r
}

// SetStyles reapplies the theme to every chart surface.
func (r *Renderer) SetStyles(styles theme.Styles) {
	r.styles = styles
}

// Resize sets the canvas size in cells, clamped to a usable minimum.
func (r *Renderer) Resize(width, height int) {
	r.width = max(width, minWidth)
	r.height = max(height, minHeight)
}

// Render replaces the plotted series with snap's closes and titles the chart
// with ticker as the user typed it. The previous hover listener is released
// before the new one is attached.
func (r *Renderer) Render(ticker string, snap *market.Snapshot) {
	r.symbol = ticker
	if r.symbol == "" {
		r.symbol = snap.Symbol
	}
	r.points = r.points[:0:0]

	if len(snap.Closes) > 0 {
		r.first = snap.Closes[0].Date
	}
	for _, c := range snap.Closes {
		r.points = append(r.points, point{
			x:     c.Date.Sub(r.first).Hours() / 24,
			date:  c.Date,
			price: c.Close.InexactFloat64(),
		})
	}
	r.computeRanges()

	r.listener.Release()
	r.listener = newListener(r.points)
}

// Listener returns the live hover listener.
func (r *Renderer) Listener() *Listener {
	return r.listener
}

// Len is the number of plotted points.
func (r *Renderer) Len() int {
	return len(r.points)
}

func (r *Renderer) computeRanges() {
	r.minX, r.maxX, r.minY, r.maxY = 0, 1, 0, 1
	if len(r.points) == 0 {
		return
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range r.points {
		lo = math.Min(lo, p.price)
		hi = math.Max(hi, p.price)
	}

	margin := (hi - lo) * 0.05
	if margin == 0 {
		margin = math.Max(math.Abs(hi)*0.005, 1)
	}
	r.minY, r.maxY = lo-margin, hi+margin

	last := r.points[len(r.points)-1].x
	if last > 0 {
		r.maxX = last
	}
}

// yLabelWidth is the number of columns left of the plotting area. It samples
// the same tick values ntcharts lays out, so it matches the chart's origin.
func (r *Renderer) yLabelWidth() int {
	rows := r.height - 2
	inc := (r.maxY - r.minY) / float64(rows)
	w := 0
	for i := 0; i <= rows; i += ySteps {
		w = max(w, len(format.Float(r.minY+inc*float64(i))))
	}
	return w + 1
}

// plotArea reports the first data column and the column and row counts of
// the graphing area, as placed by ntcharts.
func (r *Renderer) plotArea() (left, cols, rows int) {
	lc := r.newLineChart()
	return lc.Origin().X + 1, lc.GraphWidth(), lc.GraphHeight()
}

// Height is the total number of lines View produces.
func (r *Renderer) Height() int {
	return headerLines + r.height + footerLines
}

// HoverAt selects the point nearest the cursor at (col, row), relative to
// the top-left of View. Positions outside the plotting area clear the
// selection and report false.
func (r *Renderer) HoverAt(col, row int) bool {
	left, cols, rows := r.plotArea()
	top := headerLines

	if row < top || row >= top+rows || col < left || col >= left+cols || cols < 2 {
		r.listener.clear()
		return false
	}

	frac := float64(col-left) / float64(cols-1)
	return r.listener.nearest(r.minX + frac*(r.maxX-r.minX))
}

// Step moves the hover selection by delta points.
func (r *Renderer) Step(delta int) bool {
	return r.listener.step(delta)
}

// ClearHover hides the tooltip.
func (r *Renderer) ClearHover() {
	r.listener.clear()
}

// Tooltip returns the text for the hovered point.
func (r *Renderer) Tooltip() (string, bool) {
	p, ok := r.listener.current()
	if !ok {
		return "", false
	}
	return TooltipText(p.date, p.price), true
}

// TooltipText is the hover annotation for one point.
func TooltipText(date time.Time, price float64) string {
	return fmt.Sprintf("Date: %s\nPrice: %s %s", format.Date(date), format.Float(price), tooltipCurrency)
}

// View renders title, axes, line, and the tooltip area.
func (r *Renderer) View() string {
	s := r.styles
	var b strings.Builder

	title := "No data"
	if r.symbol != "" {
		title = fmt.Sprintf("%s - Last Month", r.symbol)
	}
	b.WriteString(s.ChartTitle.Width(r.width).Align(lipgloss.Center).Render(title) + "\n")
	b.WriteString(s.ChartAxisLabel.Width(r.width).Render(yAxisLabel) + "\n")
	b.WriteString(s.ChartFace.Render(r.canvasView()) + "\n")
	b.WriteString(s.ChartAxisLabel.Width(r.width).Align(lipgloss.Center).Render(xAxisLabel) + "\n")

	text, ok := r.Tooltip()
	if !ok {
		text = "Hover over the line\nor use ←/→ to inspect"
	}
	b.WriteString(s.Tooltip.Render(text))

	return b.String()
}

func (r *Renderer) newLineChart() linechart.Model {
	s := r.styles

	xSteps := max(1, (r.width-r.yLabelWidth())/(dateLabelWidth+4))
	first := r.first
	xLabel := func(_ int, v float64) string {
		if len(r.points) == 0 {
			return ""
		}
		return format.Date(first.Add(time.Duration(v * float64(24*time.Hour))))
	}
	yLabel := func(_ int, v float64) string {
		return format.Float(v)
	}

	return linechart.New(r.width, r.height,
		r.minX, r.maxX,
		r.minY, r.maxY,
		linechart.WithXYSteps(xSteps, ySteps),
		linechart.WithXLabelFormatter(xLabel),
		linechart.WithYLabelFormatter(yLabel),
		linechart.WithStyles(s.ChartSpine, s.ChartTick, s.ChartLine),
	)
}

func (r *Renderer) canvasView() string {
	s := r.styles
	lc := r.newLineChart()

	if p, ok := r.listener.current(); ok {
		lc.DrawBrailleLineWithStyle(
			canvas.Float64Point{X: p.x, Y: r.minY},
			canvas.Float64Point{X: p.x, Y: r.maxY},
			s.ChartAxisLabel,
		)
	}

	switch len(r.points) {
	case 0:
	case 1:
		p := canvas.Float64Point{X: r.points[0].x, Y: r.points[0].price}
		lc.DrawBrailleLineWithStyle(p, p, s.ChartLine)
	default:
		for i := 0; i < len(r.points)-1; i++ {
			p1 := canvas.Float64Point{X: r.points[i].x, Y: r.points[i].price}
			p2 := canvas.Float64Point{X: r.points[i+1].x, Y: r.points[i+1].price}
			lc.DrawBrailleLineWithStyle(p1, p2, s.ChartLine)
		}
	}

	lc.DrawXYAxisAndLabel()
	return lc.View()
}
