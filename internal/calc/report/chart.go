package report

import (
	"fmt"

	"github.com/phpdave11/gofpdf"

	atterberg "Geospace/internal/calc/atterberg"
)

// plot maps chart coordinates onto a rectangle of the page.
type plot struct {
	pdf        *gofpdf.Fpdf
	x, y, w, h float64
	axes       atterberg.Axes
}

func newPlot(pdf *gofpdf.Fpdf, x, y, w, h float64, axes atterberg.Axes) plot {
	if axes.XMax <= axes.XMin {
		axes.XMax = axes.XMin + 1
	}
	if axes.YMax <= axes.YMin {
		axes.YMax = axes.YMin + 1
	}
	return plot{pdf: pdf, x: x, y: y, w: w, h: h, axes: axes}
}

// pad widens the data range by a tenth on each side.
func pad(a atterberg.Axes) atterberg.Axes {
	dx, dy := (a.XMax-a.XMin)/10, (a.YMax-a.YMin)/10
	if dx == 0 {
		dx = 1
	}
	if dy == 0 {
		dy = 1
	}
	a.XMin, a.XMax = a.XMin-dx, a.XMax+dx
	a.YMin, a.YMax = a.YMin-dy, a.YMax+dy
	return a
}

func (p plot) px(v float64) float64 {
	return p.x + (v-p.axes.XMin)/(p.axes.XMax-p.axes.XMin)*p.w
}

func (p plot) py(v float64) float64 {
	return p.y + p.h - (v-p.axes.YMin)/(p.axes.YMax-p.axes.YMin)*p.h
}

func (p plot) line(a, b atterberg.Point) {
	p.pdf.Line(p.px(a.X), p.py(a.Y), p.px(b.X), p.py(b.Y))
}

func (p plot) polyline(pts []atterberg.Point) {
	for i := 1; i < len(pts); i++ {
		p.line(pts[i-1], pts[i])
	}
}

func (p plot) text(at atterberg.Point, s string) {
	p.pdf.Text(p.px(at.X), p.py(at.Y), s)
}

func (p plot) frame(title string) {
	pdf := p.pdf
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Rect(p.x, p.y, p.w, p.h, "D")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Text(p.x, p.y-2, title)
	pdf.SetFont("Helvetica", "", 7)
	pdf.Text(p.x+p.w/2-15, p.y+p.h+8, p.axes.XLabel)
	pdf.TransformBegin()
	pdf.TransformRotate(90, p.x-8, p.y+p.h/2+15)
	pdf.Text(p.x-8, p.y+p.h/2+15, p.axes.YLabel)
	pdf.TransformEnd()
	pdf.Text(p.x-1, p.y+p.h+4, fmt.Sprintf("%.0f", p.axes.XMin))
	pdf.Text(p.x+p.w-4, p.y+p.h+4, fmt.Sprintf("%.0f", p.axes.XMax))
	pdf.Text(p.x-7, p.y+p.h, fmt.Sprintf("%.0f", p.axes.YMin))
	pdf.Text(p.x-7, p.y+2, fmt.Sprintf("%.0f", p.axes.YMax))
}

func (p plot) clip(draw func()) {
	p.pdf.ClipRect(p.x, p.y, p.w, p.h, false)
	draw()
	p.pdf.ClipEnd()
}

func drawLiquidLimitChart(pdf *gofpdf.Fpdf, x, y, w, h float64, c atterberg.LiquidLimitChart) {
	p := newPlot(pdf, x, y, w, h, pad(c.Axes))
	p.frame(c.Title)
	p.clip(func() {
		pdf.SetDrawColor(0, 128, 0)
		pdf.SetDashPattern([]float64{1.5, 1}, 0)
		p.line(atterberg.Point{X: c.ReferenceX, Y: p.axes.YMin}, atterberg.Point{X: c.ReferenceX, Y: p.axes.YMax})
		pdf.SetDashPattern([]float64{}, 0)

		pdf.SetDrawColor(0, 0, 255)
		pdf.SetFillColor(0, 0, 255)
		pdf.SetLineWidth(0.4)
		p.polyline(c.Series.Points)
		for _, pt := range c.Series.Points {
			pdf.Circle(p.px(pt.X), p.py(pt.Y), 0.8, "F")
		}
		pdf.SetFillColor(255, 0, 0)
		pdf.Circle(p.px(c.LiquidLimit.X), p.py(c.LiquidLimit.Y), 1, "F")
	})
	pdf.SetLineWidth(0.2)
	pdf.SetFont("Helvetica", "", 7)
	p.text(c.LiquidLimit, fmt.Sprintf(" LL = %.0f%%", c.LiquidLimit.Y))
}

func drawPlasticityChart(pdf *gofpdf.Fpdf, x, y, w, h float64, c atterberg.PlasticityChart) {
	p := newPlot(pdf, x, y, w, h, c.Axes)
	p.frame(c.Title)
	p.clip(func() {
		pdf.SetLineWidth(0.4)
		pdf.SetDrawColor(0, 0, 255)
		p.polyline(c.ALine.Points)
		pdf.SetDrawColor(128, 0, 128)
		p.polyline(c.ULine.Points)
		pdf.SetDrawColor(0, 0, 0)
		p.line(atterberg.Point{X: c.LLBoundary, Y: p.axes.YMin}, atterberg.Point{X: c.LLBoundary, Y: p.axes.YMax})
		pdf.SetDrawColor(200, 0, 0)
		for _, s := range c.Boundaries {
			p.line(s.From, s.To)
		}
		pdf.SetDrawColor(255, 0, 0)
		s := c.Sample.At
		p.line(atterberg.Point{X: s.X - 1.5, Y: s.Y - 1}, atterberg.Point{X: s.X + 1.5, Y: s.Y + 1})
		p.line(atterberg.Point{X: s.X - 1.5, Y: s.Y + 1}, atterberg.Point{X: s.X + 1.5, Y: s.Y - 1})
	})
	pdf.SetLineWidth(0.2)
	pdf.SetFont("Helvetica", "B", 7)
	for _, l := range c.Labels {
		p.text(l.At, l.Text)
	}
	pdf.SetFont("Helvetica", "", 7)
	pdf.Text(x, y+h+12, c.Sample.Text)
}
