// Package raster paints diagram scenes and the project logo into bitmaps.
// Fills are anti-aliased with golang.org/x/image/vector and text is set
// with golang.org/x/image/font.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/julianshen/firmdiag/internal/diagram"
)

// DefaultPixelsPerUnit gives a 1600x1200 image for a 16x12 scene.
const DefaultPixelsPerUnit = 100

// Scenes are laid out in inches; text sizes and stroke widths are points.
const pointsPerUnit = 72

// maxPixels bounds the canvas so a bad scale cannot exhaust memory.
const maxPixels = 64 << 20

const defaultHeadSize = 0.18

var legendFrame = color.NRGBA{R: 0xCC, G: 0xCC, B: 0xCC, A: 0xFF}

// Render paints s at ppu pixels per scene unit.
func Render(s *diagram.Scene, fonts *Fonts, ppu float64) (*image.RGBA, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if ppu <= 0 || math.IsNaN(ppu) || math.IsInf(ppu, 0) {
		return nil, fmt.Errorf("scene %s: invalid scale %g", s.Name, ppu)
	}
	w, h := int(math.Ceil(s.Width*ppu)), int(math.Ceil(s.Height*ppu))
	if w*h > maxPixels {
		return nil, fmt.Errorf("scene %s: %dx%d exceeds pixel limit", s.Name, w, h)
	}

	c := newCanvas(w, h, s.Background, fonts, ppu, ppu/pointsPerUnit, true)
	for _, b := range s.Boxes {
		c.box(b)
	}
	for _, ci := range s.Circles {
		c.circle(ci)
	}
	for _, a := range s.Arrows {
		c.arrow(a)
	}
	for _, t := range s.Texts {
		c.text(c.at(t.At), t.Text, t.Style, t.Anchor, t.Backdrop)
	}
	if s.Spec != nil {
		for i, line := range s.Spec.Lines {
			p := diagram.Point{X: s.Spec.Origin.X, Y: s.Spec.Origin.Y - float64(i)*s.Spec.Leading}
			c.text(c.at(p), line, s.Spec.Style, diagram.AnchorLeft, nil)
		}
	}
	if s.Legend != nil {
		c.legend(*s.Legend)
	}
	if s.Title != nil {
		c.text(c.at(s.Title.At), s.Title.Text, s.Title.Style, s.Title.Anchor, s.Title.Backdrop)
	}
	return c.img, nil
}

func (c *canvas) box(b diagram.Box) {
	p0 := c.at(b.Min)
	p1 := c.at(diagram.Point{X: b.Min.X + b.W, Y: b.Min.Y + b.H})
	x0, x1 := math.Min(p0.X, p1.X), math.Max(p0.X, p1.X)
	y0, y1 := math.Min(p0.Y, p1.Y), math.Max(p0.Y, p1.Y)
	r := b.Radius * c.scale
	c.outline(func(d float64) []vec {
		return roundRect(x0-d, y0-d, x1+d, y1+d, r+d)
	}, b.Fill, b.Stroke, b.StrokeWidth*c.ptpx)
	c.text(c.at(b.Center()), b.Label, b.LabelStyle, diagram.AnchorMiddle, nil)
}

func (c *canvas) circle(ci diagram.Circle) {
	center := c.at(ci.Center)
	r := ci.R * c.scale
	c.outline(func(d float64) []vec {
		return circle(center, r+d)
	}, ci.Fill, ci.Stroke, ci.StrokeWidth*c.ptpx)
	c.text(center, ci.Label, ci.LabelStyle, diagram.AnchorMiddle, nil)
}

const curveSamples = 24

// arrow paints the shaft, the heads and the label of a.
func (c *canvas) arrow(a diagram.Arrow) {
	from, to := c.at(a.From), c.at(a.To)
	width := math.Max(1, a.Width*c.ptpx)

	var pts []vec
	mid := from.add(to).mul(0.5)
	if a.Bend == 0 {
		pts = []vec{from, to}
	} else {
		// perp points right of travel on the y-down pixel grid.
		shaft := to.sub(from)
		ctrl := mid.sub(shaft.perp().mul(a.Bend))
		pts = make([]vec, curveSamples+1)
		for i := range pts {
			t := float64(i) / curveSamples
			u := 1 - t
			pts[i] = from.mul(u * u).add(ctrl.mul(2 * u * t)).add(to.mul(t * t))
		}
		mid = pts[curveSamples/2]
	}

	head := a.HeadSize
	if head == 0 {
		head = defaultHeadSize
	}
	headPx := head * c.scale
	if a.Heads != diagram.HeadNone {
		pts = c.arrowHead(pts, headPx, width, a.Color)
	}
	if a.Heads == diagram.HeadBoth {
		pts = reversed(c.arrowHead(reversed(pts), headPx, width, a.Color))
	}
	c.fill(a.Color, strokePolyline(pts, width))

	if a.Label != "" {
		at := mid
		if a.LabelAt != nil {
			at = c.at(*a.LabelAt)
		}
		c.text(at, a.Label, a.LabelStyle, diagram.AnchorMiddle, nil)
	}
}

// arrowHead paints a head at the last point of pts and returns pts with
// the final point pulled back to the head's base.
func (c *canvas) arrowHead(pts []vec, size, width float64, col color.NRGBA) []vec {
	n := len(pts)
	tip := pts[n-1]
	dir := tip.sub(pts[n-2]).unit()
	if dir == (vec{}) {
		return pts
	}
	size = math.Max(size, 2*width)
	base := tip.sub(dir.mul(size))
	side := dir.perp().mul(size * 0.45)
	c.fill(col, []vec{tip, base.add(side), base.sub(side)})

	out := append([]vec(nil), pts...)
	out[n-1] = tip.sub(dir.mul(size * 0.8))
	return out
}

func (c *canvas) legend(l diagram.Legend) {
	if len(l.Items) == 0 {
		return
	}
	tbs := make([]textBlock, len(l.Items))
	textW := 0.0
	for i, it := range l.Items {
		tbs[i] = c.layout(it.Label, l.Style)
		textW = math.Max(textW, tbs[i].width)
	}
	row := tbs[0].lineH * 1.5
	swatch := tbs[0].lineH * 0.9
	pad := tbs[0].lineH * 0.5
	w := pad + swatch + pad + textW + pad
	h := pad + row*float64(len(l.Items)) + pad - (row - swatch)

	tr := c.at(l.TopRight)
	x0, y0 := tr.X-w, tr.Y
	white := color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xE6}
	c.outline(func(d float64) []vec {
		return roundRect(x0-d, y0-d, x0+w+d, y0+h+d, pad/2+d)
	}, white, legendFrame, 1)

	for i, it := range l.Items {
		top := y0 + pad + float64(i)*row
		c.fill(it.Color, roundRect(x0+pad, top, x0+pad+swatch, top+swatch, 0))
		text := tbs[i]
		c.drawBlock(text, x0+pad+swatch+pad, top+(swatch-text.lineH)/2, false, l.Style.Color, nil)
	}
}

var errNoLogo = errors.New("logo: nil")

// ComposeLogo paints the project logo at its native pixel size.
func ComposeLogo(l *diagram.Logo, fonts *Fonts) (*image.RGBA, error) {
	if l == nil {
		return nil, errNoLogo
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	c := newCanvas(l.Width, l.Height, l.Background, fonts, 1, 1, false)
	for _, ci := range l.Circles {
		c.circle(ci)
	}
	for _, ln := range l.Lines {
		ln.Heads = diagram.HeadNone
		c.arrow(ln)
	}
	for _, t := range l.Texts {
		c.textTopLeft(c.at(t.At), t.Text, t.Style)
	}
	return c.img, nil
}

// EncodePNG writes img as a PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
