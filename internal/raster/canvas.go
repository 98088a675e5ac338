package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/julianshen/firmdiag/internal/diagram"
)

// vec is a point in pixel space.
type vec struct{ X, Y float64 }

func (a vec) add(b vec) vec { return vec{a.X + b.X, a.Y + b.Y} }
func (a vec) sub(b vec) vec { return vec{a.X - b.X, a.Y - b.Y} }
func (a vec) mul(k float64) vec { return vec{a.X * k, a.Y * k} }
func (a vec) len() float64 { return math.Hypot(a.X, a.Y) }
func (a vec) perp() vec { return vec{-a.Y, a.X} }
func (a vec) unit() vec {
	l := a.len()
	if l == 0 {
		return vec{}
	}
	return a.mul(1 / l)
}

// canvas maps diagram coordinates to pixels and paints primitives.
type canvas struct {
	img   *image.RGBA
	z     *vector.Rasterizer
	fonts *Fonts
	scale float64 // pixels per coordinate unit
	ptpx  float64 // pixels per point, for text and stroke widths
	flip  bool    // y-up coordinates
	h     float64 // canvas height in coordinate units
}

func newCanvas(w, h int, bg color.NRGBA, fonts *Fonts, scale, ptpx float64, flip bool) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &canvas{
		img:   img,
		z:     vector.NewRasterizer(w, h),
		fonts: fonts,
		scale: scale,
		ptpx:  ptpx,
		flip:  flip,
		h:     float64(h) / scale,
	}
}

func (c *canvas) at(p diagram.Point) vec {
	y := p.Y
	if c.flip {
		y = c.h - y
	}
	return vec{p.X * c.scale, y * c.scale}
}

// fill paints the union of rings in col. Rings wound in opposite
// directions cancel, which is how strokes are cut out.
func (c *canvas) fill(col color.NRGBA, rings ...[]vec) {
	if col.A == 0 {
		return
	}
	b := c.img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	clamp := func(p vec) (float32, float32) {
		return float32(math.Max(0, math.Min(w, p.X))), float32(math.Max(0, math.Min(h, p.Y)))
	}

	c.z.Reset(b.Dx(), b.Dy())
	drawn := false
	for _, r := range rings {
		if len(r) < 3 {
			continue
		}
		c.z.MoveTo(clamp(r[0]))
		for _, p := range r[1:] {
			c.z.LineTo(clamp(p))
		}
		c.z.ClosePath()
		drawn = true
	}
	if drawn {
		c.z.Draw(c.img, b, image.NewUniform(col), image.Point{})
	}
}

func reversed(r []vec) []vec {
	out := make([]vec, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// outline paints a filled shape with an optional border of width px,
// centred on the shape edge. shape returns the ring grown by d pixels.
func (c *canvas) outline(shape func(d float64) []vec, fill, stroke color.NRGBA, width float64) {
	if width <= 0 || stroke.A == 0 {
		c.fill(fill, shape(0))
		return
	}
	c.fill(fill, shape(-width/2))
	c.fill(stroke, shape(width/2), reversed(shape(-width/2)))
}

const arcSegments = 10

func roundRect(x0, y0, x1, y1, r float64) []vec {
	r = math.Max(0, math.Min(r, math.Min((x1-x0)/2, (y1-y0)/2)))
	corners := []struct {
		cx, cy, start float64
	}{
		{x1 - r, y0 + r, -math.Pi / 2},
		{x1 - r, y1 - r, 0},
		{x0 + r, y1 - r, math.Pi / 2},
		{x0 + r, y0 + r, math.Pi},
	}
	pts := make([]vec, 0, 4*(arcSegments+1))
	for _, k := range corners {
		for i := 0; i <= arcSegments; i++ {
			a := k.start + float64(i)/arcSegments*math.Pi/2
			pts = append(pts, vec{k.cx + r*math.Cos(a), k.cy + r*math.Sin(a)})
		}
	}
	return pts
}

func circle(center vec, r float64) []vec {
	n := int(math.Max(32, math.Min(180, r)))
	pts := make([]vec, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = vec{center.X + r*math.Cos(a), center.Y + r*math.Sin(a)}
	}
	return pts
}

// strokePolyline returns the outline of a polyline drawn with the given
// width, using averaged normals at interior points.
func strokePolyline(pts []vec, width float64) []vec {
	if len(pts) < 2 {
		return nil
	}
	half := width / 2
	left := make([]vec, len(pts))
	right := make([]vec, len(pts))
	for i := range pts {
		var dir vec
		switch {
		case i == 0:
			dir = pts[1].sub(pts[0])
		case i == len(pts)-1:
			dir = pts[i].sub(pts[i-1])
		default:
			dir = pts[i+1].sub(pts[i-1])
		}
		n := dir.unit().perp().mul(half)
		left[i] = pts[i].add(n)
		right[i] = pts[i].sub(n)
	}
	return append(left, reversed(right)...)
}

// textBlock is a laid-out run of lines.
type textBlock struct {
	face   font.Face
	lines  []string
	widths []float64
	width  float64
	lineH  float64
	ascent float64
}

func (c *canvas) layout(text string, style diagram.Style) textBlock {
	face := c.fonts.Face(style, style.Size*c.ptpx)
	m := face.Metrics()
	tb := textBlock{
		face:   face,
		lines:  strings.Split(text, "\n"),
		lineH:  float64(m.Height.Ceil()),
		ascent: float64(m.Ascent.Ceil()),
	}
	for _, l := range tb.lines {
		w := float64(font.MeasureString(face, l).Ceil())
		tb.widths = append(tb.widths, w)
		tb.width = math.Max(tb.width, w)
	}
	return tb
}

func (tb textBlock) height() float64 {
	return tb.lineH * float64(len(tb.lines))
}

// top returns the top edge of a block placed at p with anchor a.
func (tb textBlock) top(p vec, a diagram.Anchor) float64 {
	if a == diagram.AnchorMiddle {
		return p.Y - tb.height()/2
	}
	return p.Y - tb.ascent
}

// text draws a possibly multi-line string. Lines of a centred block are
// centred individually. backdrop, when non-nil, is painted behind the
// whole block.
func (c *canvas) text(p vec, s string, style diagram.Style, a diagram.Anchor, backdrop *color.NRGBA) {
	if s == "" {
		return
	}
	tb := c.layout(s, style)
	top := tb.top(p, a)
	c.drawBlock(tb, p.X, top, a != diagram.AnchorLeft, style.Color, backdrop)
}

// textTopLeft draws s with its first line's top-left corner at p.
func (c *canvas) textTopLeft(p vec, s string, style diagram.Style) {
	if s == "" {
		return
	}
	tb := c.layout(s, style)
	c.drawBlock(tb, p.X, p.Y, false, style.Color, nil)
}

func (c *canvas) drawBlock(tb textBlock, x, top float64, centred bool, col color.NRGBA, backdrop *color.NRGBA) {
	if backdrop != nil {
		pad := tb.lineH * 0.25
		left := x
		if centred {
			left = x - tb.width/2
		}
		c.fill(*backdrop, roundRect(left-pad, top-pad, left+tb.width+pad, top+tb.height()+pad, pad))
	}

	src := image.NewUniform(col)
	for i, line := range tb.lines {
		lx := x
		if centred {
			lx = x - tb.widths[i]/2
		}
		baseline := top + tb.ascent + float64(i)*tb.lineH
		d := font.Drawer{
			Dst:  c.img,
			Src:  src,
			Face: tb.face,
			Dot:  fixed.Point26_6{X: fixed.Int26_6(lx * 64), Y: fixed.Int26_6(baseline * 64)},
		}
		d.DrawString(line)
	}
}
