package diagram

import (
	"errors"
	"fmt"
	"image/color"
)

// Point is a position in scene units. Scenes use a y-up origin at the
// bottom-left corner.
type Point struct {
	X, Y float64
}

// Anchor is the alignment of a text item relative to its point.
type Anchor int

const (
	AnchorLeft   Anchor = iota // point is the left end of the baseline
	AnchorCenter               // point is the middle of the baseline
	AnchorMiddle               // point is the centre of the text block
)

// Heads selects which ends of an arrow carry an arrowhead.
type Heads int

const (
	HeadEnd Heads = iota
	HeadBoth
	HeadNone
)

// Style is the text appearance shared by labels and free text.
type Style struct {
	Size  float64 // points
	Color color.NRGBA
	Bold  bool
	Mono  bool
}

// Box is a rounded rectangle with an optional centred label. Lines in Label
// are separated by "\n".
type Box struct {
	Min         Point // bottom-left corner
	W, H        float64
	Radius      float64
	Fill        color.NRGBA
	Stroke      color.NRGBA
	StrokeWidth float64 // points, zero for none
	Label       string
	LabelStyle  Style
}

// Center returns the centre of b.
func (b Box) Center() Point {
	return Point{X: b.Min.X + b.W/2, Y: b.Min.Y + b.H/2}
}

// Circle is a filled disc with an optional centred label.
type Circle struct {
	Center      Point
	R           float64
	Fill        color.NRGBA
	Stroke      color.NRGBA
	StrokeWidth float64
	Label       string
	LabelStyle  Style
}

// Arrow connects two points. A non-zero Bend curves the shaft: the control
// point sits Bend times the shaft length off the midpoint, to the left of
// the travel direction.
type Arrow struct {
	From, To   Point
	Color      color.NRGBA
	Width      float64 // points
	HeadSize   float64 // scene units
	Heads      Heads
	Bend       float64
	Label      string
	LabelAt    *Point // label position, defaults to the midpoint
	LabelStyle Style
}

// Text is a free-standing string. When Backdrop is set the text is drawn
// on a rounded box of that colour.
type Text struct {
	At       Point
	Text     string
	Anchor   Anchor
	Style    Style
	Backdrop *color.NRGBA
}

// LegendItem is one coloured swatch of a legend.
type LegendItem struct {
	Label string
	Color color.NRGBA
}

// Legend is drawn as a framed list of swatches anchored at its top-right
// corner.
type Legend struct {
	TopRight Point
	Items    []LegendItem
	Style    Style
}

// SpecBlock is a column of plain text lines starting at Origin and
// advancing downwards by Leading.
type SpecBlock struct {
	Origin  Point
	Leading float64
	Lines   []string
	Style   Style
}

// Scene is a fixed geometric specification rendered to a bitmap. Items are
// painted in field order: boxes, circles, arrows, texts, spec, legend,
// title.
type Scene struct {
	Name       string
	Width      float64
	Height     float64
	Background color.NRGBA
	Title      *Text
	Boxes      []Box
	Circles    []Circle
	Arrows     []Arrow
	Texts      []Text
	Spec       *SpecBlock
	Legend     *Legend
}

// Validate checks that the canvas has an area and that every primitive has
// non-negative size.
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("scene %s: empty canvas %gx%g", s.Name, s.Width, s.Height)
	}
	for i, b := range s.Boxes {
		if b.W <= 0 || b.H <= 0 {
			return fmt.Errorf("scene %s: box %d has no area", s.Name, i)
		}
	}
	for i, c := range s.Circles {
		if c.R <= 0 {
			return fmt.Errorf("scene %s: circle %d has no radius", s.Name, i)
		}
	}
	for i, a := range s.Arrows {
		if a.From == a.To {
			return fmt.Errorf("scene %s: arrow %d has zero length", s.Name, i)
		}
	}
	return nil
}

// Logo is the project mark. Unlike Scene it is specified in pixels with the
// origin at the top-left, since it has a fixed output size. Text positions
// are the top-left corner of the first line and text sizes are pixels.
type Logo struct {
	Width, Height int
	Background    color.NRGBA
	Circles       []Circle
	Lines         []Arrow // drawn with HeadNone
	Texts         []Text
}

var errEmptyLogo = errors.New("logo: empty canvas")

// Validate checks the logo dimensions.
func (l *Logo) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return errEmptyLogo
	}
	return nil
}
