package raster

import (
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/julianshen/firmdiag/internal/diagram"
)

// FontSource records which step of the fallback chain supplied the fonts.
type FontSource string

const (
	SourcePreferred FontSource = "preferred"
	SourceEmbedded  FontSource = "embedded"
	SourceBasic     FontSource = "basic"
)

type fontSet struct {
	regular, bold, mono *opentype.Font
}

// Fonts hands out font faces for text styles. The zero value is not usable;
// obtain one with AcquireFonts.
type Fonts struct {
	// Source is the fallback step that succeeded.
	Source FontSource
	// Reason explains why earlier steps were skipped; empty when the
	// preferred font loaded or none was requested.
	Reason string

	set   fontSet
	faces map[faceKey]font.Face
}

type faceKey struct {
	variant int
	quarter int // size in quarter pixels
}

const (
	variantRegular = iota
	variantBold
	variantMono
)

// AcquireFonts loads the font at preferredPath, falling back to the
// embedded Go fonts and then to the fixed 7x13 bitmap face. It never
// fails; the returned Fonts reports which source was used.
func AcquireFonts(preferredPath string) *Fonts {
	return acquireFonts(preferredPath, embeddedFonts)
}

func acquireFonts(preferredPath string, embedded func() (fontSet, error)) *Fonts {
	f := &Fonts{faces: make(map[faceKey]font.Face)}

	var reasons []string
	if preferredPath != "" {
		set, err := preferredFonts(preferredPath, embedded)
		if err == nil {
			f.Source = SourcePreferred
			f.set = set
			return f
		}
		log.Printf("WARNING: raster: preferred font unavailable, falling back: %v", err)
		reasons = append(reasons, err.Error())
	}

	set, err := embedded()
	if err == nil {
		f.Source = SourceEmbedded
		f.set = set
		f.Reason = strings.Join(reasons, "; ")
		return f
	}
	log.Printf("WARNING: raster: embedded fonts unavailable, using bitmap face: %v", err)
	reasons = append(reasons, err.Error())

	f.Source = SourceBasic
	f.Reason = strings.Join(reasons, "; ")
	return f
}

// preferredFonts uses the preferred file for regular and bold text. Mono
// text keeps the embedded monospace face when it is available.
func preferredFonts(path string, embedded func() (fontSet, error)) (fontSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fontSet{}, fmt.Errorf("reading font: %w", err)
	}
	fnt, err := opentype.Parse(data)
	if err != nil {
		return fontSet{}, fmt.Errorf("parsing font %s: %w", path, err)
	}
	set := fontSet{regular: fnt, bold: fnt, mono: fnt}
	if emb, err := embedded(); err == nil {
		set.mono = emb.mono
	}
	return set, nil
}

func embeddedFonts() (fontSet, error) {
	var set fontSet
	var err error
	if set.regular, err = opentype.Parse(goregular.TTF); err != nil {
		return fontSet{}, fmt.Errorf("parsing goregular: %w", err)
	}
	if set.bold, err = opentype.Parse(gobold.TTF); err != nil {
		return fontSet{}, fmt.Errorf("parsing gobold: %w", err)
	}
	if set.mono, err = opentype.Parse(gomono.TTF); err != nil {
		return fontSet{}, fmt.Errorf("parsing gomono: %w", err)
	}
	return set, nil
}

// Face returns a face for style at px pixels. With the bitmap source the
// size is ignored.
func (f *Fonts) Face(style diagram.Style, px float64) font.Face {
	if f == nil || f.Source == SourceBasic {
		return basicfont.Face7x13
	}

	variant, src := variantRegular, f.set.regular
	switch {
	case style.Mono:
		variant, src = variantMono, f.set.mono
	case style.Bold:
		variant, src = variantBold, f.set.bold
	}
	if px < 1 {
		px = 1
	}
	key := faceKey{variant: variant, quarter: int(math.Round(px * 4))}
	if face, ok := f.faces[key]; ok {
		return face
	}

	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    float64(key.quarter) / 4,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.Printf("WARNING: raster: face %.1fpx: %v", px, err)
		return basicfont.Face7x13
	}
	f.faces[key] = face
	return face
}

// Close releases the cached faces.
func (f *Fonts) Close() error {
	if f == nil {
		return nil
	}
	for k, face := range f.faces {
		face.Close()
		delete(f.faces, k)
	}
	return nil
}
