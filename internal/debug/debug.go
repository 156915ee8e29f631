// seehuhn.de/go/ligaturize - add programming ligatures to monospace fonts
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package debug provides destination and donor fonts for use in unit tests.
package debug

import (
	"bytes"
	"math"
	"strings"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/postscript/type1"
	"seehuhn.de/go/postscript/type1/names"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"
)

// DonorBase lists the characters which have mapped glyphs in the
// donor font.
const DonorBase = "-<>=!|&"

// DonorLigatures lists the character sequences for which the donor font has
// a ligature glyph called by the conventional "xxx_yyy.liga" name.
var DonorLigatures = []string{"->", "==", "!=", "||", "===", "&&"}

// Donor glyph names which are not of the form "xxx_yyy.liga".
const (
	// FuzzyArrow is a simple glyph for "=>".
	FuzzyArrow = "arrow_equal_greater"

	// CompositeLessEqual is a composite glyph for "<=", made from the glyphs
	// for "<" and "=".
	CompositeLessEqual = "less_equal.liga"
)

// Mono returns a copy of the Go Mono font.  The characters in omit are
// removed from the character map.
func Mono(omit string) *sfnt.Font {
	info, err := sfnt.Read(bytes.NewReader(gomono.TTF))
	if err != nil {
		panic(err)
	}
	fontCMap, err := info.CMapTable.GetBest()
	if err != nil {
		panic(err)
	}

	low, high := fontCMap.CodeRange()
	high = min(high, 0xFFFF)
	newCMap := cmap.Format4{}
	for r := low; r <= high; r++ {
		if strings.ContainsRune(omit, r) {
			continue
		}
		gid := fontCMap.Lookup(r)
		if gid == 0 {
			continue
		}
		newCMap[uint16(r)] = gid
	}
	info.InstallCMap(newCMap)

	return info
}

// Donor returns a TrueType font with ligature glyphs, for use as a donor
// font in unit tests.  The outlines are taken from Go Regular and are scaled
// to the given number of font design units per em.
//
// The font contains mapped glyphs for the characters in DonorBase,
// unmapped ligature glyphs for the sequences in DonorLigatures,
// and the glyphs FuzzyArrow and CompositeLessEqual.
func Donor(unitsPerEm uint16) *sfnt.Font {
	info, err := sfnt.Read(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(err)
	}
	fontCMap, err := info.CMapTable.GetBest()
	if err != nil {
		panic(err)
	}
	orig := info.Outlines.(*glyf.Outlines)

	q := float64(unitsPerEm) / float64(info.UnitsPerEm)
	scale := func(x funit.Int16) funit.Int16 {
		return funit.Int16(math.Round(float64(x) * q))
	}

	o := &glyf.Outlines{
		Tables: orig.Tables,
		Maxp:   orig.Maxp,
	}
	add := func(name string, g *glyf.Glyph, width funit.Int16) glyph.ID {
		gid := glyph.ID(len(o.Glyphs))
		o.Glyphs = append(o.Glyphs, g)
		o.Widths = append(o.Widths, width)
		o.Names = append(o.Names, name)
		return gid
	}

	// join places the outlines of the glyphs for the characters in s
	// next to each other.
	join := func(s string) (*glyf.Glyph, funit.Int16) {
		var contours []glyf.Contour
		var x float64
		for _, r := range s {
			gid := fontCMap.Lookup(r)
			M := matrix.Scale(q, q).Mul(matrix.Translate(x, 0))
			x += float64(orig.Widths[gid]) * q
			g := orig.Glyphs[gid]
			if g == nil {
				continue
			}
			simple, ok := g.Data.(glyf.SimpleGlyph)
			if !ok {
				panic("unexpected composite glyph")
			}
			unpacked, err := simple.Unpack()
			if err != nil {
				panic(err)
			}
			for _, c := range unpacked.Contours {
				c2 := make(glyf.Contour, len(c))
				for i, p := range c {
					px, py := M.Apply(float64(p.X), float64(p.Y))
					c2[i] = glyf.Point{
						X:       funit.Int16(math.Round(px)),
						Y:       funit.Int16(math.Round(py)),
						OnCurve: p.OnCurve,
					}
				}
				contours = append(contours, c2)
			}
		}
		width := funit.Int16(math.Round(x))
		if len(contours) == 0 {
			return nil, width
		}
		joined := &glyf.SimpleUnpacked{Contours: contours}
		res := joined.AsGlyph()
		return &res, width
	}

	add(".notdef", nil, scale(orig.Widths[0]))

	newCMap := cmap.Format4{}
	for _, r := range DonorBase {
		g, w := join(string(r))
		newCMap[uint16(r)] = add(names.FromUnicode(string(r)), g, w)
	}

	for _, s := range DonorLigatures {
		g, w := join(s)
		add(LigatureName(s), g, w)
	}

	g, w := join("=>")
	add(FuzzyArrow, g, w)

	// a composite glyph, referencing the mapped glyphs for "<" and "="
	less := newCMap[uint16('<')]
	equal := newCMap[uint16('=')]
	lessWidth := float64(o.Widths[less])
	var comps []glyf.GlyphComponent
	for _, c := range []*glyf.ComponentUnpacked{
		{Child: less, Trfm: matrix.Identity},
		{Child: equal, Trfm: matrix.Translate(lessWidth, 0)},
	} {
		comps = append(comps, c.Pack())
	}
	bbox := o.Glyphs[less].Rect16
	eqBox := o.Glyphs[equal].Rect16
	bbox.URx = max(bbox.URx, eqBox.URx+funit.Int16(lessWidth))
	bbox.LLy = min(bbox.LLy, eqBox.LLy)
	bbox.URy = max(bbox.URy, eqBox.URy)
	add(CompositeLessEqual, &glyf.Glyph{
		Rect16: bbox,
		Data:   glyf.CompositeGlyph{Components: comps},
	}, o.Widths[less]+o.Widths[equal])

	res := info.Clone()
	res.FamilyName = "Ligature Donor"
	res.UnitsPerEm = unitsPerEm
	res.FontMatrix = [6]float64{1 / float64(unitsPerEm), 0, 0, 1 / float64(unitsPerEm), 0, 0}
	res.Ascent = scale(info.Ascent)
	res.Descent = scale(info.Descent)
	res.LineGap = scale(info.LineGap)
	res.CapHeight = scale(info.CapHeight)
	res.XHeight = scale(info.XHeight)
	res.Outlines = o
	res.Gdef = nil
	res.Gsub = nil
	res.Gpos = nil
	res.InstallCMap(newCMap)

	return res
}

// LigatureName returns the conventional name of the ligature glyph for s.
func LigatureName(s string) string {
	var parts []string
	for _, r := range s {
		parts = append(parts, names.FromUnicode(string(r)))
	}
	return strings.Join(parts, "_") + ".liga"
}

// ToCFF converts a font with "glyf" outlines to CFF outlines.
// The quadratic curves are converted to cubic ones.  The new font
// has no built-in encoding; characters are mapped by the cmap table.
func ToCFF(info *sfnt.Font) *sfnt.Font {
	if info.IsCFF() {
		return info
	}
	info = info.Clone()
	info.EnsureGlyphNames()

	origOutlines := info.Outlines.(*glyf.Outlines)
	newOutlines := &cff.Outlines{
		Private: []*type1.PrivateDict{
			{
				BlueScale: 0.039625,
				BlueShift: 7,
				BlueFuzz:  1,
			},
		},
		FDSelect: func(glyph.ID) int { return 0 },
	}

	for i, origGlyph := range origOutlines.Glyphs {
		gid := glyph.ID(i)
		newGlyph := cff.NewGlyph(info.GlyphName(gid), info.GlyphWidth(gid))

		if origGlyph != nil {
			glyphPath := origOutlines.Path(gid)
			for cmd, pts := range glyphPath.ToCubic() {
				switch cmd {
				case path.CmdMoveTo:
					newGlyph.MoveTo(pts[0].X, pts[0].Y)
				case path.CmdLineTo:
					newGlyph.LineTo(pts[0].X, pts[0].Y)
				case path.CmdCubeTo:
					newGlyph.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
				case path.CmdClose:
					// CFF glyphs are closed implicitly
				}
			}
		}
		newOutlines.Glyphs = append(newOutlines.Glyphs, newGlyph)
	}
	info.Outlines = newOutlines

	return info
}
