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

package sfntstore

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/postscript/cid"
	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/opentype/gdef"

	"seehuhn.de/go/ligaturize"
)

// AddLigatureGlyph adds a new glyph called dstName to the font, using the
// outline of the glyph srcName in src.  The source font must be a *Font
// with the same outline format.
//
// The outline is scaled to the units per em of the font.  The advance
// width of the new glyph is the sum of the advance widths of the glyphs in
// input, and the outline is centred horizontally within this width.
// Components of composite glyphs are copied as new glyphs.
//
// If an error is returned, the font is unchanged.
// This implements the [ligaturize.Font] interface.
func (f *Font) AddLigatureGlyph(src ligaturize.GlyphSource, srcName, dstName string, input []string) error {
	donor, ok := src.(*Font)
	if !ok {
		return errForeignFont
	}
	srcGID, ok := donor.index[srcName]
	if !ok {
		return fmt.Errorf("%w: %q in donor", errMissingGlyph, srcName)
	}
	if _, exists := f.index[dstName]; exists {
		return fmt.Errorf("glyph %q already exists", dstName)
	}
	if len(input) == 0 {
		return errors.New("empty input sequence")
	}
	var advance float64
	for _, name := range input {
		gid, ok := f.index[name]
		if !ok {
			return fmt.Errorf("%w: %q", errMissingGlyph, name)
		}
		advance += f.width(gid)
	}
	if f.SFNT.UnitsPerEm == 0 || donor.SFNT.UnitsPerEm == 0 {
		return errors.New("invalid units per em")
	}
	scale := float64(f.SFNT.UnitsPerEm) / float64(donor.SFNT.UnitsPerEm)

	var newNames []string
	switch dst := f.SFNT.Outlines.(type) {
	case *glyf.Outlines:
		srcOutlines, ok := donor.SFNT.Outlines.(*glyf.Outlines)
		if !ok {
			return errFormatMismatch
		}
		c := &glyfCopier{
			dst:      dst,
			src:      srcOutlines,
			srcNames: donor.names,
			scale:    scale,
			used:     make(map[string]bool, len(f.names)+1),
			newGID:   make(map[glyph.ID]glyph.ID),
		}
		for _, name := range f.names {
			c.used[name] = true
		}
		c.used[dstName] = true
		err := c.copyGlyph(srcGID, dstName, advance)
		if err != nil {
			return err
		}
		c.commit()
		newNames = c.names
	case *cff.Outlines:
		srcOutlines, ok := donor.SFNT.Outlines.(*cff.Outlines)
		if !ok {
			return errFormatMismatch
		}
		g, err := copyCFF(srcOutlines.Glyphs[srcGID], dstName, scale, advance)
		if err != nil {
			return err
		}
		addCFF(dst, g, f.index[input[0]])
		newNames = []string{dstName}
	default:
		return errFormatMismatch
	}

	first := glyph.ID(len(f.names))
	for i, name := range newNames {
		f.index[name] = first + glyph.ID(i)
	}
	f.names = append(f.names, newNames...)

	if f.SFNT.Gdef != nil && f.SFNT.Gdef.GlyphClass != nil {
		f.SFNT.Gdef.GlyphClass[first] = gdef.GlyphClassLigature
	}
	return nil
}

// glyfCopier copies a TrueType glyph, together with all glyphs it
// references, into a different font.  The new glyphs are collected
// until commit is called.
type glyfCopier struct {
	dst, src *glyf.Outlines
	srcNames []string
	scale    float64

	used map[string]bool

	newGID map[glyph.ID]glyph.ID
	glyphs []*glyf.Glyph
	widths []funit.Int16
	names  []string
}

// copyGlyph copies a top-level glyph and centres it within the given
// advance width.
func (c *glyfCopier) copyGlyph(srcGID glyph.ID, name string, advance float64) error {
	var dx float64
	if g := c.src.Glyphs[srcGID]; g != nil {
		width := float64(g.URx-g.LLx) * c.scale
		dx = (advance-width)/2 - float64(g.LLx)*c.scale
	}
	M := matrix.Matrix{c.scale, 0, 0, c.scale, dx, 0}
	_, err := c.add(srcGID, name, M, advance)
	return err
}

func (c *glyfCopier) add(srcGID glyph.ID, name string, M matrix.Matrix, advance float64) (glyph.ID, error) {
	if int(srcGID) >= len(c.src.Glyphs) {
		return 0, fmt.Errorf("%w: glyph %d in donor", errMissingGlyph, srcGID)
	}
	gid := glyph.ID(len(c.dst.Glyphs) + len(c.glyphs))
	c.newGID[srcGID] = gid
	pos := len(c.glyphs)
	c.glyphs = append(c.glyphs, nil)
	c.widths = append(c.widths, clamp(advance))
	c.names = append(c.names, name)

	g := c.src.Glyphs[srcGID]
	if g == nil {
		return gid, nil
	}
	switch d := g.Data.(type) {
	case glyf.SimpleGlyph:
		unpacked, err := d.Unpack()
		if err != nil {
			return 0, err
		}
		for _, contour := range unpacked.Contours {
			for i, p := range contour {
				x, y := M.Apply(float64(p.X), float64(p.Y))
				contour[i].X = clamp(x)
				contour[i].Y = clamp(y)
			}
		}
		newGlyph := unpacked.AsGlyph()
		c.glyphs[pos] = &newGlyph

	case glyf.CompositeGlyph:
		comps := make([]glyf.GlyphComponent, len(d.Components))
		for i, comp := range d.Components {
			u, err := comp.Unpack()
			if err != nil {
				return 0, err
			}
			child, seen := c.newGID[u.Child]
			if !seen {
				childName := ligaturize.MakeVariant(c.used, c.srcName(u.Child))
				childWidth := 0.0
				if int(u.Child) < len(c.src.Widths) {
					childWidth = float64(c.src.Widths[u.Child]) * c.scale
				}
				S := matrix.Scale(c.scale, c.scale)
				child, err = c.add(u.Child, childName, S, childWidth)
				if err != nil {
					return 0, err
				}
			}
			u.Child = child
			if !u.AlignPoints {
				u.Trfm[4], u.Trfm[5] = M.Apply(u.Trfm[4], u.Trfm[5])
			}
			comps[i] = u.Pack()
		}
		c.glyphs[pos] = &glyf.Glyph{
			Rect16: transformRect(g.Rect16, M),
			Data: glyf.CompositeGlyph{
				Components:   comps,
				Instructions: d.Instructions,
			},
		}

	default:
		return 0, errUnknownGlyph
	}
	return gid, nil
}

func (c *glyfCopier) srcName(gid glyph.ID) string {
	if int(gid) < len(c.srcNames) {
		return c.srcNames[gid]
	}
	return fmt.Sprintf("glyph%05d", gid)
}

// commit appends the new glyphs to the destination outlines.
func (c *glyfCopier) commit() {
	dst := c.dst
	dst.Glyphs = append(dst.Glyphs, c.glyphs...)
	if dst.Widths != nil {
		dst.Widths = append(dst.Widths, c.widths...)
	}
	dst.Names = append(dst.Names, c.names...)

	if dst.Maxp == nil {
		return
	}
	for _, g := range c.glyphs {
		if g == nil {
			continue
		}
		switch d := g.Data.(type) {
		case glyf.SimpleGlyph:
			unpacked, err := d.Unpack()
			if err != nil {
				continue
			}
			numPoints := 0
			for _, contour := range unpacked.Contours {
				numPoints += len(contour)
			}
			dst.Maxp.MaxPoints = max(dst.Maxp.MaxPoints, uint16(numPoints))
			dst.Maxp.MaxContours = max(dst.Maxp.MaxContours, uint16(len(unpacked.Contours)))
		case glyf.CompositeGlyph:
			dst.Maxp.MaxComponentElements = max(dst.Maxp.MaxComponentElements, uint16(len(d.Components)))
		}
	}
}

// copyCFF returns a scaled copy of a CFF glyph, centred within the given
// advance width.  Hinting information is not copied.
func copyCFF(g *cff.Glyph, name string, scale, advance float64) (*cff.Glyph, error) {
	if g == nil {
		return nil, errUnknownGlyph
	}

	var minX, maxX float64
	first := true
	for _, cmd := range g.Cmds {
		for i := 0; i+1 < len(cmd.Args); i += 2 {
			x := cmd.Args[i]
			if first || x < minX {
				minX = x
			}
			if first || x > maxX {
				maxX = x
			}
			first = false
		}
	}
	var dx float64
	if !first {
		dx = (advance-(maxX-minX)*scale)/2 - minX*scale
	}
	M := matrix.Matrix{scale, 0, 0, scale, dx, 0}

	res := cff.NewGlyph(name, math.Round(advance))
	for _, cmd := range g.Cmds {
		args := slices.Clone(cmd.Args)
		for i := 0; i+1 < len(args); i += 2 {
			x, y := M.Apply(args[i], args[i+1])
			args[i] = math.Round(x)
			args[i+1] = math.Round(y)
		}
		res.Cmds = append(res.Cmds, cff.GlyphOp{Op: cmd.Op, Args: args})
	}
	return res, nil
}

// addCFF appends a glyph to CFF outlines.  For CID-keyed fonts, the glyph
// gets a new CID and uses the private dictionary of the glyph like.
func addCFF(o *cff.Outlines, g *cff.Glyph, like glyph.ID) {
	gid := glyph.ID(len(o.Glyphs))
	o.Glyphs = append(o.Glyphs, g)

	if !o.IsCIDKeyed() {
		return
	}
	var next cid.CID
	for _, c := range o.GIDToCID {
		next = max(next, c+1)
	}
	o.GIDToCID = append(o.GIDToCID, next)

	fd := o.FDSelect(like)
	prev := o.FDSelect
	o.FDSelect = func(x glyph.ID) int {
		if x == gid {
			return fd
		}
		return prev(x)
	}
}

func transformRect(r funit.Rect16, M matrix.Matrix) funit.Rect16 {
	x0, y0 := M.Apply(float64(r.LLx), float64(r.LLy))
	x1, y1 := M.Apply(float64(r.URx), float64(r.URy))
	return funit.Rect16{
		LLx: clamp(min(x0, x1)),
		LLy: clamp(min(y0, y1)),
		URx: clamp(max(x0, x1)),
		URy: clamp(max(y0, y1)),
	}
}

func clamp(x float64) funit.Int16 {
	x = math.Round(x)
	if x < math.MinInt16 {
		return math.MinInt16
	}
	if x > math.MaxInt16 {
		return math.MaxInt16
	}
	return funit.Int16(x)
}

func asFloat[T ~int16 | ~float64](x T) float64 {
	return float64(x)
}

var (
	errForeignFont    = errors.New("donor font is not an sfnt font")
	errFormatMismatch = errors.New("donor and destination use different outline formats")
	errMissingGlyph   = errors.New("missing glyph")
	errUnknownGlyph   = errors.New("unsupported glyph data")
)
