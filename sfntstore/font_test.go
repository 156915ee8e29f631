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
	"io/fs"
	"path/filepath"
	"testing"

	"seehuhn.de/go/ligaturize"
	"seehuhn.de/go/ligaturize/internal/debug"
)

func mustNew(f *Font, err error) *Font {
	if err != nil {
		panic(err)
	}
	return f
}

func TestOpenMissing(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "missing.ttf")
	_, err := Open(fname)

	var inputErr *ligaturize.InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got %v", err)
	}
	if inputErr.Path != fname {
		t.Errorf("wrong path %q", inputErr.Path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestReadGarbage(t *testing.T) {
	_, err := Read([]byte("this is not a font file"))
	var inputErr *ligaturize.InputError
	if !errors.As(err, &inputErr) {
		t.Errorf("expected InputError, got %v", err)
	}
}

func TestGlyphNames(t *testing.T) {
	f := mustNew(New(debug.Mono("")))

	names := f.GlyphNames()
	if len(names) != f.NumGlyphs() || len(names) < 100 {
		t.Fatalf("wrong number of glyphs: %d", len(names))
	}
	if names[0] != ".notdef" {
		t.Errorf("glyph 0 is %q", names[0])
	}
	seen := make(map[string]bool)
	for _, name := range names {
		if name == "" || seen[name] {
			t.Errorf("bad glyph name %q", name)
		}
		seen[name] = true
	}

	for _, r := range "-<>=!|&+" {
		name, ok := ligaturize.ResolveBase(f, r)
		if !ok {
			t.Errorf("no glyph for %q", r)
			continue
		}
		if got, _ := f.Unicode(name); got != r {
			t.Errorf("%q: Unicode(%q) = %q", r, name, got)
		}
	}
}

func TestOmitCharacters(t *testing.T) {
	f := mustNew(New(debug.Mono("&|")))
	for _, r := range "&|" {
		if name, ok := ligaturize.ResolveBase(f, r); ok {
			t.Errorf("%q mapped to %q", r, name)
		}
	}
	if _, ok := ligaturize.ResolveBase(f, '='); !ok {
		t.Error("'=' not mapped")
	}
}

func TestDonorCandidates(t *testing.T) {
	donor := mustNew(New(debug.Donor(1000)))

	got := make(map[string]bool)
	for _, c := range ligaturize.Discover(donor, nil) {
		got[c.Name] = true
	}
	for _, s := range debug.DonorLigatures {
		if !got[debug.LigatureName(s)] {
			t.Errorf("missing candidate for %q", s)
		}
	}
	for _, name := range []string{debug.FuzzyArrow, debug.CompositeLessEqual} {
		if !got[name] {
			t.Errorf("missing candidate %q", name)
		}
	}
	if got["hyphen"] || got["equal"] {
		t.Error("mapped glyphs reported as candidates")
	}
}

func TestFamilyName(t *testing.T) {
	f := mustNew(New(debug.Mono("")))
	name := ligaturize.DefaultNaming.Apply(f)
	if f.SFNT.FamilyName != name || f.FamilyName() != name {
		t.Errorf("family name not set: %q", f.SFNT.FamilyName)
	}
}
