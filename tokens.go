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

package ligaturize

import (
	"strings"

	"seehuhn.de/go/dag"
	"seehuhn.de/go/postscript/type1/names"
)

// TokenName returns the glyph name token used for the character r.
// This is the Adobe Glyph List name of r, for example "hyphen" for '-'.
func TokenName(r rune) string {
	return names.FromUnicode(string(r))
}

// TokenNames returns the token names for all characters in seq.
func TokenNames(seq []rune) []string {
	res := make([]string, len(seq))
	for i, r := range seq {
		res[i] = TokenName(r)
	}
	return res
}

// vocabulary contains the glyph names of the ASCII punctuation and
// symbol characters.  Letters and digits are excluded, since single-letter
// names would match almost anywhere.
var vocabulary = func() []string {
	var res []string
	for _, r := range "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~" {
		res = append(res, TokenName(r))
	}
	return res
}()

// Tokens infers the character tokens represented by a ligature glyph name.
//
// Everything after the first period is ignored.  The remaining name is
// split at the separators "_" and "-", and each part is segmented into
// the smallest number of known glyph names.  Unknown parts of the name are
// skipped, so the result is a best-effort guess.
//
// For example, "equal_equal_greater.liga" and "equalequalgreater" both give
// ["equal", "equal", "greater"].
func Tokens(name string) []string {
	if k := strings.IndexByte(name, '.'); k >= 0 {
		name = name[:k]
	}
	name = strings.ToLower(name)

	var res []string
	for _, part := range strings.FieldsFunc(name, isSeparator) {
		res = append(res, segment(part)...)
	}
	return res
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-'
}

// segment splits s into vocabulary words, using a shortest path search
// over the positions in s.
func segment(s string) []string {
	if s == "" {
		return nil
	}
	g := nameGraph(s)
	ee, err := dag.ShortestPath[tokenEdge, int](g, len(s))
	if err != nil {
		// All positions have an outgoing edge, so this cannot happen.
		panic(err)
	}

	var res []string
	for _, e := range ee {
		if e != skipByte {
			res = append(res, vocabulary[e])
		}
	}
	return res
}

// A tokenEdge is either an index into vocabulary, or skipByte.
type tokenEdge int16

const skipByte tokenEdge = -1

// nameGraph is the graph of all ways to cover a glyph name by vocabulary
// words.  Vertices are byte positions in the name.
type nameGraph string

func (g nameGraph) AppendEdges(ee []tokenEdge, v int) []tokenEdge {
	tail := string(g[v:])
	for i, word := range vocabulary {
		if strings.HasPrefix(tail, word) {
			ee = append(ee, tokenEdge(i))
		}
	}
	return append(ee, skipByte)
}

func (g nameGraph) Length(v int, e tokenEdge) int {
	if e == skipByte {
		// longer than any sequence of words covering the same bytes
		return 64
	}
	return 1
}

func (g nameGraph) To(v int, e tokenEdge) int {
	if e == skipByte {
		return v + 1
	}
	return v + len(vocabulary[e])
}
