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
)

// LigatureName returns the conventional glyph name for a ligature of the
// characters in seq, for example "hyphen_greater.liga" for "->".
func LigatureName(seq []rune) string {
	return strings.Join(TokenNames(seq), "_") + ".liga"
}

// Match finds the donor glyph for a target.
//
// If a candidate has the name [LigatureName] of the target sequence, this
// candidate is used.  Otherwise, the first candidate whose lower case name
// contains the token names of all characters of the target is used.
func Match(t Target, candidates []Candidate) (string, bool) {
	exact := LigatureName(t.Seq)
	for _, c := range candidates {
		if c.Name == exact {
			return c.Name, true
		}
	}

	tokens := TokenNames(t.Seq)
candidateLoop:
	for _, c := range candidates {
		lower := strings.ToLower(c.Name)
		for _, tok := range tokens {
			if !strings.Contains(lower, strings.ToLower(tok)) {
				continue candidateLoop
			}
		}
		return c.Name, true
	}

	return "", false
}
