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
	"fmt"
	"strings"
)

// Naming describes how the family name of a ligaturized font is formed.
// Naming is applied once, after the build.
type Naming struct {
	// Family, if set, replaces the family name.
	Family string

	// Suffix is appended to the existing family name, if Family is empty.
	Suffix string
}

// DefaultNaming appends " Liga" to the family name.
var DefaultNaming = Naming{Suffix: " Liga"}

// Name returns the new family name for a font called family.
// A suffix which is already present is not added a second time.
func (n Naming) Name(family string) string {
	if n.Family != "" {
		return n.Family
	}
	if n.Suffix == "" || strings.HasSuffix(family, n.Suffix) {
		return family
	}
	return family + n.Suffix
}

// Apply renames the font and returns the new family name.
func (n Naming) Apply(f Font) string {
	name := n.Name(f.FamilyName())
	f.SetFamilyName(name)
	return name
}

// MakeVariant returns basename, or basename with a numeric suffix ".1",
// ".2", ..., such that the result is not yet in used.  The returned name
// is added to used.
func MakeVariant(used map[string]bool, basename string) string {
	try := 0
	name := basename
	for used[name] {
		try++
		name = fmt.Sprintf("%s.%d", basename, try)
	}
	used[name] = true
	return name
}
