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
	"errors"
	"fmt"
	"strings"
)

// Target describes a ligature which should be added to the destination font.
type Target struct {
	// ID identifies the target in build results and log messages.
	ID string

	// Seq is the character sequence which triggers the ligature.
	Seq []rune
}

// NewTarget returns a target for the character sequence s.
// The identifier is formed from the glyph names of the characters.
func NewTarget(s string) Target {
	seq := []rune(s)
	return Target{
		ID:  strings.Join(TokenNames(seq), "_"),
		Seq: seq,
	}
}

func (t Target) String() string {
	return fmt.Sprintf("%s %q", t.ID, string(t.Seq))
}

// DefaultCatalog lists the ligatures used when no catalog is configured.
// The order of the entries is the priority order used to resolve
// conflicting rules.
var DefaultCatalog = []Target{
	NewTarget("->"),
	NewTarget("=>"),
	NewTarget("<-"),
	NewTarget("<="),
	NewTarget(">="),
	NewTarget("=="),
	NewTarget("!="),
	NewTarget("==="),
	NewTarget("!=="),
	NewTarget("--"),
	NewTarget("++"),
	NewTarget("||"),
	NewTarget("&&"),
}

// CheckCatalog verifies that all targets have an identifier, that identifiers
// are unique, and that every target consists of at least two characters.
func CheckCatalog(catalog []Target) error {
	if len(catalog) == 0 {
		return &InputError{Err: errEmptyCatalog}
	}
	seen := make(map[string]bool, len(catalog))
	for i, t := range catalog {
		if t.ID == "" {
			return &InputError{Err: fmt.Errorf("target %d has no identifier", i)}
		}
		if seen[t.ID] {
			return &InputError{Err: fmt.Errorf("duplicate target identifier %q", t.ID)}
		}
		seen[t.ID] = true
		if len(t.Seq) < 2 {
			return &InputError{Err: fmt.Errorf("target %q: %w", t.ID, errShortTarget)}
		}
	}
	return nil
}

var errShortTarget = errors.New("ligatures need at least two characters")
