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
	"slices"
	"strings"
)

// Rule is a ligature substitution: when the glyphs in Input appear
// contiguously, they are replaced by the glyph Ligature.
type Rule struct {
	// Target is the identifier of the target which produced the rule.
	Target string

	// Input lists the names of the base glyphs in the destination font.
	Input []string

	// Ligature is the name of the ligature glyph in the destination font.
	Ligature string

	// Donor is the name of the glyph in the donor font which provided
	// the outline for the ligature glyph.
	Donor string
}

// Table is a named set of ligature rules.
// No two rules in a table have the same input sequence.
type Table struct {
	Name string

	rules []Rule
	index map[string]int
}

// NewTable allocates a new, empty table.
func NewTable(name string) *Table {
	return &Table{
		Name:  name,
		index: make(map[string]int),
	}
}

// Find returns the rule with the given input sequence.
func (t *Table) Find(input []string) (Rule, bool) {
	i, ok := t.index[seqKey(input)]
	if !ok {
		return Rule{}, false
	}
	return t.rules[i], true
}

// Add appends a rule to the table.
// If the table already contains a rule with the same input sequence,
// the table is not changed and a [*ConflictError] is returned.
func (t *Table) Add(r Rule) error {
	key := seqKey(r.Input)
	if i, ok := t.index[key]; ok {
		return &ConflictError{Existing: t.rules[i]}
	}
	r.Input = slices.Clone(r.Input)
	t.index[key] = len(t.rules)
	t.rules = append(t.rules, r)
	return nil
}

// Rules returns the rules of the table, in the order they were added.
func (t *Table) Rules() []Rule {
	return slices.Clone(t.rules)
}

// Len returns the number of rules in the table.
func (t *Table) Len() int {
	return len(t.rules)
}

// seqKey maps a sequence of glyph names to a map key.
// Glyph names never contain the zero byte.
func seqKey(input []string) string {
	return strings.Join(input, "\x00")
}
