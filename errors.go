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
)

// Reason explains why a target ligature could not be added to the
// destination font.
type Reason string

// These are the reasons recorded for unresolved targets.
const (
	// ReasonGlyphNotFound means that no donor glyph matched the target.
	ReasonGlyphNotFound Reason = "glyph-not-found"

	// ReasonBaseCharMissing means that at least one character of the
	// target is not mapped in the destination font.
	ReasonBaseCharMissing Reason = "base-char-missing"

	// ReasonDuplicateTrigger means that an earlier target already uses the
	// same sequence of base glyphs.
	ReasonDuplicateTrigger Reason = "duplicate-trigger"

	// ReasonCopyFailed means that the donor glyph could not be copied into
	// the destination font.
	ReasonCopyFailed Reason = "copy-failed"
)

// InputError is returned when a font or the target catalog cannot be used.
// No build state exists when an InputError is reported.
type InputError struct {
	Path string // empty, if the problem is not associated with a file
	Err  error
}

func (err *InputError) Error() string {
	if err.Path == "" {
		return "ligaturize: " + err.Err.Error()
	}
	return fmt.Sprintf("ligaturize: %s: %s", err.Path, err.Err)
}

func (err *InputError) Unwrap() error {
	return err.Err
}

// OutputError is returned when the generated font cannot be written, or when
// the generated file fails validation.
type OutputError struct {
	Path string
	Err  error
}

func (err *OutputError) Error() string {
	return fmt.Sprintf("ligaturize: output %s: %s", err.Path, err.Err)
}

func (err *OutputError) Unwrap() error {
	return err.Err
}

// ConflictError is returned by [Table.Add] when the input sequence of a
// rule is already used by an earlier rule.
type ConflictError struct {
	Existing Rule
}

func (err *ConflictError) Error() string {
	return fmt.Sprintf("duplicate trigger: sequence %v already bound to %q",
		err.Existing.Input, err.Existing.Target)
}

var (
	errNoFont       = errors.New("missing font")
	errEmptyCatalog = errors.New("empty target catalog")
)
