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
	"bufio"
	"io"
	"os"
	"path/filepath"

	"seehuhn.de/go/ligaturize"
)

// Write writes the font to w, in TrueType or OpenType format.
// The number of bytes written is returned.
func (f *Font) Write(w io.Writer) (int64, error) {
	return f.SFNT.Write(w)
}

// Generate writes the font to the file fname.  Missing parent directories
// are created.  The number of bytes written is returned.
// All errors are of type [*ligaturize.OutputError].
func (f *Font) Generate(fname string) (int64, error) {
	if dir := filepath.Dir(fname); dir != "" {
		err := os.MkdirAll(dir, 0o755)
		if err != nil {
			return 0, &ligaturize.OutputError{Path: fname, Err: err}
		}
	}

	out, err := os.Create(fname)
	if err != nil {
		return 0, &ligaturize.OutputError{Path: fname, Err: err}
	}
	buf := bufio.NewWriter(out)
	n, err := f.Write(buf)
	if err == nil {
		err = buf.Flush()
	}
	err2 := out.Close()
	if err == nil {
		err = err2
	}
	if err != nil {
		return n, &ligaturize.OutputError{Path: fname, Err: err}
	}
	return n, nil
}
