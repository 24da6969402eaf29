/*
 * files.go, part of vibspec.
 *
 *
 * Copyright 2024 The vibspec Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package vibspec

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

//ColumnFormat is the format of each line in the files written by WriteColumns.
const ColumnFormat = "%25.16f   %25.16f  \n"

//WriteColumns writes x and y as two whitespace-padded columns to filename.
//The data goes to a temporary file in the same directory which is
//renamed to filename only once everything was written, so filename either
//has the complete data or is left as it was.
func WriteColumns(filename string, x, y []float64) error {
	if len(x) != len(y) {
		return NewError(ErrRequest, filename, "%d x values but %d y values", len(x), len(y)).Caller("WriteColumns")
	}
	dir, base := filepath.Split(filename)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*")
	if err != nil {
		return err
	}
	tmpname := tmp.Name()
	//from here on, any failure must take the temporary file with it.
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpname)
		return err
	}
	if err := writeColumns(tmp, x, y); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpname)
		return err
	}
	if err := os.Chmod(tmpname, 0o644); err != nil {
		os.Remove(tmpname)
		return err
	}
	if err := os.Rename(tmpname, filename); err != nil {
		os.Remove(tmpname)
		return err
	}
	return nil
}

func writeColumns(w io.Writer, x, y []float64) error {
	out := bufio.NewWriter(w)
	for i, v := range x {
		if _, err := fmt.Fprintf(out, ColumnFormat, v, y[i]); err != nil {
			return err
		}
	}
	return out.Flush()
}

//ReadColumns reads the first two whitespace-separated columns of every
//non-empty line in filename, as written by WriteColumns.
func ReadColumns(filename string) (x, y []float64, err error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	var line int
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, nil, NewError(ErrMalformedRow, filename, "line %d: expected 2 columns, got %d", line, len(fields)).Caller("ReadColumns")
		}
		a, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, nil, NewError(ErrMalformedRow, filename, "line %d: %s", line, err.Error()).Caller("ReadColumns")
		}
		b, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, nil, NewError(ErrMalformedRow, filename, "line %d: %s", line, err.Error()).Caller("ReadColumns")
		}
		x = append(x, a)
		y = append(y, b)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return x, y, nil
}
