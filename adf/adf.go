/*
 * adf.go, part of vibspec.
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

package adf

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rmera/vibspec"
)

//Kind is the type of vibrational analysis to read from the output.
type Kind int

const (
	Raman Kind = iota
	ROA
)

func (K Kind) String() string {
	switch K {
	case Raman:
		return "raman"
	case ROA:
		return "roa"
	}
	return "unknown"
}

//ParseKind returns the Kind named by s ("raman" or "roa", any case).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "raman":
		return Raman, nil
	case "roa":
		return ROA, nil
	}
	return 0, vibspec.NewError(vibspec.ErrRequest, "", "analysis %q not supported, use raman or roa", s).Caller("ParseKind")
}

//Polarization selects one of the four intensity columns of the ROA table.
type Polarization string

const (
	PolX    Polarization = "x"
	PolY    Polarization = "y"
	PolZ    Polarization = "z"
	PolBack Polarization = "back"
)

//0-based column of each polarization in the ROA rows.
var polColumn = map[Polarization]int{
	PolY:    3,
	PolBack: 4,
	PolX:    5,
	PolZ:    6,
}

//Polarizations returns the supported polarizations, sorted.
func Polarizations() []string {
	ret := make([]string, 0, len(polColumn))
	for k := range polColumn {
		ret = append(ret, string(k))
	}
	sort.Strings(ret)
	return ret
}

//Column returns the 0-based column index of P in an ROA row, or an
//ErrPolarization error if P is not one of x, y, z, back.
func (P Polarization) Column() (int, error) {
	c, ok := polColumn[P]
	if !ok {
		return 0, vibspec.NewError(vibspec.ErrPolarization, "", "polarization %q not supported, use one of %s", string(P), strings.Join(Polarizations(), ", ")).Caller("Polarization.Column")
	}
	return c, nil
}

const (
	freqColumn     = 2
	ramanColumn    = 3
	ramanMinFields = 4
	roaMinFields   = 7
)

//States of the section scanner.
type state int

const (
	seeking          state = iota //looking for the section header
	seekingSeparator              //header found, waiting for the " -" line
	reading                       //reading modes until a blank line
	done
)

func (s state) String() string {
	return [...]string{"seeking", "seekingSeparator", "reading", "done"}[s]
}

//sectionScanner is fed an output file one line at a time and collects
//the modes of one section.
type sectionScanner struct {
	header    string
	separator string
	column    int
	minFields int
	filename  string
	line      int
	state     state
	sticks    *vibspec.Sticks
}

func newSectionScanner(kind Kind, pol Polarization, P vibspec.Params, filename string) (*sectionScanner, error) {
	S := &sectionScanner{separator: P.Separator, filename: filename, sticks: vibspec.NewSticks(0)}
	switch kind {
	case Raman:
		S.header = P.RamanHeader
		S.column = ramanColumn
		S.minFields = ramanMinFields
	case ROA:
		c, err := pol.Column()
		if err != nil {
			return nil, vibspec.ErrDecorate(err, "newSectionScanner")
		}
		S.header = P.ROAHeader
		S.column = c
		S.minFields = roaMinFields
	default:
		return nil, vibspec.NewError(vibspec.ErrRequest, filename, "unknown analysis kind %d", int(kind)).Caller("newSectionScanner")
	}
	return S, nil
}

//Feed processes the next line of the file. line must not include the
//line terminator (a trailing '\r' is tolerated).
func (S *sectionScanner) Feed(line string) error {
	S.line++
	switch S.state {
	case seeking:
		if strings.HasPrefix(line, S.header) {
			S.state = seekingSeparator
		}
	case seekingSeparator:
		if strings.HasPrefix(line, S.separator) {
			S.state = reading
		}
	case reading:
		if strings.TrimSpace(line) == "" {
			S.state = done
			return nil
		}
		return S.readMode(line)
	}
	return nil
}

//Done returns true once the section has been completely read.
func (S *sectionScanner) Done() bool {
	return S.state == done
}

func (S *sectionScanner) readMode(line string) error {
	fields := strings.Fields(line)
	if len(fields) < S.minFields {
		return vibspec.NewError(vibspec.ErrMalformedRow, S.filename, "line %d: %d fields, at least %d needed: %q", S.line, len(fields), S.minFields, line).Caller("readMode")
	}
	freq, err := strconv.ParseFloat(fields[freqColumn], 64)
	if err != nil {
		return vibspec.NewError(vibspec.ErrMalformedRow, S.filename, "line %d: can't read frequency %q", S.line, fields[freqColumn]).Caller("readMode")
	}
	intensity, err := strconv.ParseFloat(fields[S.column], 64)
	if err != nil {
		return vibspec.NewError(vibspec.ErrMalformedRow, S.filename, "line %d: can't read intensity %q", S.line, fields[S.column]).Caller("readMode")
	}
	S.sticks.Append(freq, intensity)
	return nil
}

//ReadSticksFrom reads the stick spectrum of the given kind from r. name is
//only used in error messages. pol is ignored for Raman. An output that
//doesn't contain the section gives an empty stick spectrum and no error.
func ReadSticksFrom(r io.Reader, name string, kind Kind, pol Polarization, P vibspec.Params) (*vibspec.Sticks, error) {
	S, err := newSectionScanner(kind, pol, P, name)
	if err != nil {
		return nil, vibspec.ErrDecorate(err, "ReadSticksFrom")
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := S.Feed(scanner.Text()); err != nil {
			return nil, vibspec.ErrDecorate(err, "ReadSticksFrom")
		}
		if S.Done() {
			return S.sticks, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, vibspec.NewError(vibspec.ErrMalformedRow, name, "reading line %d: %s", S.line+1, err.Error()).Caller("ReadSticksFrom")
	}
	return S.sticks, nil
}

//ReadSticks opens the ADF output filename (plain, gzip or zstd compressed,
//see Open) and reads the stick spectrum of the given kind from it.
func ReadSticks(filename string, kind Kind, pol Polarization, P vibspec.Params) (*vibspec.Sticks, error) {
	if kind == ROA {
		//before touching the file
		if _, err := pol.Column(); err != nil {
			return nil, vibspec.ErrDecorate(err, "ReadSticks")
		}
	}
	f, err := Open(filename)
	if err != nil {
		return nil, vibspec.ErrDecorate(err, "ReadSticks")
	}
	defer f.Close()
	s, err := ReadSticksFrom(f, filename, kind, pol, P)
	if err != nil {
		return nil, vibspec.ErrDecorate(err, "ReadSticks")
	}
	return s, nil
}

//ReadFiles reads the stick spectra from several outputs, one after the
//other, and returns them concatenated in the order given, together with
//the number of modes read from each file. Use Sticks.Split to recover
//the spectrum of each file.
func ReadFiles(filenames []string, kind Kind, pol Polarization, P vibspec.Params) (*vibspec.Sticks, []int, error) {
	all := vibspec.NewSticks(0)
	counts := make([]int, 0, len(filenames))
	for _, name := range filenames {
		s, err := ReadSticks(name, kind, pol, P)
		if err != nil {
			return nil, nil, vibspec.ErrDecorate(err, "ReadFiles")
		}
		all.AppendSticks(s)
		counts = append(counts, s.Len())
	}
	return all, counts, nil
}

//CheckFiles returns an ErrMissingFile error for the first name in
//filenames that doesn't exist or is a directory.
func CheckFiles(filenames ...string) error {
	for _, name := range filenames {
		info, err := os.Stat(name)
		if errors.Is(err, fs.ErrNotExist) {
			return vibspec.NewError(vibspec.ErrMissingFile, name, "file not found").Caller("CheckFiles")
		}
		if err != nil {
			return vibspec.NewError(vibspec.ErrMissingFile, name, "%s", err.Error()).Caller("CheckFiles")
		}
		if info.IsDir() {
			return vibspec.NewError(vibspec.ErrMissingFile, name, "is a directory").Caller("CheckFiles")
		}
	}
	return nil
}
