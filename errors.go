/*
 * errors.go, part of vibspec.
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
	"errors"
	"fmt"
	"strings"
)

//Error kinds. Use errors.Is on any error returned by this module
//to find out which one you got.
var (
	ErrMissingFile   = errors.New("missing file")
	ErrMalformedRow  = errors.New("malformed row")
	ErrZeroFrequency = errors.New("zero frequency")
	ErrPolarization  = errors.New("unknown polarization")
	ErrRange         = errors.New("invalid frequency range")
	ErrRequest       = errors.New("invalid request")
)

//Error is the error type for all packages in vibspec. Besides the message
//and the file involved, it keeps a list of the functions the error went
//through (see Decorate).
type Error struct {
	kind     error
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

//NewError returns a critical *Error of the given kind. The message is
//built from format and args as in fmt.Sprintf.
func NewError(kind error, filename, format string, args ...any) *Error {
	return &Error{
		kind:     kind,
		message:  fmt.Sprintf(format, args...),
		filename: filename,
		critical: true,
	}
}

func (E *Error) Error() string {
	if E.filename == "" {
		return fmt.Sprintf("%v: %s", E.kind, E.message)
	}
	return fmt.Sprintf("%v: file %s: %s", E.kind, E.filename, E.message)
}

//Unwrap returns the kind of the error.
func (E *Error) Unwrap() error { return E.kind }

//Decorate adds the name of a caller to the error, and returns the
//callers added so far. An empty string only returns the current list.
func (E *Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//Caller is Decorate for chaining at construction time.
func (E *Error) Caller(deco string) *Error {
	E.Decorate(deco)
	return E
}

//Trace returns the decoration as a single string, innermost caller first.
func (E *Error) Trace() string { return strings.Join(E.deco, " <- ") }

//FileName returns the file associated to the error, if any.
func (E *Error) FileName() string { return E.filename }

//Critical returns true if the error should stop the run.
func (E *Error) Critical() bool { return E.critical }

//ErrDecorate adds caller to err if err is an *Error (or wraps one),
//and returns err unchanged otherwise.
func ErrDecorate(err error, caller string) error {
	var e *Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}
