/*
 * compressed.go, part of vibspec.
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
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/rmera/vibspec"
)

//Compression suffixes recognized by Open and TrimCompression.
var compressionSuffixes = []string{".zst", ".zstd", ".gz"}

//zstd.Decoder doesn't implement io.ReadCloser, its Close returns nothing.
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

//logFile closes the decompressor (if any) and then the file.
type logFile struct {
	io.Reader
	dec io.Closer
	f   *os.File
}

func (L *logFile) Close() error {
	var err error
	if L.dec != nil {
		err = L.dec.Close()
	}
	if err2 := L.f.Close(); err == nil {
		err = err2
	}
	return err
}

//Open opens an ADF output for reading. Names ending in .zst or .zstd are
//decompressed with zstd, names ending in .gz with gzip; anything else is
//read as is. A file that doesn't exist gives an ErrMissingFile error.
func Open(filename string) (io.ReadCloser, error) {
	f, err := os.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, vibspec.NewError(vibspec.ErrMissingFile, filename, "file not found").Caller("Open")
	}
	if err != nil {
		return nil, err
	}
	buf := bufio.NewReader(f)
	ret := &logFile{Reader: buf, f: f}
	switch compression(filename) {
	case ".zst", ".zstd":
		d, err := zstd.NewReader(buf)
		if err != nil {
			f.Close()
			return nil, vibspec.NewError(vibspec.ErrMalformedRow, filename, "can't start zstd decompression: %s", err.Error()).Caller("Open")
		}
		z := zstdCloser{d}
		ret.Reader = z
		ret.dec = z
	case ".gz":
		g, err := gzip.NewReader(buf)
		if err != nil {
			f.Close()
			return nil, vibspec.NewError(vibspec.ErrMalformedRow, filename, "can't start gzip decompression: %s", err.Error()).Caller("Open")
		}
		ret.Reader = g
		ret.dec = g
	}
	return ret, nil
}

//compression returns the compression suffix of filename, or "".
func compression(filename string) string {
	lower := strings.ToLower(filename)
	for _, s := range compressionSuffixes {
		if strings.HasSuffix(lower, s) {
			return s
		}
	}
	return ""
}

//TrimCompression removes a compression suffix (.gz, .zst, .zstd) from
//filename, if present.
func TrimCompression(filename string) string {
	if s := compression(filename); s != "" {
		return filename[:len(filename)-len(s)]
	}
	return filename
}

//BaseName returns filename without compression suffix and without
//extension. It is the stem for the names of the files derived from an output.
func BaseName(filename string) string {
	name := TrimCompression(filename)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
