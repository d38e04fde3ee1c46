/*
 * compressed.go, part of goshower.
 *
 *
 * Copyright 2025 Jonas Schaefer <jschaefer{at}posteoDOTde>
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
 */

package fortran

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//zstd.Decoder has a Close without an error return, so it can't be an
//io.ReadCloser on its own.
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

func (z zstdql) Close() error {
	z.closeql()
	return nil
}

//prepSource opens fname and sets up the read side of the decoder, either
//'as is' or decompressing first, depending on the file extension (.gz for
//gzip, .zst/.zstd for zstd, anything else is taken as a plain file).
func (D *Decoder) prepSource(fname string) error {
	var err error
	D.filename = fname
	D.f, err = os.Open(fname)
	if err != nil {
		return &Error{UnableToOpen + ": " + err.Error(), fname, []string{"prepSource"}, true}
	}
	reader := bufio.NewReader(D.f)
	temp := strings.Split(fname, ".")
	switch strings.ToLower(temp[len(temp)-1]) {
	case "gz":
		var zr io.ReadCloser
		zr, err = gzip.NewReader(reader)
		if err != nil {
			D.f.Close()
			return &Error{UnableToOpen + ": " + err.Error(), fname, []string{"prepSource"}, true}
		}
		D.z = zr
		D.h = zr
	case "zst", "zstd":
		var zr *zstd.Decoder
		zr, err = zstd.NewReader(reader)
		if err != nil {
			D.f.Close()
			return &Error{UnableToOpen + ": " + err.Error(), fname, []string{"prepSource"}, true}
		}
		D.z = zstdql{zr.Close, zr}
		D.h = zr
	default:
		D.h = reader
	}
	return nil
}
