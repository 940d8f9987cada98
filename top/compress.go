/*
 * compress.go, part of pmx
 *
 * Copyright 2025 Raul Mera A. (rmeraaatacademicosdotutadotcl)
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

package top

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Ext is the extension of zstd-compressed files.
const Ext = ".zst"

// Reader reads a topology or force-field file, decompressing it
// if needed.
type Reader struct {
	*bufio.Reader
	closers []func() error
}

// Close closes the file. The Reader can't be used after this call.
func (R *Reader) Close() error {
	var err error
	for _, c := range R.closers {
		if cerr := c(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open opens the file name for reading. Files with the Ext extension
// are decompressed transparently.
func Open(name string) (*Reader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("top/Open: %w", err)
	}
	R := &Reader{closers: []func() error{f.Close}}
	if !strings.HasSuffix(name, Ext) {
		R.Reader = bufio.NewReader(f)
		return R, nil
	}
	z, err := zstd.NewReader(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("top/Open: %s: %w", name, err)
	}
	//*zstd.Decoder's Close doesn't return an error.
	R.closers = append([]func() error{func() error { z.Close(); return nil }}, R.closers...)
	R.Reader = bufio.NewReader(z)
	return R, nil
}

type writer struct {
	io.Writer
	closers []func() error
}

func (w *writer) Close() error {
	var err error
	for _, c := range w.closers {
		if cerr := c(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Create creates the file name, and returns a writer for it. Files with the
// Ext extension are compressed. The file is complete only after the writer
// is closed.
func Create(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("top/Create: %w", err)
	}
	if !strings.HasSuffix(name, Ext) {
		return f, nil
	}
	z, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("top/Create: %s: %w", name, err)
	}
	return &writer{Writer: z, closers: []func() error{z.Close, f.Close}}, nil
}
