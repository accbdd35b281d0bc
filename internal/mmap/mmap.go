// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package mmap

import "errors"

// ErrUnsupported is returned by Open on platforms without mmap.
var ErrUnsupported = errors.New("mmap is not supported on this platform")

// ErrEmpty is returned by Open for zero-length files, which cannot be mapped.
var ErrEmpty = errors.New("cannot map an empty file")

// File is a read-only view of a whole file. Data is valid until Close.
type File struct {
	Data []byte
	Size int64

	unmap func([]byte) error
}

// Bytes returns the mapped content.
func (f *File) Bytes() []byte {
	return f.Data
}

// Close unmaps the file. Calling Close twice is a no-op.
func (f *File) Close() error {
	if f.Data == nil {
		return nil
	}

	data := f.Data
	f.Data = nil
	return f.unmap(data)
}
