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
package identify

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ostafen/ftype/internal/mmap"
)

// Content is the whole content of a file. Bytes is valid until Close.
type Content interface {
	Bytes() []byte
	Close() error
}

// WalkFunc is called for every entry of a tree. A non-nil err reports that
// the entry, or the directory listing it belongs to, could not be read.
type WalkFunc func(path string, err error) error

// FS is the filesystem a Classifier reads from.
type FS interface {
	Exists(path string) bool
	Stat(path string) (fs.FileInfo, error)
	Open(path string) (Content, error)
	// Walk visits root and all its descendants exactly once, depth first.
	Walk(root string, fn WalkFunc) error
}

type bytesContent []byte

func (b bytesContent) Bytes() []byte { return b }
func (b bytesContent) Close() error  { return nil }

// OSFS is the host filesystem. Files of at least MmapThreshold bytes are
// memory-mapped instead of read where the platform supports it; zero
// disables mapping.
type OSFS struct {
	MmapThreshold int64
}

func (OSFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (o OSFS) Open(path string) (Content, error) {
	if mmap.Supported && o.MmapThreshold > 0 {
		fi, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if fi.Size() >= o.MmapThreshold {
			m, err := mmap.Open(path)
			if err != nil {
				return nil, err
			}
			return m, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return bytesContent(data), nil
}

// Walk follows root when it is a symbolic link to a directory, reporting
// paths under root as given. Links below root are not followed.
func (OSFS) Walk(root string, fn WalkFunc) error {
	target, err := linkedDir(root)
	if err != nil {
		return fn(root, err)
	}
	if target == "" {
		return filepath.WalkDir(root, func(path string, _ fs.DirEntry, err error) error {
			return fn(path, err)
		})
	}

	return filepath.WalkDir(target, func(path string, _ fs.DirEntry, err error) error {
		rel, rerr := filepath.Rel(target, path)
		if rerr != nil {
			return fn(path, rerr)
		}
		if rel != "." {
			path = filepath.Join(root, rel)
		} else {
			path = root
		}
		return fn(path, err)
	})
}

// linkedDir returns the resolved target of root if root is a symbolic link
// to a directory, and "" otherwise.
func linkedDir(root string) (string, error) {
	li, err := os.Lstat(root)
	if err != nil || li.Mode()&fs.ModeSymlink == 0 {
		return "", nil
	}

	fi, err := os.Stat(root)
	if err != nil || !fi.IsDir() {
		return "", nil
	}
	return filepath.EvalSymlinks(root)
}

type ioFS struct {
	fsys fs.FS
}

// FromFS adapts an io/fs tree, such as an embed.FS or a zip.Reader. Paths
// follow io/fs rules: slash separated, unrooted, "." for the top.
func FromFS(fsys fs.FS) FS {
	return ioFS{fsys: fsys}
}

func (f ioFS) Exists(path string) bool {
	_, err := fs.Stat(f.fsys, path)
	return !errors.Is(err, fs.ErrNotExist)
}

func (f ioFS) Stat(path string) (fs.FileInfo, error) {
	return fs.Stat(f.fsys, path)
}

func (f ioFS) Open(path string) (Content, error) {
	data, err := fs.ReadFile(f.fsys, path)
	if err != nil {
		return nil, err
	}
	return bytesContent(data), nil
}

func (f ioFS) Walk(root string, fn WalkFunc) error {
	return fs.WalkDir(f.fsys, root, func(path string, _ fs.DirEntry, err error) error {
		return fn(path, err)
	})
}
