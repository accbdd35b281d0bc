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
	"github.com/ostafen/ftype/internal/logger"
	"github.com/ostafen/ftype/pkg/checksum"
	"github.com/ostafen/ftype/pkg/magic"
	"github.com/sirupsen/logrus"
)

type Options struct {
	// FS defaults to the host filesystem without memory mapping.
	FS FS
	// Matcher defaults to magic.Default().
	Matcher magic.Matcher
	// Checksum, when set, fills Record.Checksum for files.
	Checksum checksum.Algorithm
	// Logger receives debug traces; nil discards them.
	Logger logrus.FieldLogger
	// OnRecord, when set, is called after each path is classified, before
	// the enclosing batch completes. Records seen here may belong to a
	// batch that later fails.
	OnRecord func(Record)
}

// Classifier identifies paths. It holds no mutable state and may be used
// from several goroutines.
type Classifier struct {
	fs       FS
	matcher  magic.Matcher
	hash     checksum.Algorithm
	log      logrus.FieldLogger
	onRecord func(Record)
}

func New(opts Options) (*Classifier, error) {
	if opts.Checksum != checksum.None {
		if _, err := checksum.NewHasher(opts.Checksum); err != nil {
			return nil, err
		}
	}

	c := &Classifier{
		fs:       opts.FS,
		matcher:  opts.Matcher,
		hash:     opts.Checksum,
		log:      opts.Logger,
		onRecord: opts.OnRecord,
	}
	if c.fs == nil {
		c.fs = OSFS{}
	}
	if c.matcher == nil {
		c.matcher = magic.Default()
	}
	if c.log == nil {
		c.log = logger.Discard()
	}
	return c, nil
}

// ClassifyBytes identifies buf with the classifier's matcher and, when a
// checksum is configured, digests it. Unrecognized content is not an error.
func (c *Classifier) ClassifyBytes(buf []byte) (Record, bool, error) {
	rec, ok := classifyBytes(c.matcher, buf)
	if !ok {
		return rec, false, nil
	}

	sum, err := checksum.Sum(c.hash, buf)
	if err != nil {
		return Record{}, false, err
	}
	rec.Checksum = sum
	return rec, true, nil
}

// ClassifyPath classifies a single file or directory. Directories are never
// read. Files are read whole and matched; unmatched content is described as
// UnknownDescription. The size comes from the stat, not the read.
func (c *Classifier) ClassifyPath(path string) (Record, error) {
	fi, err := c.fs.Stat(path)
	if err != nil {
		return Record{}, &IOError{Op: "stat", Path: path, Err: err}
	}

	if fi.IsDir() {
		rec := directoryRecord(path)
		c.emit(rec)
		return rec, nil
	}

	content, err := c.fs.Open(path)
	if err != nil {
		return Record{}, &IOError{Op: "read", Path: path, Err: err}
	}
	defer content.Close()

	buf := content.Bytes()
	rec := Record{
		Path:        path,
		Description: UnknownDescription,
		Size:        sizePtr(uint64(fi.Size())),
	}

	if r := c.matcher.Match(buf); r.Matched() {
		rec.Description = r.Description
		rec.Source = r.Source
	}

	if rec.Checksum, err = checksum.Sum(c.hash, buf); err != nil {
		return Record{}, err
	}

	c.log.WithFields(logrus.Fields{
		"path":   path,
		"type":   rec.Description,
		"source": rec.Source,
		"size":   fi.Size(),
	}).Debug("classified file")

	c.emit(rec)
	return rec, nil
}

func (c *Classifier) emit(rec Record) {
	if c.onRecord != nil {
		c.onRecord(rec)
	}
}
