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

import "github.com/sirupsen/logrus"

// ClassifyBatch classifies paths in order. Every path must exist: the first
// missing one aborts the batch with a *NotFoundError, and any other failure
// aborts it as well. On error no records are returned.
func (c *Classifier) ClassifyBatch(paths []string) ([]Record, error) {
	records := make([]Record, 0, len(paths))
	for _, p := range paths {
		var err error
		if records, err = c.appendPath(records, p, false); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// ClassifyTree classifies root and every entry below it, each exactly once,
// in depth-first walk order. Directories are recorded as well as files.
func (c *Classifier) ClassifyTree(root string) ([]Record, error) {
	if !c.fs.Exists(root) {
		return nil, &NotFoundError{Path: root}
	}
	return c.appendTree(nil, root)
}

// ClassifyBatchRecursive classifies paths in order, expanding each directory
// into its whole tree at the position of the argument.
func (c *Classifier) ClassifyBatchRecursive(paths []string) ([]Record, error) {
	var records []Record
	for _, p := range paths {
		var err error
		if records, err = c.appendPath(records, p, true); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (c *Classifier) appendPath(records []Record, p string, recursive bool) ([]Record, error) {
	if !c.fs.Exists(p) {
		return nil, &NotFoundError{Path: p}
	}

	if recursive {
		fi, err := c.fs.Stat(p)
		if err != nil {
			return nil, &IOError{Op: "stat", Path: p, Err: err}
		}
		if fi.IsDir() {
			return c.appendTree(records, p)
		}
	}

	rec, err := c.ClassifyPath(p)
	if err != nil {
		return nil, err
	}
	return append(records, rec), nil
}

func (c *Classifier) appendTree(records []Record, root string) ([]Record, error) {
	c.log.WithField("root", root).Debug("walking tree")

	err := c.fs.Walk(root, func(path string, err error) error {
		if err != nil {
			return &TraversalError{Path: path, Err: err}
		}

		rec, err := c.ClassifyPath(path)
		if err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		if !classified(err) {
			err = &TraversalError{Path: root, Err: err}
		}
		return nil, err
	}
	return records, nil
}

// Outcome is the result of one argument of ClassifyEach.
type Outcome struct {
	Path    string
	Records []Record
	Err     error
}

// ClassifyEach is the best-effort counterpart of ClassifyBatch and
// ClassifyBatchRecursive: every path gets its own Outcome, and a failure
// only discards the records of the path it occurred on.
func (c *Classifier) ClassifyEach(paths []string, recursive bool) []Outcome {
	outcomes := make([]Outcome, 0, len(paths))
	for _, p := range paths {
		records, err := c.appendPath(nil, p, recursive)
		if err != nil {
			c.log.WithFields(logrus.Fields{
				"path": p,
				"err":  err,
			}).Warn("skipping path")
		}
		outcomes = append(outcomes, Outcome{Path: p, Records: records, Err: err})
	}
	return outcomes
}

// Records concatenates the records of successful outcomes and collects the
// errors of the failed ones, both in argument order.
func Records(outcomes []Outcome) ([]Record, []error) {
	var (
		records []Record
		errs    []error
	)
	for _, o := range outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
			continue
		}
		records = append(records, o.Records...)
	}
	return records, errs
}
