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
package pbar

import (
	"fmt"
	"io"
	"time"

	"github.com/ostafen/ftype/pkg/util/format"
)

const MinRefreshRate = time.Millisecond * 500

// ProgressState counts classified entries. Tree walks have no known total,
// so it reports throughput instead of a percentage.
type ProgressState struct {
	Out            io.Writer
	Files          int
	Dirs           int
	Bytes          int64
	StartTime      time.Time
	LastUpdateTime time.Time

	now func() time.Time
}

func NewProgressState(out io.Writer) *ProgressState {
	return &ProgressState{
		Out:       out,
		StartTime: time.Now(),
		now:       time.Now,
	}
}

// Add accounts for one entry; size is ignored for directories.
func (p *ProgressState) Add(isDir bool, size int64) {
	if isDir {
		p.Dirs++
	} else {
		p.Files++
		p.Bytes += size
	}
	p.Render(false)
}

// Render redraws the status line, at most once per MinRefreshRate unless
// forced.
func (p *ProgressState) Render(force bool) {
	now := p.now()
	if !force && now.Sub(p.LastUpdateTime) < MinRefreshRate {
		return
	}
	p.LastUpdateTime = now

	var rate float64
	if elapsed := now.Sub(p.StartTime).Seconds(); elapsed > 0 {
		rate = float64(p.Bytes) / elapsed
	}

	// \r returns to the start of the line; trailing spaces clear leftovers
	fmt.Fprintf(p.Out, "\r[INFO] Progress: %d files, %d directories | %s read | @ %s/s    ",
		p.Files,
		p.Dirs,
		format.FormatBytes(p.Bytes),
		format.FormatBytes(int64(rate)),
	)
}

// Finish draws the final state and ends the line.
func (p *ProgressState) Finish() {
	p.Render(true)
	fmt.Fprintln(p.Out)
}
