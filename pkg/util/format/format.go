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
package format

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	_  = iota
	KB = 1 << (10 * iota)
	MB
	GB
	TB
)

var units = []struct {
	suffix string
	size   int64
}{
	{"TB", TB},
	{"GB", GB},
	{"MB", MB},
	{"KB", KB},
	{"B", 1},
}

// FormatBytes renders b with a binary unit, dropping the decimals of whole
// values: 1536 is "1.50KB", 2048 is "2KB".
func FormatBytes(b int64) string {
	for _, u := range units[:len(units)-1] {
		if b < u.size {
			continue
		}

		val := float64(b) / float64(u.size)
		if val == float64(int64(val)) {
			return fmt.Sprintf("%.0f%s", val, u.suffix)
		}
		return fmt.Sprintf("%.2f%s", val, u.suffix)
	}
	return fmt.Sprintf("%dB", b)
}

// ParseBytes is the inverse of FormatBytes. Units are case insensitive, the
// "B" may be omitted ("4k", "64MB") and a bare number is a byte count.
func ParseBytes(s string) (int64, error) {
	str := strings.ToUpper(strings.TrimSpace(s))
	if str == "" {
		return 0, fmt.Errorf("empty size")
	}

	mul := int64(1)
	for _, u := range units {
		if trimmed, ok := strings.CutSuffix(str, u.suffix); ok {
			str, mul = trimmed, u.size
			break
		}
		if u.size > 1 {
			if trimmed, ok := strings.CutSuffix(str, u.suffix[:1]); ok {
				str, mul = trimmed, u.size
				break
			}
		}
	}

	val, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil || val < 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return int64(val * float64(mul)), nil
}
