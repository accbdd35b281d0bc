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
package magic

import (
	"slices"
	"sync"

	"github.com/ostafen/ftype/pkg/table"
)

// SignatureMatcher finds the first signature of its table that matches a
// buffer.
//
// Signatures anchored at offset 0 are indexed by their magic in a prefix
// table, so a lookup walks the buffer head once instead of comparing every
// entry. Signatures at other offsets are few and are tested directly. Both
// paths report table positions and the smallest matching position wins,
// which keeps the result identical to a linear scan of the table.
type SignatureMatcher struct {
	sigs     []Signature
	anchored *table.PrefixTable[int]
	shifted  []int
	maxKey   int
}

// NewSignatureMatcher indexes sigs, which keep their order as precedence.
func NewSignatureMatcher(sigs []Signature) *SignatureMatcher {
	m := &SignatureMatcher{
		sigs:     slices.Clone(sigs),
		anchored: table.New[int](),
	}

	for i, sig := range m.sigs {
		if sig.Offset == 0 && len(sig.Magic) > 0 {
			m.anchored.Insert(sig.Magic, i)
			m.maxKey = max(m.maxKey, len(sig.Magic))
			continue
		}
		m.shifted = append(m.shifted, i)
	}
	return m
}

var builtin = sync.OnceValue(func() *SignatureMatcher {
	return NewSignatureMatcher(signatures)
})

// Builtin returns the matcher over the built-in table. It is built on first
// use and shared; SignatureMatcher is safe for concurrent use.
func Builtin() *SignatureMatcher {
	return builtin()
}

// Signatures returns the table the matcher was built from.
func (m *SignatureMatcher) Signatures() []Signature {
	return slices.Clone(m.sigs)
}

// Lookup returns the first signature, in table order, carried by buf.
func (m *SignatureMatcher) Lookup(buf []byte) (Signature, bool) {
	idx := m.lookup(buf)
	if idx < 0 {
		return Signature{}, false
	}
	return m.sigs[idx], true
}

func (m *SignatureMatcher) lookup(buf []byte) int {
	best := -1

	head := buf[:min(len(buf), m.maxKey)]
	m.anchored.Walk(head, func(idxs []int) bool {
		// every value under a walked key is a match; keep the earliest
		for _, idx := range idxs {
			if best < 0 || idx < best {
				best = idx
			}
		}
		return false
	})

	for _, idx := range m.shifted {
		if best >= 0 && idx > best {
			break
		}
		if m.sigs[idx].Matches(buf) {
			return idx
		}
	}
	return best
}

// Match implements Matcher.
func (m *SignatureMatcher) Match(buf []byte) Result {
	sig, ok := m.Lookup(buf)
	if !ok {
		return Unrecognized
	}
	return Result{Description: sig.Description, Source: SourceSignature}
}
