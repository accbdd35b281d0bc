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
package table

// TableSize is the number of slots addressed by the 16-bit rolling prefix hash.
const TableSize = 1 << 16

const (
	// none means no stored key has a prefix hashing to the slot.
	none = iota
	// presentMarker means some stored key has a prefix hashing to the slot.
	presentMarker
	// elemMarker means a complete stored key hashes to the slot.
	elemMarker
)

// PrefixTable indexes byte-string keys so that, given an input, every stored
// key that is a prefix of the input can be found in a single forward pass.
//
// A key may be inserted more than once: values accumulate under the key in
// insertion order. The hash slots only prune the walk; key equality is always
// confirmed against the element map, so collisions cost time, never
// correctness.
type PrefixTable[T any] struct {
	slots [TableSize]byte
	elems map[string][]T
	count int
}

// New returns an empty PrefixTable.
func New[T any]() *PrefixTable[T] {
	return &PrefixTable[T]{
		elems: make(map[string][]T),
	}
}

func next(h uint16, b byte) uint16 {
	return (h << 2) + uint16(b)
}

// Insert appends v to the values stored under key. Empty keys are ignored.
func (t *PrefixTable[T]) Insert(key []byte, v T) {
	if len(key) == 0 {
		return
	}

	var h uint16
	for _, b := range key {
		h = next(h, b)
		t.slots[h] = max(t.slots[h], presentMarker)
	}
	t.slots[h] = elemMarker
	t.elems[string(key)] = append(t.elems[string(key)], v)
	t.count++
}

// Get returns the values stored under key, in insertion order.
func (t *PrefixTable[T]) Get(key []byte) ([]T, bool) {
	v, found := t.elems[string(key)]
	return v, found
}

// Walk calls onMatch, shortest key first, with the values of every stored key
// that is a prefix of input. Walking stops early when onMatch returns true or
// when no stored key can extend the current prefix.
//
// With "PK", "PK\x03\x04" and "7z" stored, walking "PK\x03\x04\x14" visits
// "PK" and then "PK\x03\x04"; walking "PNG" visits nothing.
func (t *PrefixTable[T]) Walk(input []byte, onMatch func([]T) bool) {
	var h uint16
	for i, b := range input {
		h = next(h, b)

		switch t.slots[h] {
		case none:
			return
		case elemMarker:
			if vs, ok := t.elems[string(input[:i+1])]; ok && onMatch(vs) {
				return
			}
		}
	}
}

// Keys returns the number of distinct keys stored.
func (t *PrefixTable[T]) Keys() int {
	return len(t.elems)
}

// Size returns the number of values stored across all keys.
func (t *PrefixTable[T]) Size() int {
	return t.count
}
