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
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"
)

// Algorithm names a content digest.
type Algorithm string

const (
	None   Algorithm = ""
	XXHash Algorithm = "xxhash"
	BLAKE3 Algorithm = "blake3"
	SHA256 Algorithm = "sha256"
)

var ErrUnsupported = errors.New("unsupported checksum algorithm")

// Algorithms lists the supported digests.
func Algorithms() []Algorithm {
	return []Algorithm{XXHash, BLAKE3, SHA256}
}

// Parse maps a user supplied name to an Algorithm. "" and "none" disable
// hashing.
func Parse(s string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(strings.TrimSpace(s))); a {
	case "", "none":
		return None, nil
	case XXHash, "xxh64":
		return XXHash, nil
	case BLAKE3, SHA256:
		return a, nil
	default:
		return None, fmt.Errorf("%w: %s", ErrUnsupported, s)
	}
}

// NewHasher returns a fresh hash.Hash for a.
func NewHasher(a Algorithm) (hash.Hash, error) {
	switch a {
	case XXHash:
		return xxhash.New(), nil
	case BLAKE3:
		return blake3.New(), nil
	case SHA256:
		return sha256.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, string(a))
	}
}

// Sum returns the hex digest of data. With None it returns "".
func Sum(a Algorithm, data []byte) (string, error) {
	if a == None {
		return "", nil
	}

	h, err := NewHasher(a)
	if err != nil {
		return "", err
	}
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
