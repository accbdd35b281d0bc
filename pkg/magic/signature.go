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
	"bytes"
	"slices"
)

// Signature is a magic number: Magic must appear at Offset for a buffer to
// be described by Description.
type Signature struct {
	Offset      int
	Magic       []byte
	Description string
}

// End returns the minimum buffer length needed to test the signature.
func (s Signature) End() int {
	return s.Offset + len(s.Magic)
}

// Matches reports whether buf carries the signature.
func (s Signature) Matches(buf []byte) bool {
	return len(buf) >= s.End() && bytes.Equal(buf[s.Offset:s.End()], s.Magic)
}

// signatures is the built-in table. Order is precedence: the first entry that
// matches wins, so container formats identified by a sub-type at a later
// offset (RIFF, ISO BMFF) list the sub-types first.
var signatures = []Signature{
	// Images
	{Offset: 0, Magic: []byte{0x89, 0x50, 0x4E, 0x47}, Description: "PNG image"},
	{Offset: 0, Magic: []byte{0xFF, 0xD8, 0xFF}, Description: "JPEG image"},
	{Offset: 0, Magic: []byte("GIF87a"), Description: "GIF image (87a)"},
	{Offset: 0, Magic: []byte("GIF89a"), Description: "GIF image (89a)"},
	{Offset: 0, Magic: []byte{0x49, 0x49, 0x2A, 0x00}, Description: "TIFF image (little-endian)"},
	{Offset: 0, Magic: []byte{0x4D, 0x4D, 0x00, 0x2A}, Description: "TIFF image (big-endian)"},
	{Offset: 0, Magic: []byte{0x00, 0x00, 0x01, 0x00}, Description: "Windows icon"},
	{Offset: 8, Magic: []byte("WEBP"), Description: "WebP image"},
	{Offset: 4, Magic: []byte("ftypheic"), Description: "HEIC image"},
	{Offset: 4, Magic: []byte("ftypavif"), Description: "AVIF image"},

	// Documents
	{Offset: 0, Magic: []byte("%PDF-"), Description: "PDF document"},
	{Offset: 0, Magic: []byte("%!PS"), Description: "PostScript document"},
	{Offset: 0, Magic: []byte(`{\rtf`), Description: "Rich Text Format document"},
	{Offset: 0, Magic: []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, Description: "Microsoft Compound File (legacy Office document)"},
	{Offset: 0, Magic: []byte("SQLite format 3\x00"), Description: "SQLite 3 database"},
	{Offset: 0, Magic: []byte("<?xml"), Description: "XML document"},
	{Offset: 0, Magic: []byte{0xEF, 0xBB, 0xBF}, Description: "UTF-8 text with BOM"},

	// Archives and compressed data
	{Offset: 0, Magic: []byte{0x50, 0x4B, 0x03, 0x04}, Description: "ZIP archive"},
	{Offset: 0, Magic: []byte{0x50, 0x4B, 0x05, 0x06}, Description: "ZIP archive (empty)"},
	{Offset: 0, Magic: []byte{0x50, 0x4B, 0x07, 0x08}, Description: "ZIP archive (spanned)"},
	{Offset: 0, Magic: []byte{0x1F, 0x8B}, Description: "gzip compressed data"},
	{Offset: 0, Magic: []byte("BZh"), Description: "bzip2 compressed data"},
	{Offset: 0, Magic: []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}, Description: "XZ compressed data"},
	{Offset: 0, Magic: []byte{0x28, 0xB5, 0x2F, 0xFD}, Description: "Zstandard compressed data"},
	{Offset: 0, Magic: []byte{0x04, 0x22, 0x4D, 0x18}, Description: "LZ4 frame"},
	{Offset: 0, Magic: []byte{'7', 'z', 0xBC, 0xAF, 0x27, 0x1C}, Description: "7-Zip archive"},
	{Offset: 0, Magic: []byte("Rar!\x1a\x07\x01\x00"), Description: "RAR archive (v5)"},
	{Offset: 0, Magic: []byte("Rar!\x1a\x07\x00"), Description: "RAR archive (v1.5-v4)"},
	{Offset: 257, Magic: []byte("ustar"), Description: "POSIX tar archive"},
	{Offset: 0x8001, Magic: []byte("CD001"), Description: "ISO 9660 CD/DVD image"},

	// Executables
	{Offset: 0, Magic: []byte{0x7F, 'E', 'L', 'F'}, Description: "ELF executable"},
	{Offset: 0, Magic: []byte{0xCF, 0xFA, 0xED, 0xFE}, Description: "Mach-O executable (64-bit)"},
	{Offset: 0, Magic: []byte{0xCE, 0xFA, 0xED, 0xFE}, Description: "Mach-O executable (32-bit)"},
	{Offset: 0, Magic: []byte{0xCA, 0xFE, 0xBA, 0xBE}, Description: "Java class file or Mach-O universal binary"},
	{Offset: 0, Magic: []byte("MZ"), Description: "DOS/Windows executable"},
	{Offset: 0, Magic: []byte("#!"), Description: "Script with shebang"},

	// Audio
	{Offset: 8, Magic: []byte("WAVE"), Description: "WAVE audio"},
	{Offset: 0, Magic: []byte("fLaC"), Description: "FLAC audio"},
	{Offset: 0, Magic: []byte("OggS"), Description: "Ogg container"},
	{Offset: 0, Magic: []byte("ID3"), Description: "MP3 audio (ID3 tagged)"},
	{Offset: 0, Magic: []byte{0xFF, 0xFB}, Description: "MP3 audio"},
	{Offset: 0, Magic: []byte("MThd"), Description: "MIDI audio"},
	{Offset: 4, Magic: []byte("ftypM4A "), Description: "MPEG-4 audio"},

	// Video
	{Offset: 8, Magic: []byte("AVI "), Description: "AVI video"},
	{Offset: 4, Magic: []byte("ftypqt  "), Description: "QuickTime video"},
	{Offset: 4, Magic: []byte("ftyp"), Description: "ISO base media file (MP4)"},
	{Offset: 0, Magic: []byte{0x1A, 0x45, 0xDF, 0xA3}, Description: "Matroska/WebM video"},
	{Offset: 0, Magic: []byte("FLV"), Description: "Flash video"},

	// Fonts
	{Offset: 0, Magic: []byte("wOFF"), Description: "WOFF font"},
	{Offset: 0, Magic: []byte("wOF2"), Description: "WOFF2 font"},
	{Offset: 0, Magic: []byte("OTTO"), Description: "OpenType font"},

	// Generic containers and short magics, tried last
	{Offset: 0, Magic: []byte("RIFF"), Description: "RIFF container"},
	{Offset: 0, Magic: []byte("BM"), Description: "BMP image"},
}

// Signatures returns the built-in signature table in precedence order. The
// returned slice is a copy; the Magic byte slices are shared and must not be
// modified.
func Signatures() []Signature {
	return slices.Clone(signatures)
}

// MinLen returns the shortest buffer length at which any signature of sigs
// can match, or 0 when sigs is empty.
func MinLen(sigs []Signature) int {
	if len(sigs) == 0 {
		return 0
	}

	n := sigs[0].End()
	for _, sig := range sigs[1:] {
		n = min(n, sig.End())
	}
	return n
}
