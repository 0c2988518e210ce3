// Package render turns a byte stream into a colorized textual dump.
//
// Bytes are consumed in fixed-size chunks whose width depends on the numeric
// base: lcm(8, log2 base) bits, so base 8 reads 3-byte chunks, base 32 reads
// 5, base 64 reads 3, and every other base reads single bytes. Each chunk is
// rendered as a fixed number of digits from the base's alphabet, colored by
// evaluating the configured calc program against the chunk's value and
// picking the matching gradient color.
package render

import (
	"fmt"
)

// Alphabet is the digit table for every supported base. The first base
// characters of the table are the digits of that base.
const Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ+/"

// AlphabetUpper is the uppercase digit table, valid for bases up to 36.
const AlphabetUpper = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Encoding renders chunk values as digit strings in one of the supported
// bases. Encodings are stateless and pure: every chunk value has exactly one
// fixed-width representation.
type Encoding struct {
	base      int
	log2      uint // bits per glyph
	chunkLen  int  // bytes per chunk
	glyphs    int  // glyphs per chunk
	alphabet  string
	uppercase bool
}

// NewEncoding creates an Encoding for a base in {2, 4, 8, 16, 32, 64}.
// Uppercase output is available for bases whose digits fit the 36-character
// uppercase table.
func NewEncoding(base int, uppercase bool) (*Encoding, error) {
	var log2 uint
	var chunkLen int
	switch base {
	case 2:
		log2, chunkLen = 1, 1
	case 4:
		log2, chunkLen = 2, 1
	case 8:
		log2, chunkLen = 3, 3
	case 16:
		log2, chunkLen = 4, 1
	case 32:
		log2, chunkLen = 5, 5
	case 64:
		log2, chunkLen = 6, 3
	default:
		return nil, fmt.Errorf("base must be 2, 4, 8, 16, 32, or 64 (got %d)", base)
	}
	alphabet := Alphabet
	if uppercase {
		if base > len(AlphabetUpper) {
			return nil, fmt.Errorf("uppercase output is not available for base %d", base)
		}
		alphabet = AlphabetUpper
	}
	return &Encoding{
		base:      base,
		log2:      log2,
		chunkLen:  chunkLen,
		glyphs:    (8 * chunkLen) / int(log2),
		alphabet:  alphabet,
		uppercase: uppercase,
	}, nil
}

// Base returns the numeric base.
func (e *Encoding) Base() int { return e.base }

// ChunkLen returns the number of bytes per chunk.
func (e *Encoding) ChunkLen() int { return e.chunkLen }

// ChunkBits returns the number of bits per chunk.
func (e *Encoding) ChunkBits() uint { return uint(8 * e.chunkLen) }

// GlyphBits returns the number of bits per glyph (log2 of the base).
func (e *Encoding) GlyphBits() uint { return e.log2 }

// GlyphsPerChunk returns the number of digits one chunk renders to.
func (e *Encoding) GlyphsPerChunk() int { return e.glyphs }

// AppendChunk appends the fixed-width digit rendering of a chunk value to
// dst, most significant glyph first.
func (e *Encoding) AppendChunk(dst []byte, chunk uint64) []byte {
	shift := e.ChunkBits()
	for i := 0; i < e.glyphs; i++ {
		shift -= e.log2
		glyph := (chunk >> shift) & uint64(e.base-1)
		dst = append(dst, e.alphabet[glyph])
	}
	return dst
}

// Glyphs returns the per-glyph values of a chunk, most significant first.
// Used by per-glyph coloring.
func (e *Encoding) Glyphs(chunk uint64) []uint64 {
	out := make([]uint64, e.glyphs)
	shift := e.ChunkBits()
	for i := 0; i < e.glyphs; i++ {
		shift -= e.log2
		out[i] = (chunk >> shift) & uint64(e.base-1)
	}
	return out
}

// ChunkValue assembles a chunk value from its bytes, most significant byte
// first, or least significant first when littleEndian is set. Short chunks
// (at end of input) are zero-padded.
func ChunkValue(chunk []byte, chunkLen int, littleEndian bool) uint64 {
	var value uint64
	if littleEndian {
		for i := len(chunk) - 1; i >= 0; i-- {
			value = value<<8 | uint64(chunk[i])
		}
		return value
	}
	for i := 0; i < chunkLen; i++ {
		var b byte
		if i < len(chunk) {
			b = chunk[i]
		}
		value = value<<8 | uint64(b)
	}
	return value
}
