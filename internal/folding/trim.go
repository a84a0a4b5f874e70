// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package folding implements text transformers applied to source words.
package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// SpaceTrimmer removes whitespace from the beginning and end of the input.
// Internal whitespace spans are copied through unchanged.
type SpaceTrimmer struct {
	// notStart is true after encountering the first non-whitespace rune.
	notStart bool
}

// Transform implements [transform.Transformer.Transform].
func (w *SpaceTrimmer) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}

		c, size := utf8.DecodeRune(src[nSrc:])
		if !unicode.IsSpace(c) {
			w.notStart = true
			// NOTE: the source bytes are copied rather than re-encoding c so
			// that invalid sequences pass through as-is.
			if nDst+size > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
			nSrc += size
			continue
		}

		if !w.notStart {
			// Ignore leading whitespace.
			nSrc += size
			continue
		}

		// Find the end of the whitespace span. Whether it is emitted depends
		// on whether anything follows it.
		span := 0
		for nSrc+span < len(src) {
			rest := src[nSrc+span:]
			if !atEOF && !utf8.FullRune(rest) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			r, s := utf8.DecodeRune(rest)
			if !unicode.IsSpace(r) {
				break
			}
			span += s
		}

		if nSrc+span == len(src) {
			if !atEOF {
				return nDst, nSrc, transform.ErrShortSrc
			}
			// Drop trailing whitespace.
			nSrc += span
			break
		}

		if nDst+span > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], src[nSrc:nSrc+span])
		nSrc += span
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *SpaceTrimmer) Reset() {
	*w = SpaceTrimmer{}
}

// TrimSpace returns s with leading and trailing whitespace removed.
func TrimSpace(s string) string {
	// SpaceTrimmer never returns an error other than the short buffer errors
	// handled by transform.String.
	out, _, err := transform.String(&SpaceTrimmer{}, s)
	if err != nil {
		return s
	}
	return out
}
