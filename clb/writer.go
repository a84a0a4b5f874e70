// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package clb

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/ianlewis/go-dicttool/dicterr"
)

// Writer writes a combined list. The header must be written before any
// entry. Writes are buffered and Flush must be called when done.
type Writer struct {
	w           *bufio.Writer
	wroteHeader bool

	// window holds the most recent tokens written, oldest first.
	window []string
}

// NewWriter returns a new Writer writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w: bufio.NewWriter(w),
	}
}

// WriteHeader writes the header line.
func (w *Writer) WriteHeader(header string) error {
	if w.wroteHeader {
		return fmt.Errorf("%w: header already written", dicterr.ErrValidation)
	}
	if strings.ContainsAny(header, "\r\n") {
		return fmt.Errorf("%w: header contains a newline", dicterr.ErrValidation)
	}
	w.wroteHeader = true

	if _, err := w.w.WriteString(header + "\n"); err != nil {
		return fmt.Errorf("%w: %w", dicterr.ErrIO, err)
	}
	return nil
}

// Write writes an entry. Only the last token of a bigram or trigram is
// written, so the preceding tokens must match the most recently written
// tokens.
func (w *Writer) Write(e *Entry) error {
	if !w.wroteHeader {
		return fmt.Errorf("%w: header not written", dicterr.ErrValidation)
	}

	order := e.Order()
	if order < 1 || order > MaxOrder {
		return fmt.Errorf("%w: n-gram order %d", dicterr.ErrValidation, order)
	}
	for _, t := range e.Tokens {
		if t == "" || strings.ContainsAny(t, "\r\n") || strings.Contains(t, scoreSep) {
			return fmt.Errorf("%w: invalid token %q", dicterr.ErrValidation, t)
		}
	}
	if e.Score < 0 {
		return fmt.Errorf("%w: negative score %d for %q", dicterr.ErrValidation, e.Score, e.Tokens)
	}

	context := e.Tokens[:order-1]
	if len(w.window) < len(context) || !slices.Equal(w.window[len(w.window)-len(context):], context) {
		return fmt.Errorf("%w: %q does not follow the previous entry", dicterr.ErrValidation, e.Tokens)
	}

	token := e.Tokens[order-1]
	line := prefixes[order] + token + scoreSep + strconv.Itoa(e.Score) + "\n"
	if _, err := w.w.WriteString(line); err != nil {
		return fmt.Errorf("%w: %w", dicterr.ErrIO, err)
	}

	w.window = append(w.window, token)
	if len(w.window) > MaxOrder-1 {
		w.window = w.window[len(w.window)-(MaxOrder-1):]
	}
	return nil
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("%w: %w", dicterr.ErrIO, err)
	}
	return nil
}
