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
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/ianlewis/go-dicttool/dicterr"
)

// Scanner scans a combined list from start to end.
type Scanner struct {
	s      *bufio.Scanner
	header string

	// window holds the most recent tokens, oldest first.
	window []string

	entry *Entry
	line  int
	err   error
}

// NewScanner returns a new Scanner and reads the header line from r.
func NewScanner(r io.Reader) (*Scanner, error) {
	s := &Scanner{
		s: bufio.NewScanner(r),
	}

	if !s.s.Scan() {
		if err := s.s.Err(); err != nil {
			return nil, fmt.Errorf("%w: reading header: %w", readErrKind(err), err)
		}
		return nil, fmt.Errorf("%w: missing header", dicterr.ErrParse)
	}
	s.line++
	s.header = strings.TrimRightFunc(s.s.Text(), unicode.IsSpace)
	if !utf8.ValidString(s.header) {
		return nil, fmt.Errorf("%w: header is not valid UTF-8", dicterr.ErrParse)
	}

	return s, nil
}

// Header returns the header line without the trailing newline.
func (s *Scanner) Header() string {
	return s.header
}

// Scan advances the scanner to the next entry. It returns false if the scan
// stops either by reaching the end of the list or an error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}

	if !s.s.Scan() {
		if err := s.s.Err(); err != nil {
			s.err = fmt.Errorf("%w: line %d: %w", readErrKind(err), s.line+1, err)
		}
		return false
	}
	s.line++

	e, err := s.parse(s.s.Text())
	if err != nil {
		s.err = fmt.Errorf("line %d: %w", s.line, err)
		return false
	}
	s.entry = e
	return true
}

// Entry returns the most recent entry read by Scan.
func (s *Scanner) Entry() *Entry {
	return s.entry
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	return s.err
}

// readErrKind returns the error kind for a read error. Lines too long to
// scan are malformed rather than unreadable.
func readErrKind(err error) error {
	if errors.Is(err, bufio.ErrTooLong) {
		return dicterr.ErrParse
	}
	return dicterr.ErrIO
}

func (s *Scanner) parse(line string) (*Entry, error) {
	line = strings.TrimRightFunc(line, unicode.IsSpace)

	order := 0
	var payload string
	for o := 1; o <= MaxOrder; o++ {
		if p, ok := strings.CutPrefix(line, prefixes[o]); ok {
			order = o
			payload = p
			break
		}
	}
	if order == 0 {
		return nil, fmt.Errorf("%w: unrecognized line %q", dicterr.ErrParse, line)
	}

	word, freq, ok := strings.Cut(payload, scoreSep)
	if !ok {
		return nil, fmt.Errorf("%w: missing %q in %q", dicterr.ErrParse, scoreSep, line)
	}

	if !utf8.ValidString(word) {
		return nil, fmt.Errorf("%w: token %q is not valid UTF-8", dicterr.ErrParse, word)
	}
	token := norm.NFC.String(word)
	if token == "" {
		return nil, fmt.Errorf("%w: empty token in %q", dicterr.ErrParse, line)
	}

	if freq == "" || strings.TrimLeft(freq, "0123456789") != "" {
		return nil, fmt.Errorf("%w: invalid score %q", dicterr.ErrParse, freq)
	}
	score, err := strconv.Atoi(freq)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid score %q: %w", dicterr.ErrParse, freq, err)
	}

	if len(s.window) < order-1 {
		return nil, fmt.Errorf("%w: order %d entry %q needs %d preceding tokens",
			dicterr.ErrParse, order, token, order-1)
	}
	tokens := make([]string, 0, order)
	tokens = append(tokens, s.window[len(s.window)-(order-1):]...)
	tokens = append(tokens, token)

	s.window = append(s.window, token)
	if len(s.window) > MaxOrder-1 {
		s.window = s.window[len(s.window)-(MaxOrder-1):]
	}

	return &Entry{
		Tokens: tokens,
		Score:  score,
	}, nil
}
