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

// Package header implements combined list header metadata.
//
// A header is a single line of comma separated key=value pairs, for example:
//
//	dictionary=main:en,locale=en,description=Auto-generated dictionary for en,date=1700000000000,version=1
//
// Keys keep the order they were set in. Values may not contain commas or
// newlines.
package header

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ianlewis/go-dicttool/dicterr"
)

var keyRegex = regexp.MustCompile("^[a-zA-Z0-9-_]+$")

// Header is combined list header metadata.
type Header struct {
	keys     []string
	metadata map[string]string
}

// New returns an empty header.
func New() *Header {
	return &Header{
		metadata: map[string]string{},
	}
}

// NewMain returns the header of an auto-generated main dictionary for the
// given language. The date is recorded in milliseconds since the epoch.
func NewMain(lang string, date time.Time) (*Header, error) {
	if lang == "" {
		return nil, fmt.Errorf("%w: missing language code", dicterr.ErrValidation)
	}

	h := New()
	for _, kv := range [][2]string{
		{"dictionary", "main:" + lang},
		{"locale", lang},
		{"description", "Auto-generated dictionary for " + lang},
		{"date", strconv.FormatInt(date.UnixMilli(), 10)},
		{"version", "1"},
	} {
		if err := h.Set(kv[0], kv[1]); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Parse parses a header line.
func Parse(line string) (*Header, error) {
	h := New()
	if line == "" {
		return h, nil
	}

	for _, field := range strings.Split(line, ",") {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return nil, fmt.Errorf("%w: header field %q: missing '='", dicterr.ErrParse, field)
		}
		if !keyRegex.MatchString(key) {
			return nil, fmt.Errorf("%w: header field %q: invalid key", dicterr.ErrParse, field)
		}
		h.set(key, value)
	}
	return h, nil
}

// Set sets the value for key. Keys that are already set keep their position.
func (h *Header) Set(key, value string) error {
	if !keyRegex.MatchString(key) {
		return fmt.Errorf("%w: invalid header key %q", dicterr.ErrValidation, key)
	}
	if strings.ContainsAny(value, ",\r\n") {
		return fmt.Errorf("%w: invalid header value for %q: %q", dicterr.ErrValidation, key, value)
	}
	h.set(key, value)
	return nil
}

func (h *Header) set(key, value string) {
	if _, ok := h.metadata[key]; !ok {
		h.keys = append(h.keys, key)
	}
	h.metadata[key] = value
}

// Value returns the value for key or an empty string if it is not set.
func (h *Header) Value(key string) string {
	return h.metadata[key]
}

// Date returns the "date" value in milliseconds since the epoch. It returns
// false if the date is missing or is not an integer.
func (h *Header) Date() (int64, bool) {
	d, err := strconv.ParseInt(h.Value("date"), 10, 64)
	if err != nil {
		return 0, false
	}
	return d, true
}

// String returns the header line without a trailing newline.
func (h *Header) String() string {
	var b strings.Builder
	for i, k := range h.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(h.metadata[k])
	}
	return b.String()
}
