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

package dicttool

import (
	"bytes"
	"fmt"
	"time"

	"github.com/ianlewis/go-dicttool/cbpack"
	"github.com/ianlewis/go-dicttool/clb"
	"github.com/ianlewis/go-dicttool/flict"
	"github.com/ianlewis/go-dicttool/header"
	"github.com/ianlewis/go-dicttool/ptree"
	"github.com/ianlewis/go-dicttool/wordfreq"
)

// Normalize reads the cBpack source at sourcePath and returns the combined
// list for the language lang. Words in the denylist at denylistPath are
// given a score of zero. An empty denylistPath means no denylist.
func Normalize(sourcePath, denylistPath, lang string, opts *Options) ([]byte, error) {
	b, _, err := normalize(sourcePath, denylistPath, lang, opts.getNow())
	return b, err
}

// normalize returns the combined list and the number of entries in it.
func normalize(sourcePath, denylistPath, lang string, now time.Time) ([]byte, int, error) {
	h, err := header.NewMain(lang, now)
	if err != nil {
		return nil, 0, err
	}

	var deny wordfreq.Denylist
	if denylistPath != "" {
		deny, err = wordfreq.OpenDenylist(denylistPath)
		if err != nil {
			return nil, 0, err
		}
	}

	p, err := cbpack.Open(sourcePath)
	if err != nil {
		return nil, 0, err
	}

	entries := wordfreq.Normalize(p.Tiers, deny)

	var buf bytes.Buffer
	w := clb.NewWriter(&buf)
	if err := w.WriteHeader(h.String()); err != nil {
		return nil, 0, err
	}
	for _, e := range entries {
		if err := w.Write(&clb.Entry{
			Tokens: []string{e.Word},
			Score:  e.Score,
		}); err != nil {
			return nil, 0, err
		}
	}
	if err := w.Flush(); err != nil {
		return nil, 0, err
	}

	return buf.Bytes(), len(entries), nil
}

// Compile compiles a combined list into a flict dictionary. The dictionary
// date is taken from the "date" header field and is zero if the field is
// missing or invalid.
func Compile(combined []byte) ([]byte, error) {
	b, _, err := compile(combined)
	return b, err
}

// compile returns the flict dictionary and the prefix tree it encodes.
func compile(combined []byte) ([]byte, *ptree.Root, error) {
	s, err := clb.NewScanner(bytes.NewReader(combined))
	if err != nil {
		return nil, nil, err
	}

	var date int64
	// The header is free-form so an unparsable header only loses the date.
	if h, err := header.Parse(s.Header()); err == nil {
		if d, ok := h.Date(); ok && d >= 0 {
			date = d
		}
	}

	root := ptree.New(s.Header())
	for s.Scan() {
		e := s.Entry()
		if err := root.Insert(e.Tokens, e.Score); err != nil {
			return nil, nil, fmt.Errorf("inserting %q: %w", e.Tokens, err)
		}
	}
	if err := s.Err(); err != nil {
		return nil, nil, err
	}

	b, err := flict.Encode(root, &flict.Options{
		Version: flict.Version0,
		Date:    date,
	})
	if err != nil {
		return nil, nil, err
	}
	return b, root, nil
}
