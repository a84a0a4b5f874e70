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

package flict

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-dicttool/dicterr"
	"github.com/ianlewis/go-dicttool/internal/testutil"
	"github.com/ianlewis/go-dicttool/ptree"
)

type ngram struct {
	tokens []string
	score  int
}

func makeTree(t *testing.T, header string, ngrams []ngram) *ptree.Root {
	t.Helper()

	r := ptree.New(header)
	for _, g := range ngrams {
		if err := r.Insert(g.tokens, g.score); err != nil {
			t.Fatalf("Insert(%q): %v", g.tokens, err)
		}
	}
	return r
}

// emptyHeader is the encoding of an empty header with a zero date.
var emptyHeader = []byte{0xC0, 0x00, 0, 0, 0, 0, 0, 0, 0, 0, 0x81}

// TestEncode tests Encode.
func TestEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		header   string
		opts     *Options
		ngrams   []ngram
		expected []byte
	}{
		{
			name:     "empty",
			expected: emptyHeader,
		},
		{
			name:   "header and date",
			header: "h",
			opts: &Options{
				Date: 0x0102030405060708,
			},
			expected: []byte{0xC0, 0x01, 1, 2, 3, 4, 5, 6, 7, 8, 'h', 0x81},
		},
		{
			name: "shared prefix",
			ngrams: []ngram{
				{tokens: []string{"cat"}, score: 200},
				{tokens: []string{"car"}, score: 150},
			},
			expected: append(emptyHeader[:len(emptyHeader):len(emptyHeader)],
				0x00, 'c',
				0x00, 'a',
				0x08, 200, 't', 0x81,
				0x08, 150, 'r', 0x83,
			),
		},
		{
			name: "siblings",
			ngrams: []ngram{
				{tokens: []string{"a"}, score: 1},
				{tokens: []string{"b"}, score: 2},
			},
			expected: append(emptyHeader[:len(emptyHeader):len(emptyHeader)],
				0x08, 1, 'a', 0x81,
				0x08, 2, 'b', 0x81,
			),
		},
		{
			// The continuation byte 0xA9 looks like an END command.
			name: "multi-byte character",
			ngrams: []ngram{
				{tokens: []string{"\u00e9"}, score: 50},
			},
			expected: append(emptyHeader[:len(emptyHeader):len(emptyHeader)],
				0x09, 50, 0xC3, 0xA9, 0x81,
			),
		},
		{
			name: "prefix word",
			ngrams: []ngram{
				{tokens: []string{"ab"}, score: 0x90},
				{tokens: []string{"a"}, score: 0x90},
			},
			expected: append(emptyHeader[:len(emptyHeader):len(emptyHeader)],
				0x08, 0x90, 'a',
				0x08, 0x90, 'b', 0x82,
			),
		},
		{
			name: "bigram",
			ngrams: []ngram{
				{tokens: []string{"i", "am"}, score: 120},
			},
			expected: append(emptyHeader[:len(emptyHeader):len(emptyHeader)],
				0x04, 'i',
				0x10, 'a',
				0x18, 120, 'm', 0x83,
			),
		},
		{
			name: "trigram",
			ngrams: []ngram{
				{tokens: []string{"a", "b", "c"}, score: 7},
			},
			expected: append(emptyHeader[:len(emptyHeader):len(emptyHeader)],
				0x04, 'a',
				0x14, 'b',
				0x28, 7, 'c', 0x83,
			),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			root := makeTree(t, test.header, test.ngrams)
			got, err := Encode(root, test.opts)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Errorf("Encode (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestEncode_golden tests Encode against a golden file.
func TestEncode_golden(t *testing.T) {
	t.Parallel()

	root := makeTree(t, "dictionary=main:en,locale=en", []ngram{
		{tokens: []string{"cat"}, score: 200},
		{tokens: []string{"car"}, score: 150},
	})
	got, err := Encode(root, &Options{
		Date: 1700000000000,
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	testutil.AssertGolden(t, "cat_car", got)
}

// TestEncode_endRuns tests merging of END commands for deeply nested nodes.
func TestEncode_endRuns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		depth int
		ends  []byte
	}{
		{depth: 1, ends: []byte{0x81}},
		{depth: 62, ends: []byte{0xBE}},
		{depth: 63, ends: []byte{0xBF}},
		{depth: 64, ends: []byte{0xBF, 0x81}},
		{depth: 70, ends: []byte{0xBF, 0x87}},
		{depth: 126, ends: []byte{0xBF, 0xBF}},
		{depth: 127, ends: []byte{0xBF, 0xBF, 0x81}},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("depth %d", test.depth), func(t *testing.T) {
			t.Parallel()

			word := strings.Repeat("a", test.depth)
			root := makeTree(t, "", []ngram{{tokens: []string{word}, score: 1}})
			got, err := Encode(root, nil)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}

			want := append([]byte{}, emptyHeader...)
			for range test.depth - 1 {
				want = append(want, 0x00, 'a')
			}
			want = append(want, 0x08, 1, 'a')
			want = append(want, test.ends...)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Encode (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestEncode_error tests Encode with values that cannot be encoded.
func TestEncode_error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		opts   *Options
		ngrams []ngram
		err    error
	}{
		{
			name: "unsupported version",
			opts: &Options{Version: 1},
			err:  dicterr.ErrValidation,
		},
		{
			name:   "header too large",
			header: strings.Repeat("h", MaxHeaderSize+1),
			err:    dicterr.ErrRange,
		},
		{
			name: "negative date",
			opts: &Options{Date: -1},
			err:  dicterr.ErrRange,
		},
		{
			name: "frequency too large",
			ngrams: []ngram{
				{tokens: []string{"a"}, score: MaxFreq + 1},
			},
			err: dicterr.ErrRange,
		},
		{
			name: "order too large",
			ngrams: []ngram{
				{tokens: strings.Split("a b c d e f g h i", " "), score: 1},
			},
			err: dicterr.ErrRange,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			root := makeTree(t, test.header, test.ngrams)
			got, err := Encode(root, test.opts)
			if want := test.err; !errors.Is(err, want) {
				t.Fatalf("Encode: unexpected error, got: %v, want: %v", err, want)
			}
			if got != nil {
				t.Fatalf("Encode: unexpected output: %x", got)
			}
		})
	}
}

// TestEncode_maxValues tests Encode with the largest encodable values.
func TestEncode_maxValues(t *testing.T) {
	t.Parallel()

	root := makeTree(t, strings.Repeat("h", MaxHeaderSize), []ngram{
		{tokens: strings.Split("a b c d e f g h", " "), score: MaxFreq},
		{tokens: []string{"\U0001F600"}, score: 0},
	})
	got, err := Encode(root, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got[1] != MaxHeaderSize {
		t.Errorf("header size: got: %d, want: %d", got[1], MaxHeaderSize)
	}

	// The 4-byte character closes the dictionary.
	tail := []byte{0x0B, 0, 0xF0, 0x9F, 0x98, 0x80, 0x81}
	if diff := cmp.Diff(tail, got[len(got)-len(tail):]); diff != "" {
		t.Errorf("tail (-want, +got):\n%s", diff)
	}
}

// TestCommand tests Command.Match.
func TestCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		b        byte
		expected Command
	}{
		{b: 0x00, expected: CmdBeginNode},
		{b: 0x7F, expected: CmdBeginNode},
		{b: 0x81, expected: CmdEnd},
		{b: 0xBF, expected: CmdEnd},
		{b: 0xC0, expected: CmdBeginHeader},
		{b: 0xDF, expected: CmdBeginHeader},
		{b: 0xE0, expected: CmdDefineShortcut},
	}

	cmds := []Command{CmdBeginNode, CmdEnd, CmdBeginHeader, CmdDefineShortcut}
	for _, test := range tests {
		var matched []Command
		for _, c := range cmds {
			if c.Match(test.b) {
				matched = append(matched, c)
			}
		}
		if diff := cmp.Diff([]Command{test.expected}, matched); diff != "" {
			t.Errorf("Match(0x%02x) (-want, +got):\n%s", test.b, diff)
		}
	}
}
