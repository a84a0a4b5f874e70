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

package ptree

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-dicttool/dicterr"
)

// testNode is a comparable copy of a Node.
type testNode struct {
	Char     string
	Order    int
	Type     NodeType
	Freq     int
	Children []testNode
}

func dump(nodes []*Node) []testNode {
	var out []testNode
	for _, n := range nodes {
		out = append(out, testNode{
			Char:     string(n.Char),
			Order:    n.Order,
			Type:     n.Type,
			Freq:     n.Freq,
			Children: dump(n.Children()),
		})
	}
	return out
}

type ngram struct {
	tokens []string
	score  int
}

func build(t *testing.T, ngrams []ngram) *Root {
	t.Helper()

	r := New("h=1")
	for _, g := range ngrams {
		if err := r.Insert(g.tokens, g.score); err != nil {
			t.Fatalf("Insert(%q): %v", g.tokens, err)
		}
	}
	return r
}

// TestInsert tests Root.Insert.
func TestInsert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ngrams   []ngram
		expected []testNode
	}{
		{
			name: "shared prefix",
			ngrams: []ngram{
				{tokens: []string{"cat"}, score: 200},
				{tokens: []string{"car"}, score: 150},
			},
			expected: []testNode{
				{Char: "c", Order: 1, Children: []testNode{
					{Char: "a", Order: 1, Children: []testNode{
						{Char: "t", Order: 1, Type: WordType, Freq: 200},
						{Char: "r", Order: 1, Type: WordType, Freq: 150},
					}},
				}},
			},
		},
		{
			name: "insertion order kept",
			ngrams: []ngram{
				{tokens: []string{"b"}, score: 1},
				{tokens: []string{"a"}, score: 2},
				{tokens: []string{"c"}, score: 3},
			},
			expected: []testNode{
				{Char: "b", Order: 1, Type: WordType, Freq: 1},
				{Char: "a", Order: 1, Type: WordType, Freq: 2},
				{Char: "c", Order: 1, Type: WordType, Freq: 3},
			},
		},
		{
			name: "prefix word",
			ngrams: []ngram{
				{tokens: []string{"car"}, score: 150},
				{tokens: []string{"ca"}, score: 20},
			},
			expected: []testNode{
				{Char: "c", Order: 1, Children: []testNode{
					{Char: "a", Order: 1, Type: WordType, Freq: 20, Children: []testNode{
						{Char: "r", Order: 1, Type: WordType, Freq: 150},
					}},
				}},
			},
		},
		{
			name: "last write wins",
			ngrams: []ngram{
				{tokens: []string{"to"}, score: 100},
				{tokens: []string{"to"}, score: 90},
			},
			expected: []testNode{
				{Char: "t", Order: 1, Children: []testNode{
					{Char: "o", Order: 1, Type: WordType, Freq: 90},
				}},
			},
		},
		{
			name: "bigram",
			ngrams: []ngram{
				{tokens: []string{"i", "am"}, score: 120},
			},
			expected: []testNode{
				{Char: "i", Order: 1, Type: WordFillerType, Children: []testNode{
					{Char: "a", Order: 2, Children: []testNode{
						{Char: "m", Order: 2, Type: WordType, Freq: 120},
					}},
				}},
			},
		},
		{
			name: "filler promoted to word",
			ngrams: []ngram{
				{tokens: []string{"i", "am"}, score: 120},
				{tokens: []string{"i"}, score: 255},
			},
			expected: []testNode{
				{Char: "i", Order: 1, Type: WordType, Freq: 255, Children: []testNode{
					{Char: "a", Order: 2, Children: []testNode{
						{Char: "m", Order: 2, Type: WordType, Freq: 120},
					}},
				}},
			},
		},
		{
			name: "word not demoted to filler",
			ngrams: []ngram{
				{tokens: []string{"i"}, score: 255},
				{tokens: []string{"i", "am"}, score: 120},
			},
			expected: []testNode{
				{Char: "i", Order: 1, Type: WordType, Freq: 255, Children: []testNode{
					{Char: "a", Order: 2, Children: []testNode{
						{Char: "m", Order: 2, Type: WordType, Freq: 120},
					}},
				}},
			},
		},
		{
			name: "orders do not share nodes",
			ngrams: []ngram{
				{tokens: []string{"ab"}, score: 10},
				{tokens: []string{"a", "b"}, score: 20},
			},
			expected: []testNode{
				{Char: "a", Order: 1, Type: WordFillerType, Children: []testNode{
					{Char: "b", Order: 1, Type: WordType, Freq: 10},
					{Char: "b", Order: 2, Type: WordType, Freq: 20},
				}},
			},
		},
		{
			name: "multi-byte characters",
			ngrams: []ngram{
				{tokens: []string{"日本"}, score: 30},
			},
			expected: []testNode{
				{Char: "日", Order: 1, Children: []testNode{
					{Char: "本", Order: 1, Type: WordType, Freq: 30},
				}},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			r := build(t, test.ngrams)
			if diff := cmp.Diff(test.expected, dump(r.Children())); diff != "" {
				t.Errorf("tree (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestInsert_idempotent tests that inserting the same n-gram twice leaves the
// tree unchanged.
func TestInsert_idempotent(t *testing.T) {
	t.Parallel()

	once := build(t, []ngram{
		{tokens: []string{"cat"}, score: 200},
		{tokens: []string{"i", "am"}, score: 120},
	})
	twice := build(t, []ngram{
		{tokens: []string{"cat"}, score: 200},
		{tokens: []string{"i", "am"}, score: 120},
		{tokens: []string{"cat"}, score: 200},
		{tokens: []string{"i", "am"}, score: 120},
	})

	if diff := cmp.Diff(dump(once.Children()), dump(twice.Children())); diff != "" {
		t.Errorf("tree (-once, +twice):\n%s", diff)
	}
}

// TestInsert_monotonic tests that inserting other n-grams through a word node
// never changes its type or frequency.
func TestInsert_monotonic(t *testing.T) {
	t.Parallel()

	r := build(t, []ngram{
		{tokens: []string{"car"}, score: 150},
		{tokens: []string{"cart"}, score: 40},
		{tokens: []string{"car", "park"}, score: 12},
		{tokens: []string{"carts"}, score: 5},
	})

	n := r.Children()[0].Children()[0].Children()[0]
	if got, want := string(n.Char), "r"; got != want {
		t.Fatalf("Char: got: %q, want: %q", got, want)
	}
	if n.Type != WordType || n.Freq != 150 {
		t.Fatalf("node r: got: %v/%d, want: %v/%d", n.Type, n.Freq, WordType, 150)
	}
}

// TestInsert_error tests Root.Insert with invalid n-grams.
func TestInsert_error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		tokens []string
	}{
		{
			name:   "nil",
			tokens: nil,
		},
		{
			name:   "empty token",
			tokens: []string{""},
		},
		{
			name:   "empty second token",
			tokens: []string{"a", ""},
		},
		{
			name:   "invalid utf-8",
			tokens: []string{"ab\xffc"},
		},
		{
			name:   "invalid utf-8 second token",
			tokens: []string{"a", "\xff"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			r := New("")
			err := r.Insert(test.tokens, 1)
			if got, want := err, dicterr.ErrValidation; !errors.Is(got, want) {
				t.Fatalf("Insert: unexpected error, got: %v, want: %v", got, want)
			}
			if len(r.Children()) != 0 {
				t.Fatalf("Insert: tree modified on error")
			}
		})
	}
}

func terminals(t *testing.T, r *Root) map[string]int {
	t.Helper()

	m := map[string]int{}
	err := r.Walk(func(tokens []string, n *Node) error {
		m[strings.Join(tokens, " ")] = n.Freq
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	return m
}

// TestWalk tests Root.Walk.
func TestWalk(t *testing.T) {
	t.Parallel()

	r := build(t, []ngram{
		{tokens: []string{"cat"}, score: 200},
		{tokens: []string{"car"}, score: 150},
		{tokens: []string{"i"}, score: 255},
		{tokens: []string{"i", "am"}, score: 120},
		{tokens: []string{"i", "am", "here"}, score: 40},
		{tokens: []string{"ab"}, score: 10},
		{tokens: []string{"a", "b"}, score: 20},
	})

	expected := map[string]int{
		"cat":       200,
		"car":       150,
		"i":         255,
		"i am":      120,
		"i am here": 40,
		"ab":        10,
		"a b":       20,
	}
	if diff := cmp.Diff(expected, terminals(t, r)); diff != "" {
		t.Errorf("Walk (-want, +got):\n%s", diff)
	}

	nodes, words := r.Stats()
	// c a t r i a m h e r e a b b
	if got, want := nodes, 14; got != want {
		t.Errorf("Stats nodes: got: %d, want: %d", got, want)
	}
	if got, want := words, 7; got != want {
		t.Errorf("Stats words: got: %d, want: %d", got, want)
	}
}

// TestWalk_error tests that Walk stops at the first error.
func TestWalk_error(t *testing.T) {
	t.Parallel()

	r := build(t, []ngram{
		{tokens: []string{"a"}, score: 1},
		{tokens: []string{"b"}, score: 2},
	})

	errStop := errors.New("stop")
	calls := 0
	err := r.Walk(func([]string, *Node) error {
		calls++
		return errStop
	})
	if !errors.Is(err, errStop) {
		t.Fatalf("Walk: unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("Walk: got %d calls, want 1", calls)
	}
}

// TestInsert_permutation tests that permuting n-grams within a frequency tier
// produces the same terminal n-grams and scores.
func TestInsert_permutation(t *testing.T) {
	t.Parallel()

	a := build(t, []ngram{
		{tokens: []string{"cat"}, score: 255},
		{tokens: []string{"car"}, score: 255},
		{tokens: []string{"ca"}, score: 255},
		{tokens: []string{"dog"}, score: 195},
	})
	b := build(t, []ngram{
		{tokens: []string{"ca"}, score: 255},
		{tokens: []string{"car"}, score: 255},
		{tokens: []string{"cat"}, score: 255},
		{tokens: []string{"dog"}, score: 195},
	})

	if diff := cmp.Diff(terminals(t, a), terminals(t, b)); diff != "" {
		t.Errorf("terminals (-a, +b):\n%s", diff)
	}
}
