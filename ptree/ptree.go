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

// Package ptree implements the prefix tree of n-grams that is encoded into a
// flict dictionary.
//
// Each node holds one character. The tokens of an n-gram are inserted one
// after another along a single path, and each node records the 1-based
// position (order) of the token it belongs to. Children are kept in the order
// they were first inserted. That order is the order nodes are encoded in.
// Children are looked up by character and order, so two sibling nodes may hold
// the same character with different orders. For example the unigram "ab" and
// the bigram "a b" give the node "a" two children "b" of order 1 and 2.
package ptree

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/ianlewis/go-dicttool/dicterr"
)

// NodeType is the semantic type of a node.
type NodeType uint8

const (
	// CharType is an interior node with no terminal semantics.
	CharType NodeType = iota

	// WordFillerType is the last character of a token that is not the last
	// token of an n-gram.
	WordFillerType

	// WordType is the last character of a complete n-gram. It has a
	// frequency.
	WordType

	// ShortcutType is reserved for shortcut nodes. It has a frequency.
	ShortcutType
)

// String returns the name of the node type.
func (t NodeType) String() string {
	switch t {
	case CharType:
		return "CHAR"
	case WordFillerType:
		return "WORD_FILLER"
	case WordType:
		return "WORD"
	case ShortcutType:
		return "SHORTCUT"
	default:
		return fmt.Sprintf("NodeType(%d)", uint8(t))
	}
}

// HasFreq returns true if nodes of this type carry a frequency.
func (t NodeType) HasFreq() bool {
	return t >= WordType
}

// childKey identifies a child within its parent. The order is part of the
// key so that a unigram "ab" and a bigram "a b" do not share the "b" node.
type childKey struct {
	order int
	char  rune
}

// branch holds children in first-insertion order.
type branch struct {
	nodes []*Node
	index map[childKey]*Node
}

// Children returns the node's children in insertion order. The returned
// slice must not be modified.
func (b *branch) Children() []*Node {
	return b.nodes
}

// child returns the child for the order and character, creating it if
// needed.
func (b *branch) child(order int, c rune) *Node {
	k := childKey{order: order, char: c}
	if n, ok := b.index[k]; ok {
		return n
	}
	if b.index == nil {
		b.index = map[childKey]*Node{}
	}
	n := &Node{
		Char:  c,
		Order: order,
		Type:  CharType,
	}
	b.index[k] = n
	b.nodes = append(b.nodes, n)
	return n
}

// Node is a prefix tree node.
type Node struct {
	branch

	// Char is the node's character.
	Char rune

	// Order is the 1-based position within the n-gram of the token this
	// node belongs to.
	Order int

	// Type is the node's semantic type.
	Type NodeType

	// Freq is the frequency score. It is only meaningful if Type.HasFreq.
	Freq int
}

// Root is the root of a prefix tree.
type Root struct {
	branch

	// Header is free-form dictionary metadata.
	Header string
}

// New returns an empty tree with the given header.
func New(header string) *Root {
	return &Root{
		Header: header,
	}
}

// Insert inserts an n-gram with the given score. Inserting an n-gram that is
// already present replaces its score. Node types are only ever promoted.
func (r *Root) Insert(tokens []string, score int) error {
	if len(tokens) == 0 {
		return fmt.Errorf("%w: empty n-gram", dicterr.ErrValidation)
	}
	for _, t := range tokens {
		if t == "" {
			return fmt.Errorf("%w: empty token in %q", dicterr.ErrValidation, tokens)
		}
		if !utf8.ValidString(t) {
			return fmt.Errorf("%w: token %q is not valid UTF-8", dicterr.ErrValidation, t)
		}
	}

	b := &r.branch
	for i, t := range tokens {
		chars := []rune(t)
		for j, c := range chars {
			n := b.child(i+1, c)
			if j == len(chars)-1 {
				if i == len(tokens)-1 {
					if n.Type < WordType {
						n.Type = WordType
					}
					n.Freq = score
				} else if n.Type == CharType {
					n.Type = WordFillerType
				}
			}
			b = &n.branch
		}
	}

	return nil
}

// Walk calls fn for every node carrying a frequency in encoding order, along
// with the n-gram that ends at the node. Walk stops at the first error
// returned by fn.
func (r *Root) Walk(fn func(tokens []string, n *Node) error) error {
	return walk(r.nodes, 0, nil, nil, fn)
}

func walk(nodes []*Node, order int, done []string, cur []rune, fn func([]string, *Node) error) error {
	for _, n := range nodes {
		d, c := done, cur
		if order != 0 && n.Order != order {
			// The node starts the next token.
			d = append(slices.Clone(done), string(cur))
			c = nil
		}
		c = append(slices.Clone(c), n.Char)

		if n.Type.HasFreq() {
			if err := fn(append(slices.Clone(d), string(c)), n); err != nil {
				return err
			}
		}
		if err := walk(n.nodes, n.Order, d, c, fn); err != nil {
			return err
		}
	}
	return nil
}

// Stats returns the number of nodes and the number of nodes carrying a
// frequency in the tree.
func (r *Root) Stats() (nodes, words int) {
	var count func([]*Node)
	count = func(ns []*Node) {
		for _, n := range ns {
			nodes++
			count(n.nodes)
		}
	}
	count(r.nodes)

	_ = r.Walk(func([]string, *Node) error {
		words++
		return nil
	})
	return nodes, words
}
