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

// Package clb implements reading and writing combined lists.
//
// A combined list is UTF-8 text. The first line is a free-form header. Each
// following line is one n-gram entry:
//
//	 word=<token>,f=<score>
//	  bigram=<token>,f=<score>
//	   trigram=<token>,f=<score>
//
// The number of leading spaces is the n-gram order. Bigram and trigram lines
// only hold the last token of the n-gram. The preceding tokens are the most
// recent tokens of the lines before it.
package clb

// MaxOrder is the highest n-gram order a combined list can hold.
const MaxOrder = 3

// scoreSep separates the token from the score.
const scoreSep = ",f="

// prefixes holds the line prefix for each n-gram order.
var prefixes = [MaxOrder + 1]string{
	"",
	" word=",
	"  bigram=",
	"   trigram=",
}

// Entry is a combined list entry.
type Entry struct {
	// Tokens is the n-gram. It holds between 1 and MaxOrder tokens.
	Tokens []string

	// Score is the n-gram frequency score.
	Score int
}

// Order returns the n-gram order of the entry.
func (e *Entry) Order() int {
	return len(e.Tokens)
}
