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

// Package wordfreq maps ranked word frequency tiers onto the bounded integer
// frequency scale used by combined lists.
//
// Source corpora only give an ordering of tiers. Each surviving tier i of N
// is given the score
//
//	floor(240 * (1 - (i/N)^2) + 15)
//
// which ranges from 255 for the most frequent tier down to just above 15 for
// the least frequent.
package wordfreq

import (
	"math"
	"regexp"

	"github.com/ianlewis/go-dicttool/internal/folding"
)

const (
	// MinScore is the lower bound of scores produced by Score.
	MinScore = 15

	// MaxScore is the upper bound of scores produced by Score.
	MaxScore = 255

	// DeniedScore is the score given to denylisted words.
	DeniedScore = 0
)

// wordRegex matches words made up of letters (optionally followed by
// combining marks), apostrophes and hyphens.
var wordRegex = regexp.MustCompile(`^(?:\p{L}\p{M}*|['-])+$`)

// Entry is a scored word.
type Entry struct {
	Word  string
	Score int
}

// Valid returns true if the word, with surrounding whitespace removed, is a
// valid dictionary word.
func Valid(word string) bool {
	return wordRegex.MatchString(folding.TrimSpace(word))
}

// Sanitize trims every word, drops invalid words and drops tiers that are
// left empty. The order of tiers and of words within a tier is kept.
func Sanitize(tiers [][]string) [][]string {
	var sanitized [][]string
	for _, tier := range tiers {
		var words []string
		for _, w := range tier {
			w = folding.TrimSpace(w)
			if wordRegex.MatchString(w) {
				words = append(words, w)
			}
		}
		if len(words) > 0 {
			sanitized = append(sanitized, words)
		}
	}
	return sanitized
}

// Score returns the score of the tier at index i of n tiers. i must be in
// [0, n) and n must be positive.
func Score(i, n int) int {
	x := float64(i) / float64(n)
	return int(math.Floor(240*(1-x*x) + MinScore))
}

// Normalize sanitizes the tiers and returns the scored words in tier order.
// Words in deny are given DeniedScore. deny may be nil.
func Normalize(tiers [][]string, deny Denylist) []Entry {
	sanitized := Sanitize(tiers)

	var entries []Entry
	for i, tier := range sanitized {
		score := Score(i, len(sanitized))
		for _, w := range tier {
			s := score
			if deny.Contains(w) {
				s = DeniedScore
			}
			entries = append(entries, Entry{
				Word:  w,
				Score: s,
			})
		}
	}
	return entries
}
