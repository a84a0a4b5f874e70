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

package wordfreq

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ianlewis/go-dicttool/dicterr"
	"github.com/ianlewis/go-dicttool/internal/folding"
)

// Denylist is a set of words whose score is forced to zero. A nil Denylist
// contains no words.
type Denylist map[string]struct{}

// LoadDenylist reads a denylist with one word per line. Lines that are empty
// after trimming or that begin with '#' are ignored.
func LoadDenylist(r io.Reader) (Denylist, error) {
	d := Denylist{}
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := folding.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		d[line] = struct{}{}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading denylist: %w", dicterr.ErrIO, err)
	}
	return d, nil
}

// OpenDenylist reads the denylist at path.
func OpenDenylist(path string) (Denylist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening denylist: %w", dicterr.ErrIO, err)
	}
	defer f.Close()

	return LoadDenylist(f)
}

// Contains returns true if the word is denylisted.
func (d Denylist) Contains(word string) bool {
	_, ok := d[word]
	return ok
}
