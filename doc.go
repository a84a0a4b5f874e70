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

// Package dicttool builds flict dictionaries from ranked word frequency
// lists.
//
// A build runs in two stages:
//  1. Normalize reads a cBpack source (a gzip or dictzip compressed msgpack
//     list of frequency tiers) and produces a combined list. The combined
//     list is a text file with a header line followed by one scored entry
//     per line.
//  2. Compile parses a combined list, builds a prefix tree of its n-grams
//     and encodes the tree as a flict dictionary.
//
// Make runs both stages for a single dictionary definition and writes the
// artifacts to a work directory. MakeAll builds a batch of definitions.
package dicttool
