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

// Package cbpack implements reading and writing cBpack word frequency
// containers.
//
// A cBpack container is a gzip compressed msgpack array:
//  1. The first element is a map holding the metadata fields "format", which
//     must be "cB", and "version", which must be 1.
//  2. Every following element is an array of words that share one frequency
//     rank. Arrays are ordered from the most frequent to the least frequent.
//
// Containers may also be compressed with the dictzip format, which is gzip
// compatible and allows random access.
package cbpack
