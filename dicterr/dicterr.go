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

// Package dicterr defines the kinds of errors returned while building a
// dictionary. Every error returned by the dicttool packages wraps one of the
// errors below and can be tested for with [errors.Is].
//
// None of these errors are retried. Each one aborts the build of a single
// dictionary.
package dicterr

import (
	"errors"
	"fmt"
)

// ErrDicttool is a parent error for all dictionary build errors.
var ErrDicttool = errors.New("dicttool")

// ErrFormatMismatch indicates that a source container has an unexpected
// format tag, version or structure.
var ErrFormatMismatch = fmt.Errorf("%w: format mismatch", ErrDicttool)

// ErrValidation indicates a malformed word or a missing required value.
var ErrValidation = fmt.Errorf("%w: validation", ErrDicttool)

// ErrRange indicates a value that does not fit its encodable field width.
var ErrRange = fmt.Errorf("%w: out of range", ErrDicttool)

// ErrParse indicates a combined list line that could not be parsed.
var ErrParse = fmt.Errorf("%w: parse", ErrDicttool)

// ErrIO indicates a file that is missing or could not be read or written.
var ErrIO = fmt.Errorf("%w: i/o", ErrDicttool)
