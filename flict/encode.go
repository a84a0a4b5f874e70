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
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/ianlewis/go-dicttool/dicterr"
	"github.com/ianlewis/go-dicttool/ptree"
)

// Options are options for encoding a dictionary.
type Options struct {
	// Version is the format version. Only Version0 is valid.
	Version int

	// Date is the dictionary timestamp written to the header.
	Date int64
}

// DefaultOptions is the default options for Encode.
var DefaultOptions = &Options{
	Version: Version0,
}

type encoder struct {
	buf []byte

	// lastEnd is the offset of the last END command if it is the last
	// command written. Otherwise it is -1.
	lastEnd int
}

// Encode encodes the prefix tree as a flict dictionary. The tree is not
// modified. Nodes are written in the order of their children.
func Encode(root *ptree.Root, opts *Options) ([]byte, error) {
	if opts == nil {
		opts = DefaultOptions
	}

	e := &encoder{
		lastEnd: -1,
	}
	if err := e.header(root.Header, opts); err != nil {
		return nil, err
	}
	for _, n := range root.Children() {
		if err := e.node(n); err != nil {
			return nil, err
		}
	}
	return e.buf, nil
}

func (e *encoder) header(header string, opts *Options) error {
	if opts.Version != Version0 {
		return fmt.Errorf("%w: unsupported version %d", dicterr.ErrValidation, opts.Version)
	}
	if len(header) > MaxHeaderSize {
		return fmt.Errorf("%w: header size %d > %d", dicterr.ErrRange, len(header), MaxHeaderSize)
	}
	if opts.Date < 0 {
		return fmt.Errorf("%w: negative date %d", dicterr.ErrRange, opts.Date)
	}

	//nolint:gosec // version and size are checked above.
	e.buf = append(e.buf,
		byte(CmdBeginHeader)|(byte(opts.Version)&headerVersionMask),
		byte(len(header)),
	)
	//nolint:gosec // date is not negative.
	e.buf = binary.BigEndian.AppendUint64(e.buf, uint64(opts.Date))
	e.buf = append(e.buf, header...)

	// The header's END is never merged.
	e.buf = append(e.buf, byte(CmdEnd)|MinEndCount)
	e.lastEnd = -1
	return nil
}

func (e *encoder) node(n *ptree.Node) error {
	var char [utf8.UTFMax]byte
	size := utf8.EncodeRune(char[:], n.Char)

	switch {
	case size > MaxCharSize:
		return fmt.Errorf("%w: character %q is %d bytes", dicterr.ErrRange, n.Char, size)
	case n.Order < 1 || n.Order > MaxOrder:
		return fmt.Errorf("%w: node %q order %d not in [1, %d]", dicterr.ErrRange, n.Char, n.Order, MaxOrder)
	case n.Type > ptree.ShortcutType:
		return fmt.Errorf("%w: node %q type %v", dicterr.ErrRange, n.Char, n.Type)
	case n.Type.HasFreq() && (n.Freq < 0 || n.Freq > MaxFreq):
		return fmt.Errorf("%w: node %q frequency %d not in [0, %d]", dicterr.ErrRange, n.Char, n.Freq, MaxFreq)
	}

	//nolint:gosec // fields are range checked above.
	e.buf = append(e.buf, byte(CmdBeginNode)|
		(byte(n.Order-1)<<nodeOrderShift)&nodeOrderMask|
		(byte(n.Type)<<nodeTypeShift)&nodeTypeMask|
		byte(size-1)&nodeSizeMask)
	if n.Type.HasFreq() {
		//nolint:gosec // frequency is range checked above.
		e.buf = append(e.buf, byte(n.Freq))
	}
	e.buf = append(e.buf, char[:size]...)
	e.lastEnd = -1

	for _, c := range n.Children() {
		if err := e.node(c); err != nil {
			return err
		}
	}

	e.end()
	return nil
}

// end closes the current node. If the last command written was an END with
// room left in its count, the count is increased instead of writing a new
// END.
func (e *encoder) end() {
	if e.lastEnd >= 0 {
		count := e.buf[e.lastEnd] & endCountMask
		if count < MaxEndCount {
			e.buf[e.lastEnd] = byte(CmdEnd) | (count + 1)
			return
		}
	}
	e.lastEnd = len(e.buf)
	e.buf = append(e.buf, byte(CmdEnd)|MinEndCount)
}
