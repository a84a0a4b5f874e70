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

// Package flict implements encoding flict dictionaries.
//
// A flict dictionary is a stream of self-delimiting commands. The command
// tag is stored in the top bits of the first byte of each command:
//
//	BEGIN_HEADER  110vvvvv  v: format version
//	              followed by the header size (1 byte), the date (8 bytes,
//	              big endian) and the header bytes.
//	BEGIN_NODE    0ooottss  o: n-gram order - 1, t: node type,
//	              s: character size in bytes - 1
//	              followed by the frequency (1 byte) for word and shortcut
//	              nodes, then the character's UTF-8 bytes.
//	END           10cccccc  c: number of open commands closed (1-63)
//
// The header is closed by an END command. Each prefix tree node is written
// as BEGIN_NODE followed by its children and an END. Consecutive END
// commands are merged into one by increasing the count.
package flict

import "fmt"

// Version0 is the only valid format version.
const Version0 = 0

// Command is a command tag.
type Command byte

const (
	// CmdBeginNode begins a prefix tree node.
	CmdBeginNode Command = 0x00

	// CmdEnd closes one or more open commands.
	CmdEnd Command = 0x80

	// CmdBeginHeader begins the dictionary header.
	CmdBeginHeader Command = 0xC0

	// CmdDefineShortcut is reserved for shortcut definitions.
	CmdDefineShortcut Command = 0xE0
)

// Mask returns the bits of a command's first byte that hold its tag.
func (c Command) Mask() byte {
	switch c {
	case CmdBeginNode:
		return 0x80
	case CmdEnd:
		return 0xC0
	case CmdBeginHeader:
		return 0xE0
	case CmdDefineShortcut:
		return 0xF0
	default:
		return 0xFF
	}
}

// Match returns true if b is the first byte of a command of this kind.
func (c Command) Match(b byte) bool {
	return b&c.Mask() == byte(c)
}

// String returns the name of the command.
func (c Command) String() string {
	switch c {
	case CmdBeginNode:
		return "BEGIN_NODE"
	case CmdEnd:
		return "END"
	case CmdBeginHeader:
		return "BEGIN_HEADER"
	case CmdDefineShortcut:
		return "DEFINE_SHORTCUT"
	default:
		return fmt.Sprintf("Command(0x%02x)", byte(c))
	}
}

// Field masks and limits.
const (
	headerVersionMask = 0x1F

	nodeOrderShift = 4
	nodeOrderMask  = 0x70
	nodeTypeShift  = 2
	nodeTypeMask   = 0x0C
	nodeSizeMask   = 0x03

	endCountMask = 0x3F

	// MaxHeaderSize is the maximum header size in bytes.
	MaxHeaderSize = 0xFF

	// MaxOrder is the maximum n-gram order of a node.
	MaxOrder = 8

	// MaxCharSize is the maximum size of a node's character in bytes.
	MaxCharSize = 4

	// MaxFreq is the maximum node frequency.
	MaxFreq = 0xFF

	// MinEndCount is the minimum count of an END command.
	MinEndCount = 0x01

	// MaxEndCount is the maximum count of an END command.
	MaxEndCount = 0x3F
)
