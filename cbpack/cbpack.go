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

package cbpack

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-dictzip"
	"github.com/tinylib/msgp/msgp"

	"github.com/ianlewis/go-dicttool/dicterr"
)

// maxPrealloc caps slice capacity taken from array lengths in the input.
const maxPrealloc = 1024

const (
	// Format is the expected value of the "format" metadata field.
	Format = "cB"

	// Version is the expected value of the "version" metadata field.
	Version = 1
)

// Pack is a decoded cBpack container.
type Pack struct {
	// Format is the container format tag.
	Format string

	// Version is the container format version.
	Version int64

	// Tiers holds the frequency tiers. Words in the same tier share a rank.
	// Tiers are ordered from the most frequent to the least frequent.
	Tiers [][]string
}

// New returns a Pack with the expected format metadata.
func New(tiers [][]string) *Pack {
	return &Pack{
		Format:  Format,
		Version: Version,
		Tiers:   tiers,
	}
}

// DecodeMsg implements msgp.Decodable. The metadata element is validated
// before any tier is read.
func (p *Pack) DecodeMsg(dc *msgp.Reader) error {
	sz, err := dc.ReadArrayHeader()
	if err != nil {
		return fmt.Errorf("%w: reading container: %w", dicterr.ErrFormatMismatch, err)
	}
	if sz == 0 {
		return fmt.Errorf("%w: missing header", dicterr.ErrFormatMismatch)
	}

	if err := p.decodeHeader(dc); err != nil {
		return err
	}
	if p.Format != Format || p.Version != Version {
		return fmt.Errorf("%w: unexpected header: format=%q version=%d",
			dicterr.ErrFormatMismatch, p.Format, p.Version)
	}

	p.Tiers = make([][]string, 0, min(sz-1, maxPrealloc))
	for i := uint32(1); i < sz; i++ {
		n, err := dc.ReadArrayHeader()
		if err != nil {
			return fmt.Errorf("%w: reading tier %d: %w", dicterr.ErrFormatMismatch, i, err)
		}
		tier := make([]string, 0, min(n, maxPrealloc))
		for ; n > 0; n-- {
			w, err := dc.ReadString()
			if err != nil {
				return fmt.Errorf("%w: reading tier %d: %w", dicterr.ErrFormatMismatch, i, err)
			}
			tier = append(tier, w)
		}
		p.Tiers = append(p.Tiers, tier)
	}

	return nil
}

func (p *Pack) decodeHeader(dc *msgp.Reader) error {
	t, err := dc.NextType()
	if err != nil {
		return fmt.Errorf("%w: reading header: %w", dicterr.ErrFormatMismatch, err)
	}
	if t != msgp.MapType {
		return fmt.Errorf("%w: unexpected header type %v", dicterr.ErrFormatMismatch, t)
	}

	n, err := dc.ReadMapHeader()
	if err != nil {
		return fmt.Errorf("%w: reading header: %w", dicterr.ErrFormatMismatch, err)
	}
	for ; n > 0; n-- {
		key, err := dc.ReadString()
		if err != nil {
			return fmt.Errorf("%w: reading header key: %w", dicterr.ErrFormatMismatch, err)
		}

		switch key {
		case "format":
			v, err := dc.ReadIntf()
			if err != nil {
				return fmt.Errorf("%w: reading format: %w", dicterr.ErrFormatMismatch, err)
			}
			// A non-string format is left empty and fails validation.
			p.Format, _ = v.(string)
		case "version":
			v, err := dc.ReadIntf()
			if err != nil {
				return fmt.Errorf("%w: reading version: %w", dicterr.ErrFormatMismatch, err)
			}
			switch v := v.(type) {
			case int64:
				p.Version = v
			case uint64:
				if v > math.MaxInt64 {
					return fmt.Errorf("%w: version too large: %d", dicterr.ErrFormatMismatch, v)
				}
				p.Version = int64(v)
			default:
				p.Version = -1
			}
		default:
			if err := dc.Skip(); err != nil {
				return fmt.Errorf("%w: reading header field %q: %w", dicterr.ErrFormatMismatch, key, err)
			}
		}
	}

	return nil
}

// EncodeMsg implements msgp.Encodable.
func (p *Pack) EncodeMsg(en *msgp.Writer) error {
	if len(p.Tiers) >= math.MaxUint32 {
		return fmt.Errorf("%w: too many tiers: %d", dicterr.ErrRange, len(p.Tiers))
	}
	//nolint:gosec // length is bounds checked above.
	if err := en.WriteArrayHeader(uint32(len(p.Tiers) + 1)); err != nil {
		return err
	}

	if err := en.WriteMapHeader(2); err != nil {
		return err
	}
	if err := en.WriteString("format"); err != nil {
		return err
	}
	if err := en.WriteString(p.Format); err != nil {
		return err
	}
	if err := en.WriteString("version"); err != nil {
		return err
	}
	if err := en.WriteInt64(p.Version); err != nil {
		return err
	}

	for _, tier := range p.Tiers {
		if len(tier) > math.MaxUint32 {
			return fmt.Errorf("%w: tier too large: %d", dicterr.ErrRange, len(tier))
		}
		//nolint:gosec // length is bounds checked above.
		if err := en.WriteArrayHeader(uint32(len(tier))); err != nil {
			return err
		}
		for _, w := range tier {
			if err := en.WriteString(w); err != nil {
				return err
			}
		}
	}
	return nil
}

// Read reads a gzip compressed container from r.
func Read(r io.Reader) (*Pack, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		if errors.Is(err, gzip.ErrHeader) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: not a gzip stream: %w", dicterr.ErrFormatMismatch, err)
		}
		return nil, fmt.Errorf("%w: %w", dicterr.ErrIO, err)
	}
	defer zr.Close()

	return decode(zr)
}

// Open reads the container at path. Paths with a ".dz" extension are read
// with the dictzip reader.
func Open(path string) (*Pack, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %q: %w", dicterr.ErrIO, path, err)
	}
	defer f.Close()

	var p *Pack
	if strings.ToLower(filepath.Ext(path)) == ".dz" {
		z, err := dictzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %q: %w", dicterr.ErrFormatMismatch, path, err)
		}
		defer z.Close()
		p, err = decode(z)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		return p, nil
	}

	p, err = Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return p, nil
}

// Write writes p to w as a gzip compressed container.
func Write(w io.Writer, p *Pack) error {
	zw := gzip.NewWriter(w)
	if err := msgp.Encode(zw, p); err != nil {
		zw.Close()
		return fmt.Errorf("encoding container: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: %w", dicterr.ErrIO, err)
	}
	return nil
}

func decode(r io.Reader) (*Pack, error) {
	var p Pack
	if err := msgp.Decode(r, &p); err != nil {
		if errors.Is(err, dicterr.ErrDicttool) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", dicterr.ErrFormatMismatch, err)
	}
	return &p, nil
}
