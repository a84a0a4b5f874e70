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

package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ianlewis/go-dictzip"
	"github.com/tinylib/msgp/msgp"

	"github.com/ianlewis/go-dicttool/cbpack"
)

// MakeSourceOptions are options for writing a test cBpack source.
type MakeSourceOptions struct {
	// Ext is an optional file extension for the source file. Defaults to
	// '.msgpack.dz' if DictZip is true. Otherwise '.msgpack.gz'.
	Ext string

	// DictZip indicates that the source should be compressed with DictZip.
	DictZip bool
}

// GetExt returns the file extension for the source file.
func (o *MakeSourceOptions) GetExt() string {
	if o != nil {
		if o.Ext != "" {
			return o.Ext
		}
		if o.DictZip {
			return ".msgpack.dz"
		}
	}
	return ".msgpack.gz"
}

// MakeSource returns a gzip compressed cBpack container.
func MakeSource(t *testing.T, p *cbpack.Pack) []byte {
	t.Helper()

	var b bytes.Buffer
	if err := cbpack.Write(&b, p); err != nil {
		t.Fatal(err)
	}
	return b.Bytes()
}

// MakeTempSource writes a cBpack container to a file under a temporary
// directory and returns its path. The directory is removed when the test
// completes.
func MakeTempSource(t *testing.T, p *cbpack.Pack, opts *MakeSourceOptions) string {
	t.Helper()
	if opts == nil {
		opts = &MakeSourceOptions{}
	}

	path := filepath.Join(t.TempDir(), "source"+opts.GetExt())
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if !opts.DictZip {
		if _, err := f.Write(MakeSource(t, p)); err != nil {
			t.Fatal(err)
		}
		return path
	}

	var raw bytes.Buffer
	if err := msgp.Encode(&raw, p); err != nil {
		t.Fatal(err)
	}

	z, err := dictzip.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := z.Write(raw.Bytes()); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}

	return path
}

// WriteTempFile writes data to name under a temporary directory and returns
// its path.
func WriteTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
