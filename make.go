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

package dicttool

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ianlewis/go-dicttool/dicterr"
)

// Source and destination types.
const (
	// SrcCBPack is a gzip or dictzip compressed cBpack word list.
	SrcCBPack = "cBpack"

	// DstFlict is a flict dictionary.
	DstFlict = "flict"

	// DstDict is a dictionary built by an external dictionary maker.
	DstDict = "dict"
)

// DefaultWorkDir is the default directory for build artifacts.
const DefaultWorkDir = ".dicttool"

// DictMaker builds the dictionary at dstPath from the combined list at
// clbPath.
type DictMaker func(clbPath, dstPath string) error

// Options are options for building dictionaries.
type Options struct {
	// WorkDir is the directory artifacts are written to. Defaults to
	// DefaultWorkDir.
	WorkDir string

	// Denylist is the path to a denylist file. Empty means no denylist.
	Denylist string

	// Jobs is the maximum number of dictionaries MakeAll builds at once.
	// Values less than one mean one.
	Jobs int

	// DictMaker builds dictionaries with the DstDict destination type.
	DictMaker DictMaker

	// Logger receives build progress. Defaults to a no-op logger.
	Logger *zap.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

func (o *Options) getWorkDir() string {
	if o == nil || o.WorkDir == "" {
		return DefaultWorkDir
	}
	return o.WorkDir
}

func (o *Options) getDenylist() string {
	if o == nil {
		return ""
	}
	return o.Denylist
}

func (o *Options) getJobs() int {
	if o == nil || o.Jobs < 1 {
		return 1
	}
	return o.Jobs
}

func (o *Options) getDictMaker() DictMaker {
	if o == nil {
		return nil
	}
	return o.DictMaker
}

func (o *Options) getLogger() *zap.Logger {
	if o == nil || o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o *Options) getNow() time.Time {
	if o == nil || o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// Definition describes a dictionary to build.
type Definition struct {
	// Lang is the language code.
	Lang string `yaml:"lang"`

	// SrcType is the source type. Only SrcCBPack is supported.
	SrcType string `yaml:"src_type"`

	// Src is the path to the source.
	Src string `yaml:"src"`

	// DstType is the destination type, DstFlict or DstDict.
	DstType string `yaml:"dst_type"`
}

// Validate returns an error if the definition is incomplete or uses an
// unsupported source or destination type.
func (d *Definition) Validate() error {
	switch {
	case d.Lang == "":
		return fmt.Errorf("%w: missing lang", dicterr.ErrValidation)
	case strings.ContainsAny(d.Lang, `/\`) || strings.Contains(d.Lang, ".."):
		// lang is used in artifact file names.
		return fmt.Errorf("%w: invalid lang %q", dicterr.ErrValidation, d.Lang)
	case d.Src == "":
		return fmt.Errorf("%w: %s: missing src", dicterr.ErrValidation, d.Lang)
	case d.SrcType != SrcCBPack:
		return fmt.Errorf("%w: %s: unsupported src_type %q", dicterr.ErrValidation, d.Lang, d.SrcType)
	case d.DstType != DstFlict && d.DstType != DstDict:
		return fmt.Errorf("%w: %s: unsupported dst_type %q", dicterr.ErrValidation, d.Lang, d.DstType)
	}
	return nil
}

// Result is the result of a dictionary build.
type Result struct {
	// Definition is the definition that was built.
	Definition *Definition

	// CombinedPath is the path of the combined list.
	CombinedPath string

	// Path is the path of the built dictionary.
	Path string

	// Entries is the number of entries in the combined list.
	Entries int

	// Size is the size of the built dictionary in bytes.
	Size int64
}

// BuildError is an error building a dictionary.
type BuildError struct {
	Definition *Definition
	Err        error
}

// Error implements error.
func (e *BuildError) Error() string {
	return fmt.Sprintf("%s: %v", e.Definition.Lang, e.Err)
}

// Unwrap returns the underlying error.
func (e *BuildError) Unwrap() error {
	return e.Err
}

// CombinedPath returns the path of the combined list for lang.
func CombinedPath(workDir, lang string) string {
	return filepath.Join(workDir, "combined-list-"+lang+".txt")
}

// DstPath returns the path of the dictionary of type dstType for lang.
func DstPath(workDir, lang, dstType string) string {
	if dstType == DstDict {
		return filepath.Join(workDir, "main_"+lang+".dict")
	}
	return filepath.Join(workDir, lang+".flict")
}

// Make builds the dictionary described by def. The combined list and the
// dictionary are written to the work directory. Artifacts are written
// atomically so a failed build does not leave a partial file behind.
func Make(def *Definition, opts *Options) (*Result, error) {
	l := opts.getLogger().With(zap.String("lang", def.Lang))

	r, err := mk(def, opts, l)
	if err != nil {
		l.Error("build failed", zap.Error(err))
		return nil, &BuildError{
			Definition: def,
			Err:        err,
		}
	}
	l.Info("build finished",
		zap.String("path", r.Path),
		zap.Int("entries", r.Entries),
		zap.Int64("bytes", r.Size),
	)
	return r, nil
}

func mk(def *Definition, opts *Options, l *zap.Logger) (*Result, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	dictMaker := opts.getDictMaker()
	if def.DstType == DstDict && dictMaker == nil {
		return nil, fmt.Errorf("%w: no dictionary maker for dst_type %q", dicterr.ErrValidation, def.DstType)
	}

	l.Info("building dictionary",
		zap.String("src_type", def.SrcType),
		zap.String("src", def.Src),
		zap.String("dst_type", def.DstType),
	)

	workDir := opts.getWorkDir()
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", dicterr.ErrIO, err)
	}

	r := &Result{
		Definition:   def,
		CombinedPath: CombinedPath(workDir, def.Lang),
		Path:         DstPath(workDir, def.Lang, def.DstType),
	}

	combined, n, err := normalize(def.Src, opts.getDenylist(), def.Lang, opts.getNow())
	if err != nil {
		return nil, err
	}
	if err := writeFile(r.CombinedPath, combined); err != nil {
		return nil, err
	}
	r.Entries = n
	l.Debug("wrote combined list", zap.String("path", r.CombinedPath), zap.Int("entries", n))

	switch def.DstType {
	case DstFlict:
		b, root, err := compile(combined)
		if err != nil {
			return nil, err
		}
		nodes, words := root.Stats()
		l.Debug("compiled prefix tree", zap.Int("nodes", nodes), zap.Int("words", words))
		if err := writeFile(r.Path, b); err != nil {
			return nil, err
		}
		r.Size = int64(len(b))
	case DstDict:
		if err := dictMaker(r.CombinedPath, r.Path); err != nil {
			return nil, fmt.Errorf("making %q: %w", r.Path, err)
		}
		fi, err := os.Stat(r.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", dicterr.ErrIO, err)
		}
		r.Size = fi.Size()
	}

	return r, nil
}

// MakeAll builds all of the given dictionaries. A failed build does not stop
// the others. This function returns the results of the successful builds
// and the errors of the failed builds, both in definition order. Errors are
// of type *BuildError.
func MakeAll(defs []*Definition, opts *Options) ([]*Result, []error) {
	results := make([]*Result, len(defs))
	errs := make([]error, len(defs))

	sem := make(chan struct{}, opts.getJobs())
	var wg sync.WaitGroup
	for i, def := range defs {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer func() {
				<-sem
				wg.Done()
			}()
			results[i], errs[i] = Make(def, opts)
		}()
	}
	wg.Wait()

	var rs []*Result
	var es []error
	for i := range defs {
		if errs[i] != nil {
			es = append(es, errs[i])
			continue
		}
		rs = append(rs, results[i])
	}
	return rs, es
}

// Clean removes the work directory and everything in it.
func Clean(opts *Options) error {
	if err := os.RemoveAll(opts.getWorkDir()); err != nil {
		return fmt.Errorf("%w: %w", dicterr.ErrIO, err)
	}
	return nil
}

// writeFile writes data to a temporary file in the same directory as path
// and renames it to path.
func writeFile(path string, data []byte) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", dicterr.ErrIO, err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, os.Remove(f.Name()))
		}
	}()

	if _, err = f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("%w: writing %q: %w", dicterr.ErrIO, path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("%w: writing %q: %w", dicterr.ErrIO, path, err)
	}
	if err = os.Chmod(f.Name(), 0o644); err != nil {
		return fmt.Errorf("%w: %w", dicterr.ErrIO, err)
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", dicterr.ErrIO, err)
	}
	return nil
}
