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
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ianlewis/go-dicttool/dicterr"
)

// Config is a list of dictionary definitions and the options used to build
// them.
//
//	work_dir: .dicttool
//	denylist: .srcin/swearWords.txt
//	jobs: 4
//	dictionaries:
//	  - lang: en
//	    src_type: cBpack
//	    src: .srcin/large_en.msgpack.gz
//	    dst_type: flict
type Config struct {
	WorkDir      string        `yaml:"work_dir"`
	Denylist     string        `yaml:"denylist"`
	Jobs         int           `yaml:"jobs"`
	Dictionaries []*Definition `yaml:"dictionaries"`
}

// LoadConfig reads and validates a YAML config.
func LoadConfig(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Config
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty config", dicterr.ErrValidation)
		}
		var te *yaml.TypeError
		if errors.As(err, &te) {
			return nil, fmt.Errorf("%w: %w", dicterr.ErrValidation, err)
		}
		return nil, fmt.Errorf("%w: parsing config: %w", dicterr.ErrParse, err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// OpenConfig reads and validates the YAML config at path.
func OpenConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dicterr.ErrIO, err)
	}
	defer f.Close()

	c, err := LoadConfig(f)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return c, nil
}

// Validate returns an error if the config has no dictionaries or any of its
// definitions are invalid.
func (c *Config) Validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf("%w: negative jobs %d", dicterr.ErrValidation, c.Jobs)
	}
	if len(c.Dictionaries) == 0 {
		return fmt.Errorf("%w: no dictionaries", dicterr.ErrValidation)
	}
	for i, d := range c.Dictionaries {
		if d == nil {
			return fmt.Errorf("%w: dictionaries[%d]: empty definition", dicterr.ErrValidation, i)
		}
		if err := d.Validate(); err != nil {
			return fmt.Errorf("dictionaries[%d]: %w", i, err)
		}
	}
	return nil
}
