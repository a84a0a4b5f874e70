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

package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-dicttool"
)

func makeCommand() *cli.Command {
	return &cli.Command{
		Name:      "make",
		Usage:     "build a single dictionary",
		ArgsUsage: "<lang> <src_type> <src> <dst_type>",
		Description: "Builds the dictionary for lang from the source at src. " +
			"src_type must be " + dicttool.SrcCBPack + ". dst_type is either " +
			dicttool.DstFlict + " or " + dicttool.DstDict + ".",
		Action: func(c *cli.Context) error {
			if c.NArg() != 4 {
				return fmt.Errorf("%w: make: expected 4 arguments, got %d", ErrFlagParse, c.NArg())
			}
			args := c.Args().Slice()

			r, err := dicttool.Make(&dicttool.Definition{
				Lang:    args[0],
				SrcType: args[1],
				Src:     args[2],
				DstType: args[3],
			}, options(c))
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuild, err)
			}

			_, err = fmt.Fprintf(c.App.Writer, "%s: %d entries, %d bytes\n", r.Path, r.Entries, r.Size)
			return err
		},
	}
}
