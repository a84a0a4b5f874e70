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
	"os"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-dicttool"
)

func makeAllCommand() *cli.Command {
	return &cli.Command{
		Name:      "makeall",
		Usage:     "build all dictionaries in a config file",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read dictionary definitions from `FILE`",
				Aliases: []string{"c"},
				EnvVars: []string{"DICTTOOL_CONFIG"},
			},
			&cli.IntFlag{
				Name:    "jobs",
				Usage:   "build up to `N` dictionaries at once",
				Aliases: []string{"j"},
			},
		},
		Action: func(c *cli.Context) error {
			path := c.String("config")
			if path == "" {
				path = findConfig()
			}
			if path == "" {
				return fmt.Errorf("%w: makeall: no config file found", ErrFlagParse)
			}

			config, err := dicttool.OpenConfig(path)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrFlagParse, err)
			}

			opts := options(c)
			// Flags take precedence over the config file.
			if !c.IsSet("work-dir") && config.WorkDir != "" {
				opts.WorkDir = config.WorkDir
			}
			if !c.IsSet("denylist") && config.Denylist != "" {
				opts.Denylist = config.Denylist
			}
			opts.Jobs = config.Jobs
			if c.IsSet("jobs") {
				opts.Jobs = c.Int("jobs")
			}

			results, errs := dicttool.MakeAll(config.Dictionaries, opts)
			printSummary(c, config.Dictionaries, results, opts.WorkDir)

			if len(errs) > 0 {
				return fmt.Errorf("%w: %d of %d dictionaries failed", ErrBuild, len(errs), len(config.Dictionaries))
			}
			return nil
		},
	}
}

// findConfig returns the first config file found in the default locations.
func findConfig() string {
	for _, path := range configLocations() {
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			return path
		}
	}
	return ""
}

// printSummary prints a table with the outcome of each build. Definitions
// without a result failed to build.
func printSummary(c *cli.Context, defs []*dicttool.Definition, results []*dicttool.Result, workDir string) {
	byDef := map[*dicttool.Definition]*dicttool.Result{}
	for _, r := range results {
		byDef[r.Definition] = r
	}

	tbl := table.New("Lang", "Target", "Status", "Entries", "Bytes").WithWriter(c.App.Writer)
	for _, d := range defs {
		if r, ok := byDef[d]; ok {
			tbl.AddRow(d.Lang, r.Path, "ok", r.Entries, r.Size)
			continue
		}
		tbl.AddRow(d.Lang, dicttool.DstPath(workDir, d.Lang, d.DstType), "failed", "-", "-")
	}
	tbl.Print()
}
