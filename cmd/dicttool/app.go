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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-dicttool"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeBuildError is the exit code for a failed dictionary build.
	ExitCodeBuildError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrDicttool is a parent error for all command errors.
var ErrDicttool = errors.New("dicttool")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrDicttool)

// ErrBuild indicates a dictionary build failed.
var ErrBuild = fmt.Errorf("%w: build failed", ErrDicttool)

var copyrightNames = []string{
	"2025 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but we provide our own help command.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// exitCode returns the process exit code for an error returned by the app.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.Is(err, ErrFlagParse):
		return ExitCodeFlagParseError
	case errors.Is(err, ErrBuild):
		return ExitCodeBuildError
	default:
		return ExitCodeUnknownError
	}
}

// options returns build options from the global flags.
func options(c *cli.Context) *dicttool.Options {
	l := newLogger(c.App.ErrWriter, c.Bool("verbose"))
	return &dicttool.Options{
		WorkDir:   c.String("work-dir"),
		Denylist:  c.String("denylist"),
		DictMaker: newAOSPDictMaker(c.String("java"), c.String("aosp-jar"), l),
		Logger:    l,
	}
}

func newDicttoolApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Build flict dictionaries from word frequency lists.",
		Description: strings.Join([]string{
			"Dictionary build tool written in Go.",
			"http://github.com/ianlewis/go-dicttool",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "work-dir",
				Usage:   "write build artifacts to `DIR`",
				Aliases: []string{"w"},
				EnvVars: []string{"DICTTOOL_WORK_DIR"},
				Value:   dicttool.DefaultWorkDir,
			},
			&cli.StringFlag{
				Name:    "denylist",
				Usage:   "zero the score of words listed in `FILE`",
				EnvVars: []string{"DICTTOOL_DENYLIST"},
			},
			&cli.StringFlag{
				Name:    "aosp-jar",
				Usage:   "build dict dictionaries with the AOSP dicttool `JAR`",
				EnvVars: []string{"DICTTOOL_AOSP_JAR"},
				Value:   "dicttool_aosp.jar",
			},
			&cli.StringFlag{
				Name:    "java",
				Usage:   "run the AOSP dicttool with `PROGRAM`",
				EnvVars: []string{"DICTTOOL_JAVA"},
				Value:   "java",
			},
			&cli.BoolFlag{
				Name:               "verbose",
				Usage:              "print debug logs",
				Aliases:            []string{"v"},
				DisableDefaultText: true,
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		Writer:          os.Stdout,
		ErrWriter:       os.Stderr,
		HideHelp:        true,
		HideHelpCommand: true,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			makeCommand(),
			makeAllCommand(),
			cleanCommand(),
			helpCommand(),
		},
	}
}

func helpCommand() *cli.Command {
	return &cli.Command{
		Name:      "help",
		Usage:     "print this help text and exit",
		ArgsUsage: " ",
		Action: func(c *cli.Context) error {
			check(cli.ShowAppHelp(c))
			return nil
		},
	}
}
