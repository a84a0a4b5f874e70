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
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/ianlewis/go-dicttool"
)

// newAOSPDictMaker returns a DictMaker that runs the AOSP dicttool jar with
// the java program.
func newAOSPDictMaker(java, jar string, l *zap.Logger) dicttool.DictMaker {
	return func(clbPath, dstPath string) error {
		args := []string{"-jar", jar, "makedict", "-s", clbPath, "-d", dstPath}
		l.Debug("running AOSP dicttool", zap.String("java", java), zap.Strings("args", args))

		//nolint:gosec // the program and jar are set by the user.
		out, err := exec.Command(java, args...).CombinedOutput()
		if s := strings.TrimSpace(string(out)); s != "" {
			l.Debug("AOSP dicttool output", zap.String("output", s))
		}
		if err != nil {
			return fmt.Errorf("running %s %s: %w", java, strings.Join(args, " "), err)
		}
		return nil
	}
}
