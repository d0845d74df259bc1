/* Copyright 2025 MindToon Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package context defines mindtoon context
package context

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/mindtoon/mindtoon/pkg/cli/consts"
	"github.com/mindtoon/mindtoon/pkg/cli/database"
	"github.com/mindtoon/mindtoon/pkg/clock"
)

// Paths contain directory definitions
type Paths struct {
	Home   string
	Config string
	Data   string
	Cache  string
}

// MindtoonCtx is a context holding the information of the current runtime
type MindtoonCtx struct {
	Paths             Paths
	APIEndpoint       string
	Version           string
	DB                *database.DB
	SessionToken      string
	DefaultWorld      string
	Clock             clock.Clock
	EnableHealthCheck bool
	// HTTPClient serves quick requests. GenerationHTTPClient carries the
	// long timeout that comic and image generation need.
	HTTPClient           *http.Client
	GenerationHTTPClient *http.Client
}

// Redact replaces private information from the context with a set of
// placeholder values.
func Redact(ctx MindtoonCtx) MindtoonCtx {
	var sessionToken string
	if ctx.SessionToken != "" {
		sessionToken = "1"
	} else {
		sessionToken = "0"
	}
	ctx.SessionToken = sessionToken

	return ctx
}

// InitMindtoonDirs creates the mindtoon directories if missing
func InitMindtoonDirs(paths Paths) error {
	for _, dir := range []string{paths.Config, paths.Data, paths.Cache} {
		p := filepath.Join(dir, consts.MindtoonDirName)
		if err := os.MkdirAll(p, 0755); err != nil {
			return errors.Wrapf(err, "creating %s", p)
		}
	}

	return nil
}
