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

package main

import (
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mindtoon/mindtoon/pkg/cli/client"
	"github.com/mindtoon/mindtoon/pkg/cli/infra"
	"github.com/mindtoon/mindtoon/pkg/cli/log"
	"github.com/pkg/errors"

	// commands
	"github.com/mindtoon/mindtoon/pkg/cli/cmd/analytics"
	"github.com/mindtoon/mindtoon/pkg/cli/cmd/collection"
	"github.com/mindtoon/mindtoon/pkg/cli/cmd/deleteaccount"
	"github.com/mindtoon/mindtoon/pkg/cli/cmd/favorite"
	"github.com/mindtoon/mindtoon/pkg/cli/cmd/generate"
	"github.com/mindtoon/mindtoon/pkg/cli/cmd/health"
	"github.com/mindtoon/mindtoon/pkg/cli/cmd/image"
	"github.com/mindtoon/mindtoon/pkg/cli/cmd/login"
	"github.com/mindtoon/mindtoon/pkg/cli/cmd/logout"
	"github.com/mindtoon/mindtoon/pkg/cli/cmd/ls"
	"github.com/mindtoon/mindtoon/pkg/cli/cmd/publish"
	"github.com/mindtoon/mindtoon/pkg/cli/cmd/register"
	"github.com/mindtoon/mindtoon/pkg/cli/cmd/remove"
	"github.com/mindtoon/mindtoon/pkg/cli/cmd/rename"
	"github.com/mindtoon/mindtoon/pkg/cli/cmd/root"
	"github.com/mindtoon/mindtoon/pkg/cli/cmd/scenario"
	"github.com/mindtoon/mindtoon/pkg/cli/cmd/stats"
	"github.com/mindtoon/mindtoon/pkg/cli/cmd/version"
	"github.com/mindtoon/mindtoon/pkg/cli/cmd/whoami"
)

// apiEndpoint and versionTag are populated during link time
var apiEndpoint string
var versionTag = "master"

// parseDBPath extracts --dbPath flag value from command line arguments
// regardless of where it appears (before or after subcommand).
// Returns empty string if not found.
func parseDBPath(args []string) string {
	for i, arg := range args {
		// Handle --dbPath=value
		if strings.HasPrefix(arg, "--dbPath=") {
			return strings.TrimPrefix(arg, "--dbPath=")
		}
		// Handle --dbPath value
		if arg == "--dbPath" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func main() {
	// Parse flags early to get --dbPath before initializing database
	// We need to manually parse --dbPath because it can appear after the
	// subcommand and root.ParseFlags only parses flags before the subcommand.
	dbPath := parseDBPath(os.Args[1:])

	// Initialize context - defaultAPIEndpoint is used when creating new config file
	ctx, err := infra.Init(versionTag, apiEndpoint, dbPath)
	if err != nil {
		panic(errors.Wrap(err, "initializing context"))
	}
	defer ctx.DB.Close()

	if ctx.EnableHealthCheck {
		if _, err := client.GetHealth(*ctx); err != nil {
			log.Debug("health check failed: %v\n", err)
		}
	}

	root.Register(login.NewCmd(*ctx))
	root.Register(logout.NewCmd(*ctx))
	root.Register(register.NewCmd(*ctx))
	root.Register(whoami.NewCmd(*ctx))
	root.Register(deleteaccount.NewCmd(*ctx))
	root.Register(generate.NewCmd(*ctx))
	root.Register(image.NewCmd(*ctx))
	root.Register(ls.NewCmd(*ctx))
	root.Register(stats.NewCmd(*ctx))
	root.Register(analytics.NewCmd(*ctx))
	root.Register(scenario.NewCmd(*ctx))
	root.Register(favorite.NewCmd(*ctx))
	root.Register(publish.NewCmd(*ctx))
	root.Register(rename.NewCmd(*ctx))
	root.Register(remove.NewCmd(*ctx))
	root.Register(collection.NewCmd(*ctx))
	root.Register(health.NewCmd(*ctx))
	root.Register(version.NewCmd(*ctx))

	if err := root.Execute(); err != nil {
		log.Errorf("%s\n", err.Error())
		os.Exit(1)
	}
}
