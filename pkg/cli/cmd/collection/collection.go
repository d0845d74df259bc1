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

// Package collection implements the collection command and its subcommands
package collection

import (
	"github.com/spf13/cobra"

	"github.com/mindtoon/mindtoon/pkg/cli/context"
	"github.com/mindtoon/mindtoon/pkg/cli/worlds"
)

var example = `
 * List collections in the default world
 mindtoon collection ls

 * Create a collection
 mindtoon collection create "Night Stories" --world dream

 * Add a comic to a collection
 mindtoon collection add 3 42`

// NewCmd returns a new collection command
func NewCmd(ctx context.MindtoonCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collection",
		Aliases: []string{"col"},
		Short:   "Manage comic collections",
		Example: example,
	}

	cmd.AddCommand(newLsCmd(ctx))
	cmd.AddCommand(newCreateCmd(ctx))
	cmd.AddCommand(newAddCmd(ctx))
	cmd.AddCommand(newDropCmd(ctx))
	cmd.AddCommand(newEditCmd(ctx))
	cmd.AddCommand(newRemoveCmd(ctx))
	cmd.AddCommand(newFindCmd(ctx))

	return cmd
}

func resolveWorld(ctx context.MindtoonCtx, flagValue string) (worlds.Type, error) {
	worldArg := flagValue
	if worldArg == "" {
		worldArg = ctx.DefaultWorld
	}

	return worlds.Parse(worldArg)
}
