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

package collection

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mindtoon/mindtoon/pkg/cli/client"
	"github.com/mindtoon/mindtoon/pkg/cli/context"
	"github.com/mindtoon/mindtoon/pkg/cli/infra"
	"github.com/mindtoon/mindtoon/pkg/cli/output"
)

var lsWorldFlag string

func newLsCmd(ctx context.MindtoonCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List collections in a world",
		RunE:  newLsRun(ctx),
	}

	f := cmd.Flags()
	f.StringVarP(&lsWorldFlag, "world", "w", "", "the world to list collections in (defaults to value in config)")

	return cmd
}

func newLsRun(ctx context.MindtoonCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		world, err := resolveWorld(ctx, lsWorldFlag)
		if err != nil {
			return errors.Wrap(err, "resolving world")
		}

		collections, err := client.GetWorldCollections(ctx, world)
		if err != nil {
			return errors.Wrap(err, "loading collections")
		}

		output.CollectionList(collections)

		return nil
	}
}
