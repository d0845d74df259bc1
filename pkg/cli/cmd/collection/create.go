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
	"github.com/mindtoon/mindtoon/pkg/cli/log"
	"github.com/mindtoon/mindtoon/pkg/cli/output"
)

var createWorldFlag string
var createDescriptionFlag string
var createPublicFlag bool
var createTagsFlag []string

func newCreateCmd(ctx context.MindtoonCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a collection",
		RunE:  newCreateRun(ctx),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("Incorrect number of arguments")
			}

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&createWorldFlag, "world", "w", "", "the world the collection belongs to (defaults to value in config)")
	f.StringVarP(&createDescriptionFlag, "description", "d", "", "the collection description")
	f.BoolVarP(&createPublicFlag, "public", "", false, "make the collection public")
	f.StringSliceVarP(&createTagsFlag, "tag", "", nil, "tag the collection (repeatable)")

	return cmd
}

func newCreateRun(ctx context.MindtoonCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		world, err := resolveWorld(ctx, createWorldFlag)
		if err != nil {
			return errors.Wrap(err, "resolving world")
		}

		payload := client.CreateCollectionPayload{
			Name:      args[0],
			WorldType: world,
			IsPublic:  createPublicFlag,
			Tags:      createTagsFlag,
		}
		if createDescriptionFlag != "" {
			payload.Description = &createDescriptionFlag
		}

		collection, err := client.CreateCollection(ctx, payload)
		if err != nil {
			return errors.Wrap(err, "creating collection")
		}

		log.Success("collection created\n")
		output.CollectionInfo(collection)

		return nil
	}
}
