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
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mindtoon/mindtoon/pkg/cli/client"
	"github.com/mindtoon/mindtoon/pkg/cli/context"
	"github.com/mindtoon/mindtoon/pkg/cli/infra"
	"github.com/mindtoon/mindtoon/pkg/cli/log"
	"github.com/mindtoon/mindtoon/pkg/cli/output"
)

var editNameFlag string
var editDescriptionFlag string
var editPublicFlag bool
var editTagsFlag []string

func newEditCmd(ctx context.MindtoonCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <collection id>",
		Short: "Edit a collection",
		RunE:  newEditRun(ctx),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("Incorrect number of arguments")
			}

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&editNameFlag, "name", "n", "", "the new collection name")
	f.StringVarP(&editDescriptionFlag, "description", "d", "", "the new collection description")
	f.BoolVarP(&editPublicFlag, "public", "", false, "make the collection public")
	f.StringSliceVarP(&editTagsFlag, "tag", "", nil, "replace the collection tags (repeatable)")

	return cmd
}

func newEditRun(ctx context.MindtoonCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		collectionID, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.Wrap(err, "invalid collection id")
		}

		var payload client.UpdateCollectionPayload
		if editNameFlag != "" {
			payload.Name = &editNameFlag
		}
		if editDescriptionFlag != "" {
			payload.Description = &editDescriptionFlag
		}
		if cmd.Flags().Changed("public") {
			payload.IsPublic = &editPublicFlag
		}
		if cmd.Flags().Changed("tag") {
			payload.Tags = editTagsFlag
		}

		if payload.Name == nil && payload.Description == nil && payload.IsPublic == nil && payload.Tags == nil {
			return errors.New("nothing to update")
		}

		collection, err := client.UpdateCollection(ctx, collectionID, payload)
		if err != nil {
			return errors.Wrap(err, "updating collection")
		}

		log.Success("collection updated\n")
		output.CollectionInfo(collection)

		return nil
	}
}
