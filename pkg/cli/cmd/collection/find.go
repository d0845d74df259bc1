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
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mindtoon/mindtoon/pkg/cli/client"
	"github.com/mindtoon/mindtoon/pkg/cli/context"
	"github.com/mindtoon/mindtoon/pkg/cli/infra"
	"github.com/mindtoon/mindtoon/pkg/cli/output"
	"github.com/mindtoon/mindtoon/pkg/cli/worlds"
)

var findWorldFlag string
var findTagsFlag []string
var findPublicFlag bool
var findPageFlag int

func newFindCmd(ctx context.MindtoonCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "find <search term?>",
		Aliases: []string{"f"},
		Short:   "Search collections",
		RunE:    newFindRun(ctx),
	}

	f := cmd.Flags()
	f.StringVarP(&findWorldFlag, "world", "w", "", "limit the search to a world")
	f.StringSliceVarP(&findTagsFlag, "tag", "", nil, "filter by tag (repeatable)")
	f.BoolVarP(&findPublicFlag, "public", "", false, "public collections only")
	f.IntVarP(&findPageFlag, "page", "p", 1, "the page to list")

	return cmd
}

func newFindRun(ctx context.MindtoonCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		payload := client.SearchCollectionsPayload{
			Tags:   findTagsFlag,
			SortBy: "newest",
			Page:   findPageFlag,
			Limit:  20,
		}

		if findWorldFlag != "" {
			world, err := worlds.Parse(findWorldFlag)
			if err != nil {
				return errors.Wrap(err, "resolving world")
			}
			payload.WorldType = &world
		}
		if len(args) > 0 {
			term := strings.Join(args, " ")
			payload.SearchTerm = &term
		}
		if cmd.Flags().Changed("public") {
			payload.IsPublic = &findPublicFlag
		}

		collections, err := client.SearchCollections(ctx, payload)
		if err != nil {
			return errors.Wrap(err, "searching collections")
		}

		output.CollectionList(collections)

		return nil
	}
}
