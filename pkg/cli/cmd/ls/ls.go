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

package ls

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mindtoon/mindtoon/pkg/cli/cache"
	"github.com/mindtoon/mindtoon/pkg/cli/context"
	"github.com/mindtoon/mindtoon/pkg/cli/infra"
	"github.com/mindtoon/mindtoon/pkg/cli/output"
	"github.com/mindtoon/mindtoon/pkg/cli/session"
	"github.com/mindtoon/mindtoon/pkg/cli/worlds"
	"github.com/mindtoon/mindtoon/pkg/cli/worldstate"
)

var example = `
 * List comics in the default world
 mindtoon ls

 * List favorites in the dream world
 mindtoon ls dream --favorites

 * Search comics by title
 mindtoon ls --search lighthouse`

var pageFlag int
var favoritesFlag bool
var sortFlag string
var searchFlag string

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return errors.New("Incorrect number of arguments")
	}

	return nil
}

// NewCmd returns a new ls command
func NewCmd(ctx context.MindtoonCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls <world?>",
		Aliases: []string{"l"},
		Short:   "List comics in a world",
		Example: example,
		RunE:    newRun(ctx),
		PreRunE: preRun,
	}

	f := cmd.Flags()
	f.IntVarP(&pageFlag, "page", "p", 1, "the page to list")
	f.BoolVarP(&favoritesFlag, "favorites", "f", false, "list favorites only")
	f.StringVarP(&sortFlag, "sort", "s", "", "the sort order: newest, oldest, title, favorite, popular")
	f.StringVarP(&searchFlag, "search", "", "", "filter comics by a search term")

	return cmd
}

func newRun(ctx context.MindtoonCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		worldArg := ctx.DefaultWorld
		if len(args) == 1 {
			worldArg = args[0]
		}
		world, err := worlds.Parse(worldArg)
		if err != nil {
			return errors.Wrap(err, "resolving world")
		}

		opts := worldstate.LoadOptions{
			FavoritesOnly: favoritesFlag,
		}
		if sortFlag != "" {
			sortBy, err := worlds.ParseSortBy(sortFlag)
			if err != nil {
				return errors.Wrap(err, "resolving sort order")
			}
			opts.SortBy = sortBy
		}
		if searchFlag != "" {
			opts.SearchTerm = &searchFlag
		}

		sessions := session.New(ctx.DB)
		if err := sessions.Restore(); err != nil {
			return errors.Wrap(err, "restoring session")
		}
		store := worldstate.New(cache.New(ctx.Clock), sessions)

		comics, err := store.LoadComics(ctx, world, pageFlag, opts)
		if err != nil {
			return errors.Wrap(err, "loading comics")
		}

		output.ComicList(comics, store.HasMore(world))

		return nil
	}
}
