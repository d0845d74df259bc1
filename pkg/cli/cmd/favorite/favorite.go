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

package favorite

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mindtoon/mindtoon/pkg/cli/cache"
	"github.com/mindtoon/mindtoon/pkg/cli/context"
	"github.com/mindtoon/mindtoon/pkg/cli/infra"
	"github.com/mindtoon/mindtoon/pkg/cli/log"
	"github.com/mindtoon/mindtoon/pkg/cli/session"
	"github.com/mindtoon/mindtoon/pkg/cli/worlds"
	"github.com/mindtoon/mindtoon/pkg/cli/worldstate"
)

var example = `
 * Toggle the favorite flag of the comic with id 42
 mindtoon favorite 42`

var worldFlag string

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of arguments")
	}

	return nil
}

// NewCmd returns a new favorite command
func NewCmd(ctx context.MindtoonCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorite <comic id>",
		Aliases: []string{"fav"},
		Short:   "Toggle a comic's favorite flag",
		Example: example,
		RunE:    newRun(ctx),
		PreRunE: preRun,
	}

	f := cmd.Flags()
	f.StringVarP(&worldFlag, "world", "w", "", "the world the comic lives in (defaults to value in config)")

	return cmd
}

func newRun(ctx context.MindtoonCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		comicID, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.Wrap(err, "invalid comic id")
		}

		worldArg := worldFlag
		if worldArg == "" {
			worldArg = ctx.DefaultWorld
		}
		world, err := worlds.Parse(worldArg)
		if err != nil {
			return errors.Wrap(err, "resolving world")
		}

		sessions := session.New(ctx.DB)
		if err := sessions.Restore(); err != nil {
			return errors.Wrap(err, "restoring session")
		}
		store := worldstate.New(cache.New(ctx.Clock), sessions)

		updated, err := store.ToggleFavorite(ctx, world, comicID)
		if err != nil {
			return errors.Wrap(err, "toggling favorite")
		}

		if updated.IsFavorite {
			log.Successf("marked \"%s\" as favorite\n", updated.Title)
		} else {
			log.Successf("unmarked \"%s\" as favorite\n", updated.Title)
		}

		return nil
	}
}
