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

package generate

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mindtoon/mindtoon/pkg/cli/cache"
	"github.com/mindtoon/mindtoon/pkg/cli/client"
	"github.com/mindtoon/mindtoon/pkg/cli/context"
	"github.com/mindtoon/mindtoon/pkg/cli/infra"
	"github.com/mindtoon/mindtoon/pkg/cli/log"
	"github.com/mindtoon/mindtoon/pkg/cli/output"
	"github.com/mindtoon/mindtoon/pkg/cli/session"
	"github.com/mindtoon/mindtoon/pkg/cli/worlds"
	"github.com/mindtoon/mindtoon/pkg/cli/worldstate"
)

var example = `
 * Generate a comic in the default world
 mindtoon generate "a lighthouse keeper who collects storms"

 * Generate a comic with a genre and art style
 mindtoon generate --world dream --genre mystery --art-style noir "a city that only exists at night"

 * List the genres and art styles the generator supports
 mindtoon generate --list-options`

var worldFlag string
var titleFlag string
var genreFlag string
var artStyleFlag string
var scenarioFlag bool
var listOptionsFlag bool

func preRun(cmd *cobra.Command, args []string) error {
	if listOptionsFlag {
		return nil
	}
	if len(args) == 0 {
		return errors.New("missing the comic concept")
	}

	return nil
}

// NewCmd returns a new generate command
func NewCmd(ctx context.MindtoonCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate <concept>",
		Aliases: []string{"g"},
		Short:   "Generate a comic and save it to a world",
		Example: example,
		RunE:    newRun(ctx),
		PreRunE: preRun,
	}

	f := cmd.Flags()
	f.StringVarP(&worldFlag, "world", "w", "", "the world to save the comic to (defaults to value in config)")
	f.StringVarP(&titleFlag, "title", "t", "", "the comic title (defaults to the concept)")
	f.StringVarP(&genreFlag, "genre", "g", "adventure", "the comic genre")
	f.StringVarP(&artStyleFlag, "art-style", "a", "comic book", "the comic art style")
	f.BoolVarP(&scenarioFlag, "scenario", "", false, "also generate a detailed scenario")
	f.BoolVarP(&listOptionsFlag, "list-options", "", false, "list supported genres and art styles and exit")

	return cmd
}

func listOptions(ctx context.MindtoonCtx) error {
	genres, err := client.GetGenres(ctx)
	if err != nil {
		return errors.Wrap(err, "fetching genres")
	}
	artStyles, err := client.GetArtStyles(ctx)
	if err != nil {
		return errors.Wrap(err, "fetching art styles")
	}

	log.Plainf("genres: %s\n", strings.Join(genres.Genres, ", "))
	log.Plainf("art styles: %s\n", strings.Join(artStyles.ArtStyles, ", "))

	return nil
}

func newRun(ctx context.MindtoonCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if listOptionsFlag {
			return listOptions(ctx)
		}

		worldArg := worldFlag
		if worldArg == "" {
			worldArg = ctx.DefaultWorld
		}
		world, err := worlds.Parse(worldArg)
		if err != nil {
			return errors.Wrap(err, "resolving world")
		}

		concept := strings.Join(args, " ")
		title := titleFlag
		if title == "" {
			title = concept
		}

		sessions := session.New(ctx.DB)
		if err := sessions.Restore(); err != nil {
			return errors.Wrap(err, "restoring session")
		}
		store := worldstate.New(cache.New(ctx.Clock), sessions)

		log.Infof("generating a comic in %s. this can take a few minutes.\n", world.DisplayName())

		comic, err := store.CreateComic(ctx, client.SaveComicPayload{
			Title:                   title,
			Concept:                 concept,
			Genre:                   genreFlag,
			ArtStyle:                artStyleFlag,
			WorldType:               world,
			IncludeDetailedScenario: scenarioFlag,
		})
		if err != nil {
			return errors.Wrap(err, "generating comic")
		}

		log.Success("comic saved\n")
		output.ComicInfo(comic)

		return nil
	}
}
