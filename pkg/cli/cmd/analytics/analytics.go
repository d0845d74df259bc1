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

package analytics

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
 * Show analytics for the default world
 mindtoon analytics

 * Show analytics for the dream world
 mindtoon analytics dream`

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return errors.New("Incorrect number of arguments")
	}

	return nil
}

// NewCmd returns a new analytics command
func NewCmd(ctx context.MindtoonCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "analytics <world?>",
		Short:   "Show creation trends and popular themes for a world",
		Example: example,
		RunE:    newRun(ctx),
		PreRunE: preRun,
	}

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

		sessions := session.New(ctx.DB)
		if err := sessions.Restore(); err != nil {
			return errors.Wrap(err, "restoring session")
		}
		store := worldstate.New(cache.New(ctx.Clock), sessions)

		analytics, err := store.LoadAnalytics(ctx, world)
		if err != nil {
			return errors.Wrap(err, "loading analytics")
		}

		output.AnalyticsInfo(analytics)

		return nil
	}
}
