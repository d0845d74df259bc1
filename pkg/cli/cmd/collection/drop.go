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
)

func newDropCmd(ctx context.MindtoonCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drop <collection id> <comic id>",
		Short: "Remove a comic from a collection",
		RunE:  newDropRun(ctx),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("Incorrect number of arguments")
			}

			return nil
		},
	}

	return cmd
}

func newDropRun(ctx context.MindtoonCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		collectionID, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.Wrap(err, "invalid collection id")
		}
		comicID, err := strconv.Atoi(args[1])
		if err != nil {
			return errors.Wrap(err, "invalid comic id")
		}

		if err := client.RemoveComicFromCollection(ctx, collectionID, comicID); err != nil {
			return errors.Wrap(err, "removing comic from collection")
		}

		log.Success("removed comic from collection\n")

		return nil
	}
}
