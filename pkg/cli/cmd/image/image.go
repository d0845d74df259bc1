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

package image

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mindtoon/mindtoon/pkg/cli/client"
	"github.com/mindtoon/mindtoon/pkg/cli/context"
	"github.com/mindtoon/mindtoon/pkg/cli/infra"
	"github.com/mindtoon/mindtoon/pkg/cli/log"
)

var example = `
 * Generate a single image and write it to a file
 mindtoon image -o harbor.png "a flooded harbor town at dawn"`

var outputFlag string

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.New("missing the image prompt")
	}

	return nil
}

// NewCmd returns a new image command
func NewCmd(ctx context.MindtoonCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "image <prompt>",
		Short:   "Generate a single image",
		Example: example,
		RunE:    newRun(ctx),
		PreRunE: preRun,
	}

	f := cmd.Flags()
	f.StringVarP(&outputFlag, "out", "o", "mindtoon.png", "the file to write the image to")

	return cmd
}

func newRun(ctx context.MindtoonCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		prompt := strings.Join(args, " ")

		log.Info("generating an image. this can take a few minutes.\n")

		body, err := client.GenerateImage(ctx, prompt)
		if err != nil {
			return errors.Wrap(err, "generating image")
		}

		if err := os.WriteFile(outputFlag, body, 0644); err != nil {
			return errors.Wrap(err, "writing image file")
		}

		log.Successf("wrote %s\n", outputFlag)

		return nil
	}
}
