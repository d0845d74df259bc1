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

package health

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mindtoon/mindtoon/pkg/cli/client"
	"github.com/mindtoon/mindtoon/pkg/cli/context"
	"github.com/mindtoon/mindtoon/pkg/cli/infra"
	"github.com/mindtoon/mindtoon/pkg/cli/log"
)

var example = `
  mindtoon health`

var verboseFlag bool

// NewCmd returns a new health command
func NewCmd(ctx context.MindtoonCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "health",
		Short:   "Check the health of the server",
		Example: example,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.BoolVarP(&verboseFlag, "verbose", "v", false, "also show the server-advertised configuration")

	return cmd
}

func newRun(ctx context.MindtoonCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		resp, err := client.GetHealth(ctx)
		if err != nil {
			return errors.Wrap(err, "checking server health")
		}

		log.Successf("server is %s\n", resp.Status)
		if resp.Timestamp != "" {
			log.Plainf("server time: %s\n", resp.Timestamp)
		}

		if !verboseFlag {
			return nil
		}

		config, err := client.GetIOSConfig(ctx)
		if err != nil {
			return errors.Wrap(err, "fetching server configuration")
		}

		log.Plainf("server version: %s\n", config.Version)
		if len(config.Features) > 0 {
			log.Plainf("features: %s\n", strings.Join(config.Features, ", "))
		}
		for key, value := range config.Config {
			log.Plainf("%s: %s\n", key, value)
		}

		return nil
	}
}
