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

package deleteaccount

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mindtoon/mindtoon/pkg/cli/client"
	"github.com/mindtoon/mindtoon/pkg/cli/context"
	"github.com/mindtoon/mindtoon/pkg/cli/infra"
	"github.com/mindtoon/mindtoon/pkg/cli/log"
	"github.com/mindtoon/mindtoon/pkg/cli/output"
	"github.com/mindtoon/mindtoon/pkg/cli/session"
	"github.com/mindtoon/mindtoon/pkg/cli/ui"
)

// acknowledgment is the phrase the server requires to confirm the user
// understands the deletion is permanent
const acknowledgment = "I understand this action is permanent"

var example = `
  mindtoon delete-account`

// NewCmd returns a new delete-account command
func NewCmd(ctx context.MindtoonCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete-account",
		Short:   "Permanently delete the account and all its content",
		Example: example,
		RunE:    newRun(ctx),
	}

	return cmd
}

func newRun(ctx context.MindtoonCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if ctx.SessionToken == "" {
			log.Error("not logged in\n")
			return nil
		}

		log.Warnf("this will permanently delete the account and every comic, collection and scenario in it\n")

		ok, err := ui.Confirm("proceed?", false)
		if err != nil {
			return errors.Wrap(err, "getting confirmation")
		}
		if !ok {
			log.Plain("aborted\n")
			return nil
		}

		var username string
		if err := ui.PromptInput("type the username to confirm", &username); err != nil {
			return errors.Wrap(err, "getting username confirmation")
		}

		payload := client.DeleteAccountPayload{
			ConfirmDeletion:             true,
			UsernameConfirmation:        username,
			UnderstandingAcknowledgment: acknowledgment,
		}

		summary, err := client.DeleteAccount(ctx, payload)
		if err != nil {
			return errors.Wrap(err, "deleting account")
		}

		sessions := session.New(ctx.DB)
		if err := sessions.ForceLogout(); err != nil {
			return errors.Wrap(err, "clearing session")
		}

		log.Success("account deleted\n")
		if summary != nil {
			output.DeletionSummary(*summary)
		}

		return nil
	}
}
