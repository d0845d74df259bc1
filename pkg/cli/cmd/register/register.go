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

package register

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mindtoon/mindtoon/pkg/cli/apierr"
	"github.com/mindtoon/mindtoon/pkg/cli/client"
	"github.com/mindtoon/mindtoon/pkg/cli/context"
	"github.com/mindtoon/mindtoon/pkg/cli/infra"
	"github.com/mindtoon/mindtoon/pkg/cli/log"
	"github.com/mindtoon/mindtoon/pkg/cli/session"
	"github.com/mindtoon/mindtoon/pkg/cli/ui"
)

var example = `
  mindtoon register`

// NewCmd returns a new register command
func NewCmd(ctx context.MindtoonCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "register",
		Short:   "Create an account and log into it",
		Example: example,
		RunE:    newRun(ctx),
	}

	return cmd
}

func promptPayload() (client.RegisterPayload, error) {
	var ret client.RegisterPayload

	if err := ui.PromptInput("username", &ret.Username); err != nil {
		return ret, errors.Wrap(err, "getting username input")
	}
	if ret.Username == "" {
		return ret, errors.New("username is empty")
	}

	if err := ui.PromptInput("email", &ret.Email); err != nil {
		return ret, errors.Wrap(err, "getting email input")
	}
	if !strings.Contains(ret.Email, "@") {
		return ret, errors.New("invalid email")
	}

	if err := ui.PromptInput("full name (optional)", &ret.FullName); err != nil {
		return ret, errors.Wrap(err, "getting full name input")
	}

	if err := ui.PromptPassword("password", &ret.Password); err != nil {
		return ret, errors.Wrap(err, "getting password input")
	}
	if len(ret.Password) < 8 {
		return ret, errors.New("password must be at least 8 characters")
	}

	var confirmation string
	if err := ui.PromptPassword("password confirmation", &confirmation); err != nil {
		return ret, errors.Wrap(err, "getting password confirmation input")
	}
	if ret.Password != confirmation {
		return ret, errors.New("password and its confirmation do not match")
	}

	return ret, nil
}

func newRun(ctx context.MindtoonCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		payload, err := promptPayload()
		if err != nil {
			return err
		}

		sessions := session.New(ctx.DB)

		user, err := sessions.Register(ctx, payload)
		if err != nil {
			if e, ok := apierr.As(err); ok && e.Kind == apierr.KindValidationFailed {
				log.Errorf("%s\n", e.UserMessage())
				return nil
			}

			return errors.Wrap(err, "registering")
		}

		log.Successf("registered and logged in as %s\n", user.Username)

		return nil
	}
}
