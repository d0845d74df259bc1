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

// Package infra provides operations and definitions for the
// local infrastructure for MindToon
package infra

import (
	"database/sql"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mindtoon/mindtoon/pkg/cli/client"
	"github.com/mindtoon/mindtoon/pkg/cli/config"
	"github.com/mindtoon/mindtoon/pkg/cli/consts"
	"github.com/mindtoon/mindtoon/pkg/cli/context"
	"github.com/mindtoon/mindtoon/pkg/cli/database"
	"github.com/mindtoon/mindtoon/pkg/cli/log"
	"github.com/mindtoon/mindtoon/pkg/cli/utils"
	"github.com/mindtoon/mindtoon/pkg/cli/worlds"
	"github.com/mindtoon/mindtoon/pkg/clock"
	"github.com/mindtoon/mindtoon/pkg/dirs"
)

const (
	// DefaultAPIEndpoint is the default API endpoint used when none is configured
	DefaultAPIEndpoint = "http://localhost:8000"
)

// RunEFunc is a function type of mindtoon commands
type RunEFunc func(*cobra.Command, []string) error

func getDBPath(paths context.Paths, customPath string) string {
	if customPath != "" {
		return customPath
	}

	return fmt.Sprintf("%s/%s/%s", paths.Data, consts.MindtoonDirName, consts.MindtoonDBFileName)
}

// newBaseCtx creates a minimal context with paths and database connection.
// This base context is used for file and database initialization before
// being enriched with config values by setupCtx.
func newBaseCtx(versionTag, customDBPath string) (context.MindtoonCtx, error) {
	paths := context.Paths{
		Home:   dirs.Home,
		Config: dirs.ConfigHome,
		Data:   dirs.DataHome,
		Cache:  dirs.CacheHome,
	}

	if err := context.InitMindtoonDirs(paths); err != nil {
		return context.MindtoonCtx{}, errors.Wrap(err, "creating the mindtoon dirs")
	}

	dbPath := getDBPath(paths, customDBPath)

	db, err := database.Open(dbPath)
	if err != nil {
		return context.MindtoonCtx{}, errors.Wrap(err, "connecting to db")
	}

	ctx := context.MindtoonCtx{
		Paths:   paths,
		Version: versionTag,
		DB:      db,
	}

	return ctx, nil
}

// Init initializes the MindToon environment and returns a new mindtoon context.
// apiEndpoint is used when creating a new config file.
func Init(versionTag, apiEndpoint, dbPath string) (*context.MindtoonCtx, error) {
	ctx, err := newBaseCtx(versionTag, dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "initializing a context")
	}

	if err := initConfigFile(ctx, apiEndpoint); err != nil {
		return nil, errors.Wrap(err, "generating the config file")
	}

	if err := database.InitSchema(ctx.DB); err != nil {
		return nil, errors.Wrap(err, "initializing database")
	}
	if err := initSystem(ctx); err != nil {
		return nil, errors.Wrap(err, "initializing system data")
	}

	ctx, err = setupCtx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "setting up the context")
	}

	log.Debug("context: %+v\n", context.Redact(ctx))

	return &ctx, nil
}

// setupCtx enriches the base context with values from config file and database.
// This is called after files and database have been initialized.
func setupCtx(ctx context.MindtoonCtx) (context.MindtoonCtx, error) {
	db := ctx.DB

	var sessionToken string
	err := database.GetSystem(db, consts.SystemSessionToken, &sessionToken)
	if err != nil && err != sql.ErrNoRows {
		return ctx, errors.Wrap(err, "finding session token")
	}

	cf, err := config.Read(ctx)
	if err != nil {
		return ctx, errors.Wrap(err, "reading config")
	}

	ret := context.MindtoonCtx{
		Paths:                ctx.Paths,
		Version:              ctx.Version,
		DB:                   ctx.DB,
		SessionToken:         sessionToken,
		APIEndpoint:          cf.APIEndpoint,
		DefaultWorld:         cf.DefaultWorld,
		Clock:                clock.New(),
		EnableHealthCheck:    cf.EnableHealthCheck,
		HTTPClient:           client.NewHTTPClient(),
		GenerationHTTPClient: client.NewGenerationHTTPClient(),
	}

	return ret, nil
}

// initSystem inserts system data if missing
func initSystem(ctx context.MindtoonCtx) error {
	log.Debug("initializing the system\n")

	var schema string
	err := database.GetSystem(ctx.DB, consts.SystemSchema, &schema)
	if err == sql.ErrNoRows {
		return database.UpsertSystem(ctx.DB, consts.SystemSchema, "1")
	}
	if err != nil {
		return errors.Wrap(err, "finding schema version")
	}

	return nil
}

// initConfigFile populates a new config file if it does not exist yet
func initConfigFile(ctx context.MindtoonCtx, apiEndpoint string) error {
	path := config.GetPath(ctx)
	ok, err := utils.FileExists(path)
	if err != nil {
		return errors.Wrap(err, "checking if config exists")
	}
	if ok {
		return nil
	}

	endpoint := apiEndpoint
	if endpoint == "" {
		endpoint = DefaultAPIEndpoint
	}

	cf := config.Config{
		APIEndpoint:       endpoint,
		DefaultWorld:      string(worlds.Imagination),
		EnableHealthCheck: true,
	}

	if err := config.Write(ctx, cf); err != nil {
		return errors.Wrap(err, "writing config")
	}

	return nil
}
