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

// Package consts provides definitions of constants
package consts

var (
	// MindtoonDirName is the name of the directory containing mindtoon files
	MindtoonDirName = "mindtoon"
	// MindtoonDBFileName is a filename for the mindtoon SQLite database
	MindtoonDBFileName = "mindtoon.db"
	// ConfigFilename is the name of the config file
	ConfigFilename = "mindtoonrc"

	// SystemSchema is the key for schema in the system table
	SystemSchema = "schema"
	// SystemSessionToken is the key for the bearer token in the system table
	SystemSessionToken = "session_token"
	// SystemSessionUser is the key for the serialized snapshot of the
	// authenticated user in the system table
	SystemSessionUser = "session_user"
)
