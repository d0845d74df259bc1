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

package database

import (
	"database/sql"
	"testing"

	"github.com/mindtoon/mindtoon/pkg/assert"
)

func TestGetSystemMissing(t *testing.T) {
	db := InitTestMemoryDB(t)

	var val string
	err := GetSystem(db, "session_token", &val)

	assert.Equal(t, err, sql.ErrNoRows, "missing key should surface as ErrNoRows")
}

func TestUpsertSystem(t *testing.T) {
	db := InitTestMemoryDB(t)

	err := UpsertSystem(db, "session_token", "tok-1")
	assert.Equal(t, err, nil, "inserting value")

	var val string
	err = GetSystem(db, "session_token", &val)
	assert.Equal(t, err, nil, "getting value")
	assert.Equal(t, val, "tok-1", "value mismatch")

	err = UpsertSystem(db, "session_token", "tok-2")
	assert.Equal(t, err, nil, "updating value")

	err = GetSystem(db, "session_token", &val)
	assert.Equal(t, err, nil, "getting updated value")
	assert.Equal(t, val, "tok-2", "updated value mismatch")

	var count int
	MustScan(t, "counting rows", db.QueryRow("SELECT count(*) FROM system WHERE key = ?", "session_token"), &count)
	assert.Equal(t, count, 1, "upsert should not duplicate rows")
}

func TestDeleteSystem(t *testing.T) {
	db := InitTestMemoryDB(t)

	MustExec(t, "seeding value", db, "INSERT INTO system (key, value) VALUES (?, ?)", "session_token", "tok-1")

	err := DeleteSystem(db, "session_token")
	assert.Equal(t, err, nil, "deleting value")

	var val string
	err = GetSystem(db, "session_token", &val)
	assert.Equal(t, err, sql.ErrNoRows, "deleted key should be gone")
}
