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

package session

import (
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mindtoon/mindtoon/pkg/assert"
	"github.com/mindtoon/mindtoon/pkg/cli/consts"
	"github.com/mindtoon/mindtoon/pkg/cli/context"
	"github.com/mindtoon/mindtoon/pkg/cli/database"
)

func newTestCtx(db *database.DB, endpoint string) context.MindtoonCtx {
	return context.MindtoonCtx{
		APIEndpoint: endpoint,
		Version:     "0.0.0-test",
		DB:          db,
		HTTPClient:  &http.Client{},
	}
}

func newAuthServer(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/token":
			if err := r.ParseForm(); err != nil {
				t.Fatal(err)
			}
			if r.PostForm.Get("password") != "pass1234" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"access_token": "tok-abc", "token_type": "bearer"}`)
		case "/api/auth/me":
			if r.Header.Get("Authorization") != "Bearer tok-abc" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"id": 7, "username": "alice", "email": "alice@example.com", "created_at": "2025-01-02T03:04:05Z"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestLogin(t *testing.T) {
	server := newAuthServer(t)
	defer server.Close()

	db := database.InitTestMemoryDB(t)
	m := New(db)

	var states []State
	m.Subscribe(func(s State) {
		states = append(states, s)
	})

	user, err := m.Login(newTestCtx(db, server.URL), "alice", "pass1234")

	assert.Equal(t, err, nil, "logging in")
	assert.Equal(t, user.Username, "alice", "username mismatch")
	assert.Equal(t, m.IsAuthenticated(), true, "should be authenticated")
	assert.Equal(t, m.Token(), "tok-abc", "token mismatch")
	assert.DeepEqual(t, states, []State{LoggingIn, LoggedIn}, "state transitions mismatch")

	var storedToken string
	err = database.GetSystem(db, consts.SystemSessionToken, &storedToken)
	assert.Equal(t, err, nil, "reading stored token")
	assert.Equal(t, storedToken, "tok-abc", "stored token mismatch")
}

func TestLoginInvalidCredentials(t *testing.T) {
	server := newAuthServer(t)
	defer server.Close()

	db := database.InitTestMemoryDB(t)
	m := New(db)

	_, err := m.Login(newTestCtx(db, server.URL), "alice", "wrong")

	assert.NotEqual(t, err, nil, "expected an error")
	assert.Equal(t, m.IsAuthenticated(), false, "should not be authenticated")
	assert.Equal(t, m.Token(), "", "no token should be held")

	var storedToken string
	err = database.GetSystem(db, consts.SystemSessionToken, &storedToken)
	assert.Equal(t, err, sql.ErrNoRows, "no token should be persisted")
}

func TestLoginIdentityFetchFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/token":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"access_token": "tok-abc", "token_type": "bearer"}`)
		case "/api/auth/me":
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	db := database.InitTestMemoryDB(t)
	m := New(db)

	_, err := m.Login(newTestCtx(db, server.URL), "alice", "pass1234")

	assert.NotEqual(t, err, nil, "expected an error")
	assert.Equal(t, m.State(), LoggedOut, "a failed identity fetch should discard the token")

	var storedToken string
	err = database.GetSystem(db, consts.SystemSessionToken, &storedToken)
	assert.Equal(t, err, sql.ErrNoRows, "no token should be persisted without a confirmed identity")
}

func TestRestore(t *testing.T) {
	db := database.InitTestMemoryDB(t)

	if err := database.UpsertSystem(db, consts.SystemSessionToken, "tok-stored"); err != nil {
		t.Fatal(err)
	}
	if err := database.UpsertSystem(db, consts.SystemSessionUser, `{"id": 7, "username": "alice", "email": "alice@example.com"}`); err != nil {
		t.Fatal(err)
	}

	m := New(db)

	// no server is running; restore must not make a network call
	err := m.Restore()

	assert.Equal(t, err, nil, "restoring session")
	assert.Equal(t, m.IsAuthenticated(), true, "should be authenticated after restore")
	assert.Equal(t, m.Token(), "tok-stored", "token mismatch")

	user, ok := m.User()
	assert.Equal(t, ok, true, "user should be restored")
	assert.Equal(t, user.Username, "alice", "username mismatch")
}

func TestRestoreWithoutSession(t *testing.T) {
	db := database.InitTestMemoryDB(t)
	m := New(db)

	err := m.Restore()

	assert.Equal(t, err, nil, "restore without a session should not error")
	assert.Equal(t, m.State(), LoggedOut, "should remain logged out")
}

func TestLogout(t *testing.T) {
	server := newAuthServer(t)
	defer server.Close()

	db := database.InitTestMemoryDB(t)
	m := New(db)

	if _, err := m.Login(newTestCtx(db, server.URL), "alice", "pass1234"); err != nil {
		t.Fatal(err)
	}

	var states []State
	m.Subscribe(func(s State) {
		states = append(states, s)
	})

	err := m.Logout()

	assert.Equal(t, err, nil, "logging out")
	assert.Equal(t, m.IsAuthenticated(), false, "should not be authenticated")
	assert.DeepEqual(t, states, []State{LoggingOut, LoggedOut}, "state transitions mismatch")

	var storedToken string
	err = database.GetSystem(db, consts.SystemSessionToken, &storedToken)
	assert.Equal(t, err, sql.ErrNoRows, "stored token should be cleared")
}

func TestForceLogout(t *testing.T) {
	db := database.InitTestMemoryDB(t)

	if err := database.UpsertSystem(db, consts.SystemSessionToken, "tok-stale"); err != nil {
		t.Fatal(err)
	}

	m := New(db)
	if err := m.Restore(); err != nil {
		t.Fatal(err)
	}

	cleared := false
	m.Subscribe(func(s State) {
		if s == LoggedOut {
			cleared = true
		}
	})

	err := m.ForceLogout()

	assert.Equal(t, err, nil, "forcing logout")
	assert.Equal(t, m.State(), LoggedOut, "should be logged out")
	assert.Equal(t, cleared, true, "subscribers should observe the logout")

	var storedToken string
	err = database.GetSystem(db, consts.SystemSessionToken, &storedToken)
	assert.Equal(t, err, sql.ErrNoRows, "stored token should be cleared")

	var storedUser string
	err = database.GetSystem(db, consts.SystemSessionUser, &storedUser)
	assert.Equal(t, err, sql.ErrNoRows, "stored user should be cleared")
}

func TestApply(t *testing.T) {
	db := database.InitTestMemoryDB(t)
	m := New(db)

	m.mu.Lock()
	m.token = "tok-abc"
	m.mu.Unlock()

	ctx := m.Apply(context.MindtoonCtx{APIEndpoint: "http://example.com"})

	assert.Equal(t, ctx.SessionToken, "tok-abc", "token should be applied")
}
