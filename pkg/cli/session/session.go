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

// Package session owns the auth session lifecycle: login, restore from local
// storage, logout, and forced logout when the server rejects a stale token.
package session

import (
	"database/sql"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/mindtoon/mindtoon/pkg/cli/client"
	"github.com/mindtoon/mindtoon/pkg/cli/consts"
	"github.com/mindtoon/mindtoon/pkg/cli/context"
	"github.com/mindtoon/mindtoon/pkg/cli/database"
)

// State is a session lifecycle state
type State int

const (
	// LoggedOut is the state without a session
	LoggedOut State = iota
	// LoggingIn is the state while a token exchange and identity fetch are in flight
	LoggingIn
	// LoggedIn is the state with an established session
	LoggedIn
	// LoggingOut is the state while the session is being torn down
	LoggingOut
)

// String implements fmt.Stringer
func (s State) String() string {
	switch s {
	case LoggedOut:
		return "logged out"
	case LoggingIn:
		return "logging in"
	case LoggedIn:
		return "logged in"
	case LoggingOut:
		return "logging out"
	}

	return "unknown"
}

// Subscriber is notified whenever the session state changes. Dependent
// components subscribe to clear their own state on logout.
type Subscriber func(State)

// Manager is the session state machine. Safe for concurrent use.
type Manager struct {
	mu          sync.Mutex
	db          *database.DB
	state       State
	token       string
	user        *client.RespUser
	subscribers []Subscriber
}

// New creates a manager in the logged out state
func New(db *database.DB) *Manager {
	return &Manager{db: db, state: LoggedOut}
}

// State returns the current session state
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// IsAuthenticated reports whether a session is established
func (m *Manager) IsAuthenticated() bool {
	return m.State() == LoggedIn
}

// Token returns the session token, empty when logged out
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.token
}

// User returns the last-known identity of the session user
func (m *Manager) User() (client.RespUser, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil {
		return client.RespUser{}, false
	}

	return *m.user, true
}

// Subscribe registers a subscriber for state changes
func (m *Manager) Subscribe(fn Subscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.subscribers = append(m.subscribers, fn)
}

// Apply returns a copy of the given context carrying the session token
func (m *Manager) Apply(ctx context.MindtoonCtx) context.MindtoonCtx {
	ctx.SessionToken = m.Token()
	return ctx
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	subscribers := make([]Subscriber, len(m.subscribers))
	copy(subscribers, m.subscribers)
	m.mu.Unlock()

	for _, fn := range subscribers {
		fn(s)
	}
}

// Login exchanges credentials for a token and fetches the user identity.
// The session is established and persisted only after both succeed; a failed
// identity fetch discards the token rather than leaving it stored without a
// confirmed identity.
func (m *Manager) Login(ctx context.MindtoonCtx, username, password string) (client.RespUser, error) {
	m.setState(LoggingIn)

	tokenResp, err := client.GetToken(ctx, username, password)
	if err != nil {
		m.setState(LoggedOut)
		return client.RespUser{}, errors.Wrap(err, "exchanging credentials")
	}

	authedCtx := ctx
	authedCtx.SessionToken = tokenResp.AccessToken

	user, err := client.GetMe(authedCtx)
	if err != nil {
		m.setState(LoggedOut)
		return client.RespUser{}, errors.Wrap(err, "fetching identity")
	}

	if err := m.persist(tokenResp.AccessToken, user); err != nil {
		m.setState(LoggedOut)
		return client.RespUser{}, errors.Wrap(err, "persisting session")
	}

	m.mu.Lock()
	m.token = tokenResp.AccessToken
	m.user = &user
	m.mu.Unlock()
	m.setState(LoggedIn)

	return user, nil
}

// Register creates an account and logs into it
func (m *Manager) Register(ctx context.MindtoonCtx, payload client.RegisterPayload) (client.RespUser, error) {
	if _, err := client.Register(ctx, payload); err != nil {
		return client.RespUser{}, errors.Wrap(err, "registering")
	}

	user, err := m.Login(ctx, payload.Username, payload.Password)
	if err != nil {
		return client.RespUser{}, errors.Wrap(err, "logging into the new account")
	}

	return user, nil
}

// Restore loads a persisted session without a network round-trip. The restore
// is optimistic: a later 401 on any call still forces a logout.
func (m *Manager) Restore() error {
	var token string
	err := database.GetSystem(m.db, consts.SystemSessionToken, &token)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "reading session token")
	}
	if token == "" {
		return nil
	}

	var user *client.RespUser
	var serialized string
	err = database.GetSystem(m.db, consts.SystemSessionUser, &serialized)
	if err != nil && err != sql.ErrNoRows {
		return errors.Wrap(err, "reading session user")
	}
	if err == nil {
		var u client.RespUser
		if err := json.Unmarshal([]byte(serialized), &u); err == nil {
			user = &u
		}
	}

	m.mu.Lock()
	m.token = token
	m.user = user
	m.mu.Unlock()
	m.setState(LoggedIn)

	return nil
}

// Logout tears the session down and clears the persisted state
func (m *Manager) Logout() error {
	m.setState(LoggingOut)

	if err := m.clearStorage(); err != nil {
		return err
	}

	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()
	m.setState(LoggedOut)

	return nil
}

// ForceLogout destroys the session after the server rejected the token.
// Subscribers are notified so caches and world state clear themselves.
func (m *Manager) ForceLogout() error {
	if err := m.clearStorage(); err != nil {
		return err
	}

	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()
	m.setState(LoggedOut)

	return nil
}

func (m *Manager) persist(token string, user client.RespUser) error {
	if err := database.UpsertSystem(m.db, consts.SystemSessionToken, token); err != nil {
		return errors.Wrap(err, "storing session token")
	}

	serialized, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(err, "serializing session user")
	}
	if err := database.UpsertSystem(m.db, consts.SystemSessionUser, string(serialized)); err != nil {
		return errors.Wrap(err, "storing session user")
	}

	return nil
}

func (m *Manager) clearStorage() error {
	if err := database.DeleteSystem(m.db, consts.SystemSessionToken); err != nil {
		return errors.Wrap(err, "deleting session token")
	}
	if err := database.DeleteSystem(m.db, consts.SystemSessionUser); err != nil {
		return errors.Wrap(err, "deleting session user")
	}

	return nil
}
