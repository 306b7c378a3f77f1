// Package session owns the authenticated-session state shared across
// screens. It is injected where needed rather than living in a package-level
// singleton, and other state with a session-bound lifecycle (the saved
// collection) subscribes to its login/logout hooks.
package session

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"

	"github.com/EshanAk-dev/Filmex/internal/model"
	"github.com/EshanAk-dev/Filmex/pkg/apperr"
)

// AccountAPI is the slice of the identity service the manager needs.
// Satisfied by appwrite.Account.
type AccountAPI interface {
	Create(ctx context.Context, userID, email, password, name string) (model.User, error)
	CreateEmailPasswordSession(ctx context.Context, email, password string) error
	Get(ctx context.Context) (model.User, error)
	DeleteSession(ctx context.Context, sessionID string) error
	UpdateName(ctx context.Context, name string) (model.User, error)
	UpdatePassword(ctx context.Context, newPassword, oldPassword string) (model.User, error)
}

// RegisterParams are validated before any network call is made.
type RegisterParams struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

type Manager struct {
	account  AccountAPI
	validate *validator.Validate

	mu   sync.RWMutex
	user *model.User

	onLogin  []func(ctx context.Context, u model.User)
	onLogout []func()
}

func NewManager(account AccountAPI) *Manager {
	return &Manager{
		account:  account,
		validate: validator.New(),
	}
}

// OnLogin registers a hook fired after a session is established or restored.
// Register hooks before first use; registration is not synchronized.
func (m *Manager) OnLogin(fn func(ctx context.Context, u model.User)) {
	m.onLogin = append(m.onLogin, fn)
}

// OnLogout registers a hook fired after the session ends.
func (m *Manager) OnLogout(fn func()) {
	m.onLogout = append(m.onLogout, fn)
}

// Current returns the signed-in user, if any.
func (m *Manager) Current() (model.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return model.User{}, false
	}
	return *m.user, true
}

// Restore checks for an existing backend session and adopts it. Absence of a
// session is not an error.
func (m *Manager) Restore(ctx context.Context) {
	u, err := m.account.Get(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("no session to restore")
		return
	}
	m.setUser(ctx, u)
}

// Register creates an account and signs it in.
func (m *Manager) Register(ctx context.Context, p RegisterParams) (model.User, error) {
	if err := m.validate.Struct(p); err != nil {
		return model.User{}, err
	}
	if _, err := m.account.Create(ctx, xid.New().String(), p.Email, p.Password, p.Name); err != nil {
		return model.User{}, err
	}
	return m.Login(ctx, p.Email, p.Password)
}

// Login opens an email+password session and loads the account record.
func (m *Manager) Login(ctx context.Context, email, password string) (model.User, error) {
	if err := m.account.CreateEmailPasswordSession(ctx, email, password); err != nil {
		return model.User{}, err
	}
	u, err := m.account.Get(ctx)
	if err != nil {
		return model.User{}, err
	}
	m.setUser(ctx, u)
	return u, nil
}

// Logout deletes the current backend session and clears local session state.
// On remote failure the local state is kept so the caller can retry.
func (m *Manager) Logout(ctx context.Context) error {
	if _, ok := m.Current(); !ok {
		return apperr.NotAuthenticated("no active session")
	}
	if err := m.account.DeleteSession(ctx, "current"); err != nil {
		return err
	}
	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()
	for _, fn := range m.onLogout {
		fn()
	}
	return nil
}

// UpdateName changes the display name of the signed-in user.
func (m *Manager) UpdateName(ctx context.Context, name string) (model.User, error) {
	if _, ok := m.Current(); !ok {
		return model.User{}, apperr.NotAuthenticated("sign in to update the profile")
	}
	if err := m.validate.Var(name, "required"); err != nil {
		return model.User{}, err
	}
	u, err := m.account.UpdateName(ctx, name)
	if err != nil {
		return model.User{}, err
	}
	m.mu.Lock()
	m.user = &u
	m.mu.Unlock()
	return u, nil
}

// UpdatePassword changes the password after verifying the old one remotely.
func (m *Manager) UpdatePassword(ctx context.Context, newPassword, oldPassword string) error {
	if _, ok := m.Current(); !ok {
		return apperr.NotAuthenticated("sign in to change the password")
	}
	if err := m.validate.Var(newPassword, "required,min=8"); err != nil {
		return err
	}
	_, err := m.account.UpdatePassword(ctx, newPassword, oldPassword)
	return err
}

func (m *Manager) setUser(ctx context.Context, u model.User) {
	m.mu.Lock()
	m.user = &u
	m.mu.Unlock()
	for _, fn := range m.onLogin {
		fn(ctx, u)
	}
}
