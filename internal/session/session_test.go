package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/EshanAk-dev/Filmex/internal/model"
	"github.com/EshanAk-dev/Filmex/internal/session"
	"github.com/EshanAk-dev/Filmex/pkg/apperr"
)

var errNoSession = errors.New("missing scope (account)")

// scriptedAccount drives the manager through success and failure paths.
type scriptedAccount struct {
	user      *model.User
	signedIn  bool
	created   []string
	deleteErr error
}

func (a *scriptedAccount) Create(_ context.Context, userID, email, _, name string) (model.User, error) {
	a.created = append(a.created, userID)
	a.user = &model.User{ID: userID, Email: email, Name: name}
	return *a.user, nil
}

func (a *scriptedAccount) CreateEmailPasswordSession(_ context.Context, email, _ string) error {
	if a.user == nil || a.user.Email != email {
		return apperr.NetworkFailure("Invalid credentials. Please check the email and password.", nil)
	}
	a.signedIn = true
	return nil
}

func (a *scriptedAccount) Get(context.Context) (model.User, error) {
	if a.user == nil || !a.signedIn {
		return model.User{}, errNoSession
	}
	return *a.user, nil
}

func (a *scriptedAccount) DeleteSession(context.Context, string) error {
	if a.deleteErr != nil {
		return a.deleteErr
	}
	a.signedIn = false
	return nil
}

func (a *scriptedAccount) UpdateName(_ context.Context, name string) (model.User, error) {
	a.user.Name = name
	return *a.user, nil
}

func (a *scriptedAccount) UpdatePassword(context.Context, string, string) (model.User, error) {
	return *a.user, nil
}

func seeded() *scriptedAccount {
	return &scriptedAccount{user: &model.User{ID: "u1", Email: "ana@example.com", Name: "Ana"}}
}

func TestLoginFiresHooksAndSetsUser(t *testing.T) {
	m := session.NewManager(seeded())
	var hookUser model.User
	logins := 0
	m.OnLogin(func(_ context.Context, u model.User) {
		logins++
		hookUser = u
	})

	u, err := m.Login(context.Background(), "ana@example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logins != 1 || hookUser.ID != "u1" {
		t.Fatalf("login hook not fired with user: %d %+v", logins, hookUser)
	}
	if cur, ok := m.Current(); !ok || cur.ID != u.ID {
		t.Fatalf("current user not set: %+v %v", cur, ok)
	}
}

func TestLoginFailurePreservesSignedOutState(t *testing.T) {
	m := session.NewManager(seeded())
	if _, err := m.Login(context.Background(), "wrong@example.com", "password123"); err == nil {
		t.Fatal("expected login failure")
	}
	if _, ok := m.Current(); ok {
		t.Fatal("user set after failed login")
	}
}

func TestLogoutFiresHooksAndClearsUser(t *testing.T) {
	m := session.NewManager(seeded())
	logouts := 0
	m.OnLogout(func() { logouts++ })
	ctx := context.Background()
	if _, err := m.Login(ctx, "ana@example.com", "password123"); err != nil {
		t.Fatal(err)
	}
	if err := m.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if logouts != 1 {
		t.Fatalf("logout hooks fired %d times", logouts)
	}
	if _, ok := m.Current(); ok {
		t.Fatal("user still set after logout")
	}
}

func TestLogoutRemoteFailureKeepsSession(t *testing.T) {
	acc := seeded()
	acc.deleteErr = apperr.NetworkFailure("Failed to sign out", nil)
	m := session.NewManager(acc)
	ctx := context.Background()
	if _, err := m.Login(ctx, "ana@example.com", "password123"); err != nil {
		t.Fatal(err)
	}
	if err := m.Logout(ctx); err == nil {
		t.Fatal("expected logout failure")
	}
	if _, ok := m.Current(); !ok {
		t.Fatal("local session cleared although remote delete failed")
	}
}

func TestLogoutWithoutSession(t *testing.T) {
	m := session.NewManager(seeded())
	if err := m.Logout(context.Background()); !apperr.Is(err, apperr.CodeNotAuthenticated) {
		t.Fatalf("expected not_authenticated, got %v", err)
	}
}

func TestRestoreAdoptsExistingSession(t *testing.T) {
	acc := seeded()
	acc.signedIn = true // backend still has a live session
	m := session.NewManager(acc)
	restored := 0
	m.OnLogin(func(context.Context, model.User) { restored++ })

	m.Restore(context.Background())
	if restored != 1 {
		t.Fatalf("restore did not fire login hooks: %d", restored)
	}
	if cur, ok := m.Current(); !ok || cur.ID != "u1" {
		t.Fatalf("session not restored: %+v %v", cur, ok)
	}
}

func TestRestoreWithoutSessionIsSilent(t *testing.T) {
	m := session.NewManager(&scriptedAccount{})
	m.Restore(context.Background())
	if _, ok := m.Current(); ok {
		t.Fatal("user set without a backend session")
	}
}

func TestRegisterValidatesBeforeNetwork(t *testing.T) {
	acc := &scriptedAccount{}
	m := session.NewManager(acc)
	cases := []session.RegisterParams{
		{Name: "", Email: "a@example.com", Password: "password123"},
		{Name: "Ana", Email: "not-an-email", Password: "password123"},
		{Name: "Ana", Email: "a@example.com", Password: "short"},
	}
	for _, p := range cases {
		if _, err := m.Register(context.Background(), p); err == nil {
			t.Fatalf("expected validation error for %+v", p)
		}
	}
	if len(acc.created) != 0 {
		t.Fatalf("invalid params reached the backend: %v", acc.created)
	}
}

func TestRegisterCreatesAndSignsIn(t *testing.T) {
	acc := &scriptedAccount{}
	m := session.NewManager(acc)
	u, err := m.Register(context.Background(), session.RegisterParams{
		Name: "Ana", Email: "ana@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(acc.created) != 1 || acc.created[0] == "" {
		t.Fatalf("expected one generated account id, got %v", acc.created)
	}
	if cur, ok := m.Current(); !ok || cur.Email != u.Email {
		t.Fatal("register did not establish a session")
	}
}

func TestUpdateNameRequiresAuth(t *testing.T) {
	m := session.NewManager(seeded())
	if _, err := m.UpdateName(context.Background(), "New Name"); !apperr.Is(err, apperr.CodeNotAuthenticated) {
		t.Fatalf("expected not_authenticated, got %v", err)
	}
}

func TestUpdateNameRefreshesCurrentUser(t *testing.T) {
	m := session.NewManager(seeded())
	ctx := context.Background()
	if _, err := m.Login(ctx, "ana@example.com", "password123"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.UpdateName(ctx, "Ana Maria"); err != nil {
		t.Fatal(err)
	}
	if cur, _ := m.Current(); cur.Name != "Ana Maria" {
		t.Fatalf("current user stale: %+v", cur)
	}
}

func TestUpdatePasswordValidatesLength(t *testing.T) {
	m := session.NewManager(seeded())
	ctx := context.Background()
	if _, err := m.Login(ctx, "ana@example.com", "password123"); err != nil {
		t.Fatal(err)
	}
	if err := m.UpdatePassword(ctx, "short", "password123"); err == nil {
		t.Fatal("expected validation error for short password")
	}
	if err := m.UpdatePassword(ctx, "longenough", "password123"); err != nil {
		t.Fatalf("valid password rejected: %v", err)
	}
}
