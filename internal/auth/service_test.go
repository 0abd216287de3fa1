package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"gkk99-backend/internal/database"
	"gkk99-backend/internal/models"
)

type mockAccountStore struct {
	getByUsernameFn   func(username string) (*models.Account, error)
	getByIDFn         func(id string) (*models.Account, error)
	updateLastLoginFn func(id string, at time.Time) error
}

func (m *mockAccountStore) GetByUsername(username string) (*models.Account, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(username)
	}
	return nil, database.ErrAccountNotFound
}

func (m *mockAccountStore) GetByID(id string) (*models.Account, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return nil, database.ErrAccountNotFound
}

func (m *mockAccountStore) UpdateLastLogin(id string, at time.Time) error {
	if m.updateLastLoginFn != nil {
		return m.updateLastLoginFn(id, at)
	}
	return nil
}

type mockSessionStore struct {
	createFn        func(accountID, ipAddress, userAgent string, duration time.Duration) (string, *models.Session, error)
	getByTokenFn    func(token string) (*models.Session, error)
	deleteByTokenFn func(token string) error
}

func (m *mockSessionStore) Create(accountID, ipAddress, userAgent string, duration time.Duration) (string, *models.Session, error) {
	if m.createFn != nil {
		return m.createFn(accountID, ipAddress, userAgent, duration)
	}
	now := time.Now().UTC()
	return testToken(), &models.Session{
		AccountID: accountID,
		CreatedAt: now,
		ExpiresAt: now.Add(duration),
	}, nil
}

func (m *mockSessionStore) GetByToken(token string) (*models.Session, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(token)
	}
	return nil, database.ErrSessionNotFound
}

func (m *mockSessionStore) DeleteByToken(token string) error {
	if m.deleteByTokenFn != nil {
		return m.deleteByTokenFn(token)
	}
	return nil
}

func testToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func activeAccount(t *testing.T, username, password string, role models.Role) *models.Account {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return &models.Account{
		ID:           "acc-1",
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestLogin_Success(t *testing.T) {
	account := activeAccount(t, "admin", "gkk99admin2024", models.RoleMainAdmin)

	var sessionTTL time.Duration
	var lastLoginSet bool

	accounts := &mockAccountStore{
		getByUsernameFn: func(username string) (*models.Account, error) {
			if username != "admin" {
				return nil, database.ErrAccountNotFound
			}
			return account, nil
		},
		updateLastLoginFn: func(id string, at time.Time) error {
			lastLoginSet = true
			return nil
		},
	}
	sessions := &mockSessionStore{
		createFn: func(accountID, ip, ua string, duration time.Duration) (string, *models.Session, error) {
			sessionTTL = duration
			now := time.Now().UTC()
			return testToken(), &models.Session{AccountID: accountID, CreatedAt: now, ExpiresAt: now.Add(duration)}, nil
		},
	}

	svc := NewService(accounts, sessions)
	result, err := svc.Login(models.LoginRequest{Username: "admin", Password: "gkk99admin2024"}, "127.0.0.1", "test")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if result.Token == "" {
		t.Error("expected a token")
	}
	if sessionTTL != SessionTTL {
		t.Errorf("session TTL = %v, want %v", sessionTTL, SessionTTL)
	}
	if got := result.ExpiresAt.Sub(*result.Account.LastLogin); got != SessionTTL {
		t.Errorf("expiry - createdAt = %v, want %v", got, SessionTTL)
	}
	if !lastLoginSet {
		t.Error("expected last login to be updated")
	}
	if result.Account.Role != models.RoleMainAdmin {
		t.Errorf("role = %q, want %q", result.Account.Role, models.RoleMainAdmin)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	account := activeAccount(t, "admin", "gkk99admin2024", models.RoleMainAdmin)
	accounts := &mockAccountStore{
		getByUsernameFn: func(username string) (*models.Account, error) { return account, nil },
	}

	svc := NewService(accounts, &mockSessionStore{})
	_, err := svc.Login(models.LoginRequest{Username: "admin", Password: "wrong"}, "", "")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := NewService(&mockAccountStore{}, &mockSessionStore{})
	_, err := svc.Login(models.LoginRequest{Username: "nobody", Password: "whatever"}, "", "")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_InactiveAccount(t *testing.T) {
	account := activeAccount(t, "subadmin1", "gkk99sub2024", models.RoleSubAdmin)
	account.IsActive = false
	accounts := &mockAccountStore{
		getByUsernameFn: func(username string) (*models.Account, error) { return account, nil },
	}

	svc := NewService(accounts, &mockSessionStore{})
	_, err := svc.Login(models.LoginRequest{Username: "subadmin1", Password: "gkk99sub2024"}, "", "")
	if !errors.Is(err, ErrAccountInactive) {
		t.Fatalf("err = %v, want ErrAccountInactive", err)
	}
}

func TestLogin_InactiveAccountWrongPassword(t *testing.T) {
	account := activeAccount(t, "subadmin1", "gkk99sub2024", models.RoleSubAdmin)
	account.IsActive = false
	accounts := &mockAccountStore{
		getByUsernameFn: func(username string) (*models.Account, error) { return account, nil },
	}

	// A bad password must not reveal that the account is disabled
	svc := NewService(accounts, &mockSessionStore{})
	_, err := svc.Login(models.LoginRequest{Username: "subadmin1", Password: "wrong"}, "", "")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestVerify_Success(t *testing.T) {
	account := activeAccount(t, "admin", "gkk99admin2024", models.RoleMainAdmin)
	token := testToken()

	accounts := &mockAccountStore{
		getByIDFn: func(id string) (*models.Account, error) { return account, nil },
	}
	sessions := &mockSessionStore{
		getByTokenFn: func(got string) (*models.Session, error) {
			if got != token {
				return nil, database.ErrSessionNotFound
			}
			return &models.Session{AccountID: account.ID, ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}

	svc := NewService(accounts, sessions)
	got, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got.Username != "admin" {
		t.Errorf("username = %q, want admin", got.Username)
	}
}

func TestVerify_MalformedToken(t *testing.T) {
	svc := NewService(&mockAccountStore{}, &mockSessionStore{})

	for _, token := range []string{"", "short", "mock_token_1"} {
		if _, err := svc.Verify(token); !errors.Is(err, ErrUnauthenticated) {
			t.Errorf("Verify(%q) err = %v, want ErrUnauthenticated", token, err)
		}
	}
}

func TestVerify_ExpiredSession(t *testing.T) {
	sessions := &mockSessionStore{
		getByTokenFn: func(token string) (*models.Session, error) {
			return nil, database.ErrSessionExpired
		},
	}

	svc := NewService(&mockAccountStore{}, sessions)
	if _, err := svc.Verify(testToken()); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerify_InactiveAccount(t *testing.T) {
	account := activeAccount(t, "subadmin1", "gkk99sub2024", models.RoleSubAdmin)
	account.IsActive = false

	accounts := &mockAccountStore{
		getByIDFn: func(id string) (*models.Account, error) { return account, nil },
	}
	sessions := &mockSessionStore{
		getByTokenFn: func(token string) (*models.Session, error) {
			return &models.Session{AccountID: account.ID, ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}

	svc := NewService(accounts, sessions)
	if _, err := svc.Verify(testToken()); !errors.Is(err, ErrAccountInactive) {
		t.Fatalf("err = %v, want ErrAccountInactive", err)
	}
}

func TestLogout_Idempotent(t *testing.T) {
	deleted := false
	sessions := &mockSessionStore{
		deleteByTokenFn: func(token string) error {
			if deleted {
				return database.ErrSessionNotFound
			}
			deleted = true
			return nil
		},
	}

	svc := NewService(&mockAccountStore{}, sessions)
	token := testToken()

	if err := svc.Logout(token); err != nil {
		t.Fatalf("first logout: %v", err)
	}
	if err := svc.Logout(token); err != nil {
		t.Fatalf("second logout: %v", err)
	}
	if err := svc.Logout(""); err != nil {
		t.Fatalf("empty token logout: %v", err)
	}
}
