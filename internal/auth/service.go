package auth

import (
	"errors"
	"time"

	"gkk99-backend/internal/database"
	"gkk99-backend/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is disabled")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// SessionTTL is how long an issued session token stays valid
const SessionTTL = 24 * time.Hour

// tokenLength is the hex length of a session token (32 random bytes)
const tokenLength = 64

// AccountStore is the account persistence needed by the auth service
type AccountStore interface {
	GetByUsername(username string) (*models.Account, error)
	GetByID(id string) (*models.Account, error)
	UpdateLastLogin(id string, at time.Time) error
}

// SessionStore is the session persistence needed by the auth service
type SessionStore interface {
	Create(accountID, ipAddress, userAgent string, duration time.Duration) (string, *models.Session, error)
	GetByToken(token string) (*models.Session, error)
	DeleteByToken(token string) error
}

// Service handles authentication logic
type Service struct {
	accounts AccountStore
	sessions SessionStore
}

// NewService creates a new auth service
func NewService(accounts AccountStore, sessions SessionStore) *Service {
	return &Service{
		accounts: accounts,
		sessions: sessions,
	}
}

// LoginResult represents a successful login
type LoginResult struct {
	Account   *models.Account
	Token     string
	ExpiresAt time.Time
}

// Login authenticates an account and creates a session
func (s *Service) Login(req models.LoginRequest, ipAddress, userAgent string) (*LoginResult, error) {
	account, err := s.accounts.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, database.ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// Check the password before the active flag so a wrong password never
	// discloses whether the account is disabled.
	if !VerifyPassword(req.Password, account.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !account.IsActive {
		return nil, ErrAccountInactive
	}

	token, session, err := s.sessions.Create(account.ID, ipAddress, userAgent, SessionTTL)
	if err != nil {
		return nil, err
	}

	now := session.CreatedAt
	if err := s.accounts.UpdateLastLogin(account.ID, now); err != nil {
		return nil, err
	}
	account.LastLogin = &now

	return &LoginResult{
		Account:   account,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Verify validates a session token and returns the account it belongs to
func (s *Service) Verify(token string) (*models.Account, error) {
	if len(token) != tokenLength {
		return nil, ErrUnauthenticated
	}

	session, err := s.sessions.GetByToken(token)
	if err != nil {
		if errors.Is(err, database.ErrSessionNotFound) || errors.Is(err, database.ErrSessionExpired) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	account, err := s.accounts.GetByID(session.AccountID)
	if err != nil {
		if errors.Is(err, database.ErrAccountNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if !account.IsActive {
		return nil, ErrAccountInactive
	}

	return account, nil
}

// Logout invalidates a session. A token with no session is not an error.
func (s *Service) Logout(token string) error {
	if token == "" {
		return nil
	}
	err := s.sessions.DeleteByToken(token)
	if errors.Is(err, database.ErrSessionNotFound) {
		return nil
	}
	return err
}
