// Package content implements the editable site content and account
// administration operations behind the admin panel.
package content

import (
	"errors"

	"gkk99-backend/internal/auth"
	"gkk99-backend/internal/database"
	"gkk99-backend/internal/models"
)

var (
	ErrForbidden        = errors.New("access denied")
	ErrProtectedAccount = errors.New("cannot deactivate main admin")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrInvalidRequest   = errors.New("invalid request")
)

// ContentStore is the site content persistence needed by the service
type ContentStore interface {
	Get() (*models.SiteContent, error)
	Update(content *models.SiteContent, updatedBy string) error
}

// AccountStore is the account persistence needed by the service
type AccountStore interface {
	GetByID(id string) (*models.Account, error)
	List() ([]*models.Account, error)
	SetActive(id string, active bool) error
	Create(account *models.Account) error
}

// SessionStore revokes sessions when an account is deactivated
type SessionStore interface {
	DeleteAllForAccount(accountID string) error
}

// Service handles content editing and account administration
type Service struct {
	content  ContentStore
	accounts AccountStore
	sessions SessionStore
}

// NewService creates a new content service
func NewService(content ContentStore, accounts AccountStore, sessions SessionStore) *Service {
	return &Service{
		content:  content,
		accounts: accounts,
		sessions: sessions,
	}
}

// GetContent returns the singleton site content record
func (s *Service) GetContent() (*models.SiteContent, error) {
	return s.content.Get()
}

// UpdateContent applies a partial update on behalf of actor and returns the
// full updated record. Omitted fields keep their previous values.
func (s *Service) UpdateContent(actor *models.Account, req models.UpdateContentRequest) (*models.SiteContent, error) {
	current, err := s.content.Get()
	if err != nil {
		return nil, err
	}

	req.Apply(current)
	if err := s.content.Update(current, actor.Username); err != nil {
		return nil, err
	}

	return current, nil
}

// ListAccounts returns all admin accounts ordered by creation time.
// Restricted to the main admin.
func (s *Service) ListAccounts(actor *models.Account) ([]*models.Account, error) {
	if !actor.IsMainAdmin() {
		return nil, ErrForbidden
	}
	return s.accounts.List()
}

// SetAccountActive toggles an account's active flag. Restricted to the main
// admin; the main admin account itself can never be deactivated.
func (s *Service) SetAccountActive(actor *models.Account, targetID string, active bool) (*models.Account, error) {
	if !actor.IsMainAdmin() {
		return nil, ErrForbidden
	}

	target, err := s.accounts.GetByID(targetID)
	if err != nil {
		return nil, err
	}

	if target.IsMainAdmin() && !active {
		return nil, ErrProtectedAccount
	}

	if err := s.accounts.SetActive(target.ID, active); err != nil {
		return nil, err
	}
	target.IsActive = active

	// Deactivation takes effect immediately: revoke any live sessions so
	// outstanding tokens stop verifying.
	if !active {
		if err := s.sessions.DeleteAllForAccount(target.ID); err != nil {
			return nil, err
		}
	}

	return target, nil
}

// CreateSubAdmin creates a new active sub-admin account. Restricted to the
// main admin.
func (s *Service) CreateSubAdmin(actor *models.Account, username, password string) (*models.Account, error) {
	if !actor.IsMainAdmin() {
		return nil, ErrForbidden
	}
	if username == "" || password == "" {
		return nil, ErrInvalidRequest
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleSubAdmin,
		IsActive:     true,
	}
	if err := s.accounts.Create(account); err != nil {
		if errors.Is(err, database.ErrAccountAlreadyExists) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return account, nil
}
