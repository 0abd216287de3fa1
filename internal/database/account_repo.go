package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"gkk99-backend/internal/models"
)

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountAlreadyExists = errors.New("account already exists")
)

// AccountRepo handles admin account database operations
type AccountRepo struct {
	db *sql.DB
}

// NewAccountRepo creates a new account repository
func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// Create creates a new admin account
func (r *AccountRepo) Create(account *models.Account) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(`
		INSERT INTO admin_users (id, username, password_hash, role, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, account.ID, account.Username, account.PasswordHash, account.Role, account.IsActive, account.CreatedAt)
	if err != nil {
		var count int
		if r.db.QueryRow("SELECT COUNT(*) FROM admin_users WHERE username = ?", account.Username).Scan(&count) == nil && count > 0 {
			return ErrAccountAlreadyExists
		}
		return err
	}

	return nil
}

// GetByID retrieves an account by ID
func (r *AccountRepo) GetByID(id string) (*models.Account, error) {
	return r.scanOne(r.db.QueryRow(`
		SELECT id, username, password_hash, role, is_active, created_at, last_login
		FROM admin_users WHERE id = ?
	`, id))
}

// GetByUsername retrieves an account by username
func (r *AccountRepo) GetByUsername(username string) (*models.Account, error) {
	return r.scanOne(r.db.QueryRow(`
		SELECT id, username, password_hash, role, is_active, created_at, last_login
		FROM admin_users WHERE username = ?
	`, username))
}

// List retrieves all accounts ordered by creation time
func (r *AccountRepo) List() ([]*models.Account, error) {
	rows, err := r.db.Query(`
		SELECT id, username, password_hash, role, is_active, created_at, last_login
		FROM admin_users ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account := &models.Account{}
		var lastLogin sql.NullTime
		err := rows.Scan(
			&account.ID, &account.Username, &account.PasswordHash,
			&account.Role, &account.IsActive, &account.CreatedAt, &lastLogin,
		)
		if err != nil {
			return nil, err
		}
		if lastLogin.Valid {
			t := lastLogin.Time
			account.LastLogin = &t
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// UpdateLastLogin stamps the account's last successful login time
func (r *AccountRepo) UpdateLastLogin(id string, at time.Time) error {
	result, err := r.db.Exec("UPDATE admin_users SET last_login = ? WHERE id = ?", at, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// SetActive updates the account's active flag
func (r *AccountRepo) SetActive(id string, active bool) error {
	result, err := r.db.Exec("UPDATE admin_users SET is_active = ? WHERE id = ?", active, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// Count returns the number of admin accounts
func (r *AccountRepo) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM admin_users").Scan(&count)
	return count, err
}

func (r *AccountRepo) scanOne(row *sql.Row) (*models.Account, error) {
	account := &models.Account{}
	var lastLogin sql.NullTime

	err := row.Scan(
		&account.ID, &account.Username, &account.PasswordHash,
		&account.Role, &account.IsActive, &account.CreatedAt, &lastLogin,
	)
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	if lastLogin.Valid {
		t := lastLogin.Time
		account.LastLogin = &t
	}

	return account, nil
}
