package database

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"

	"gkk99-backend/internal/models"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// SessionRepo handles session database operations
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo creates a new session repository
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session and returns the plain token
func (r *SessionRepo) Create(accountID, ipAddress, userAgent string, duration time.Duration) (string, *models.Session, error) {
	// Generate random token
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", nil, err
	}
	token := hex.EncodeToString(tokenBytes)

	// Hash the token for storage
	tokenHash := HashToken(token)

	now := time.Now().UTC()
	session := &models.Session{
		AccountID: accountID,
		TokenHash: tokenHash,
		CreatedAt: now,
		ExpiresAt: now.Add(duration),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}

	result, err := r.db.Exec(`
		INSERT INTO user_sessions (account_id, token_hash, created_at, expires_at, ip_address, user_agent)
		VALUES (?, ?, ?, ?, ?, ?)
	`, session.AccountID, session.TokenHash, session.CreatedAt, session.ExpiresAt, session.IPAddress, session.UserAgent)
	if err != nil {
		return "", nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return "", nil, err
	}
	session.ID = id

	return token, session, nil
}

// GetByToken retrieves a session by its plain token
func (r *SessionRepo) GetByToken(token string) (*models.Session, error) {
	session := &models.Session{}

	err := r.db.QueryRow(`
		SELECT id, account_id, token_hash, created_at, expires_at, ip_address, user_agent
		FROM user_sessions WHERE token_hash = ?
	`, HashToken(token)).Scan(
		&session.ID, &session.AccountID, &session.TokenHash,
		&session.CreatedAt, &session.ExpiresAt, &session.IPAddress, &session.UserAgent,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	if sessionExpired(time.Now(), session.ExpiresAt) {
		// Clean up expired session
		r.Delete(session.ID)
		return nil, ErrSessionExpired
	}

	return session, nil
}

// Delete deletes a session by ID
func (r *SessionRepo) Delete(id int64) error {
	_, err := r.db.Exec("DELETE FROM user_sessions WHERE id = ?", id)
	return err
}

// DeleteByToken deletes a session by its plain token
func (r *SessionRepo) DeleteByToken(token string) error {
	result, err := r.db.Exec("DELETE FROM user_sessions WHERE token_hash = ?", HashToken(token))
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// DeleteAllForAccount deletes all sessions for an account
func (r *SessionRepo) DeleteAllForAccount(accountID string) error {
	_, err := r.db.Exec("DELETE FROM user_sessions WHERE account_id = ?", accountID)
	return err
}

// DeleteExpired removes all expired sessions
func (r *SessionRepo) DeleteExpired() (int64, error) {
	result, err := r.db.Exec("DELETE FROM user_sessions WHERE expires_at < ?", time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// sessionExpired reports whether a session is no longer valid at now.
// A session expires at its exact ExpiresAt instant, not one tick after.
func sessionExpired(now, expiresAt time.Time) bool {
	return !now.Before(expiresAt)
}

// HashToken creates a SHA-256 hash of the token for storage at rest
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
