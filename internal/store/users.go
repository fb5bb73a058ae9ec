package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"oraex/internal/models"
)

// ErrBadCredentials covers both unknown users and wrong passwords, so the
// login handler cannot leak which one it was.
var ErrBadCredentials = errors.New("invalid credentials")

func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	var active int
	err := s.DB.SQL.QueryRowContext(ctx, s.DB.Rebind(`SELECT id, username, password_hash,
		display_name, role, is_active FROM users WHERE username = ?`), username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.DisplayName, &u.Role, &active)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	u.IsActive = active != 0
	return u, err
}

// Authenticate verifies a username/password pair against the stored bcrypt
// hash. Inactive accounts fail the same way wrong passwords do.
func (s *Store) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	u, err := s.GetUserByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return models.User{}, ErrBadCredentials
	}
	if err != nil {
		return models.User{}, err
	}
	if !u.IsActive {
		return models.User{}, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrBadCredentials
	}
	return u, nil
}

// CreateUser inserts a new account with a freshly hashed password.
func (s *Store) CreateUser(ctx context.Context, username, password, displayName, role string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.DB.SQL.ExecContext(ctx, s.DB.Rebind(`INSERT INTO users
		(username, password_hash, display_name, role, is_active) VALUES (?,?,?,?,1)`),
		username, string(hash), displayName, role)
	return err
}

// EnsureAdmin seeds the admin account on first start. An existing admin is
// left alone, whatever its password is.
func (s *Store) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.GetUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	return s.CreateUser(ctx, username, password, "Administrador", "admin")
}
