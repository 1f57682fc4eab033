// Package identity verifies user credentials and provisions new accounts.
package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
)

var ErrInvalidCredentials = errors.New("identity: invalid credentials")

// Provider checks an email/password pair.
type Provider interface {
	Authenticate(ctx context.Context, email, password string) error
}

// Registrar is implemented by providers that store credentials themselves.
type Registrar interface {
	Register(ctx context.Context, userID int64, password string) error
}

// PasswordChanger is implemented by providers that let users rotate passwords.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
}

// LocalProvider keeps bcrypt hashes in the credentials table.
type LocalProvider struct {
	db   *sql.DB
	cost int
}

func NewLocalProvider(db *sql.DB) *LocalProvider {
	return &LocalProvider{db: db, cost: bcrypt.DefaultCost}
}

func (p *LocalProvider) Register(ctx context.Context, userID int64, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = p.db.ExecContext(ctx,
		`INSERT INTO credentials (user_id, password_hash, updated_at) VALUES ($1,$2,$3)`,
		userID, string(hash), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("store credentials: %w", err)
	}
	return nil
}

func (p *LocalProvider) Authenticate(ctx context.Context, email, password string) error {
	var hash string
	err := p.db.QueryRowContext(ctx,
		`SELECT c.password_hash FROM credentials c JOIN users u ON u.id = c.user_id WHERE u.email=$1`,
		email).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (p *LocalProvider) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	var hash string
	err := p.db.QueryRowContext(ctx, `SELECT password_hash FROM credentials WHERE user_id=$1`, userID).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(oldPassword)) != nil {
		return ErrInvalidCredentials
	}
	next, err := bcrypt.GenerateFromPassword([]byte(newPassword), p.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = p.db.ExecContext(ctx,
		`UPDATE credentials SET password_hash=$1, updated_at=$2 WHERE user_id=$3`,
		string(next), time.Now().Unix(), userID)
	if err != nil {
		return fmt.Errorf("store credentials: %w", err)
	}
	return nil
}

// OAuthProvider delegates to an external identity provider with the
// resource-owner password grant.
type OAuthProvider struct {
	cfg    oauth2.Config
	client *http.Client
}

func NewOAuthProvider(tokenURL, clientID, clientSecret string, scopes []string) *OAuthProvider {
	return &OAuthProvider{
		cfg: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: tokenURL},
			Scopes:       scopes,
		},
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *OAuthProvider) Authenticate(ctx context.Context, email, password string) error {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)
	_, err := p.cfg.PasswordCredentialsToken(ctx, email, password)
	if err == nil {
		return nil
	}
	var re *oauth2.RetrieveError
	if errors.As(err, &re) && re.Response != nil &&
		(re.Response.StatusCode == http.StatusBadRequest || re.Response.StatusCode == http.StatusUnauthorized) {
		return ErrInvalidCredentials
	}
	return fmt.Errorf("identity provider: %w", err)
}
