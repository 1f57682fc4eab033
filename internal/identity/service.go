package identity

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/quizhire/recruitment/internal/apperr"
	auth "github.com/quizhire/recruitment/internal/auth/middleware"
	"github.com/quizhire/recruitment/internal/recruit"
)

// UserStore is the slice of the recruit store that identity needs.
type UserStore interface {
	CreateUser(ctx context.Context, u recruit.User) (recruit.User, error)
	UserByEmail(ctx context.Context, email string) (recruit.User, error)
}

type SignUpRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	UserName  string `json:"userName"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

var errMissingFields = apperr.Validation("", "Missing fields in request body")

type Service struct {
	users    UserStore
	provider Provider
	tokens   *auth.AuthService
	isAdmin  func(email string) bool
}

// NewService wires the sign-up and sign-in flows. isAdmin may be nil.
func NewService(users UserStore, provider Provider, tokens *auth.AuthService, isAdmin func(string) bool) *Service {
	if isAdmin == nil {
		isAdmin = func(string) bool { return false }
	}
	return &Service{users: users, provider: provider, tokens: tokens, isAdmin: isAdmin}
}

// SignUp creates the user row and, for providers that keep their own
// credentials, registers the password.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (recruit.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return recruit.User{}, errMissingFields
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return recruit.User{}, apperr.Validation("email", "Email is not valid.")
	}

	reg, registers := s.provider.(Registrar)
	if registers {
		if err := checkPassword(req.Password); err != nil {
			return recruit.User{}, err
		}
	}

	role := recruit.RoleUser
	if s.isAdmin(email) {
		role = recruit.RoleAdmin
	}
	u, err := s.users.CreateUser(ctx, recruit.User{
		Email:     email,
		UserName:  req.UserName,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
	})
	if err != nil {
		return recruit.User{}, err
	}
	if registers {
		if err := reg.Register(ctx, u.ID, req.Password); err != nil {
			return recruit.User{}, err
		}
	}
	return u, nil
}

// SignIn verifies the credentials with the provider and returns a session token.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", errMissingFields
	}
	if err := s.provider.Authenticate(ctx, email, password); err != nil {
		return "", err
	}
	u, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		// authenticated upstream but never provisioned here
		if errors.Is(err, recruit.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	return s.tokens.IssueJWT(u.ID, u.Email, u.Role)
}

// ChangePassword rotates a locally stored password.
func (s *Service) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	pc, ok := s.provider.(PasswordChanger)
	if !ok {
		return apperr.Validation("", "Passwords are managed by the external identity provider.")
	}
	if err := checkPassword(newPassword); err != nil {
		return err
	}
	return pc.ChangePassword(ctx, userID, oldPassword, newPassword)
}

// bcrypt ignores input past 72 bytes.
func checkPassword(pw string) error {
	if len(pw) < 8 || len(pw) > 72 {
		return apperr.Validation("password", "Password must be between 8 and 72 characters.")
	}
	return nil
}
