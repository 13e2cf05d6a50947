// internal/domain/user/service.go
package user

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/baskitup/storefront/internal/pkg/auth"
)

var (
	// ErrEmailTaken is returned when registering with an email that exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotFound is returned when no user matches.
	ErrNotFound = errors.New("user not found")
)

// Service handles account registration and authentication
type Service struct {
	db         *gorm.DB
	jwtManager *auth.JWTManager
	passwords  *auth.PasswordManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, jwtManager *auth.JWTManager, passwords *auth.PasswordManager) *Service {
	return &Service{
		db:         db,
		jwtManager: jwtManager,
		passwords:  passwords,
	}
}

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=200"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the signed token together with its account
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Register creates a new customer account and returns a signed token.
func (s *Service) Register(req *RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := s.db.Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	account := &User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         RoleCustomer,
	}
	if err := s.db.Create(account).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueToken(account)
}

// Login authenticates an account and returns a signed token.
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var account User
	if err := s.db.Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.passwords.VerifyPassword(account.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(&account)
}

// GetByID loads an account by its id.
func (s *Service) GetByID(id string) (*User, error) {
	var account User
	if err := s.db.Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &account, nil
}

// EnsureAdmin creates the bootstrap admin account when it does not exist.
// Used at startup in development environments.
func (s *Service) EnsureAdmin(name, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	if err := s.db.Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := s.passwords.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         RoleAdmin,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}
	return nil
}

func (s *Service) issueToken(account *User) (*AuthResponse, error) {
	token, err := s.jwtManager.GenerateToken(account.ID, account.Email, string(account.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &AuthResponse{Token: token, User: account}, nil
}
