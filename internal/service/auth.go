package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/adventuresync/server/internal/domain"
)

const (
	sessionTTL    = 7 * 24 * time.Hour
	rememberMeTTL = 30 * 24 * time.Hour
)

// AuthService handles user registration, login, and session token operations.
type AuthService struct {
	users      domain.UserRepository
	jwtSecret  []byte
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, jwtSecret string, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
	}
}

// RegisterParams carries a registration request.
type RegisterParams struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	Name            string
	Location        string
}

// Register creates a new user account after validating inputs. The new
// account starts on the free plan with all usage counters at zero.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (*domain.User, error) {
	if p.Username == "" || p.Email == "" || p.Password == "" || p.Name == "" {
		return nil, fmt.Errorf("%w: username, email, password, and name are required", domain.ErrInvalidInput)
	}
	if !strings.Contains(p.Email, "@") {
		return nil, fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}
	if len(p.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", domain.ErrInvalidInput)
	}
	if p.Password != p.ConfirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: string(hash),
		Name:         p.Name,
		Location:     p.Location,
		Plan:         domain.PlanFree,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login resolves the identifier against username or email, verifies the
// password, and returns the user with a signed session token. The token
// lives 7 days, or 30 with rememberMe.
func (s *AuthService) Login(ctx context.Context, identifier, password string, rememberMe bool) (*domain.User, string, error) {
	user, err := s.users.GetByUsername(ctx, identifier)
	if errors.Is(err, domain.ErrNotFound) {
		user, err = s.users.GetByEmail(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrUnauthorized
		}
		return nil, "", fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrUnauthorized
	}

	ttl := sessionTTL
	if rememberMe {
		ttl = rememberMeTTL
	}
	token, err := s.generateToken(user.ID, ttl)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}

// ValidateToken parses and validates a session token, returning the user id
// from the sub claim. The token proves identity only; authorization checks
// always go back to the stored user.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", domain.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", domain.ErrUnauthorized
	}
	return sub, nil
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *AuthService) generateToken(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
