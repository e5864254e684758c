package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"equaline/internal/models"
	"equaline/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput is the registration form.
type RegisterInput struct {
	Name     string `json:"name" validate:"person_name"`
	Email    string `json:"email" validate:"site_email"`
	Phone    string `json:"phone" validate:"phone_digits"`
	Password string `json:"password" validate:"password"`
}

// LoginInput is the login form.
type LoginInput struct {
	Email    string `json:"email" validate:"site_email"`
	Password string `json:"password" validate:"password"`
}

// AuthService handles registration, login and the visitor's session.
type AuthService struct {
	users         repositories.UserRepository
	sessions      repositories.SessionRepository
	validate      *validator.Validate
	jwtSecret     []byte
	tokenDurat    time.Duration // Duration for which a visitor token is valid
	hashPasswords bool
	mu            sync.Mutex
}

// AuthOption customizes an AuthService.
type AuthOption func(*AuthService)

// WithTokenDuration sets how long issued visitor tokens stay valid.
func WithTokenDuration(d time.Duration) AuthOption {
	return func(s *AuthService) { s.tokenDurat = d }
}

// WithPasswordHashing makes registration store bcrypt hashes instead of the raw password.
func WithPasswordHashing(enabled bool) AuthOption {
	return func(s *AuthService) { s.hashPasswords = enabled }
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repositories.UserRepository, sessions repositories.SessionRepository, jwtSecret string, opts ...AuthOption) *AuthService {
	s := &AuthService{
		users:      users,
		sessions:   sessions,
		validate:   newValidator(),
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 30 * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds a user to the directory and signs the visitor in as that user.
// Email uniqueness is checked case-sensitively.
func (s *AuthService) Register(ctx context.Context, visitorID string, in RegisterInput) (*models.Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)

	if err := checkStruct(s.validate, in).OrNil(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	for _, u := range users {
		if u.Email == in.Email {
			return nil, &AuthError{Field: "email", Err: ErrDuplicateEmail}
		}
	}

	password := in.Password
	if s.hashPasswords {
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		password = string(hashed)
	}

	user := models.User{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    NormalizePhone(in.Phone),
		Password: password,
	}
	if err := s.users.Save(ctx, append(users, user)); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	session := user.Session()
	if err := s.sessions.Set(ctx, visitorID, session); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	log.Printf("Registered user %s", user.Email)
	return &session, nil
}

// Login signs the visitor in when exactly one directory entry matches both
// the email and the password.
func (s *AuthService) Login(ctx context.Context, visitorID string, in LoginInput) (*models.Session, error) {
	in.Email = strings.TrimSpace(in.Email)

	if err := checkStruct(s.validate, in).OrNil(); err != nil {
		return nil, err
	}

	var match *models.User
	matches := 0
	for _, u := range s.users.GetAll(ctx) {
		if u.Email == in.Email && passwordMatches(u.Password, in.Password) {
			u := u
			match = &u
			matches++
		}
	}
	if matches != 1 {
		return nil, &AuthError{Field: "email", Err: ErrInvalidCredentials}
	}

	session := match.Session()
	if err := s.sessions.Set(ctx, visitorID, session); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	return &session, nil
}

// Logout ends the visitor's session. Logging out twice is fine.
func (s *AuthService) Logout(ctx context.Context, visitorID string) error {
	if err := s.sessions.Clear(ctx, visitorID); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

// CurrentUser returns the visitor's session, or nil when nobody is signed in.
func (s *AuthService) CurrentUser(ctx context.Context, visitorID string) *models.Session {
	return s.sessions.Current(ctx, visitorID)
}

// IssueVisitorToken creates a new visitor identity and a signed token carrying it.
func (s *AuthService) IssueVisitorToken() (string, string, error) {
	visitorID := uuid.New().String()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"visitor_id": visitorID,
		"exp":        time.Now().Add(s.tokenDurat).Unix(),
		"iat":        time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, visitorID, nil
}

// ValidateToken parses and validates a visitor token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if id, _ := claims["visitor_id"].(string); id == "" {
		return nil, fmt.Errorf("invalid token: missing visitor_id")
	}
	return claims, nil
}

// passwordMatches compares against a bcrypt hash when the stored value is
// one, and byte for byte otherwise.
func passwordMatches(stored, given string) bool {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}
