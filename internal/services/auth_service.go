package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"recipebox/internal/models"
	"recipebox/internal/repositories"

	"github.com/dgrijalva/jwt-go"
)

// ErrInvalidCredentials is returned for an unknown username or a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// SignupInput carries the fields of a new account.
type SignupInput struct {
	Username string
	Password string
	ImageURL string
	Bio      string
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	publisher  EventPublisher
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
}

// NewAuthService creates a new AuthService. publisher may be nil.
func NewAuthService(userRepo repositories.UserRepository, publisher EventPublisher, jwtSecret string, tokenTTL time.Duration, bcryptCost int) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		userRepo:   userRepo,
		publisher:  publisher,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

// Signup creates an account, storing only a hash of the password.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	user := &models.User{
		Username: input.Username,
		ImageURL: input.ImageURL,
		Bio:      input.Bio,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.GetByUsername(user.Username); err == nil && existing != nil {
		return nil, fmt.Errorf("username '%s' already taken: %w", user.Username, models.ErrUniquenessViolation)
	} else if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	if err := user.SetPassword(input.Password, s.bcryptCost); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	publishEvent(s.publisher, EventAccountCreated, map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return user, nil
}

// Login authenticates a user and returns a signed JWT together with the user.
func (s *AuthService) Login(username, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	ok, err := user.Authenticate(password)
	if err != nil {
		log.Printf("Credential check failed for user %s: %v", user.ID, err)
		return "", nil, ErrInvalidCredentials
	}
	if !ok {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// IssueToken signs an HS256 token for user.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      now.Add(s.tokenTTL).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if _, ok := claims["user_id"].(string); !ok {
			return nil, fmt.Errorf("invalid token: missing user_id")
		}
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// CurrentUser loads the account named by a validated token's claims.
func (s *AuthService) CurrentUser(claims jwt.MapClaims) (*models.User, error) {
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, ErrInvalidCredentials
	}
	return s.userRepo.GetByID(userID)
}
