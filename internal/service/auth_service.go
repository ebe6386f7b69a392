package service

import (
	"context"
	"fmt"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/repfit/repfit-api/internal/config"
	"github.com/repfit/repfit-api/internal/domain"
)

// FirebaseAuthClient defines the interface for Firebase Auth operations
// This allows mocking for tests
type FirebaseAuthClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthService handles authentication and user registration
type AuthService struct {
	userRepo   domain.UserRepository
	authClient FirebaseAuthClient
	jwtConfig  config.JWTConfig
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	authClient FirebaseAuthClient,
	jwtConfig config.JWTConfig,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		authClient: authClient,
		jwtConfig:  jwtConfig,
	}
}

// LoginOrRegisterRequest contains the request params
type LoginOrRegisterRequest struct {
	FirebaseToken string
}

// LoginOrRegisterResponse contains the user and whether they were newly created
type LoginOrRegisterResponse struct {
	User      *domain.User
	Token     string
	ExpiresIn int64
	IsNewUser bool
}

// LoginOrRegister verifies the Firebase token and exchanges it for a RepFit
// JWT, creating the account on first login
func (s *AuthService) LoginOrRegister(ctx context.Context, req LoginOrRegisterRequest) (*LoginOrRegisterResponse, error) {
	// Step 1: Verify Firebase token and extract user info
	token, err := s.authClient.VerifyIDToken(ctx, req.FirebaseToken)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	firebaseUID := token.UID
	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	if name == "" {
		name = email
	}

	// Step 2: Existing account
	existingUser, err := s.userRepo.GetByFirebaseUID(ctx, firebaseUID)
	if err == nil && existingUser != nil {
		signed, signErr := s.GenerateToken(existingUser)
		if signErr != nil {
			return nil, fmt.Errorf("failed to generate token: %w", signErr)
		}
		return &LoginOrRegisterResponse{
			User:      existingUser,
			Token:     signed,
			ExpiresIn: int64(s.jwtConfig.AccessTokenExpiry.Seconds()),
			IsNewUser: false,
		}, nil
	}

	// Step 3: New account with default member role
	if err == domain.ErrNotFound {
		newUser := &domain.User{
			FirebaseUID: firebaseUID,
			Email:       email,
			Name:        name,
			Roles:       []string{domain.RoleMember},
		}

		if err := s.userRepo.Create(ctx, newUser); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		signed, signErr := s.GenerateToken(newUser)
		if signErr != nil {
			return nil, fmt.Errorf("failed to generate token: %w", signErr)
		}
		return &LoginOrRegisterResponse{
			User:      newUser,
			Token:     signed,
			ExpiresIn: int64(s.jwtConfig.AccessTokenExpiry.Seconds()),
			IsNewUser: true,
		}, nil
	}

	return nil, fmt.Errorf("failed to fetch user: %w", err)
}

// GenerateToken creates a JWT token with custom claims
func (s *AuthService) GenerateToken(user *domain.User) (string, error) {
	claims := domain.RepFitClaims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Roles:  user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtConfig.AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}
