package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"matchbook/config"
	"matchbook/domain/entities"
	"matchbook/domain/interfaces"
	"matchbook/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest secret the identity provider accepts.
const MinPasswordLength = 6

// SessionClaims are the JWT claims carried by a session token.
type SessionClaims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

type identityService struct {
	userRepo  interfaces.UserRepository
	tokenRepo interfaces.TokenRepository
}

// NewIdentityService creates a new identity service
func NewIdentityService(userRepo interfaces.UserRepository, tokenRepo interfaces.TokenRepository) interfaces.IdentityService {
	return &identityService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

func (s *identityService) Register(ctx context.Context, username, password string) (*entities.User, error) {
	// Local validation happens before any store call
	if username == "" {
		return nil, apperror.Validation("username is required")
	}
	if len(password) < MinPasswordLength {
		return nil, apperror.Validation("password must be at least %d characters long", MinPasswordLength)
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.Backend(err)
	}
	if existing != nil {
		return nil, apperror.Validation("username %q is already taken", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Backend(fmt.Errorf("failed to hash password: %w", err))
	}

	cfg := config.Get()
	user := &entities.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		// ADMIN_USERNAME bootstraps the first admin account; everyone else
		// starts as a regular player
		IsAdmin:        cfg.AdminUsername != "" && username == cfg.AdminUsername,
		TotalCoins:     cfg.StartingCoins,
		AvailableCoins: 0,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperror.Backend(err)
	}

	return user, nil
}

func (s *identityService) Authenticate(ctx context.Context, username, password string) (string, *entities.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, apperror.Backend(err)
	}
	// Same failure for unknown user and wrong password
	if user == nil {
		return "", nil, apperror.Validation("invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperror.Validation("invalid username or password")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, apperror.Backend(err)
	}

	return token, user, nil
}

func (s *identityService) VerifySession(ctx context.Context, token string) (*interfaces.Session, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, apperror.Validation("invalid or expired session")
	}

	revoked, err := s.tokenRepo.IsRevoked(ctx, hashToken(token))
	if err != nil {
		return nil, apperror.Backend(err)
	}
	if revoked {
		return nil, apperror.Validation("session has been revoked")
	}

	return &interfaces.Session{
		UserID:   claims.Subject,
		Username: claims.Username,
		IsAdmin:  claims.IsAdmin,
	}, nil
}

func (s *identityService) RevokeSession(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		return apperror.Validation("invalid or expired session")
	}

	// Keep the hash only as long as the token could still be replayed
	expiresAt := time.Now().Add(config.Get().TokenTTL)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if err := s.tokenRepo.Revoke(ctx, hashToken(token), expiresAt); err != nil {
		return apperror.Backend(err)
	}

	return nil
}

func (s *identityService) issueToken(user *entities.User) (string, error) {
	cfg := config.Get()
	now := time.Now()

	claims := SessionClaims{
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

func (s *identityService) parseToken(token string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(config.Get().JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid session claims")
	}

	return claims, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
