package auth

import (
	"fmt"
	"time"

	"github.com/gigvault/escrow-service/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// UserDirectory resolves a request-scoped identity from a bearer token.
// The mutable "current session" of the old front end is gone: every engine
// operation receives the resolved user explicitly.
type UserDirectory struct {
	userRepo  domain.UserRepository
	jwtSecret []byte
}

func NewUserDirectory(userRepo domain.UserRepository, jwtSecret string) *UserDirectory {
	return &UserDirectory{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
	}
}

// ResolveCurrentUser verifies the token, loads the user and optionally
// enforces a role. requiredRole == "" accepts any role.
func (d *UserDirectory) ResolveCurrentUser(tokenString string, requiredRole domain.UserRole) (*domain.User, error) {
	if tokenString == "" {
		return nil, domain.ErrUnauthenticated
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return d.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	user, err := d.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	if requiredRole != "" && user.Role != requiredRole {
		return nil, domain.ErrUnauthorized
	}

	return user, nil
}

// IssueToken signs a token for the given user. Used by operator tooling
// and tests; the marketplace front end issues its own.
func (d *UserDirectory) IssueToken(user *domain.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(d.jwtSecret)
}
