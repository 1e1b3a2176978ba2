package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Anandha-scraper/HarvestChain/internal/infrastructure/config"

	"github.com/golang-jwt/jwt/v4"
)

// Token lifetime for admin bearer tokens
const tokenLifetime = 12 * time.Hour

// InterfaceJWTService defines the token service interface
type InterfaceJWTService interface {
	GenerateToken(adminID uint, role string) (string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	ExtractClaims(tokenString string) (*AuthClaims, error)
}

// AuthClaims is the payload carried by an admin bearer token
type AuthClaims struct {
	AdminID uint   `json:"id"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies admin bearer tokens
type JWTService struct {
	secretKey string
	issuer    string
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg *config.Config) InterfaceJWTService {
	return &JWTService{
		secretKey: cfg.JWTSecretKey,
		issuer:    "harvestchain",
	}
}

// GenerateToken issues a token valid for 12 hours carrying admin identity
// and role
func (s *JWTService) GenerateToken(adminID uint, role string) (string, error) {
	now := time.Now()
	claims := &AuthClaims{
		AdminID: adminID,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ValidateToken parses and verifies a token string
func (s *JWTService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
}

// ExtractClaims verifies the token and returns its claims
func (s *JWTService) ExtractClaims(tokenString string) (*AuthClaims, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
