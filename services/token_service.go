package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/nassimidr/Emall/apperrors"
)

const tokenLifetime = 24 * time.Hour

// Claims is the identity a verified token carries.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// TokenService is responsible for creating and validating JWTs.
type TokenService struct {
	secretKey []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secretKey: []byte(secret)}
}

// Generate creates a signed token embedding the user's identity and role.
func (s *TokenService) Generate(userID, email, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"role":   role,
		"exp":    now.Add(tokenLifetime).Unix(),
		"iat":    now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// Validate parses a token and returns its claims. Expiry and malformed
// tokens map to distinct error kinds so the middleware can answer with the
// right status.
func (s *TokenService) Validate(tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) {
			return nil, apperrors.ErrTokenInvalid.Wrap(err)
		}
		return nil, apperrors.ErrVerification.Wrap(err)
	}
	if !token.Valid {
		return nil, apperrors.ErrTokenInvalid
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperrors.ErrTokenInvalid
	}

	userID, _ := mapClaims["userId"].(string)
	email, _ := mapClaims["email"].(string)
	role, _ := mapClaims["role"].(string)
	if userID == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	return &Claims{UserID: userID, Email: email, Role: role}, nil
}
