package attendance

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Alexbenva/attendance-management-using-face-detection/attendance/models"
)

const (
	TokenTypeAccess   = "access"
	TokenTypeIdentity = "identity"
)

// OperatorClaims are the JWT claims carried by operator access tokens.
type OperatorClaims struct {
	jwt.RegisteredClaims
	OperatorID uint   `json:"operator_id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	TokenType  string `json:"token_type"`
}

// IdentityClaims are the JWT claims carried by identity tokens. An identity
// token is the opaque proof that the resolver matched a face; the controller
// trusts it and does no biometric work of its own.
type IdentityClaims struct {
	jwt.RegisteredClaims
	SubjectID string    `json:"subject_id"`
	Kind      ActorKind `json:"kind"`
	TokenType string    `json:"token_type"`
}

// GenerateAccessToken creates a signed access JWT for the given operator.
func GenerateAccessToken(op models.Operator, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := OperatorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		OperatorID: op.ID,
		Username:   op.Username,
		Role:       op.Role,
		TokenType:  TokenTypeAccess,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAccessToken parses and validates an operator access JWT.
func ValidateAccessToken(tokenString, secret string) (*OperatorClaims, error) {
	claims := &OperatorClaims{}
	if err := parseInto(tokenString, secret, claims); err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, errors.New("token is not an access token")
	}
	return claims, nil
}

// IssueIdentityToken creates a short-lived signed JWT binding a resolved
// identity to an actor kind.
func IssueIdentityToken(subjectID string, kind ActorKind, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		SubjectID: subjectID,
		Kind:      kind,
		TokenType: TokenTypeIdentity,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateIdentityToken parses and validates an identity JWT.
func ValidateIdentityToken(tokenString, secret string) (*IdentityClaims, error) {
	claims := &IdentityClaims{}
	if err := parseInto(tokenString, secret, claims); err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeIdentity {
		return nil, errors.New("token is not an identity token")
	}
	return claims, nil
}

func parseInto(tokenString, secret string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}
