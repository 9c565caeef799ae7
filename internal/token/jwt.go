package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Brayanhenaor/vetquestions/internal/model"
)

var _ model.TokenIssuer = (*JWT)(nil)

// Claims represents session token claims: registered claims plus roles.
type Claims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles"`
}

// JWT issues HS256-signed session tokens.
type JWT struct {
	key      []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewJWT creates a session token issuer. It fails with model.ErrConfiguration
// when the signing key is empty or the TTL is not positive.
func NewJWT(key, issuer, audience string, ttl time.Duration) (*JWT, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: jwt signing key is empty", model.ErrConfiguration)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("%w: jwt ttl must be positive", model.ErrConfiguration)
	}

	return &JWT{
		key:      []byte(key),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

// Issue signs a token for identity carrying one claim per role.
func (j *JWT) Issue(identity string, roles []string) (model.SessionToken, error) {
	// NumericDate has second resolution, truncating keeps exp - iat == ttl.
	issuedAt := j.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(j.ttl)
	jti := uuid.NewString()

	claimRoles := make([]string, len(roles))
	copy(claimRoles, roles)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			ID:        jti,
			Issuer:    j.issuer,
			Audience:  jwt.ClaimStrings{j.audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Roles: claimRoles,
	})

	tokenString, err := token.SignedString(j.key)
	if err != nil {
		return model.SessionToken{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return model.SessionToken{
		Value:     tokenString,
		ID:        jti,
		Subject:   identity,
		Roles:     claimRoles,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Parse validates signature, issuer, audience and lifetime of a session token.
func (j *JWT) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.key, nil
	},
		jwt.WithIssuer(j.issuer),
		jwt.WithAudience(j.audience),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("session token is invalid")
	}
	return claims, nil
}
