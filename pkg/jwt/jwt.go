// Package jwt emite y verifica los tokens de sesión de los operadores (HS256).
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrNoSecret     = errors.New("jwt: secret vacío")
	ErrInvalidToken = errors.New("jwt: token inválido o expirado")
)

// Claims claims registrados más el rol del operador. El sujeto es el propio rol:
// no hay cuentas de usuario.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Signer firma y verifica tokens con una clave simétrica y un emisor fijo.
type Signer struct {
	key    []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner crea un firmante. ttl <= 0 usa 8 horas.
func NewSigner(secret, issuer string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &Signer{key: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}, nil
}

// TTL vigencia de los tokens emitidos.
func (s *Signer) TTL() time.Duration { return s.ttl }

// Sign emite un token para el rol dado.
func (s *Signer) Sign(role string) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   role,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Role: role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("jwt: firmar: %w", err)
	}
	return signed, nil
}

// Verify comprueba firma, algoritmo, emisor y expiración. Cualquier fallo es ErrInvalidToken.
func (s *Signer) Verify(token string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.key, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}
