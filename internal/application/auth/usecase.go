package auth

import (
	"strings"
	"time"

	"github.com/provenderie/ledger/internal/application/dto"
	"github.com/provenderie/ledger/internal/domain"
	"github.com/provenderie/ledger/internal/domain/entity"
	"github.com/provenderie/ledger/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// CodeHashes hashes bcrypt de los códigos de acceso. Un hash vacío deshabilita ese rol.
type CodeHashes struct {
	Admin string
	Clerk string
}

type roleCode struct {
	role string
	hash []byte
}

// AuthUseCase login por código de acceso: cada rol tiene un código compartido.
type AuthUseCase struct {
	codes  []roleCode
	tokens *jwt.Signer
}

// NewAuthUseCase construye el caso de uso de auth. El código de admin se prueba primero.
func NewAuthUseCase(hashes CodeHashes, tokens *jwt.Signer) *AuthUseCase {
	uc := &AuthUseCase{tokens: tokens}
	if hashes.Admin != "" {
		uc.codes = append(uc.codes, roleCode{role: entity.RoleAdmin, hash: []byte(hashes.Admin)})
	}
	if hashes.Clerk != "" {
		uc.codes = append(uc.codes, roleCode{role: entity.RoleClerk, hash: []byte(hashes.Clerk)})
	}
	return uc
}

// Login resuelve el rol del código y emite un JWT con ese rol como sujeto.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return nil, domain.ErrUnauthorized
	}
	role := ""
	for _, c := range uc.codes {
		if bcrypt.CompareHashAndPassword(c.hash, []byte(code)) == nil {
			role = c.role
			break
		}
	}
	if role == "" {
		return nil, domain.ErrUnauthorized
	}
	token, err := uc.tokens.Sign(role)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		Role:      role,
		ExpiresIn: int(uc.tokens.TTL() / time.Second),
	}, nil
}

// HashCode genera el hash bcrypt de un código para AUTH_ADMIN_CODE_HASH / AUTH_CLERK_CODE_HASH.
func HashCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
