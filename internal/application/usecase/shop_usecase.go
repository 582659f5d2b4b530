package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/provenderie/ledger/internal/application/dto"
	"github.com/provenderie/ledger/internal/domain"
	"github.com/provenderie/ledger/internal/domain/entity"
	"github.com/provenderie/ledger/internal/domain/repository"
)

// ShopUseCase casos de uso de tiendas.
type ShopUseCase struct {
	repo repository.ShopRepository
}

// NewShopUseCase construye el caso de uso.
func NewShopUseCase(repo repository.ShopRepository) *ShopUseCase {
	return &ShopUseCase{repo: repo}
}

// Create crea una tienda. Etiqueta vacía => ErrInvalidInput; repetida => ErrDuplicate.
func (uc *ShopUseCase) Create(ctx context.Context, in dto.CreateShopRequest) (*dto.ShopResponse, error) {
	label, err := cleanLabel(in.Label)
	if err != nil {
		return nil, err
	}
	shop := &entity.Shop{Label: label}
	if err := uc.repo.Create(ctx, shop); err != nil {
		return nil, err
	}
	return toShopResponse(shop), nil
}

// GetByID obtiene una tienda; nil si no existe.
func (uc *ShopUseCase) GetByID(ctx context.Context, id int64) (*dto.ShopResponse, error) {
	shop, err := uc.repo.GetByID(ctx, id)
	if err != nil || shop == nil {
		return nil, err
	}
	return toShopResponse(shop), nil
}

// GetByLabel obtiene una tienda por etiqueta exacta; nil si no existe.
func (uc *ShopUseCase) GetByLabel(ctx context.Context, label string) (*dto.ShopResponse, error) {
	shop, err := uc.repo.GetByLabel(ctx, strings.TrimSpace(label))
	if err != nil || shop == nil {
		return nil, err
	}
	return toShopResponse(shop), nil
}

// List devuelve las tiendas ordenadas por ID.
func (uc *ShopUseCase) List(ctx context.Context) ([]dto.ShopResponse, error) {
	shops, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ShopResponse, 0, len(shops))
	for _, s := range shops {
		out = append(out, *toShopResponse(s))
	}
	return out, nil
}

// Rename renombra una tienda existente.
func (uc *ShopUseCase) Rename(ctx context.Context, id int64, in dto.RenameShopRequest) (*dto.ShopResponse, error) {
	label, err := cleanLabel(in.Label)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Rename(ctx, id, label); err != nil {
		return nil, err
	}
	return &dto.ShopResponse{ID: id, Label: label}, nil
}

// Delete borra la tienda si no tiene movimientos. deleted=false (sin error) si está en uso;
// ErrNotFound si no existe.
func (uc *ShopUseCase) Delete(ctx context.Context, id int64) (bool, error) {
	shop, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if shop == nil {
		return false, domain.ErrNotFound
	}
	return uc.repo.DeleteIfUnused(ctx, id)
}

func cleanLabel(s string) (string, error) {
	label := strings.TrimSpace(s)
	if label == "" {
		return "", fmt.Errorf("%w: la etiqueta no puede estar vacía", domain.ErrInvalidInput)
	}
	return label, nil
}

func toShopResponse(s *entity.Shop) *dto.ShopResponse {
	return &dto.ShopResponse{ID: s.ID, Label: s.Label}
}
