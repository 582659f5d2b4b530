package usecase

import (
	"context"
	"strings"

	"github.com/provenderie/ledger/internal/application/dto"
	"github.com/provenderie/ledger/internal/domain/entity"
	"github.com/provenderie/ledger/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía movimientos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto activo. Código vacío se guarda como ausente.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	label, err := cleanLabel(in.Label)
	if err != nil {
		return nil, err
	}
	bagWeight := entity.DefaultBagWeightKg
	if in.BagWeightKg != nil {
		bagWeight = *in.BagWeightKg
	}
	product := &entity.Product{
		Code:        cleanCode(in.Code),
		Label:       label,
		BagWeightKg: bagWeight,
		PricePerKg:  in.PricePerKg,
		PricePerBag: in.PricePerBag,
		ThresholdKg: in.ThresholdKg,
		Active:      true,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto; nil si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil || product == nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByLabel obtiene un producto por etiqueta exacta; nil si no existe.
func (uc *ProductUseCase) GetByLabel(ctx context.Context, label string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByLabel(ctx, strings.TrimSpace(label))
	if err != nil || product == nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByCode obtiene un producto por código; nil si no existe.
func (uc *ProductUseCase) GetByCode(ctx context.Context, code string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil || product == nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update reemplaza los campos editables de un producto existente.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	label, err := cleanLabel(in.Label)
	if err != nil {
		return nil, err
	}
	product := &entity.Product{
		ID:          id,
		Code:        cleanCode(in.Code),
		Label:       label,
		BagWeightKg: in.BagWeightKg,
		PricePerKg:  in.PricePerKg,
		PricePerBag: in.PricePerBag,
		ThresholdKg: in.ThresholdKg,
		Active:      in.Active == nil || *in.Active,
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Archive desactiva el producto (nunca se borra). Idempotente.
func (uc *ProductUseCase) Archive(ctx context.Context, id int64) error {
	return uc.repo.Archive(ctx, id)
}

// List filtra por subcadena en etiqueta o código; solo activos salvo includeInactive.
func (uc *ProductUseCase) List(ctx context.Context, query string, includeInactive bool) ([]dto.ProductResponse, error) {
	products, err := uc.repo.List(ctx, query, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// cleanCode normaliza el código: vacío equivale a sin código.
func cleanCode(code *string) *string {
	if code == nil {
		return nil
	}
	c := strings.TrimSpace(*code)
	if c == "" {
		return nil
	}
	return &c
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Label:       p.Label,
		BagWeightKg: p.BagWeightKg,
		PricePerKg:  p.PricePerKg,
		PricePerBag: p.PricePerBag,
		ThresholdKg: p.ThresholdKg,
		Active:      p.Active,
	}
}
