package dto

// CreateProductRequest entrada para crear un producto. BagWeightKg nil usa 50 kg.
type CreateProductRequest struct {
	Code        *string  `json:"code" validate:"omitempty,max=50"`
	Label       string   `json:"label" validate:"required,max=200"`
	BagWeightKg *float64 `json:"bag_weight_kg" validate:"omitempty,gte=0"`
	PricePerKg  float64  `json:"price_per_kg" validate:"gte=0"`
	PricePerBag float64  `json:"price_per_bag" validate:"gte=0"`
	ThresholdKg float64  `json:"threshold_kg" validate:"gte=0"`
}

// UpdateProductRequest reemplazo completo de los campos editables (incluido Active).
type UpdateProductRequest struct {
	Code        *string `json:"code" validate:"omitempty,max=50"`
	Label       string  `json:"label" validate:"required,max=200"`
	BagWeightKg float64 `json:"bag_weight_kg" validate:"gte=0"`
	PricePerKg  float64 `json:"price_per_kg" validate:"gte=0"`
	PricePerBag float64 `json:"price_per_bag" validate:"gte=0"`
	ThresholdKg float64 `json:"threshold_kg" validate:"gte=0"`
	Active      *bool   `json:"active" validate:"required"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64   `json:"id"`
	Code        *string `json:"code"`
	Label       string  `json:"label"`
	BagWeightKg float64 `json:"bag_weight_kg"`
	PricePerKg  float64 `json:"price_per_kg"`
	PricePerBag float64 `json:"price_per_bag"`
	ThresholdKg float64 `json:"threshold_kg"`
	Active      bool    `json:"active"`
}
